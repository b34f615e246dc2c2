package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/alchemorsel-import/backend/config"
	"github.com/pageza/alchemorsel-import/backend/internal/api"
	"github.com/pageza/alchemorsel-import/backend/internal/cache"
	"github.com/pageza/alchemorsel-import/backend/internal/database"
	"github.com/pageza/alchemorsel-import/backend/internal/metrics"
	"github.com/pageza/alchemorsel-import/backend/internal/middleware"
	"github.com/pageza/alchemorsel-import/backend/internal/service"
)

const shutdownTimeout = 15 * time.Second

// Options carries the optional backends of the server.
type Options struct {
	Redis   *redis.Client
	Storage *config.S3Config
	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
	log    *zap.Logger
	Tokens service.ITokenService
}

// New wires services, middleware and routes.
func New(cfg *config.Config, db *gorm.DB, opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}

	var parseCache service.ParseCache
	if opts.Redis != nil {
		parseCache = cache.NewParseCache(opts.Redis, cfg.ParseCacheTTL)
	}
	var store service.ObjectStore
	if opts.Storage != nil {
		store = opts.Storage
	}

	tokens := service.NewTokenService(cfg.JWTSecret)
	parseService := service.NewParseService(parseCache, m, log.Named("parse"), cfg.MaxTextBytes)
	recipeService := service.NewRecipeService(db, parseService, m, log.Named("recipes"))
	imageService := service.NewStepImageService(db, recipeService, store, m, log.Named("images"))

	router := gin.New()
	router.Use(
		middleware.Recovery(log),
		middleware.RequestLogger(log.Named("http")),
		m.Middleware(),
		middleware.CORS(cfg.CORSOrigins),
	)

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := database.HealthCheck(ctx, db); err != nil {
			log.Warn("health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		api.HealthCheck(c)
	})
	router.GET("/metrics", gin.WrapH(m.Handler()))

	api.RegisterRoutes(router, api.Services{
		Parse:   parseService,
		Recipes: recipeService,
		Images:  imageService,
		Tokens:  tokens,
	}, api.Limits{
		MaxTextBytes: cfg.MaxTextBytes,
		MaxBatchSize: cfg.MaxBatchSize,
	}, middleware.NewParseRateLimiter(opts.Redis, cfg.ParseRateLimit, log.Named("ratelimit")))

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		db:     db,
		log:    log,
		Tokens: tokens,
	}
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.log.Info("starting server", zap.String("addr", s.http.Addr))

	errChan := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		return s.Stop(context.Background())
	case err := <-errChan:
		return err
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	s.log.Info("shutting down server")
	return s.http.Shutdown(ctx)
}
