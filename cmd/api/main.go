package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pageza/alchemorsel-import/backend/config"
	"github.com/pageza/alchemorsel-import/backend/internal/database"
	"github.com/pageza/alchemorsel-import/backend/internal/logger"
	"github.com/pageza/alchemorsel-import/backend/internal/metrics"
	"github.com/pageza/alchemorsel-import/backend/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "recipe-import",
		Environment: string(cfg.Environment),
	})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg, log.Named("database"))
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}

	redisClient, err := database.NewRedisClient(cfg, log.Named("redis"))
	if err != nil {
		// The parse cache and rate limiter run without redis.
		log.Warn("redis unavailable, continuing without cache", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	storage, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		return err
	}
	if storage == nil {
		log.Info("S3 bucket not configured, step image uploads disabled")
	}

	srv := server.New(cfg, db, server.Options{
		Redis:   redisClient,
		Storage: storage,
		Metrics: metrics.New(),
		Logger:  log,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(gctx)
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	log.Info("server stopped")
	return nil
}
