// Package api exposes the parser and the stored recipes over HTTP.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/alchemorsel-import/backend/internal/middleware"
	"github.com/pageza/alchemorsel-import/backend/internal/service"
)

// Limits bounds request sizes.
type Limits struct {
	MaxTextBytes     int
	MaxBatchSize     int
	BatchConcurrency int
	MaxImageBytes    int64
}

// Services are the dependencies of the HTTP handlers.
type Services struct {
	Parse   service.IParseService
	Recipes service.IRecipeService
	Images  service.IStepImageService
	Tokens  middleware.TokenValidator
}

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RegisterRoutes registers all API routes under /api/v1. parseLimit guards
// the public parse endpoints.
func RegisterRoutes(router *gin.Engine, svc Services, limits Limits, parseLimit *middleware.RateLimiter) {
	v1 := router.Group("/api/v1")

	NewParseHandler(svc.Parse, limits).RegisterRoutes(v1, parseLimit.Middleware(middleware.ByClientIP))
	NewRecipeHandler(svc.Recipes, svc.Images, limits).RegisterRoutes(v1, middleware.AuthMiddleware(svc.Tokens))
}
