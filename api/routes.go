package api

import (
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/audiokit/audiofile/api/convert"
	"github.com/audiokit/audiofile/api/health"
	"github.com/audiokit/audiofile/api/info"
	"github.com/audiokit/audiofile/api/types"
	"github.com/audiokit/audiofile/api/version"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	if deps == nil {
		deps = &types.Dependencies{}
	}

	// Register public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	// API v1 routes
	v1 := engine.Group("/api/v1")

	// Register info routes with general rate limiting (10 req/s, burst of 20)
	infoGroup := v1.Group("/info")
	infoGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
	info.RegisterRoutes(infoGroup, deps)

	// Register convert routes with strict rate limiting (2 req/s, burst of 4);
	// conversions hold a decoder or an external tool for their whole runtime
	convertGroup := v1.Group("/convert")
	convertGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 2, 4))
	convert.RegisterRoutes(convertGroup, deps)

	return nil
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(404, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
