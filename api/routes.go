package api

import (
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/vocalforge/voice-api/api/audio"
	"github.com/vocalforge/voice-api/api/health"
	"github.com/vocalforge/voice-api/api/reconcile"
	"github.com/vocalforge/voice-api/api/tts"
	"github.com/vocalforge/voice-api/api/types"
	"github.com/vocalforge/voice-api/api/uploads"
	"github.com/vocalforge/voice-api/api/version"
	"github.com/vocalforge/voice-api/api/voicemodels"
	_ "github.com/vocalforge/voice-api/docs/swagger"
	"github.com/vocalforge/voice-api/pkg/config"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	// Register public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine)

	// Register Swagger documentation route
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(301, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	if deps == nil {
		deps = &types.Dependencies{}
	}

	// API v1 routes
	v1 := engine.Group("/api/v1")

	// General read limit, overridable via config
	readRPS, readBurst := 10, 20
	if cfg, err := config.GetConfig(); err == nil && cfg.RateLimiting.Enabled {
		if cfg.RateLimiting.RPS > 0 {
			readRPS = cfg.RateLimiting.RPS
		}
		if cfg.RateLimiting.Burst > 0 {
			readBurst = cfg.RateLimiting.Burst
		}
	}

	// Model routes: creation triggers a remote cloning run, so it gets a
	// tight limit (1 req/s, burst of 2); reads get the general limit
	modelGroup := v1.Group("/models")
	readMiddleware := PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, readRPS, readBurst)
	createMiddleware := PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 1, 2)
	voicemodels.RegisterRoutes(modelGroup, deps, readMiddleware, createMiddleware)

	// Synthesis routes with dedicated rate limiting (5 req/s, burst of 10)
	ttsGroup := v1.Group("/tts")
	ttsGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 5, 10))
	tts.RegisterRoutes(ttsGroup, deps)

	// Audio playback with higher limits to allow seeking/scrubbing (20 req/s, burst of 30)
	audioGroup := v1.Group("/audio")
	audioGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 20, 30))
	audio.RegisterRoutes(audioGroup, deps)

	// Sample uploads share the creation limit
	uploadGroup := v1.Group("/uploads")
	uploadGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 1, 2))
	uploads.RegisterRoutes(uploadGroup, deps)

	// Debug routes with general rate limiting (10 req/s, burst of 20)
	debugGroup := v1.Group("/debug")
	debugGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, readRPS, readBurst))
	reconcile.RegisterRoutes(debugGroup, deps)

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
