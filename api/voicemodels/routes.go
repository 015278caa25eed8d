package voicemodels

import (
	"github.com/gin-gonic/gin"

	"github.com/vocalforge/voice-api/api/types"
)

// RegisterRoutes registers voice model routes. Creation gets its own
// rate-limit middleware since each call triggers a remote cloning run.
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies, readMiddleware, createMiddleware gin.HandlerFunc) {
	router.POST("", createMiddleware, Create(deps))
	router.GET("", readMiddleware, List(deps))
	router.GET("/:id", readMiddleware, GetByID(deps))
	router.GET("/:id/audio", readMiddleware, GetAudio(deps))
	router.DELETE("/:id", readMiddleware, Delete(deps))
}
