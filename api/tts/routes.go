package tts

import (
	"github.com/gin-gonic/gin"

	"github.com/vocalforge/voice-api/api/types"
)

// RegisterRoutes registers synthesis routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("", Synthesize(deps))
	router.GET("/history/:id", History(deps))
}
