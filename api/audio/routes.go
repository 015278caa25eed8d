package audio

import (
	"github.com/gin-gonic/gin"

	"github.com/vocalforge/voice-api/api/types"
)

// RegisterRoutes registers audio playback routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("/:id", Get(deps))
}
