package uploads

import (
	"github.com/gin-gonic/gin"

	"github.com/vocalforge/voice-api/api/types"
)

// RegisterRoutes registers upload routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("", Create(deps))
}
