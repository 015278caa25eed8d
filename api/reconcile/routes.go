package reconcile

import (
	"github.com/gin-gonic/gin"

	"github.com/vocalforge/voice-api/api/types"
)

// RegisterRoutes registers debug reconciliation routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("/remote-models", GetRemoteModels(deps))
}
