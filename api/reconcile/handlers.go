package reconcile

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/vocalforge/voice-api/api/types"
)

// GetRemoteModels handles remote consistency report requests
// @Summary      Compare local and remote models
// @Description  Produce a point-in-time consistency report between local metadata and the remote provider's model list. Diagnostic only; repairs nothing.
// @Tags         debug
// @Produce      json
// @Success      200 {object} reconcile.Report "Consistency report"
// @Failure      502 {object} types.ErrorResponse "Remote voice service failure"
// @Router       /api/v1/debug/remote-models [get]
func GetRemoteModels(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, err := deps.ReconcileService.Analyze(c.Request.Context())
		if err != nil {
			log.Printf("[ERROR] Reconciliation analysis failed: %v", err)
			types.SendError(c, err)
			return
		}

		types.SendSuccess(c, report)
	}
}
