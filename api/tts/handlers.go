package tts

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/vocalforge/voice-api/api/types"
	"github.com/vocalforge/voice-api/internal/services/synthesis"
)

// SynthesizeRequest represents a text-to-speech request
type SynthesizeRequest struct {
	ModelID string `json:"model_id" binding:"required" example:"4a9f2c1e"`
	Text    string `json:"text" binding:"required" example:"Hello there"`
	Format  string `json:"format,omitempty" example:"mp3"` // mp3, wav, or opus
}

// Synthesize handles text-to-speech requests
// @Summary      Synthesize speech
// @Description  Generate speech for text using a ready voice model. The generated audio is persisted and recorded in the model's history.
// @Tags         tts
// @Accept       json
// @Produce      json
// @Param        request body SynthesizeRequest true "Synthesis request"
// @Success      201 {object} types.SynthesisData "Synthesis record with playback URL"
// @Failure      400 {object} types.ErrorResponse "Invalid request"
// @Failure      404 {object} types.ErrorResponse "Model not found"
// @Failure      409 {object} types.ErrorResponse "Model not ready"
// @Failure      504 {object} types.ErrorResponse "Remote voice service timeout"
// @Router       /api/v1/tts [post]
func Synthesize(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SynthesizeRequest
		if !types.BindJSONOrError(c, &req) {
			return // Error response already sent
		}

		record, err := deps.SynthesisService.Synthesize(c.Request.Context(), synthesis.SynthesizeParams{
			ModelID: req.ModelID,
			Text:    req.Text,
			Format:  req.Format,
		})
		if err != nil {
			log.Printf("[ERROR] Synthesis failed for model %s: %v", req.ModelID, err)
			types.SendError(c, err)
			return
		}

		types.SendCreated(c, types.FromSynthesisRecord(record))
	}
}

// History retrieves a model's synthesis history
// @Summary      Get synthesis history
// @Description  Retrieve the synthesis history of a voice model, most recent first
// @Tags         tts
// @Produce      json
// @Param        id path string true "Model ID"
// @Success      200 {object} object{history=[]types.SynthesisData} "Synthesis history"
// @Failure      500 {object} types.ErrorResponse "Internal server error"
// @Router       /api/v1/tts/history/{id} [get]
func History(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		modelID := c.Param("id")

		records, err := deps.SynthesisService.ListRecordsByModel(c.Request.Context(), modelID)
		if err != nil {
			log.Printf("[ERROR] Failed to list synthesis history for model %s: %v", modelID, err)
			types.SendError(c, err)
			return
		}

		history := make([]types.SynthesisData, 0, len(records))
		for i := range records {
			history = append(history, *types.FromSynthesisRecord(&records[i]))
		}
		c.JSON(200, gin.H{"history": history})
	}
}
