package audio

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vocalforge/voice-api/api/types"
	"github.com/vocalforge/voice-api/internal/models"
)

// contentTypeFor maps a synthesis output format to its MIME type
func contentTypeFor(format string) string {
	switch format {
	case models.FormatWAV:
		return "audio/wav"
	case models.FormatOpus:
		return "audio/ogg"
	default:
		return "audio/mpeg"
	}
}

// Get serves a generated audio asset
// @Summary      Get generated audio
// @Description  Serve the audio generated by a synthesis call. Generated assets are immutable, so responses carry a long-lived cache header.
// @Tags         audio
// @Produce      audio/mpeg
// @Param        id path string true "Synthesis record ID"
// @Success      200 {file} binary "Audio data"
// @Failure      404 {object} types.ErrorResponse "Record or audio not found"
// @Router       /api/v1/audio/{id} [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		record, err := deps.SynthesisService.GetRecord(c.Request.Context(), id)
		if err != nil {
			types.SendError(c, err)
			return
		}

		reader, err := deps.AudioStore.Open(c.Request.Context(), record.AudioPath)
		if err != nil {
			// History row exists but the blob is gone
			log.Printf("[ERROR] Missing audio blob for record %s at %s: %v", id, record.AudioPath, err)
			types.SendNotFound(c, "Audio not found")
			return
		}
		defer reader.Close()

		c.Header("Content-Type", contentTypeFor(record.AudioFormat))
		c.Header("Cache-Control", "public, max-age=31536000, immutable")

		// Serve through http.ServeContent when the backend hands us a
		// seekable file, so Range requests work for scrubbing
		if file, ok := reader.(io.ReadSeeker); ok {
			http.ServeContent(c.Writer, c.Request, "", record.CreatedAt, file)
			return
		}

		c.Status(http.StatusOK)
		if _, err := io.Copy(c.Writer, reader); err != nil {
			log.Printf("[WARN] Failed to stream audio for record %s: %v", id, err)
		}
	}
}
