package uploads

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vocalforge/voice-api/api/types"
	"github.com/vocalforge/voice-api/pkg/audiometa"
)

// allowedExtensions are the audio sample formats accepted for cloning
var allowedExtensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".flac": true,
	".m4a":  true,
	".aac":  true,
	".ogg":  true,
	".webm": true,
}

// allowedMIMETypes are the declared content types accepted for samples
var allowedMIMETypes = map[string]bool{
	"audio/mpeg":   true,
	"audio/mp3":    true,
	"audio/wav":    true,
	"audio/wave":   true,
	"audio/x-wav":  true,
	"audio/flac":   true,
	"audio/x-flac": true,
	"audio/mp4":    true,
	"audio/x-m4a":  true,
	"audio/aac":    true,
	"audio/ogg":    true,
	"audio/webm":   true,
	"video/webm":   true,
}

// allowedMIME accepts declared audio types. Clients that declare no
// usable type fall through to the extension check alone.
func allowedMIME(header string) bool {
	mediaType := strings.ToLower(strings.TrimSpace(header))
	if i := strings.Index(mediaType, ";"); i >= 0 {
		mediaType = strings.TrimSpace(mediaType[:i])
	}
	if mediaType == "" || mediaType == "application/octet-stream" {
		return true
	}
	return allowedMIMETypes[mediaType]
}

// Create handles audio sample uploads
// @Summary      Upload audio sample
// @Description  Store an audio sample for later model creation. The returned path can be passed as audio_path when creating a model.
// @Tags         uploads
// @Accept       mpfd
// @Produce      json
// @Param        audio formData file true "Audio sample"
// @Success      201 {object} types.UploadResponse "Stored sample"
// @Failure      400 {object} types.ErrorResponse "Invalid or oversized file"
// @Failure      500 {object} types.ErrorResponse "Storage failure"
// @Router       /api/v1/uploads [post]
func Create(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("audio")
		if err != nil {
			types.SendBadRequest(c, "Missing audio file")
			return
		}

		if deps.MaxUploadBytes > 0 && file.Size > deps.MaxUploadBytes {
			types.SendBadRequest(c, "Audio file too large")
			return
		}

		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedExtensions[ext] || !allowedMIME(file.Header.Get("Content-Type")) {
			types.SendBadRequest(c, "Unsupported audio format")
			return
		}

		src, err := file.Open()
		if err != nil {
			types.SendInternalError(c, "Failed to read uploaded file")
			return
		}
		defer src.Close()

		filename := uuid.New().String() + ext
		path, err := deps.UploadStore.Save(c.Request.Context(), src, filename)
		if err != nil {
			log.Printf("[ERROR] Failed to store uploaded sample %s: %v", file.Filename, err)
			types.SendInternalError(c, "Failed to store uploaded file")
			return
		}

		meta := audiometa.EstimateBytes(file.Size, ext)
		types.SendCreated(c, types.UploadResponse{
			Status:   types.StatusOK,
			Path:     path,
			Filename: filename,
			Size:     file.Size,
			Duration: meta.DurationSeconds,
		})
	}
}
