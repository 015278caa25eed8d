package voicemodels

import (
	"encoding/base64"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vocalforge/voice-api/api/types"
	"github.com/vocalforge/voice-api/internal/services/voicemodels"
)

// CreateModelRequest is the JSON form of a model creation request. The
// audio sample arrives base64-encoded, or as a server-side path produced
// by a prior upload call.
type CreateModelRequest struct {
	Title       string `json:"title" binding:"required" example:"My Voice"`
	Description string `json:"description,omitempty" example:"Narration voice"`
	AudioData   string `json:"audio_data,omitempty"` // Base64-encoded sample
	AudioPath   string `json:"audio_path,omitempty"` // Path returned by the upload endpoint
}

// Create handles voice model creation
// @Summary      Create voice model
// @Description  Clone a voice from an audio sample. Accepts multipart form data with an audio file, or JSON with base64 audio. Blocks until the remote cloning run reaches a terminal status.
// @Tags         models
// @Accept       mpfd
// @Accept       json
// @Produce      json
// @Param        model body CreateModelRequest false "Model data (JSON variant)"
// @Success      201 {object} types.VoiceModelData "Created model"
// @Failure      400 {object} types.ErrorResponse "Invalid request"
// @Failure      502 {object} types.ErrorResponse "Remote voice service failure"
// @Failure      504 {object} types.ErrorResponse "Remote voice service timeout"
// @Router       /api/v1/models [post]
func Create(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		params, ok := parseCreateRequest(c, deps.MaxUploadBytes)
		if !ok {
			return // Error response already sent
		}

		model, err := deps.ModelService.CreateModel(c.Request.Context(), params)
		if err != nil {
			log.Printf("[ERROR] Failed to create voice model %q: %v", params.Title, err)
			types.SendError(c, err)
			return
		}

		types.SendCreated(c, types.FromVoiceModel(model))
	}
}

// parseCreateRequest accepts the multipart and JSON request variants
func parseCreateRequest(c *gin.Context, maxBytes int64) (voicemodels.CreateModelParams, bool) {
	var params voicemodels.CreateModelParams

	contentType := c.ContentType()
	if strings.HasPrefix(contentType, "multipart/form-data") {
		params.Title = c.PostForm("title")
		params.Description = c.PostForm("description")

		file, err := c.FormFile("audio")
		if err != nil {
			types.SendBadRequest(c, "Missing audio file")
			return params, false
		}
		if maxBytes > 0 && file.Size > maxBytes {
			types.SendBadRequest(c, "Audio file too large")
			return params, false
		}

		src, err := file.Open()
		if err != nil {
			types.SendInternalError(c, "Failed to read audio file")
			return params, false
		}
		defer src.Close()

		data, err := io.ReadAll(src)
		if err != nil {
			types.SendInternalError(c, "Failed to read audio file")
			return params, false
		}
		params.AudioData = data
		return params, true
	}

	var req CreateModelRequest
	if !types.BindJSONOrError(c, &req) {
		return params, false
	}

	params.Title = req.Title
	params.Description = req.Description
	params.SourceAudioPath = req.AudioPath
	if req.AudioData != "" {
		data, err := base64.StdEncoding.DecodeString(req.AudioData)
		if err != nil {
			types.SendBadRequest(c, "Invalid base64 audio data")
			return params, false
		}
		params.AudioData = data
	}
	return params, true
}

// List retrieves all voice models
// @Summary      List voice models
// @Description  Retrieve all voice models with usage counts, most recently created first
// @Tags         models
// @Produce      json
// @Success      200 {object} types.ModelsResponse "List of models"
// @Failure      500 {object} types.ErrorResponse "Internal server error"
// @Router       /api/v1/models [get]
func List(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		summaries, err := deps.ModelService.ListModels(c.Request.Context())
		if err != nil {
			log.Printf("[ERROR] Failed to list voice models: %v", err)
			types.SendError(c, err)
			return
		}

		models := types.FromModelSummaryList(summaries)
		types.SendSuccess(c, types.ModelsResponse{
			Models: models,
			Count:  len(models),
		})
	}
}

// GetByID retrieves a single voice model
// @Summary      Get voice model
// @Description  Retrieve a single voice model by id
// @Tags         models
// @Produce      json
// @Param        id path string true "Model ID"
// @Success      200 {object} types.VoiceModelData "Voice model"
// @Failure      404 {object} types.ErrorResponse "Model not found"
// @Router       /api/v1/models/{id} [get]
func GetByID(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		model, err := deps.ModelService.GetModel(c.Request.Context(), id)
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendSuccess(c, types.FromVoiceModel(model))
	}
}

// sourceContentType maps a stored sample's extension to its MIME type
func sourceContentType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return "audio/wav"
	case ".flac":
		return "audio/flac"
	case ".m4a", ".aac":
		return "audio/mp4"
	case ".ogg":
		return "audio/ogg"
	case ".webm":
		return "audio/webm"
	default:
		return "audio/mpeg"
	}
}

// GetAudio serves the uploaded sample a model was cloned from
// @Summary      Get model source audio
// @Description  Serve the audio sample the voice model was cloned from. Models created from inline base64 audio keep no sample and return 404.
// @Tags         models
// @Produce      audio/mpeg
// @Param        id path string true "Model ID"
// @Success      200 {file} binary "Audio data"
// @Failure      404 {object} types.ErrorResponse "Model or sample not found"
// @Router       /api/v1/models/{id}/audio [get]
func GetAudio(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		model, err := deps.ModelService.GetModel(c.Request.Context(), id)
		if err != nil {
			types.SendError(c, err)
			return
		}
		if model.SourceAudioPath == "" {
			types.SendNotFound(c, "Model has no stored source audio")
			return
		}

		reader, err := deps.UploadStore.Open(c.Request.Context(), model.SourceAudioPath)
		if err != nil {
			log.Printf("[ERROR] Missing source audio for model %s at %s: %v", id, model.SourceAudioPath, err)
			types.SendNotFound(c, "Source audio not found")
			return
		}
		defer reader.Close()

		c.Header("Content-Type", sourceContentType(model.SourceAudioPath))
		c.Header("Cache-Control", "public, max-age=31536000, immutable")

		if file, ok := reader.(io.ReadSeeker); ok {
			http.ServeContent(c.Writer, c.Request, "", model.UpdatedAt, file)
			return
		}

		c.Status(http.StatusOK)
		if _, err := io.Copy(c.Writer, reader); err != nil {
			log.Printf("[WARN] Failed to stream source audio for model %s: %v", id, err)
		}
	}
}

// Delete removes a voice model
// @Summary      Delete voice model
// @Description  Delete a voice model and its synthesis history. Remote deletion is best-effort; its outcome is reported in the response.
// @Tags         models
// @Produce      json
// @Param        id path string true "Model ID"
// @Success      200 {object} types.DeleteModelResponse "Deletion result"
// @Failure      404 {object} types.ErrorResponse "Model not found"
// @Router       /api/v1/models/{id} [delete]
func Delete(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		result, err := deps.ModelService.DeleteModel(c.Request.Context(), id)
		if err != nil {
			types.SendError(c, err)
			return
		}

		c.JSON(http.StatusOK, types.DeleteModelResponse{
			Status:            types.StatusOK,
			Message:           "Model deleted",
			RemoteDeleted:     result.RemoteDeleted,
			RemoteDeleteError: result.RemoteDeleteError,
		})
	}
}
