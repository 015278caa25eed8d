package types

import (
	"time"

	"github.com/vocalforge/voice-api/internal/models"
	"github.com/vocalforge/voice-api/internal/services/voicemodels"
)

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// ErrorResponse for detailed error information
type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`   // Error code/type
	Details interface{} `json:"details,omitempty"` // Additional error details
}

// VoiceModelData represents a voice model in API responses
type VoiceModelData struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	RemoteModelID string     `json:"remote_model_id,omitempty"`
	Status        string     `json:"status"`
	AudioDuration int        `json:"audio_duration,omitempty"` // Seconds
	AudioSize     int64      `json:"audio_size,omitempty"`     // Bytes
	UsageCount    int64      `json:"usage_count"`
	LastUsedAt    *time.Time `json:"last_used_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ModelsResponse for model list endpoints
type ModelsResponse struct {
	Models []VoiceModelData `json:"models"`
	Count  int              `json:"count"`
}

// DeleteModelResponse reports a model deletion, including the outcome of
// the best-effort remote deletion
type DeleteModelResponse struct {
	Status            string `json:"status"`
	Message           string `json:"message"`
	RemoteDeleted     bool   `json:"remote_deleted"`
	RemoteDeleteError string `json:"remote_delete_error,omitempty"`
}

// SynthesisData represents a synthesis history record in API responses
type SynthesisData struct {
	ID          string    `json:"id"`
	ModelID     string    `json:"model_id"`
	Text        string    `json:"text"`
	AudioFormat string    `json:"audio_format"`
	AudioURL    string    `json:"audio_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// UploadResponse for sample upload endpoints
type UploadResponse struct {
	Status   string `json:"status"`
	Path     string `json:"path"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Duration int    `json:"duration,omitempty"` // Estimated seconds
}

// FromVoiceModel transforms a voice model row to its API shape
func FromVoiceModel(m *models.VoiceModel) *VoiceModelData {
	if m == nil {
		return nil
	}
	return &VoiceModelData{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description,
		RemoteModelID: m.RemoteModelID,
		Status:        m.Status,
		AudioDuration: m.AudioDuration,
		AudioSize:     m.AudioSize,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// FromModelSummary transforms a voice model summary to its API shape
func FromModelSummary(s *voicemodels.ModelSummary) *VoiceModelData {
	if s == nil {
		return nil
	}
	data := FromVoiceModel(&s.VoiceModel)
	data.UsageCount = s.UsageCount
	data.LastUsedAt = s.LastUsedAt
	return data
}

// FromModelSummaryList transforms a list of voice model summaries
func FromModelSummaryList(summaries []voicemodels.ModelSummary) []VoiceModelData {
	result := make([]VoiceModelData, 0, len(summaries))
	for i := range summaries {
		result = append(result, *FromModelSummary(&summaries[i]))
	}
	return result
}

// FromSynthesisRecord transforms a synthesis record to its API shape.
// The stored path stays internal; clients get a playback URL.
func FromSynthesisRecord(r *models.SynthesisRecord) *SynthesisData {
	if r == nil {
		return nil
	}
	return &SynthesisData{
		ID:          r.ID,
		ModelID:     r.ModelID,
		Text:        r.Text,
		AudioFormat: r.AudioFormat,
		AudioURL:    "/api/v1/audio/" + r.ID,
		CreatedAt:   r.CreatedAt,
	}
}
