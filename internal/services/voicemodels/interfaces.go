package voicemodels

import (
	"context"
	"time"

	"github.com/vocalforge/voice-api/internal/models"
)

// ModelSummary is a VoiceModel augmented with usage data derived from its
// synthesis history
type ModelSummary struct {
	models.VoiceModel
	UsageCount int64      `json:"usage_count"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
}

// CreateModelParams carries the inputs for a model creation request.
// Exactly one of AudioData or SourceAudioPath must be set: AudioData for
// pass-through uploads that are never persisted locally, SourceAudioPath
// for samples already staged on disk.
type CreateModelParams struct {
	Title           string
	Description     string
	AudioData       []byte
	SourceAudioPath string
}

// DeleteResult reports the side effects of a model deletion. Remote
// deletion is best-effort: the local row is always removed, and a failed
// remote delete is surfaced here instead of failing the call.
type DeleteResult struct {
	RemoteDeleted     bool   `json:"remote_deleted"`
	RemoteDeleteError string `json:"remote_delete_error,omitempty"`
}

// Repository defines the interface for voice model data access
type Repository interface {
	CreateModel(ctx context.Context, model *models.VoiceModel) error
	GetModelByID(ctx context.Context, id string) (*models.VoiceModel, error)
	ListModels(ctx context.Context) ([]models.VoiceModel, error)
	ListModelSummaries(ctx context.Context) ([]ModelSummary, error)
	SetModelReady(ctx context.Context, id, remoteModelID string) error
	SetModelFailed(ctx context.Context, id string) error
	DeleteModel(ctx context.Context, id string) error
}

// Stager stages in-memory audio as a scoped temporary file
type Stager interface {
	WithTemporaryFile(data []byte, ext string, fn func(path string) error) error
}

// Service defines the interface for the voice model lifecycle
type Service interface {
	// CreateModel drives a model from intake to a terminal status, exactly
	// once per call. The returned model is ready on success; on remote
	// failure the provisional row is retained as failed and the remote
	// error is returned alongside a nil model.
	CreateModel(ctx context.Context, params CreateModelParams) (*models.VoiceModel, error)

	GetModel(ctx context.Context, id string) (*models.VoiceModel, error)
	ListModels(ctx context.Context) ([]ModelSummary, error)
	DeleteModel(ctx context.Context, id string) (*DeleteResult, error)
}
