package synthesis

import (
	"context"

	"github.com/vocalforge/voice-api/internal/models"
)

// SynthesizeParams carries one text-to-speech request
type SynthesizeParams struct {
	ModelID string
	Text    string
	Format  string
}

// Repository defines the interface for synthesis history data access
type Repository interface {
	CreateRecord(ctx context.Context, record *models.SynthesisRecord) error
	GetRecordByID(ctx context.Context, id string) (*models.SynthesisRecord, error)
	ListRecordsByModel(ctx context.Context, modelID string) ([]models.SynthesisRecord, error)
}

// ModelResolver looks up the voice model a synthesis request targets
type ModelResolver interface {
	GetModelByID(ctx context.Context, id string) (*models.VoiceModel, error)
}

// Service defines the interface for synthesis business logic
type Service interface {
	Synthesize(ctx context.Context, params SynthesizeParams) (*models.SynthesisRecord, error)
	GetRecord(ctx context.Context, id string) (*models.SynthesisRecord, error)
	ListRecordsByModel(ctx context.Context, modelID string) ([]models.SynthesisRecord, error)
}
