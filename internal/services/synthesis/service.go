package synthesis

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/vocalforge/voice-api/internal/models"
	"github.com/vocalforge/voice-api/internal/services/storage"
	"github.com/vocalforge/voice-api/internal/services/voiceclone"
	apperrors "github.com/vocalforge/voice-api/pkg/errors"
)

// ServiceImpl implements the Service interface
type ServiceImpl struct {
	repository  Repository
	resolver    ModelResolver
	voiceClient voiceclone.Client
	audioStore  storage.Backend
}

// NewService creates a new synthesis service
func NewService(repository Repository, resolver ModelResolver, voiceClient voiceclone.Client, audioStore storage.Backend) Service {
	return &ServiceImpl{
		repository:  repository,
		resolver:    resolver,
		voiceClient: voiceClient,
		audioStore:  audioStore,
	}
}

// Synthesize generates speech for text against a ready voice model,
// persists the audio, and records the generation in history. A model
// outside the ready status fails the request before any remote call
// and writes nothing.
func (s *ServiceImpl) Synthesize(ctx context.Context, params SynthesizeParams) (*models.SynthesisRecord, error) {
	if params.ModelID == "" {
		return nil, apperrors.MissingFieldError("model_id")
	}
	if params.Text == "" {
		return nil, apperrors.MissingFieldError("text")
	}
	format := params.Format
	if format == "" {
		format = models.FormatMP3
	}
	if !models.ValidFormat(format) {
		return nil, apperrors.ValidationError("format",
			fmt.Sprintf("unsupported format '%s'", format))
	}

	model, err := s.resolver.GetModelByID(ctx, params.ModelID)
	if err != nil {
		return nil, err
	}
	// A ready row without a remote id is corrupt; never let it reach the
	// provider with an empty reference
	if model.Status != models.StatusReady || model.RemoteModelID == "" {
		return nil, apperrors.ModelNotReadyError(model.ID, model.Status)
	}

	audio, err := s.voiceClient.Synthesize(ctx, params.Text, model.RemoteModelID, format)
	if err != nil {
		return nil, err
	}

	record := &models.SynthesisRecord{
		ID:          uuid.New().String(),
		ModelID:     model.ID,
		Text:        params.Text,
		AudioFormat: format,
	}

	filename := fmt.Sprintf("tts_%s.%s", record.ID, format)
	path, err := s.audioStore.Save(ctx, bytes.NewReader(audio), filename)
	if err != nil {
		return nil, apperrors.StorageError("save synthesized audio", err)
	}
	record.AudioPath = path

	if err := s.repository.CreateRecord(ctx, record); err != nil {
		// An unrecorded blob is unreachable, drop it
		if removeErr := s.audioStore.Delete(ctx, path); removeErr != nil {
			log.Printf("[WARN] Failed to remove orphaned audio %s: %v", path, removeErr)
		}
		return nil, err
	}

	return record, nil
}

// GetRecord retrieves a synthesis record by id
func (s *ServiceImpl) GetRecord(ctx context.Context, id string) (*models.SynthesisRecord, error) {
	return s.repository.GetRecordByID(ctx, id)
}

// ListRecordsByModel retrieves a model's synthesis history
func (s *ServiceImpl) ListRecordsByModel(ctx context.Context, modelID string) ([]models.SynthesisRecord, error) {
	return s.repository.ListRecordsByModel(ctx, modelID)
}
