package voicemodels

import (
	"context"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/vocalforge/voice-api/internal/models"
	"github.com/vocalforge/voice-api/internal/services/voiceclone"
	"github.com/vocalforge/voice-api/pkg/audiometa"
	apperrors "github.com/vocalforge/voice-api/pkg/errors"
)

// ServiceImpl implements the Service interface
type ServiceImpl struct {
	repository  Repository
	voiceClient voiceclone.Client
	staging     Stager
}

// NewService creates a new voice model lifecycle service
func NewService(repository Repository, voiceClient voiceclone.Client, staging Stager) Service {
	return &ServiceImpl{
		repository:  repository,
		voiceClient: voiceClient,
		staging:     staging,
	}
}

// CreateModel inserts a provisional row, clones the voice remotely, and
// moves the row to a terminal status. The remote call and both status
// updates run on a context detached from the caller's cancellation so an
// abandoned request still lands the row in ready or failed.
func (s *ServiceImpl) CreateModel(ctx context.Context, params CreateModelParams) (*models.VoiceModel, error) {
	if params.Title == "" {
		return nil, apperrors.MissingFieldError("title")
	}
	if len(params.AudioData) == 0 && params.SourceAudioPath == "" {
		return nil, apperrors.MissingFieldError("audio")
	}

	audio := params.AudioData
	if len(audio) == 0 {
		data, err := os.ReadFile(params.SourceAudioPath)
		if err != nil {
			return nil, apperrors.StorageError("read source audio", err)
		}
		audio = data
	}

	model := &models.VoiceModel{
		ID:              uuid.New().String(),
		Title:           params.Title,
		Description:     params.Description,
		Status:          models.StatusCreating,
		SourceAudioPath: params.SourceAudioPath,
	}
	s.applyAudioMetadata(model, params, int64(len(audio)))

	ctx = context.WithoutCancel(ctx)

	if err := s.repository.CreateModel(ctx, model); err != nil {
		return nil, err
	}

	remoteModelID, remoteErr := s.cloneRemote(ctx, params, audio)
	if remoteErr != nil {
		if err := s.repository.SetModelFailed(ctx, model.ID); err != nil {
			log.Printf("[ERROR] Failed to mark voice model %s as failed: %v", model.ID, err)
		}
		if appErr, ok := remoteErr.(*apperrors.AppError); ok {
			return nil, appErr.WithDetail("model_id", model.ID)
		}
		return nil, remoteErr
	}

	if err := s.repository.SetModelReady(ctx, model.ID, remoteModelID); err != nil {
		return nil, err
	}

	model.Status = models.StatusReady
	model.RemoteModelID = remoteModelID
	return model, nil
}

// cloneRemote runs the remote creation call. Pass-through audio is staged
// as a scoped temp file which is removed whether or not the call succeeds;
// audio already persisted locally needs no staging.
func (s *ServiceImpl) cloneRemote(ctx context.Context, params CreateModelParams, audio []byte) (string, error) {
	if params.SourceAudioPath != "" {
		return s.voiceClient.CreateModel(ctx, params.Title, params.Description, audio)
	}

	var remoteModelID string
	err := s.staging.WithTemporaryFile(audio, ".audio", func(path string) error {
		staged, err := os.ReadFile(path)
		if err != nil {
			return apperrors.StorageError("read staged audio", err)
		}
		remoteModelID, err = s.voiceClient.CreateModel(ctx, params.Title, params.Description, staged)
		return err
	})
	return remoteModelID, err
}

// applyAudioMetadata fills in best-effort duration and size estimates.
// Estimation failure never aborts creation.
func (s *ServiceImpl) applyAudioMetadata(model *models.VoiceModel, params CreateModelParams, size int64) {
	if params.SourceAudioPath != "" {
		meta, err := audiometa.Estimate(params.SourceAudioPath)
		if err != nil {
			log.Printf("[WARN] Failed to estimate audio metadata for %s: %v", params.SourceAudioPath, err)
			model.AudioSize = size
			return
		}
		model.AudioDuration = meta.DurationSeconds
		model.AudioSize = meta.SizeBytes
		return
	}

	// Inline payloads carry no filename, so the format is unknown
	meta := audiometa.EstimateBytes(size, "")
	model.AudioDuration = meta.DurationSeconds
	model.AudioSize = meta.SizeBytes
}

// GetModel retrieves a voice model by id
func (s *ServiceImpl) GetModel(ctx context.Context, id string) (*models.VoiceModel, error) {
	return s.repository.GetModelByID(ctx, id)
}

// ListModels retrieves all models with usage data, most recent first
func (s *ServiceImpl) ListModels(ctx context.Context) ([]ModelSummary, error) {
	return s.repository.ListModelSummaries(ctx)
}

// DeleteModel removes a model and its history. Local source audio removal
// and remote deletion are both best-effort: their failures are logged and
// surfaced in the result, never allowed to block the row deletion.
func (s *ServiceImpl) DeleteModel(ctx context.Context, id string) (*DeleteResult, error) {
	model, err := s.repository.GetModelByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result := &DeleteResult{}

	if model.SourceAudioPath != "" {
		if err := os.Remove(model.SourceAudioPath); err != nil && !os.IsNotExist(err) {
			log.Printf("[WARN] Failed to delete source audio %s: %v", model.SourceAudioPath, err)
		}
	}

	if model.RemoteModelID != "" {
		if err := s.voiceClient.DeleteModel(ctx, model.RemoteModelID); err != nil {
			// Local deletion proceeds; the divergence shows up in the
			// reconciliation report until repaired out-of-band.
			log.Printf("[WARN] Failed to delete remote model %s: %v", model.RemoteModelID, err)
			result.RemoteDeleteError = err.Error()
		} else {
			result.RemoteDeleted = true
		}
	}

	if err := s.repository.DeleteModel(ctx, id); err != nil {
		return nil, err
	}

	return result, nil
}
