package voicemodels

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/vocalforge/voice-api/internal/models"
	apperrors "github.com/vocalforge/voice-api/pkg/errors"
)

// RepositoryImpl implements the Repository interface
type RepositoryImpl struct {
	db *gorm.DB
}

// NewRepository creates a new voice model repository
func NewRepository(db *gorm.DB) Repository {
	return &RepositoryImpl{db: db}
}

// CreateModel inserts a new voice model row
func (r *RepositoryImpl) CreateModel(ctx context.Context, model *models.VoiceModel) error {
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return apperrors.DatabaseError("insert", err)
	}
	return nil
}

// GetModelByID retrieves a voice model by its ID
func (r *RepositoryImpl) GetModelByID(ctx context.Context, id string) (*models.VoiceModel, error) {
	var model models.VoiceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("voice model", id)
		}
		return nil, apperrors.DatabaseError("select", err)
	}
	return &model, nil
}

// ListModels retrieves all voice models, most recent first
func (r *RepositoryImpl) ListModels(ctx context.Context) ([]models.VoiceModel, error) {
	var rows []models.VoiceModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, apperrors.DatabaseError("select", err)
	}
	return rows, nil
}

// usageRow is the aggregate shape of per-model synthesis history.
// MAX() strips the column's declared type, so LastUsedAt arrives as a
// backend-formatted string and is coerced here, at the storage
// boundary, not downstream.
type usageRow struct {
	ModelID    string
	UsageCount int64
	LastUsedAt string
}

// timestampLayouts covers the textual timestamp forms the supported
// backends produce for aggregated datetime columns.
var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999-07",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
}

func parseTimestamp(value string) *time.Time {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return &ts
		}
	}
	log.Printf("[WARN] Unparseable aggregate timestamp %q", value)
	return nil
}

// ListModelSummaries retrieves all voice models with derived usage data,
// most recent first
func (r *RepositoryImpl) ListModelSummaries(ctx context.Context) ([]ModelSummary, error) {
	rows, err := r.ListModels(ctx)
	if err != nil {
		return nil, err
	}

	var usage []usageRow
	if err := r.db.WithContext(ctx).
		Model(&models.SynthesisRecord{}).
		Select("model_id, COUNT(*) AS usage_count, MAX(created_at) AS last_used_at").
		Group("model_id").
		Find(&usage).Error; err != nil {
		return nil, apperrors.DatabaseError("select", err)
	}

	usageByModel := make(map[string]usageRow, len(usage))
	for _, u := range usage {
		usageByModel[u.ModelID] = u
	}

	summaries := make([]ModelSummary, 0, len(rows))
	for _, row := range rows {
		summary := ModelSummary{VoiceModel: row}
		if u, ok := usageByModel[row.ID]; ok {
			summary.UsageCount = u.UsageCount
			summary.LastUsedAt = parseTimestamp(u.LastUsedAt)
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// SetModelReady transitions a model out of creating into ready with its
// remote id. The status guard keeps the transition one-way.
func (r *RepositoryImpl) SetModelReady(ctx context.Context, id, remoteModelID string) error {
	return r.transition(ctx, id, map[string]any{
		"status":          models.StatusReady,
		"remote_model_id": remoteModelID,
	})
}

// SetModelFailed transitions a model out of creating into failed
func (r *RepositoryImpl) SetModelFailed(ctx context.Context, id string) error {
	return r.transition(ctx, id, map[string]any{
		"status": models.StatusFailed,
	})
}

func (r *RepositoryImpl) transition(ctx context.Context, id string, fields map[string]any) error {
	result := r.db.WithContext(ctx).
		Model(&models.VoiceModel{}).
		Where("id = ? AND status = ?", id, models.StatusCreating).
		Updates(fields)
	if result.Error != nil {
		return apperrors.DatabaseError("update", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.Newf(apperrors.ErrCodeConflict,
			"voice model %s is not in %s status", id, models.StatusCreating)
	}
	return nil
}

// DeleteModel removes a voice model row; associated history rows are
// removed by the database cascade
func (r *RepositoryImpl) DeleteModel(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.VoiceModel{}, "id = ?", id)
	if result.Error != nil {
		return apperrors.DatabaseError("delete", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("voice model", id)
	}
	return nil
}
