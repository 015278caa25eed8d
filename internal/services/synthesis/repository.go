package synthesis

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/vocalforge/voice-api/internal/models"
	apperrors "github.com/vocalforge/voice-api/pkg/errors"
)

// RepositoryImpl implements the Repository interface
type RepositoryImpl struct {
	db *gorm.DB
}

// NewRepository creates a new synthesis history repository
func NewRepository(db *gorm.DB) Repository {
	return &RepositoryImpl{db: db}
}

// CreateRecord inserts a new synthesis history row
func (r *RepositoryImpl) CreateRecord(ctx context.Context, record *models.SynthesisRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return apperrors.DatabaseError("insert", err)
	}
	return nil
}

// GetRecordByID retrieves a synthesis record by its ID
func (r *RepositoryImpl) GetRecordByID(ctx context.Context, id string) (*models.SynthesisRecord, error) {
	var record models.SynthesisRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("synthesis record", id)
		}
		return nil, apperrors.DatabaseError("select", err)
	}
	return &record, nil
}

// ListRecordsByModel retrieves a model's synthesis history, most recent first
func (r *RepositoryImpl) ListRecordsByModel(ctx context.Context, modelID string) ([]models.SynthesisRecord, error) {
	var rows []models.SynthesisRecord
	if err := r.db.WithContext(ctx).
		Where("model_id = ?", modelID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, apperrors.DatabaseError("select", err)
	}
	return rows, nil
}
