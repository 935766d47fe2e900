// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fianzas-manager/backend/internal/application/adapter"
	"github.com/fianzas-manager/backend/internal/domain/entity"
	"github.com/fianzas-manager/backend/internal/integration/persistence/model"
)

// materializationRepository implements the adapter.MaterializationRepository interface.
type materializationRepository struct {
	db *gorm.DB
}

// NewMaterializationRepository creates a new materialization repository instance.
func NewMaterializationRepository(db *gorm.DB) adapter.MaterializationRepository {
	return &materializationRepository{
		db: db,
	}
}

// Create persists a batch record, including its partial-failure fields.
func (r *materializationRepository) Create(ctx context.Context, batch *entity.MaterializationBatch) error {
	batchModel := model.MaterializationBatchFromEntity(batch)
	result := r.db.WithContext(ctx).Create(batchModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByUser retrieves a user's batch records, newest first.
func (r *materializationRepository) FindByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.MaterializationBatch, error) {
	var batchModels []model.MaterializationBatchModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&batchModels)
	if result.Error != nil {
		return nil, result.Error
	}

	batches := make([]*entity.MaterializationBatch, 0, len(batchModels))
	for i := range batchModels {
		batches = append(batches, batchModels[i].ToEntity())
	}
	return batches, nil
}
