// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/fianzas-manager/backend/internal/domain/entity"
)

// MaterializationBatchModel represents the materialization_batches table.
// TransactionIDs is a uuid[] column listing what the run actually persisted.
type MaterializationBatchModel struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;index"`
	RequestedCount int            `gorm:"not null"`
	SucceededCount int            `gorm:"not null"`
	TransactionIDs pq.StringArray `gorm:"type:uuid[]"`
	FailureReason  string         `gorm:"type:text"`
	CreatedAt      time.Time      `gorm:"not null;index"`
}

// TableName returns the table name for the MaterializationBatchModel.
func (MaterializationBatchModel) TableName() string {
	return "materialization_batches"
}

// ToEntity converts a MaterializationBatchModel to a domain entity. Array
// elements that fail to parse as uuids are skipped.
func (m *MaterializationBatchModel) ToEntity() *entity.MaterializationBatch {
	ids := make([]uuid.UUID, 0, len(m.TransactionIDs))
	for _, raw := range m.TransactionIDs {
		if id, err := uuid.Parse(raw); err == nil {
			ids = append(ids, id)
		}
	}

	return &entity.MaterializationBatch{
		ID:             m.ID,
		UserID:         m.UserID,
		RequestedCount: m.RequestedCount,
		SucceededCount: m.SucceededCount,
		TransactionIDs: ids,
		FailureReason:  m.FailureReason,
		CreatedAt:      m.CreatedAt,
	}
}

// MaterializationBatchFromEntity creates a model from a domain entity.
func MaterializationBatchFromEntity(batch *entity.MaterializationBatch) *MaterializationBatchModel {
	ids := make(pq.StringArray, 0, len(batch.TransactionIDs))
	for _, id := range batch.TransactionIDs {
		ids = append(ids, id.String())
	}

	return &MaterializationBatchModel{
		ID:             batch.ID,
		UserID:         batch.UserID,
		RequestedCount: batch.RequestedCount,
		SucceededCount: batch.SucceededCount,
		TransactionIDs: ids,
		FailureReason:  batch.FailureReason,
		CreatedAt:      batch.CreatedAt,
	}
}
