// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// MaterializationBatch records the outcome of expanding one recurring entry
// into persisted transactions. Partial completion is a visible, reportable
// outcome: SucceededCount can be smaller than RequestedCount and the created
// ids list only what actually landed.
type MaterializationBatch struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	RequestedCount int
	SucceededCount int
	TransactionIDs []uuid.UUID
	FailureReason  string
	CreatedAt      time.Time
}

// NewMaterializationBatch creates a batch record for a materialization run.
func NewMaterializationBatch(userID uuid.UUID, requested int) *MaterializationBatch {
	return &MaterializationBatch{
		ID:             uuid.New(),
		UserID:         userID,
		RequestedCount: requested,
		CreatedAt:      time.Now().UTC(),
	}
}
