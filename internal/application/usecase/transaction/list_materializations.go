package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fianzas-manager/backend/internal/application/adapter"
	"github.com/fianzas-manager/backend/internal/domain/entity"
)

const defaultMaterializationLimit = 20

// ListMaterializationsInput represents the input for batch history listing.
type ListMaterializationsInput struct {
	UserID uuid.UUID
	Limit  int
}

// ListMaterializationsOutput represents the output of batch history listing.
type ListMaterializationsOutput struct {
	Batches []*entity.MaterializationBatch
}

// ListMaterializationsUseCase lists a user's materialization run history,
// including partially failed runs.
type ListMaterializationsUseCase struct {
	materializationRepo adapter.MaterializationRepository
}

// NewListMaterializationsUseCase creates a new ListMaterializationsUseCase instance.
func NewListMaterializationsUseCase(materializationRepo adapter.MaterializationRepository) *ListMaterializationsUseCase {
	return &ListMaterializationsUseCase{
		materializationRepo: materializationRepo,
	}
}

// Execute lists the newest batch records first.
func (uc *ListMaterializationsUseCase) Execute(ctx context.Context, input ListMaterializationsInput) (*ListMaterializationsOutput, error) {
	limit := input.Limit
	if limit < 1 {
		limit = defaultMaterializationLimit
	}

	batches, err := uc.materializationRepo.FindByUser(ctx, input.UserID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list materialization batches: %w", err)
	}

	return &ListMaterializationsOutput{Batches: batches}, nil
}
