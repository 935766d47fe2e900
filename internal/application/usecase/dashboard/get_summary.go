// Package dashboard contains aggregation use cases for the dashboard views.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fianzas-manager/backend/internal/application/adapter"
	"github.com/fianzas-manager/backend/internal/domain/entity"
	domainerror "github.com/fianzas-manager/backend/internal/domain/error"
	"github.com/fianzas-manager/backend/internal/domain/schedule"
)

// GetSummaryInput represents the input for the monthly summary.
type GetSummaryInput struct {
	UserID uuid.UUID
	Year   int
	Month  int
}

// GetSummaryOutput represents the output of the monthly summary.
type GetSummaryOutput struct {
	Totals *entity.TransactionTotals
}

// GetSummaryUseCase aggregates a month's income, expense and net totals.
type GetSummaryUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(transactionRepo adapter.TransactionRepository) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute aggregates totals over the given calendar month.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	if input.Month < 1 || input.Month > 12 {
		return nil, domainerror.NewScheduleError(
			domainerror.ErrCodeInvalidDate,
			fmt.Sprintf("invalid month %d", input.Month),
			domainerror.ErrInvalidDate,
		)
	}

	start, end := schedule.MonthBounds(input.Year, time.Month(input.Month))
	totals, err := uc.transactionRepo.Totals(ctx, input.UserID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate totals: %w", err)
	}

	return &GetSummaryOutput{Totals: totals}, nil
}
