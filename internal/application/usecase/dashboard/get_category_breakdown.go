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

// GetCategoryBreakdownInput represents the input for the category breakdown.
type GetCategoryBreakdownInput struct {
	UserID uuid.UUID
	Year   int
	Month  int
}

// CategoryBreakdownItem is one category's share of a month's activity.
type CategoryBreakdownItem struct {
	Category *entity.Category
	Row      *adapter.CategoryBreakdownRow
}

// GetCategoryBreakdownOutput represents the output of the category breakdown.
type GetCategoryBreakdownOutput struct {
	Items []*CategoryBreakdownItem
}

// GetCategoryBreakdownUseCase aggregates per-category totals for a month.
type GetCategoryBreakdownUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
}

// NewGetCategoryBreakdownUseCase creates a new GetCategoryBreakdownUseCase instance.
func NewGetCategoryBreakdownUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
) *GetCategoryBreakdownUseCase {
	return &GetCategoryBreakdownUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
	}
}

// Execute aggregates the month's activity per category and resolves each
// category for display. Rows whose category has since been deleted are kept
// with a nil category rather than dropped.
func (uc *GetCategoryBreakdownUseCase) Execute(ctx context.Context, input GetCategoryBreakdownInput) (*GetCategoryBreakdownOutput, error) {
	if input.Month < 1 || input.Month > 12 {
		return nil, domainerror.NewScheduleError(
			domainerror.ErrCodeInvalidDate,
			fmt.Sprintf("invalid month %d", input.Month),
			domainerror.ErrInvalidDate,
		)
	}

	start, end := schedule.MonthBounds(input.Year, time.Month(input.Month))
	rows, err := uc.transactionRepo.CategoryBreakdown(ctx, input.UserID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate category breakdown: %w", err)
	}

	inScope, err := uc.categoryRepo.FindInScope(ctx, input.UserID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	byID := make(map[uuid.UUID]*entity.Category, len(inScope))
	for _, c := range inScope {
		byID[c.ID] = c
	}

	items := make([]*CategoryBreakdownItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, &CategoryBreakdownItem{
			Category: byID[row.CategoryID],
			Row:      row,
		})
	}

	return &GetCategoryBreakdownOutput{Items: items}, nil
}
