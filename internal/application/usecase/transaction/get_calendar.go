package transaction

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

// GetCalendarInput represents the input for the monthly calendar view.
type GetCalendarInput struct {
	UserID uuid.UUID
	Year   int
	Month  int
}

// CalendarDay groups the transactions due on one calendar day.
type CalendarDay struct {
	Date         time.Time
	Transactions []*entity.Transaction
}

// GetCalendarOutput represents the output of the monthly calendar view.
// Days only lists days that carry at least one transaction, in order.
type GetCalendarOutput struct {
	Days []*CalendarDay
}

// GetCalendarUseCase produces the per-day view of a month's transactions.
type GetCalendarUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetCalendarUseCase creates a new GetCalendarUseCase instance.
func NewGetCalendarUseCase(transactionRepo adapter.TransactionRepository) *GetCalendarUseCase {
	return &GetCalendarUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute loads the month's transactions and groups them by calendar day.
func (uc *GetCalendarUseCase) Execute(ctx context.Context, input GetCalendarInput) (*GetCalendarOutput, error) {
	if input.Month < 1 || input.Month > 12 {
		return nil, domainerror.NewScheduleError(
			domainerror.ErrCodeInvalidDate,
			fmt.Sprintf("invalid month %d", input.Month),
			domainerror.ErrInvalidDate,
		)
	}

	start, end := schedule.MonthBounds(input.Year, time.Month(input.Month))
	transactions, err := uc.transactionRepo.FindByUserAndDateRange(ctx, input.UserID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load calendar transactions: %w", err)
	}

	var days []*CalendarDay
	for _, txn := range transactions {
		if len(days) > 0 && schedule.SameDay(days[len(days)-1].Date, txn.Date) {
			last := days[len(days)-1]
			last.Transactions = append(last.Transactions, txn)
			continue
		}
		days = append(days, &CalendarDay{
			Date:         txn.Date,
			Transactions: []*entity.Transaction{txn},
		})
	}

	return &GetCalendarOutput{Days: days}, nil
}
