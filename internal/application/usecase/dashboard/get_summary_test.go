package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fianzas-manager/backend/internal/application/adapter"
	"github.com/fianzas-manager/backend/internal/domain/entity"
	domainerror "github.com/fianzas-manager/backend/internal/domain/error"
)

// fakeTotalsRepo records the window it was queried with.
type fakeTotalsRepo struct {
	adapter.TransactionRepository
	start  time.Time
	end    time.Time
	totals *entity.TransactionTotals
}

func (r *fakeTotalsRepo) Totals(_ context.Context, _ uuid.UUID, start, end time.Time) (*entity.TransactionTotals, error) {
	r.start = start
	r.end = end
	return r.totals, nil
}

func TestGetSummary(t *testing.T) {
	t.Run("queries the normalized month window", func(t *testing.T) {
		repo := &fakeTotalsRepo{totals: &entity.TransactionTotals{
			IncomeTotal:  decimal.NewFromInt(3000),
			ExpenseTotal: decimal.NewFromInt(1200),
			NetTotal:     decimal.NewFromInt(1800),
		}}
		uc := NewGetSummaryUseCase(repo)

		output, err := uc.Execute(context.Background(), GetSummaryInput{
			UserID: uuid.New(),
			Year:   2025,
			Month:  6,
		})
		if err != nil {
			t.Fatalf("Execute: %v", err)
		}

		wantStart := time.Date(2025, time.June, 1, 15, 0, 0, 0, time.UTC)
		wantEnd := time.Date(2025, time.June, 30, 15, 0, 0, 0, time.UTC)
		if !repo.start.Equal(wantStart) {
			t.Errorf("window start = %v, want %v", repo.start, wantStart)
		}
		if !repo.end.Equal(wantEnd) {
			t.Errorf("window end = %v, want %v", repo.end, wantEnd)
		}
		if !output.Totals.NetTotal.Equal(decimal.NewFromInt(1800)) {
			t.Errorf("net total = %s, want 1800", output.Totals.NetTotal)
		}
	})

	t.Run("rejects an out-of-range month", func(t *testing.T) {
		uc := NewGetSummaryUseCase(&fakeTotalsRepo{})

		_, err := uc.Execute(context.Background(), GetSummaryInput{
			UserID: uuid.New(),
			Year:   2025,
			Month:  13,
		})

		var schErr *domainerror.ScheduleError
		if !errors.As(err, &schErr) || schErr.Code != domainerror.ErrCodeInvalidDate {
			t.Fatalf("expected invalid date error, got %v", err)
		}
	})
}
