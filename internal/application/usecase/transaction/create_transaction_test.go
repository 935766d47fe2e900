package transaction

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

// fakeTransactionRepo records inserts and can fail on a chosen occurrence.
type fakeTransactionRepo struct {
	adapter.TransactionRepository
	created []*entity.Transaction
	failOn  int // 1-based index of the insert that fails, 0 for never
	failErr error
}

func (r *fakeTransactionRepo) Create(_ context.Context, txn *entity.Transaction) error {
	if r.failOn > 0 && len(r.created)+1 == r.failOn {
		return r.failErr
	}
	r.created = append(r.created, txn)
	return nil
}

type fakeCategoryRepo struct {
	adapter.CategoryRepository
	categories map[uuid.UUID]*entity.Category
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return category, nil
}

type fakeAccountRepo struct {
	adapter.AccountRepository
	accounts map[uuid.UUID]*entity.Account
}

func (r *fakeAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	account, ok := r.accounts[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return account, nil
}

type fakeMaterializationRepo struct {
	adapter.MaterializationRepository
	batches []*entity.MaterializationBatch
}

func (r *fakeMaterializationRepo) Create(_ context.Context, batch *entity.MaterializationBatch) error {
	r.batches = append(r.batches, batch)
	return nil
}

type fixture struct {
	uc         *CreateTransactionUseCase
	txnRepo    *fakeTransactionRepo
	matRepo    *fakeMaterializationRepo
	userID     uuid.UUID
	expenseCat *entity.Category
	incomeCat  *entity.Category
}

func newFixture(failOn int, failErr error) *fixture {
	userID := uuid.New()
	expenseCat := entity.NewCategory("Hogar", entity.DefaultCategoryColor, entity.DefaultCategoryIcon,
		entity.OwnerTypeUser, userID, entity.CategoryTypeExpense, nil, 0)
	incomeCat := entity.NewCategory("Sueldo", entity.DefaultCategoryColor, entity.DefaultCategoryIcon,
		entity.OwnerTypeUser, userID, entity.CategoryTypeIncome, nil, 0)

	txnRepo := &fakeTransactionRepo{failOn: failOn, failErr: failErr}
	matRepo := &fakeMaterializationRepo{}
	categoryRepo := &fakeCategoryRepo{categories: map[uuid.UUID]*entity.Category{
		expenseCat.ID: expenseCat,
		incomeCat.ID:  incomeCat,
	}}
	accountRepo := &fakeAccountRepo{accounts: map[uuid.UUID]*entity.Account{}}

	return &fixture{
		uc:         NewCreateTransactionUseCase(txnRepo, categoryRepo, accountRepo, matRepo),
		txnRepo:    txnRepo,
		matRepo:    matRepo,
		userID:     userID,
		expenseCat: expenseCat,
		incomeCat:  incomeCat,
	}
}

func baseInput(f *fixture) CreateTransactionInput {
	return CreateTransactionInput{
		UserID:      f.userID,
		CategoryID:  f.expenseCat.ID,
		Description: "Alquiler",
		Amount:      decimal.NewFromInt(1500),
		Kind:        entity.TransactionKindExpense,
		Frequency:   entity.FrequencyOneTime,
		Year:        2025,
		Month:       3,
		Day:         15,
	}
}

func TestCreateTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("one-time creates a single row", func(t *testing.T) {
		f := newFixture(0, nil)

		out, err := f.uc.Execute(ctx, baseInput(f))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Transactions) != 1 {
			t.Fatalf("expected 1 transaction, got %d", len(out.Transactions))
		}
		if out.Batch.RequestedCount != 1 || out.Batch.SucceededCount != 1 {
			t.Errorf("expected batch 1/1, got %d/%d", out.Batch.SucceededCount, out.Batch.RequestedCount)
		}
		if got := out.Transactions[0].Date.UTC().Format(time.RFC3339); got != "2025-03-15T15:00:00Z" {
			t.Errorf("expected normalized date, got %s", got)
		}
	})

	t.Run("expense defaults to pending status", func(t *testing.T) {
		f := newFixture(0, nil)

		out, err := f.uc.Execute(ctx, baseInput(f))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Transactions[0].Status != entity.ExpenseStatusPending {
			t.Errorf("expected PENDING, got %s", out.Transactions[0].Status)
		}
	})

	t.Run("income carries no status", func(t *testing.T) {
		f := newFixture(0, nil)
		input := baseInput(f)
		input.Kind = entity.TransactionKindIncome
		input.CategoryID = f.incomeCat.ID
		paid := entity.ExpenseStatusPaid
		input.Status = &paid

		out, err := f.uc.Execute(ctx, input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Transactions[0].Status != "" {
			t.Errorf("expected empty status, got %s", out.Transactions[0].Status)
		}
	})

	t.Run("weekly recurrence creates rows in date order", func(t *testing.T) {
		f := newFixture(0, nil)
		input := baseInput(f)
		input.Frequency = entity.FrequencyWeekly
		input.RecurrenceCount = 3

		out, err := f.uc.Execute(ctx, input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Transactions) != 3 {
			t.Fatalf("expected 3 transactions, got %d", len(out.Transactions))
		}
		for i := 1; i < len(out.Transactions); i++ {
			if !out.Transactions[i-1].Date.Before(out.Transactions[i].Date) {
				t.Errorf("expected ascending dates at index %d", i)
			}
		}
		if len(out.Batch.TransactionIDs) != 3 {
			t.Errorf("expected 3 ids in batch, got %d", len(out.Batch.TransactionIDs))
		}
	})

	t.Run("omitted count expands through year end", func(t *testing.T) {
		f := newFixture(0, nil)
		input := baseInput(f)
		input.Frequency = entity.FrequencyMonthly
		input.Month = 10
		input.Day = 15

		out, err := f.uc.Execute(ctx, input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Transactions) != 3 {
			t.Fatalf("expected Oct, Nov, Dec rows, got %d", len(out.Transactions))
		}
	})

	t.Run("partial failure keeps the persisted prefix", func(t *testing.T) {
		f := newFixture(2, errors.New("db down"))
		input := baseInput(f)
		input.Frequency = entity.FrequencyWeekly
		input.RecurrenceCount = 3

		out, err := f.uc.Execute(ctx, input)
		var matErr *domainerror.MaterializationError
		if !errors.As(err, &matErr) {
			t.Fatalf("expected MaterializationError, got %v", err)
		}
		if matErr.Succeeded != 1 || matErr.Total != 3 || matErr.FailedAt != 2 {
			t.Errorf("unexpected failure report: %+v", matErr)
		}
		if want := "1 of 3 succeeded, failed at occurrence 2: db down"; matErr.Error() != want {
			t.Errorf("expected %q, got %q", want, matErr.Error())
		}
		if len(out.Transactions) != 1 {
			t.Errorf("expected persisted prefix of 1, got %d", len(out.Transactions))
		}
		if len(f.txnRepo.created) != 1 {
			t.Errorf("expected 1 insert to survive, got %d", len(f.txnRepo.created))
		}
		if len(f.matRepo.batches) != 1 || f.matRepo.batches[0].FailureReason == "" {
			t.Error("expected batch record with failure reason")
		}
	})

	t.Run("cancelled context stops before the next insert", func(t *testing.T) {
		f := newFixture(0, nil)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		input := baseInput(f)
		input.Frequency = entity.FrequencyWeekly
		input.RecurrenceCount = 5

		out, err := f.uc.Execute(cancelled, input)
		var matErr *domainerror.MaterializationError
		if !errors.As(err, &matErr) {
			t.Fatalf("expected MaterializationError, got %v", err)
		}
		if matErr.Succeeded != 0 || matErr.FailedAt != 1 {
			t.Errorf("unexpected failure report: %+v", matErr)
		}
		if !errors.Is(matErr, context.Canceled) {
			t.Errorf("expected wrapped context.Canceled, got %v", matErr.Err)
		}
		if len(out.Transactions) != 0 {
			t.Errorf("expected no persisted rows, got %d", len(out.Transactions))
		}
	})

	t.Run("rejects impossible date", func(t *testing.T) {
		f := newFixture(0, nil)
		input := baseInput(f)
		input.Month = 2
		input.Day = 30

		_, err := f.uc.Execute(ctx, input)
		if !errors.Is(err, domainerror.ErrInvalidDate) {
			t.Errorf("expected ErrInvalidDate, got %v", err)
		}
	})

	t.Run("rejects negative recurrence count", func(t *testing.T) {
		f := newFixture(0, nil)
		input := baseInput(f)
		input.Frequency = entity.FrequencyWeekly
		input.RecurrenceCount = -1

		_, err := f.uc.Execute(ctx, input)
		if !errors.Is(err, domainerror.ErrInvalidRecurrenceSpec) {
			t.Errorf("expected ErrInvalidRecurrenceSpec, got %v", err)
		}
	})

	t.Run("rejects zero amount", func(t *testing.T) {
		f := newFixture(0, nil)
		input := baseInput(f)
		input.Amount = decimal.Zero

		_, err := f.uc.Execute(ctx, input)
		if !errors.Is(err, domainerror.ErrInvalidTransactionAmount) {
			t.Errorf("expected ErrInvalidTransactionAmount, got %v", err)
		}
	})

	t.Run("rejects category of the other kind", func(t *testing.T) {
		f := newFixture(0, nil)
		input := baseInput(f)
		input.CategoryID = f.incomeCat.ID

		_, err := f.uc.Execute(ctx, input)
		if !errors.Is(err, domainerror.ErrCategoryKindMismatch) {
			t.Errorf("expected ErrCategoryKindMismatch, got %v", err)
		}
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		f := newFixture(0, nil)
		input := baseInput(f)
		input.CategoryID = uuid.New()

		_, err := f.uc.Execute(ctx, input)
		if !errors.Is(err, domainerror.ErrCategoryNotFoundForTransaction) {
			t.Errorf("expected ErrCategoryNotFoundForTransaction, got %v", err)
		}
	})

	t.Run("rejects unknown account", func(t *testing.T) {
		f := newFixture(0, nil)
		input := baseInput(f)
		missing := uuid.New()
		input.AccountID = &missing

		_, err := f.uc.Execute(ctx, input)
		if !errors.Is(err, domainerror.ErrAccountNotFoundForTransaction) {
			t.Errorf("expected ErrAccountNotFoundForTransaction, got %v", err)
		}
	})
}
