package transaction

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fianzas-manager/backend/internal/application/adapter"
	"github.com/fianzas-manager/backend/internal/domain/entity"
	domainerror "github.com/fianzas-manager/backend/internal/domain/error"
	"github.com/fianzas-manager/backend/internal/domain/schedule"
)

// CreateTransactionInput represents the input for transaction creation. The
// date arrives as a civil date and is normalized internally; RecurrenceCount
// of zero (or nil at the API edge) expands a recurring entry through the end
// of the anchor's calendar year.
type CreateTransactionInput struct {
	UserID          uuid.UUID
	AccountID       *uuid.UUID
	CategoryID      uuid.UUID
	Description     string
	Amount          decimal.Decimal
	Kind            entity.TransactionKind
	Frequency       entity.Frequency
	Year            int
	Month           int
	Day             int
	RecurrenceCount int
	Status          *entity.ExpenseStatus
	Notes           string
}

// CreateTransactionOutput represents the output of transaction creation.
// Transactions holds what was actually persisted, which on a partial failure
// is a prefix of the expanded sequence.
type CreateTransactionOutput struct {
	Transactions []*entity.Transaction
	Batch        *entity.MaterializationBatch
}

// CreateTransactionUseCase validates, expands and materializes transactions.
type CreateTransactionUseCase struct {
	transactionRepo     adapter.TransactionRepository
	categoryRepo        adapter.CategoryRepository
	accountRepo         adapter.AccountRepository
	materializationRepo adapter.MaterializationRepository
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	accountRepo adapter.AccountRepository,
	materializationRepo adapter.MaterializationRepository,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo:     transactionRepo,
		categoryRepo:        categoryRepo,
		accountRepo:         accountRepo,
		materializationRepo: materializationRepo,
	}
}

// Execute runs the full pipeline: field validation, category and account
// resolution, date normalization, recurrence expansion and materialization.
//
// Each occurrence is inserted independently. When an insert fails (or the
// context is cancelled between inserts) the run stops, the already persisted
// prefix stays, and the error returned is a *MaterializationError alongside
// an output describing that prefix. Callers must treat a non-nil output with
// a non-nil error as a partial success, not a failure to roll back.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	if err := validateKind(input.Kind); err != nil {
		return nil, err
	}
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := validateTexts(input.Description, input.Notes); err != nil {
		return nil, err
	}
	status, err := resolveStatus(input.Kind, input.Status)
	if err != nil {
		return nil, err
	}
	if _, err := resolveCategory(ctx, uc.categoryRepo, input.UserID, input.CategoryID, input.Kind); err != nil {
		return nil, err
	}
	if err := resolveAccount(ctx, uc.accountRepo, input.UserID, input.AccountID); err != nil {
		return nil, err
	}

	anchor, err := schedule.Normalize(input.Year, time.Month(input.Month), input.Day)
	if err != nil {
		return nil, err
	}

	occurrences, err := schedule.Expand(input.Frequency, anchor, input.RecurrenceCount)
	if err != nil {
		return nil, err
	}

	return uc.materialize(ctx, input, status, occurrences)
}

// materialize inserts one row per occurrence, in order, each insert its own
// commit. The batch record is written regardless of outcome so partial runs
// stay auditable.
func (uc *CreateTransactionUseCase) materialize(ctx context.Context, input CreateTransactionInput, status entity.ExpenseStatus, occurrences []time.Time) (*CreateTransactionOutput, error) {
	batch := entity.NewMaterializationBatch(input.UserID, len(occurrences))
	created := make([]*entity.Transaction, 0, len(occurrences))

	var matErr *domainerror.MaterializationError
	for i, occurrence := range occurrences {
		if err := ctx.Err(); err != nil {
			matErr = &domainerror.MaterializationError{
				Succeeded: i,
				Total:     len(occurrences),
				FailedAt:  i + 1,
				Err:       err,
			}
			break
		}

		txn := entity.NewTransaction(
			input.UserID,
			input.AccountID,
			input.CategoryID,
			input.Description,
			input.Amount,
			input.Kind,
			input.Frequency,
			occurrence,
			status,
			input.Notes,
		)
		if err := uc.transactionRepo.Create(ctx, txn); err != nil {
			matErr = &domainerror.MaterializationError{
				Succeeded: i,
				Total:     len(occurrences),
				FailedAt:  i + 1,
				Err:       err,
			}
			break
		}

		created = append(created, txn)
		batch.TransactionIDs = append(batch.TransactionIDs, txn.ID)
	}

	batch.SucceededCount = len(created)
	if matErr != nil {
		batch.FailureReason = matErr.Error()
	}
	if err := uc.materializationRepo.Create(ctx, batch); err != nil {
		slog.Error("Failed to record materialization batch",
			"user_id", input.UserID, "succeeded", batch.SucceededCount, "error", err)
	}

	output := &CreateTransactionOutput{Transactions: created, Batch: batch}
	if matErr != nil {
		return output, matErr
	}
	return output, nil
}
