package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fianzas-manager/backend/internal/application/adapter"
	"github.com/fianzas-manager/backend/internal/domain/entity"
	domainerror "github.com/fianzas-manager/backend/internal/domain/error"
	"github.com/fianzas-manager/backend/internal/domain/schedule"
)

// UpdateTransactionInput represents the input for transaction updates.
// Nil fields are left untouched. Updates act on a single occurrence; they
// never touch sibling rows materialized from the same recurring entry, and
// the kind and frequency of an occurrence are immutable.
type UpdateTransactionInput struct {
	UserID        uuid.UUID
	TransactionID uuid.UUID
	Description   *string
	Amount        *decimal.Decimal
	CategoryID    *uuid.UUID
	AccountID     *uuid.UUID
	Status        *entity.ExpenseStatus
	Notes         *string
	Date          *CivilDate
}

// CivilDate is a calendar date as entered by the user, before normalization.
type CivilDate struct {
	Year  int
	Month int
	Day   int
}

// UpdateTransactionOutput represents the output of transaction updates.
type UpdateTransactionOutput struct {
	Transaction *entity.Transaction
}

// UpdateTransactionUseCase handles single-occurrence updates.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	accountRepo     adapter.AccountRepository
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	accountRepo adapter.AccountRepository,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		accountRepo:     accountRepo,
	}
}

// Execute applies the requested changes to one transaction.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	txn, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
	if err != nil || txn.UserID != input.UserID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}

	if input.Description != nil {
		notes := txn.Notes
		if input.Notes != nil {
			notes = *input.Notes
		}
		if err := validateTexts(*input.Description, notes); err != nil {
			return nil, err
		}
		txn.Description = *input.Description
	}
	if input.Notes != nil {
		if len(*input.Notes) > MaxNotesLength {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeNotesTooLong,
				"notes too long",
				domainerror.ErrNotesTooLong,
			)
		}
		txn.Notes = *input.Notes
	}

	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
		txn.Amount = *input.Amount
	}

	if input.CategoryID != nil {
		if _, err := resolveCategory(ctx, uc.categoryRepo, input.UserID, *input.CategoryID, txn.Kind); err != nil {
			return nil, err
		}
		txn.CategoryID = *input.CategoryID
	}

	if input.AccountID != nil {
		if err := resolveAccount(ctx, uc.accountRepo, input.UserID, input.AccountID); err != nil {
			return nil, err
		}
		txn.AccountID = input.AccountID
	}

	if input.Status != nil {
		status, err := resolveStatus(txn.Kind, input.Status)
		if err != nil {
			return nil, err
		}
		txn.Status = status
	}

	if input.Date != nil {
		date, err := schedule.Normalize(input.Date.Year, time.Month(input.Date.Month), input.Date.Day)
		if err != nil {
			return nil, err
		}
		txn.Date = date
	}

	txn.UpdatedAt = time.Now().UTC()
	if err := uc.transactionRepo.Update(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return &UpdateTransactionOutput{Transaction: txn}, nil
}
