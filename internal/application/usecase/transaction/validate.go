// Package transaction contains transaction management use cases, including
// the materialization of recurring entries into independent rows.
package transaction

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fianzas-manager/backend/internal/application/adapter"
	"github.com/fianzas-manager/backend/internal/domain/entity"
	domainerror "github.com/fianzas-manager/backend/internal/domain/error"
)

const (
	// MaxDescriptionLength is the maximum allowed description length.
	MaxDescriptionLength = 255
	// MaxNotesLength is the maximum allowed notes length.
	MaxNotesLength = 1000
)

func validateKind(kind entity.TransactionKind) error {
	if kind != entity.TransactionKindExpense && kind != entity.TransactionKindIncome {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionKind,
			"transaction kind must be expense or income",
			domainerror.ErrInvalidTransactionKind,
		)
	}
	return nil
}

func validateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"transaction amount must be positive",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	return nil
}

func validateTexts(description, notes string) error {
	if description == "" {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTransactionFields,
			"description is required",
			nil,
		)
	}
	if len(description) > MaxDescriptionLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			"description too long",
			domainerror.ErrDescriptionTooLong,
		)
	}
	if len(notes) > MaxNotesLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeNotesTooLong,
			"notes too long",
			domainerror.ErrNotesTooLong,
		)
	}
	return nil
}

// resolveStatus applies the status rules: expenses default to PENDING and
// must carry a known status; income occurrences carry no status at all.
func resolveStatus(kind entity.TransactionKind, status *entity.ExpenseStatus) (entity.ExpenseStatus, error) {
	if kind == entity.TransactionKindIncome {
		return "", nil
	}
	if status == nil {
		return entity.ExpenseStatusPending, nil
	}
	switch *status {
	case entity.ExpenseStatusPending, entity.ExpenseStatusPaid, entity.ExpenseStatusOverdue, entity.ExpenseStatusPartial:
		return *status, nil
	default:
		return "", domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidExpenseStatus,
			"unknown expense status",
			domainerror.ErrInvalidExpenseStatus,
		)
	}
}

// resolveCategory fetches the category and checks scope and kind agreement:
// expense transactions use expense categories, income transactions income
// categories.
func resolveCategory(ctx context.Context, repo adapter.CategoryRepository, userID, categoryID uuid.UUID, kind entity.TransactionKind) (*entity.Category, error) {
	category, err := repo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTxnCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFoundForTransaction,
		)
	}
	if !category.IsGlobal() && category.OwnerID != userID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTxnCategoryNotOwned,
			"category does not belong to user",
			domainerror.ErrCategoryNotOwnedByUser,
		)
	}

	expectedType := entity.CategoryTypeExpense
	if kind == entity.TransactionKindIncome {
		expectedType = entity.CategoryTypeIncome
	}
	if category.Type != expectedType {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTxnCategoryKindMismatch,
			"category type does not match transaction kind",
			domainerror.ErrCategoryKindMismatch,
		)
	}
	return category, nil
}

// resolveAccount fetches the account, when given, and checks ownership.
func resolveAccount(ctx context.Context, repo adapter.AccountRepository, userID uuid.UUID, accountID *uuid.UUID) error {
	if accountID == nil {
		return nil
	}
	account, err := repo.FindByID(ctx, *accountID)
	if err != nil || account.UserID != userID {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTxnAccountNotFound,
			"account not found",
			domainerror.ErrAccountNotFoundForTransaction,
		)
	}
	return nil
}
