package account

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fianzas-manager/backend/internal/application/adapter"
	"github.com/fianzas-manager/backend/internal/domain/entity"
	domainerror "github.com/fianzas-manager/backend/internal/domain/error"
)

// UpdateAccountInput represents the input for account updates. Nil fields
// are left untouched.
type UpdateAccountInput struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
	Name      *string
	Type      *entity.AccountType
	Balance   *decimal.Decimal
	Currency  *string
}

// UpdateAccountOutput represents the output of account updates.
type UpdateAccountOutput struct {
	Account *entity.Account
}

// UpdateAccountUseCase handles account updates.
type UpdateAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewUpdateAccountUseCase creates a new UpdateAccountUseCase instance.
func NewUpdateAccountUseCase(accountRepo adapter.AccountRepository) *UpdateAccountUseCase {
	return &UpdateAccountUseCase{
		accountRepo: accountRepo,
	}
}

// Execute applies the requested changes to an account owned by the user.
func (uc *UpdateAccountUseCase) Execute(ctx context.Context, input UpdateAccountInput) (*UpdateAccountOutput, error) {
	account, err := uc.accountRepo.FindByID(ctx, input.AccountID)
	if err != nil || account.UserID != input.UserID {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeAccountNotFound,
			"account not found",
			domainerror.ErrAccountNotFound,
		)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerror.NewAccountError(
				domainerror.ErrCodeMissingAccountFields,
				"account name is required",
				nil,
			)
		}
		account.Name = name
	}
	if input.Type != nil {
		if err := validateAccountType(*input.Type); err != nil {
			return nil, err
		}
		account.Type = *input.Type
	}
	if input.Balance != nil {
		account.Balance = *input.Balance
	}
	if input.Currency != nil && *input.Currency != "" {
		account.Currency = *input.Currency
	}

	account.UpdatedAt = time.Now().UTC()
	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	return &UpdateAccountOutput{Account: account}, nil
}
