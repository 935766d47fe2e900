// Package account contains account management use cases.
package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fianzas-manager/backend/internal/application/adapter"
	"github.com/fianzas-manager/backend/internal/domain/entity"
	domainerror "github.com/fianzas-manager/backend/internal/domain/error"
)

// CreateAccountInput represents the input for account creation.
type CreateAccountInput struct {
	UserID   uuid.UUID
	Name     string
	Type     entity.AccountType
	Balance  decimal.Decimal
	Currency string
}

// CreateAccountOutput represents the output of account creation.
type CreateAccountOutput struct {
	Account *entity.Account
}

// CreateAccountUseCase handles account creation.
type CreateAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewCreateAccountUseCase creates a new CreateAccountUseCase instance.
func NewCreateAccountUseCase(accountRepo adapter.AccountRepository) *CreateAccountUseCase {
	return &CreateAccountUseCase{
		accountRepo: accountRepo,
	}
}

// Execute validates and creates an account. Currency defaults to the
// application default when omitted.
func (uc *CreateAccountUseCase) Execute(ctx context.Context, input CreateAccountInput) (*CreateAccountOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeMissingAccountFields,
			"account name is required",
			nil,
		)
	}
	if err := validateAccountType(input.Type); err != nil {
		return nil, err
	}

	currency := input.Currency
	if currency == "" {
		currency = entity.DefaultCurrency
	}

	account := entity.NewAccount(input.UserID, name, input.Type, input.Balance, currency)
	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return &CreateAccountOutput{Account: account}, nil
}

func validateAccountType(accountType entity.AccountType) error {
	switch accountType {
	case entity.AccountTypeChecking, entity.AccountTypeSavings, entity.AccountTypeCash, entity.AccountTypeCredit:
		return nil
	default:
		return domainerror.NewAccountError(
			domainerror.ErrCodeInvalidAccountType,
			"unknown account type",
			domainerror.ErrInvalidAccountType,
		)
	}
}
