// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fianzas-manager/backend/internal/domain/entity"
)

// CreateAccountRequest represents the request body for account creation.
type CreateAccountRequest struct {
	Name     string          `json:"name" binding:"required,min=1,max=100"`
	Type     string          `json:"type" binding:"required,oneof=checking savings cash credit"`
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
}

// UpdateAccountRequest represents the request body for account updates.
type UpdateAccountRequest struct {
	Name     *string          `json:"name"`
	Type     *string          `json:"type"`
	Balance  *decimal.Decimal `json:"balance"`
	Currency *string          `json:"currency"`
}

// AccountResponse represents the account data in API responses.
type AccountResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// AccountListResponse represents the response for account listings.
type AccountListResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts an Account entity to an AccountResponse DTO.
func ToAccountResponse(account *entity.Account) AccountResponse {
	return AccountResponse{
		ID:        account.ID.String(),
		Name:      account.Name,
		Type:      string(account.Type),
		Balance:   account.Balance,
		Currency:  account.Currency,
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
}
