// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fianzas-manager/backend/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction
// creation. Date is a civil date in YYYY-MM-DD form; recurrence_count of
// null or 0 on a recurring frequency expands through the end of the
// anchor's calendar year.
type CreateTransactionRequest struct {
	AccountID       *string         `json:"account_id"`
	CategoryID      string          `json:"category_id" binding:"required,uuid"`
	Description     string          `json:"description" binding:"required,min=1,max=255"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Kind            string          `json:"kind" binding:"required,oneof=expense income"`
	Frequency       string          `json:"frequency" binding:"required,oneof=ONE_TIME WEEKLY BIWEEKLY MONTHLY ANNUAL"`
	Date            string          `json:"date" binding:"required"`
	RecurrenceCount *int            `json:"recurrence_count"`
	Status          *string         `json:"status"`
	Notes           string          `json:"notes"`
}

// UpdateTransactionRequest represents the request body for transaction updates.
type UpdateTransactionRequest struct {
	AccountID   *string          `json:"account_id"`
	CategoryID  *string          `json:"category_id"`
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	Status      *string          `json:"status"`
	Notes       *string          `json:"notes"`
	Date        *string          `json:"date"`
}

// TransactionResponse represents the transaction data in API responses.
type TransactionResponse struct {
	ID          string            `json:"id"`
	AccountID   *string           `json:"account_id"`
	CategoryID  string            `json:"category_id"`
	Category    *CategoryResponse `json:"category,omitempty"`
	Description string            `json:"description"`
	Amount      decimal.Decimal   `json:"amount"`
	Kind        string            `json:"kind"`
	Frequency   string            `json:"frequency"`
	Date        string            `json:"date"`
	Status      string            `json:"status,omitempty"`
	Notes       string            `json:"notes,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// CreateTransactionResponse represents the response for transaction creation.
// On a partial materialization failure it still describes the persisted
// prefix, alongside the error payload.
type CreateTransactionResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Requested    int                   `json:"requested"`
	Succeeded    int                   `json:"succeeded"`
	BatchID      string                `json:"batch_id"`
}

// TransactionListResponse represents one page of a transaction listing.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
	TotalPages   int                   `json:"total_pages"`
}

// CalendarDayResponse groups the transactions due on one calendar day.
type CalendarDayResponse struct {
	Date         string                `json:"date"`
	Transactions []TransactionResponse `json:"transactions"`
}

// CalendarResponse represents the monthly calendar view.
type CalendarResponse struct {
	Year  int                   `json:"year"`
	Month int                   `json:"month"`
	Days  []CalendarDayResponse `json:"days"`
}

// MaterializationBatchResponse represents one materialization run.
type MaterializationBatchResponse struct {
	ID             string    `json:"id"`
	RequestedCount int       `json:"requested_count"`
	SucceededCount int       `json:"succeeded_count"`
	TransactionIDs []string  `json:"transaction_ids"`
	FailureReason  string    `json:"failure_reason,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// MaterializationListResponse represents the batch history listing.
type MaterializationListResponse struct {
	Batches []MaterializationBatchResponse `json:"batches"`
}

// ToTransactionResponse converts a Transaction entity to a TransactionResponse DTO.
func ToTransactionResponse(transaction *entity.Transaction) TransactionResponse {
	var accountID *string
	if transaction.AccountID != nil {
		id := transaction.AccountID.String()
		accountID = &id
	}

	return TransactionResponse{
		ID:          transaction.ID.String(),
		AccountID:   accountID,
		CategoryID:  transaction.CategoryID.String(),
		Description: transaction.Description,
		Amount:      transaction.Amount,
		Kind:        string(transaction.Kind),
		Frequency:   string(transaction.Frequency),
		Date:        transaction.Date.UTC().Format(time.RFC3339),
		Status:      string(transaction.Status),
		Notes:       transaction.Notes,
		CreatedAt:   transaction.CreatedAt,
		UpdatedAt:   transaction.UpdatedAt,
	}
}

// ToTransactionWithCategoryResponse converts a TransactionWithCategory to a DTO.
func ToTransactionWithCategoryResponse(twc *entity.TransactionWithCategory) TransactionResponse {
	response := ToTransactionResponse(twc.Transaction)
	if twc.Category != nil {
		category := ToCategoryResponse(twc.Category)
		response.Category = &category
	}
	return response
}

// ToMaterializationBatchResponse converts a MaterializationBatch to a DTO.
func ToMaterializationBatchResponse(batch *entity.MaterializationBatch) MaterializationBatchResponse {
	ids := make([]string, 0, len(batch.TransactionIDs))
	for _, id := range batch.TransactionIDs {
		ids = append(ids, id.String())
	}

	return MaterializationBatchResponse{
		ID:             batch.ID.String(),
		RequestedCount: batch.RequestedCount,
		SucceededCount: batch.SucceededCount,
		TransactionIDs: ids,
		FailureReason:  batch.FailureReason,
		CreatedAt:      batch.CreatedAt,
	}
}
