// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionKind represents the kind of transaction (expense or income).
type TransactionKind string

const (
	TransactionKindExpense TransactionKind = "expense"
	TransactionKindIncome  TransactionKind = "income"
)

// Frequency represents how often a recurring transaction repeats.
type Frequency string

const (
	FrequencyOneTime  Frequency = "ONE_TIME"
	FrequencyWeekly   Frequency = "WEEKLY"
	FrequencyBiweekly Frequency = "BIWEEKLY"
	FrequencyMonthly  Frequency = "MONTHLY"
	FrequencyAnnual   Frequency = "ANNUAL"
)

// ExpenseStatus represents the payment state of an expense occurrence.
// Income transactions carry an empty status.
type ExpenseStatus string

const (
	ExpenseStatusPending ExpenseStatus = "PENDING"
	ExpenseStatusPaid    ExpenseStatus = "PAID"
	ExpenseStatusOverdue ExpenseStatus = "OVERDUE"
	ExpenseStatusPartial ExpenseStatus = "PARTIAL"
)

// Transaction represents one income or expense occurrence. Recurring entries
// materialize into independent rows: each occurrence carries its own identity
// and date, and no back-reference links sibling occurrences.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	AccountID   *uuid.UUID
	CategoryID  uuid.UUID
	Description string
	Amount      decimal.Decimal // Always positive; Kind carries the sign
	Kind        TransactionKind
	Frequency   Frequency
	Date        time.Time // Anchor/due date, normalized to local noon UTC-3
	Status      ExpenseStatus
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // Soft-delete support
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	userID uuid.UUID,
	accountID *uuid.UUID,
	categoryID uuid.UUID,
	description string,
	amount decimal.Decimal,
	kind TransactionKind,
	frequency Frequency,
	date time.Time,
	status ExpenseStatus,
	notes string,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		AccountID:   accountID,
		CategoryID:  categoryID,
		Description: description,
		Amount:      amount,
		Kind:        kind,
		Frequency:   frequency,
		Date:        date,
		Status:      status,
		Notes:       notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// TransactionWithCategory pairs a transaction with its category for listings.
type TransactionWithCategory struct {
	Transaction *Transaction
	Category    *Category
}

// TransactionListResult represents one page of a transaction listing.
type TransactionListResult struct {
	Transactions []*TransactionWithCategory
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}

// TransactionTotals represents aggregated totals over a period.
type TransactionTotals struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	NetTotal     decimal.Decimal
}
