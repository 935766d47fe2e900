// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fianzas-manager/backend/internal/domain/entity"
)

// TransactionFilter narrows transaction listings.
type TransactionFilter struct {
	Kind       *entity.TransactionKind
	CategoryID *uuid.UUID
	Status     *entity.ExpenseStatus
	StartDate  *time.Time
	EndDate    *time.Time
	Page       int
	Limit      int
}

// CategoryBreakdownRow aggregates transactions of one category over a period.
type CategoryBreakdownRow struct {
	CategoryID uuid.UUID
	Kind       entity.TransactionKind
	Count      int
	Total      decimal.Decimal
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create inserts a single transaction. Each call commits independently;
	// the materializer relies on that for its per-occurrence atomicity.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByUser retrieves a filtered, paginated page of a user's transactions.
	FindByUser(ctx context.Context, userID uuid.UUID, filter TransactionFilter) (*entity.TransactionListResult, error)

	// FindByUserAndDateRange retrieves all of a user's transactions whose
	// anchor date falls inside [start, end], ordered by date.
	FindByUserAndDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.Transaction, error)

	// Update updates an existing transaction in the database.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete removes a transaction from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByCategory checks whether any transaction references the category.
	ExistsByCategory(ctx context.Context, categoryID uuid.UUID) (bool, error)

	// Totals aggregates income, expense and net totals over a period.
	Totals(ctx context.Context, userID uuid.UUID, start, end time.Time) (*entity.TransactionTotals, error)

	// CategoryBreakdown aggregates per-category totals over a period.
	CategoryBreakdown(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*CategoryBreakdownRow, error)
}

// MaterializationRepository records the outcome of materialization runs.
type MaterializationRepository interface {
	// Create persists a batch record, including its partial-failure fields.
	Create(ctx context.Context, batch *entity.MaterializationBatch) error

	// FindByUser retrieves a user's batch records, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.MaterializationBatch, error)
}
