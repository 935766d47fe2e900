// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/shopspring/decimal"
)

// SummaryResponse represents the monthly totals for the dashboard.
type SummaryResponse struct {
	Year         int             `json:"year"`
	Month        int             `json:"month"`
	IncomeTotal  decimal.Decimal `json:"income_total"`
	ExpenseTotal decimal.Decimal `json:"expense_total"`
	NetTotal     decimal.Decimal `json:"net_total"`
}

// CategoryBreakdownItemResponse is one category's share of a month.
type CategoryBreakdownItemResponse struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
	Color        string          `json:"color,omitempty"`
	Kind         string          `json:"kind"`
	Count        int             `json:"count"`
	Total        decimal.Decimal `json:"total"`
}

// CategoryBreakdownResponse represents the per-category monthly breakdown.
type CategoryBreakdownResponse struct {
	Year  int                             `json:"year"`
	Month int                             `json:"month"`
	Items []CategoryBreakdownItemResponse `json:"items"`
}
