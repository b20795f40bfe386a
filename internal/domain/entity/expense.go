// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense represents a single dated, categorized expense record.
// Amounts are always non-negative and carry currency scale (2 decimals).
type Expense struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Description string
	Category    CategoryID
	Amount      decimal.Decimal
	Date        time.Time // calendar date the expense occurred, no time component
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // soft-delete marker; deleted records are absent from every aggregation
}

// NewExpense creates a new Expense entity owned by userID.
func NewExpense(
	userID uuid.UUID,
	description string,
	category CategoryID,
	amount decimal.Decimal,
	date time.Time,
) *Expense {
	now := time.Now().UTC()

	return &Expense{
		ID:          uuid.New(),
		UserID:      userID,
		Description: description,
		Category:    category,
		Amount:      amount,
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ExpenseListResult represents the result of a filtered expense listing.
type ExpenseListResult struct {
	Expenses   []*Expense
	Total      int64
	Page       int
	PerPage    int
	TotalPages int
}
