// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/expense-insights/backend/internal/domain/entity"
)

// ExpenseFilter describes the optional criteria for fetching expenses.
// Soft-deleted records are always excluded by the implementation; the
// aggregation core never sees them.
type ExpenseFilter struct {
	Category  *entity.CategoryID
	DateFrom  *time.Time
	DateTo    *time.Time
	Search    string // partial, case-insensitive description match
	OrderAsc  bool   // order by date ascending instead of the default descending
}

// ExpensePagination describes pagination for expense listing.
type ExpensePagination struct {
	Page    int
	PerPage int
}

// ExpenseRepository defines the persistence contract for expense records.
// Fetch methods return only non-deleted records scoped to one user; the
// repository filters, the report core aggregates.
type ExpenseRepository interface {
	// Create stores a new expense.
	Create(ctx context.Context, expense *entity.Expense) error

	// FindByID retrieves a non-deleted expense by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error)

	// Update saves changes to an existing expense.
	Update(ctx context.Context, expense *entity.Expense) error

	// SoftDelete marks an expense as deleted without removing the row.
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// FetchExpenses returns the non-deleted expenses of userID matching the filter.
	FetchExpenses(ctx context.Context, userID uuid.UUID, filter ExpenseFilter) ([]*entity.Expense, error)

	// FindByFilter returns a paginated, filtered expense listing.
	FindByFilter(ctx context.Context, userID uuid.UUID, filter ExpenseFilter, pagination ExpensePagination) (*entity.ExpenseListResult, error)
}
