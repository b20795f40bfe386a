// Package report contains the expense aggregation and report use cases.
package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-insights/backend/internal/application/adapter"
	"github.com/expense-insights/backend/internal/domain/entity"
)

// fakeExpenseRepo is an in-memory adapter.ExpenseRepository for tests.
// Only the fetch paths used by the report use cases are implemented.
type fakeExpenseRepo struct {
	expenses []*entity.Expense
	err      error
}

func (f *fakeExpenseRepo) Create(_ context.Context, expense *entity.Expense) error {
	f.expenses = append(f.expenses, expense)
	return nil
}

func (f *fakeExpenseRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Expense, error) {
	for _, e := range f.expenses {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}

func (f *fakeExpenseRepo) Update(_ context.Context, _ *entity.Expense) error { return nil }

func (f *fakeExpenseRepo) SoftDelete(_ context.Context, _ uuid.UUID) error { return nil }

func (f *fakeExpenseRepo) FetchExpenses(_ context.Context, userID uuid.UUID, filter adapter.ExpenseFilter) ([]*entity.Expense, error) {
	if f.err != nil {
		return nil, f.err
	}

	var matched []*entity.Expense
	for _, e := range f.expenses {
		if e.UserID != userID {
			continue
		}
		if filter.Category != nil && e.Category != *filter.Category {
			continue
		}
		if filter.DateFrom != nil && e.Date.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && e.Date.After(*filter.DateTo) {
			continue
		}
		matched = append(matched, e)
	}
	return matched, nil
}

func (f *fakeExpenseRepo) FindByFilter(_ context.Context, _ uuid.UUID, _ adapter.ExpenseFilter, _ adapter.ExpensePagination) (*entity.ExpenseListResult, error) {
	return &entity.ExpenseListResult{}, nil
}

// expense builds a test expense dated at the given day.
func expense(userID uuid.UUID, category entity.CategoryID, amount string, date time.Time) *entity.Expense {
	return &entity.Expense{
		ID:       uuid.New(),
		UserID:   userID,
		Category: category,
		Amount:   decimal.RequireFromString(amount),
		Date:     date,
	}
}

// day builds a UTC calendar date.
func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}
