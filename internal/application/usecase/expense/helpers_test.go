// Package expense contains expense-related use cases.
package expense

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-insights/backend/internal/application/adapter"
	"github.com/expense-insights/backend/internal/domain/entity"
)

// fakeExpenseRepo is an in-memory adapter.ExpenseRepository for tests.
type fakeExpenseRepo struct {
	expenses []*entity.Expense
	err      error
}

func (f *fakeExpenseRepo) Create(_ context.Context, expense *entity.Expense) error {
	if f.err != nil {
		return f.err
	}
	f.expenses = append(f.expenses, expense)
	return nil
}

func (f *fakeExpenseRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Expense, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, e := range f.expenses {
		if e.ID == id && e.DeletedAt == nil {
			return e, nil
		}
	}
	return nil, nil
}

func (f *fakeExpenseRepo) Update(_ context.Context, expense *entity.Expense) error {
	if f.err != nil {
		return f.err
	}
	for i, e := range f.expenses {
		if e.ID == expense.ID {
			f.expenses[i] = expense
			return nil
		}
	}
	return nil
}

func (f *fakeExpenseRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	now := time.Now().UTC()
	for _, e := range f.expenses {
		if e.ID == id {
			e.DeletedAt = &now
		}
	}
	return nil
}

func (f *fakeExpenseRepo) FetchExpenses(_ context.Context, userID uuid.UUID, filter adapter.ExpenseFilter) ([]*entity.Expense, error) {
	var matched []*entity.Expense
	for _, e := range f.expenses {
		if e.UserID == userID && e.DeletedAt == nil {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

func (f *fakeExpenseRepo) FindByFilter(_ context.Context, userID uuid.UUID, filter adapter.ExpenseFilter, pagination adapter.ExpensePagination) (*entity.ExpenseListResult, error) {
	if f.err != nil {
		return nil, f.err
	}

	var matched []*entity.Expense
	for _, e := range f.expenses {
		if e.UserID != userID || e.DeletedAt != nil {
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

	total := int64(len(matched))
	totalPages := (len(matched) + pagination.PerPage - 1) / pagination.PerPage

	offset := (pagination.Page - 1) * pagination.PerPage
	if offset > len(matched) {
		offset = len(matched)
	}
	limit := offset + pagination.PerPage
	if limit > len(matched) {
		limit = len(matched)
	}

	return &entity.ExpenseListResult{
		Expenses:   matched[offset:limit],
		Total:      total,
		Page:       pagination.Page,
		PerPage:    pagination.PerPage,
		TotalPages: totalPages,
	}, nil
}

// fakeReportCache records invalidations.
type fakeReportCache struct {
	invalidated []uuid.UUID
}

func (f *fakeReportCache) Get(_ context.Context, _ uuid.UUID, _ string) ([]byte, bool) {
	return nil, false
}

func (f *fakeReportCache) Set(_ context.Context, _ uuid.UUID, _ string, _ []byte) {}

func (f *fakeReportCache) InvalidateUser(_ context.Context, userID uuid.UUID) {
	f.invalidated = append(f.invalidated, userID)
}

func storedExpense(userID uuid.UUID, category entity.CategoryID, amount string, date time.Time) *entity.Expense {
	return entity.NewExpense(userID, "compra teste", category, decimal.RequireFromString(amount), date)
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}
