// Package expense contains expense-related use cases.
package expense

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-insights/backend/internal/application/adapter"
)

// DeleteExpenseInput represents the input for expense deletion.
type DeleteExpenseInput struct {
	UserID    uuid.UUID
	ExpenseID uuid.UUID
}

// DeleteExpenseUseCase handles expense deletion logic. Deletion is a soft
// delete; the row is retained but disappears from listings and reports.
type DeleteExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
	reportCache adapter.ReportCache
}

// NewDeleteExpenseUseCase creates a new DeleteExpenseUseCase instance.
func NewDeleteExpenseUseCase(
	expenseRepo adapter.ExpenseRepository,
	reportCache adapter.ReportCache,
) *DeleteExpenseUseCase {
	return &DeleteExpenseUseCase{
		expenseRepo: expenseRepo,
		reportCache: reportCache,
	}
}

// Execute performs the expense soft deletion.
func (uc *DeleteExpenseUseCase) Execute(ctx context.Context, input DeleteExpenseInput) error {
	expense, err := findOwnedExpense(ctx, uc.expenseRepo, input.UserID, input.ExpenseID)
	if err != nil {
		return err
	}

	if err := uc.expenseRepo.SoftDelete(ctx, expense.ID); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	uc.reportCache.InvalidateUser(ctx, input.UserID)
	return nil
}
