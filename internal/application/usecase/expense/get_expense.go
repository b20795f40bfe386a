// Package expense contains expense-related use cases.
package expense

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-insights/backend/internal/application/adapter"
	"github.com/expense-insights/backend/internal/domain/entity"
	domainerror "github.com/expense-insights/backend/internal/domain/error"
)

// GetExpenseInput represents the input for fetching a single expense.
type GetExpenseInput struct {
	UserID    uuid.UUID
	ExpenseID uuid.UUID
}

// GetExpenseOutput represents the output of fetching a single expense.
type GetExpenseOutput struct {
	Expense *ExpenseOutput
}

// GetExpenseUseCase handles single expense retrieval.
type GetExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
	catalog     *entity.Catalog
}

// NewGetExpenseUseCase creates a new GetExpenseUseCase instance.
func NewGetExpenseUseCase(expenseRepo adapter.ExpenseRepository, catalog *entity.Catalog) *GetExpenseUseCase {
	return &GetExpenseUseCase{
		expenseRepo: expenseRepo,
		catalog:     catalog,
	}
}

// Execute fetches the expense and verifies ownership. An expense owned by
// another user is reported as not found, not as forbidden, so record
// existence never leaks across accounts.
func (uc *GetExpenseUseCase) Execute(ctx context.Context, input GetExpenseInput) (*GetExpenseOutput, error) {
	expense, err := findOwnedExpense(ctx, uc.expenseRepo, input.UserID, input.ExpenseID)
	if err != nil {
		return nil, err
	}
	return &GetExpenseOutput{Expense: toExpenseOutput(expense, uc.catalog)}, nil
}

// findOwnedExpense fetches a non-deleted expense and checks it belongs to
// userID.
func findOwnedExpense(
	ctx context.Context,
	repo adapter.ExpenseRepository,
	userID, expenseID uuid.UUID,
) (*entity.Expense, error) {
	expense, err := repo.FindByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense == nil || expense.UserID != userID {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeExpenseNotFound,
			"expense not found",
			domainerror.ErrExpenseNotFound,
		)
	}
	return expense, nil
}
