// Package expense contains expense-related use cases.
package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-insights/backend/internal/application/adapter"
	"github.com/expense-insights/backend/internal/domain/entity"
)

// UpdateExpenseInput represents the input for expense update. All writable
// fields are replaced.
type UpdateExpenseInput struct {
	UserID      uuid.UUID
	ExpenseID   uuid.UUID
	Description string
	Category    entity.CategoryID
	Amount      decimal.Decimal
	Date        time.Time
}

// UpdateExpenseOutput represents the output of expense update.
type UpdateExpenseOutput struct {
	Expense *ExpenseOutput
}

// UpdateExpenseUseCase handles expense update logic.
type UpdateExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
	reportCache adapter.ReportCache
	catalog     *entity.Catalog
}

// NewUpdateExpenseUseCase creates a new UpdateExpenseUseCase instance.
func NewUpdateExpenseUseCase(
	expenseRepo adapter.ExpenseRepository,
	reportCache adapter.ReportCache,
	catalog *entity.Catalog,
) *UpdateExpenseUseCase {
	return &UpdateExpenseUseCase{
		expenseRepo: expenseRepo,
		reportCache: reportCache,
		catalog:     catalog,
	}
}

// Execute performs the expense update.
func (uc *UpdateExpenseUseCase) Execute(ctx context.Context, input UpdateExpenseInput) (*UpdateExpenseOutput, error) {
	if err := validateExpenseFields(uc.catalog, input.Description, input.Category, input.Amount, input.Date); err != nil {
		return nil, err
	}

	expense, err := findOwnedExpense(ctx, uc.expenseRepo, input.UserID, input.ExpenseID)
	if err != nil {
		return nil, err
	}

	expense.Description = input.Description
	expense.Category = input.Category
	expense.Amount = input.Amount.Round(2)
	expense.Date = input.Date
	expense.UpdatedAt = time.Now().UTC()

	if err := uc.expenseRepo.Update(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	uc.reportCache.InvalidateUser(ctx, input.UserID)

	return &UpdateExpenseOutput{Expense: toExpenseOutput(expense, uc.catalog)}, nil
}
