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

// CreateExpenseInput represents the input for expense creation.
type CreateExpenseInput struct {
	UserID      uuid.UUID
	Description string
	Category    entity.CategoryID
	Amount      decimal.Decimal
	Date        time.Time
}

// CreateExpenseOutput represents the output of expense creation.
type CreateExpenseOutput struct {
	Expense *ExpenseOutput
}

// CreateExpenseUseCase handles expense creation logic.
type CreateExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
	reportCache adapter.ReportCache
	catalog     *entity.Catalog
}

// NewCreateExpenseUseCase creates a new CreateExpenseUseCase instance.
func NewCreateExpenseUseCase(
	expenseRepo adapter.ExpenseRepository,
	reportCache adapter.ReportCache,
	catalog *entity.Catalog,
) *CreateExpenseUseCase {
	return &CreateExpenseUseCase{
		expenseRepo: expenseRepo,
		reportCache: reportCache,
		catalog:     catalog,
	}
}

// Execute performs the expense creation.
func (uc *CreateExpenseUseCase) Execute(ctx context.Context, input CreateExpenseInput) (*CreateExpenseOutput, error) {
	if err := validateExpenseFields(uc.catalog, input.Description, input.Category, input.Amount, input.Date); err != nil {
		return nil, err
	}

	expense := entity.NewExpense(
		input.UserID,
		input.Description,
		input.Category,
		input.Amount.Round(2),
		input.Date,
	)

	if err := uc.expenseRepo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	// Stored aggregates changed; stale cached reports must not survive.
	uc.reportCache.InvalidateUser(ctx, input.UserID)

	return &CreateExpenseOutput{Expense: toExpenseOutput(expense, uc.catalog)}, nil
}
