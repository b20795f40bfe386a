// Package expense contains expense-related use cases.
package expense

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/expense-insights/backend/internal/application/adapter"
	"github.com/expense-insights/backend/internal/domain/entity"
	domainerror "github.com/expense-insights/backend/internal/domain/error"
)

// ListExpensesInput represents the input for listing expenses. Month and
// Year (when both set) take precedence over the explicit date range.
type ListExpensesInput struct {
	UserID   uuid.UUID
	Category *entity.CategoryID
	Month    int // 0 means unset
	Year     int // 0 means unset
	DateFrom *time.Time
	DateTo   *time.Time
	Search   string
	OrderAsc bool
	Page     int
	PerPage  int
}

// ListExpensesOutput represents the output of listing expenses.
type ListExpensesOutput struct {
	Expenses   []*ExpenseOutput
	Total      int64
	Page       int
	PerPage    int
	TotalPages int
}

// ListExpensesUseCase handles expense listing logic.
type ListExpensesUseCase struct {
	expenseRepo adapter.ExpenseRepository
	catalog     *entity.Catalog
}

// NewListExpensesUseCase creates a new ListExpensesUseCase instance.
func NewListExpensesUseCase(expenseRepo adapter.ExpenseRepository, catalog *entity.Catalog) *ListExpensesUseCase {
	return &ListExpensesUseCase{
		expenseRepo: expenseRepo,
		catalog:     catalog,
	}
}

// Execute performs the expense listing.
func (uc *ListExpensesUseCase) Execute(ctx context.Context, input ListExpensesInput) (*ListExpensesOutput, error) {
	if input.Category != nil && !uc.catalog.Contains(*input.Category) {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidCategory,
			"category is not part of the catalog",
			domainerror.ErrInvalidCategory,
		)
	}

	page := input.Page
	if page < 1 {
		page = 1
	}
	perPage := input.PerPage
	if perPage < 1 {
		perPage = 20
	}
	if perPage > 100 {
		perPage = 100
	}

	dateFrom, dateTo := input.DateFrom, input.DateTo
	if input.Month >= 1 && input.Month <= 12 && input.Year > 0 {
		start := time.Date(input.Year, time.Month(input.Month), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, -1)
		dateFrom, dateTo = &start, &end
	}

	result, err := uc.expenseRepo.FindByFilter(ctx, input.UserID, adapter.ExpenseFilter{
		Category: input.Category,
		DateFrom: dateFrom,
		DateTo:   dateTo,
		Search:   input.Search,
		OrderAsc: input.OrderAsc,
	}, adapter.ExpensePagination{
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		return nil, err
	}

	expenses := make([]*ExpenseOutput, len(result.Expenses))
	for i, e := range result.Expenses {
		expenses[i] = toExpenseOutput(e, uc.catalog)
	}

	return &ListExpensesOutput{
		Expenses:   expenses,
		Total:      result.Total,
		Page:       result.Page,
		PerPage:    result.PerPage,
		TotalPages: result.TotalPages,
	}, nil
}
