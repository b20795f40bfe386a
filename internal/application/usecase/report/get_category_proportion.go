// Package report contains the expense aggregation and report use cases.
package report

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-insights/backend/internal/application/adapter"
	"github.com/expense-insights/backend/internal/domain/entity"
)

// GetCategoryProportionInput represents the input for the proportion report.
type GetCategoryProportionInput struct {
	UserID uuid.UUID
	Month  int
	Year   int
}

// ProportionItem holds one category's share of a period's spending.
type ProportionItem struct {
	ID      entity.CategoryID
	Label   string
	Icon    string
	Value   decimal.Decimal
	Percent float64
}

// GetCategoryProportionOutput represents the assembled proportion report.
type GetCategoryProportionOutput struct {
	Month      int
	MonthName  string
	Year       int
	Total      decimal.Decimal
	Categories []ProportionItem
}

// GetCategoryProportionUseCase assembles the category proportion report.
// The internal computation zero-fills every catalog category; the emitted
// list deliberately omits zero-valued ones.
type GetCategoryProportionUseCase struct {
	expenseRepo adapter.ExpenseRepository
	agg         *Aggregator
	catalog     *entity.Catalog
	bounds      PeriodBounds
}

// NewGetCategoryProportionUseCase creates a new GetCategoryProportionUseCase instance.
func NewGetCategoryProportionUseCase(
	expenseRepo adapter.ExpenseRepository,
	catalog *entity.Catalog,
	bounds PeriodBounds,
) *GetCategoryProportionUseCase {
	return &GetCategoryProportionUseCase{
		expenseRepo: expenseRepo,
		agg:         NewAggregator(catalog),
		catalog:     catalog,
		bounds:      bounds,
	}
}

// Execute assembles the proportion report for the given month.
func (uc *GetCategoryProportionUseCase) Execute(ctx context.Context, input GetCategoryProportionInput) (*GetCategoryProportionOutput, error) {
	start, end, err := uc.bounds.MonthBounds(input.Month, input.Year)
	if err != nil {
		return nil, err
	}

	expenses, err := uc.expenseRepo.FetchExpenses(ctx, input.UserID, adapter.ExpenseFilter{
		DateFrom: &start,
		DateTo:   &end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch expenses: %w", err)
	}

	totals := uc.agg.TotalsByCategory(expenses)
	grandTotal := uc.agg.GrandTotal(expenses)
	percents := uc.agg.Proportions(totals, grandTotal)

	items := make([]ProportionItem, 0, uc.catalog.Len())
	for _, entry := range uc.catalog.Entries() {
		if totals[entry.ID].IsZero() {
			continue
		}
		items = append(items, ProportionItem{
			ID:      entry.ID,
			Label:   entry.Label,
			Icon:    entry.Icon,
			Value:   totals[entry.ID],
			Percent: percents[entry.ID],
		})
	}

	// Largest share first; equal values keep catalog order.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Value.GreaterThan(items[j].Value)
	})

	return &GetCategoryProportionOutput{
		Month:      input.Month,
		MonthName:  MonthName(input.Month),
		Year:       input.Year,
		Total:      grandTotal,
		Categories: items,
	}, nil
}
