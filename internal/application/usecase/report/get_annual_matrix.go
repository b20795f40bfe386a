// Package report contains the expense aggregation and report use cases.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-insights/backend/internal/application/adapter"
	"github.com/expense-insights/backend/internal/domain/entity"
)

// GetAnnualMatrixInput represents the input for the annual report.
type GetAnnualMatrixInput struct {
	UserID uuid.UUID
	Year   int
}

// MonthValue pairs a month number with an amount, used in the transport
// reshaping of a category's year row.
type MonthValue struct {
	Month int
	Value decimal.Decimal
}

// AnnualCategory is one category's row of the annual report.
type AnnualCategory struct {
	ID          entity.CategoryID
	Label       string
	Icon        string
	AnnualTotal decimal.Decimal
	Months      []MonthValue // always 12 entries, January first
}

// AnnualMonth is one month's column total of the annual report.
type AnnualMonth struct {
	Month int
	Name  string
	Total decimal.Decimal
}

// GetAnnualMatrixOutput represents the assembled annual report.
type GetAnnualMatrixOutput struct {
	Year        int
	AnnualTotal decimal.Decimal
	Categories  []AnnualCategory // all catalog categories, catalog order
	Months      []AnnualMonth    // always 12 entries
}

// GetAnnualMatrixUseCase assembles the year-by-category report.
type GetAnnualMatrixUseCase struct {
	expenseRepo adapter.ExpenseRepository
	agg         *Aggregator
	catalog     *entity.Catalog
	bounds      PeriodBounds
}

// NewGetAnnualMatrixUseCase creates a new GetAnnualMatrixUseCase instance.
func NewGetAnnualMatrixUseCase(
	expenseRepo adapter.ExpenseRepository,
	catalog *entity.Catalog,
	bounds PeriodBounds,
) *GetAnnualMatrixUseCase {
	return &GetAnnualMatrixUseCase{
		expenseRepo: expenseRepo,
		agg:         NewAggregator(catalog),
		catalog:     catalog,
		bounds:      bounds,
	}
}

// Execute assembles the annual report for the given year.
func (uc *GetAnnualMatrixUseCase) Execute(ctx context.Context, input GetAnnualMatrixInput) (*GetAnnualMatrixOutput, error) {
	if err := uc.bounds.ValidateYear(input.Year); err != nil {
		return nil, err
	}

	start := time.Date(input.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(input.Year, time.December, 31, 0, 0, 0, 0, time.UTC)

	expenses, err := uc.expenseRepo.FetchExpenses(ctx, input.UserID, adapter.ExpenseFilter{
		DateFrom: &start,
		DateTo:   &end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch expenses: %w", err)
	}

	matrix := uc.agg.AnnualMatrixFor(expenses, input.Year)

	categories := make([]AnnualCategory, 0, uc.catalog.Len())
	for _, entry := range uc.catalog.Entries() {
		row := matrix.PerCategory[entry.ID]

		months := make([]MonthValue, 12)
		for i := 0; i < 12; i++ {
			months[i] = MonthValue{Month: i + 1, Value: row.Monthly[i]}
		}

		categories = append(categories, AnnualCategory{
			ID:          entry.ID,
			Label:       entry.Label,
			Icon:        entry.Icon,
			AnnualTotal: row.AnnualTotal,
			Months:      months,
		})
	}

	months := make([]AnnualMonth, 12)
	for i := 0; i < 12; i++ {
		months[i] = AnnualMonth{
			Month: i + 1,
			Name:  MonthName(i + 1),
			Total: matrix.MonthlyTotals[i],
		}
	}

	return &GetAnnualMatrixOutput{
		Year:        input.Year,
		AnnualTotal: matrix.GrandTotal,
		Categories:  categories,
		Months:      months,
	}, nil
}
