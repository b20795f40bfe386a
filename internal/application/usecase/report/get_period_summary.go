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

// GetPeriodSummaryInput represents the input for the period summary report.
type GetPeriodSummaryInput struct {
	UserID uuid.UUID
	Month  int
	Year   int

	// IncludeInsights attaches derived insights to the summary. The
	// resumo flows ask for them; the annual and proportion flows do not.
	IncludeInsights bool

	// Now is the reference time for insight windows.
	Now time.Time
}

// CategorySummary holds one category's current vs previous-month totals.
type CategorySummary struct {
	ID          entity.CategoryID
	Label       string
	Icon        string
	Current     decimal.Decimal
	Previous    decimal.Decimal
	VariancePct float64
}

// GetPeriodSummaryOutput represents the assembled period summary report.
type GetPeriodSummaryOutput struct {
	Month             int
	MonthName         string
	Year              int
	PreviousMonth     int
	PreviousMonthName string
	PreviousYear      int
	Total             decimal.Decimal
	PreviousTotal     decimal.Decimal
	TotalVariancePct  float64
	Categories        []CategorySummary
	Insights          []entity.Insight
}

// GetPeriodSummaryUseCase assembles the month vs previous-month summary.
type GetPeriodSummaryUseCase struct {
	expenseRepo adapter.ExpenseRepository
	agg         *Aggregator
	catalog     *entity.Catalog
	insights    *InsightService
	bounds      PeriodBounds
}

// NewGetPeriodSummaryUseCase creates a new GetPeriodSummaryUseCase instance.
func NewGetPeriodSummaryUseCase(
	expenseRepo adapter.ExpenseRepository,
	catalog *entity.Catalog,
	insights *InsightService,
	bounds PeriodBounds,
) *GetPeriodSummaryUseCase {
	return &GetPeriodSummaryUseCase{
		expenseRepo: expenseRepo,
		agg:         NewAggregator(catalog),
		catalog:     catalog,
		insights:    insights,
		bounds:      bounds,
	}
}

// Execute assembles the period summary report for the given month.
func (uc *GetPeriodSummaryUseCase) Execute(ctx context.Context, input GetPeriodSummaryInput) (*GetPeriodSummaryOutput, error) {
	prevMonth, prevYear := PreviousMonth(input.Month, input.Year)

	currentStart, currentEnd, err := uc.bounds.MonthBounds(input.Month, input.Year)
	if err != nil {
		return nil, err
	}
	prevStart, prevEnd, err := uc.bounds.MonthBounds(prevMonth, prevYear)
	if err != nil {
		return nil, err
	}

	current, err := uc.expenseRepo.FetchExpenses(ctx, input.UserID, adapter.ExpenseFilter{
		DateFrom: &currentStart,
		DateTo:   &currentEnd,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current month expenses: %w", err)
	}

	previous, err := uc.expenseRepo.FetchExpenses(ctx, input.UserID, adapter.ExpenseFilter{
		DateFrom: &prevStart,
		DateTo:   &prevEnd,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch previous month expenses: %w", err)
	}

	currentTotals := uc.agg.TotalsByCategory(current)
	previousTotals := uc.agg.TotalsByCategory(previous)

	categories := make([]CategorySummary, 0, uc.catalog.Len())
	for _, entry := range uc.catalog.Entries() {
		categories = append(categories, CategorySummary{
			ID:          entry.ID,
			Label:       entry.Label,
			Icon:        entry.Icon,
			Current:     currentTotals[entry.ID],
			Previous:    previousTotals[entry.ID],
			VariancePct: VariancePercent(currentTotals[entry.ID], previousTotals[entry.ID]),
		})
	}

	total := uc.agg.GrandTotal(current)
	previousTotal := uc.agg.GrandTotal(previous)

	output := &GetPeriodSummaryOutput{
		Month:             input.Month,
		MonthName:         MonthName(input.Month),
		Year:              input.Year,
		PreviousMonth:     prevMonth,
		PreviousMonthName: MonthName(prevMonth),
		PreviousYear:      prevYear,
		Total:             total,
		PreviousTotal:     previousTotal,
		TotalVariancePct:  VariancePercent(total, previousTotal),
		Categories:        categories,
	}

	if input.IncludeInsights {
		insights, err := uc.insights.Derive(ctx, input.UserID, input.Now)
		if err != nil {
			return nil, err
		}
		output.Insights = insights
	}

	return output, nil
}
