// Package report contains the expense aggregation and report use cases.
package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-insights/backend/internal/application/adapter"
	"github.com/expense-insights/backend/internal/domain/entity"
	domainerror "github.com/expense-insights/backend/internal/domain/error"
)

// evolutionMonths is how many trailing months the overview evolution
// series covers.
const evolutionMonths = 12

// GetOverviewInput represents the input for the overview report. DateFrom
// and DateTo default to the trailing year ending at Now.
type GetOverviewInput struct {
	UserID   uuid.UUID
	DateFrom *time.Time
	DateTo   *time.Time
	Now      time.Time
}

// OverviewPeriod describes the resolved date range of the report.
type OverviewPeriod struct {
	Start  time.Time
	End    time.Time
	Months int
}

// OverviewCategory is one of the most used categories in the period.
type OverviewCategory struct {
	ID    entity.CategoryID
	Label string
	Icon  string
	Total decimal.Decimal
}

// HeaviestMonth is the month with the highest spending in the period.
type HeaviestMonth struct {
	Month int
	Year  int
	Name  string
	Total decimal.Decimal
}

// EvolutionPoint is one month of the spending evolution series.
type EvolutionPoint struct {
	Month int
	Year  int
	Name  string
	Label string // "{month name}/{year}", the chart label
	Total decimal.Decimal
}

// GetOverviewOutput represents the assembled overview report.
type GetOverviewOutput struct {
	Period         OverviewPeriod
	Total          decimal.Decimal
	MonthlyAverage decimal.Decimal
	LargestExpense decimal.Decimal
	TopCategories  []OverviewCategory
	HeaviestMonth  *HeaviestMonth
	Breakdown      []ProportionItem
	Evolution      []EvolutionPoint
	Insights       []entity.Insight
}

// GetOverviewUseCase assembles the general overview report: period totals,
// category breakdown, 12-month evolution and derived insights.
type GetOverviewUseCase struct {
	expenseRepo adapter.ExpenseRepository
	agg         *Aggregator
	catalog     *entity.Catalog
	insights    *InsightService
}

// NewGetOverviewUseCase creates a new GetOverviewUseCase instance.
func NewGetOverviewUseCase(
	expenseRepo adapter.ExpenseRepository,
	catalog *entity.Catalog,
	insights *InsightService,
) *GetOverviewUseCase {
	return &GetOverviewUseCase{
		expenseRepo: expenseRepo,
		agg:         NewAggregator(catalog),
		catalog:     catalog,
		insights:    insights,
	}
}

// Execute assembles the overview report for the resolved date range.
func (uc *GetOverviewUseCase) Execute(ctx context.Context, input GetOverviewInput) (*GetOverviewOutput, error) {
	start, end := uc.resolvePeriod(input)
	if end.Before(start) {
		return nil, domainerror.NewReportError(
			domainerror.ErrCodeInvalidDateRange,
			"data final anterior à data inicial",
			domainerror.ErrInvalidDateRange,
		)
	}

	expenses, err := uc.expenseRepo.FetchExpenses(ctx, input.UserID, adapter.ExpenseFilter{
		DateFrom: &start,
		DateTo:   &end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch expenses: %w", err)
	}

	months := MonthsBetween(start, end)
	total := uc.agg.GrandTotal(expenses)

	evolution, err := uc.evolution(ctx, input.UserID, input.Now)
	if err != nil {
		return nil, err
	}

	insights, err := uc.insights.Derive(ctx, input.UserID, input.Now)
	if err != nil {
		return nil, err
	}

	return &GetOverviewOutput{
		Period:         OverviewPeriod{Start: start, End: end, Months: months},
		Total:          total,
		MonthlyAverage: total.Div(decimal.NewFromInt(int64(months))).Round(2),
		LargestExpense: largestExpense(expenses),
		TopCategories:  uc.topCategories(expenses, 3),
		HeaviestMonth:  heaviestMonth(expenses),
		Breakdown:      uc.breakdown(expenses, total),
		Evolution:      evolution,
		Insights:       insights,
	}, nil
}

// resolvePeriod applies the default trailing-year range.
func (uc *GetOverviewUseCase) resolvePeriod(input GetOverviewInput) (start, end time.Time) {
	now := time.Date(input.Now.Year(), input.Now.Month(), input.Now.Day(), 0, 0, 0, 0, time.UTC)

	end = now
	if input.DateTo != nil {
		end = *input.DateTo
	}
	start = now.AddDate(-1, 0, 0)
	if input.DateFrom != nil {
		start = *input.DateFrom
	}
	return start, end
}

// topCategories returns the n most used categories with display metadata.
func (uc *GetOverviewUseCase) topCategories(expenses []*entity.Expense, n int) []OverviewCategory {
	ranked := uc.agg.TopCategories(expenses, n)

	result := make([]OverviewCategory, len(ranked))
	for i, ct := range ranked {
		result[i] = OverviewCategory{
			ID:    ct.Category,
			Label: uc.catalog.Label(ct.Category),
			Icon:  uc.catalog.Icon(ct.Category),
			Total: ct.Total,
		}
	}
	return result
}

// breakdown returns the non-zero per-category totals with percentages,
// sorted descending by value.
func (uc *GetOverviewUseCase) breakdown(expenses []*entity.Expense, total decimal.Decimal) []ProportionItem {
	totals := uc.agg.TotalsByCategory(expenses)
	percents := uc.agg.Proportions(totals, total)

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

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Value.GreaterThan(items[j].Value)
	})
	return items
}

// evolution returns the zero-filled trailing 12-month series relative to now.
func (uc *GetOverviewUseCase) evolution(ctx context.Context, userID uuid.UUID, now time.Time) ([]EvolutionPoint, error) {
	start, end := MonthsAgo(now, evolutionMonths)
	expenses, err := uc.expenseRepo.FetchExpenses(ctx, userID, adapter.ExpenseFilter{
		DateFrom: &start,
		DateTo:   &end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch evolution expenses: %w", err)
	}

	series := uc.agg.MonthlyTotals(expenses, evolutionMonths, now)
	points := make([]EvolutionPoint, len(series))
	for i, mt := range series {
		name := MonthName(mt.Period.Month)
		points[i] = EvolutionPoint{
			Month: mt.Period.Month,
			Year:  mt.Period.Year,
			Name:  name,
			Label: fmt.Sprintf("%s/%d", name, mt.Period.Year),
			Total: mt.Total,
		}
	}
	return points, nil
}

// largestExpense returns the highest single expense amount, zero for empty input.
func largestExpense(expenses []*entity.Expense) decimal.Decimal {
	largest := decimal.Zero
	for _, e := range expenses {
		if e.Amount.GreaterThan(largest) {
			largest = e.Amount
		}
	}
	return largest
}

// heaviestMonth returns the month with the highest total, nil when there
// is no data. Ties keep the earliest month so the result is deterministic.
func heaviestMonth(expenses []*entity.Expense) *HeaviestMonth {
	byPeriod := make(map[PeriodKey]decimal.Decimal)
	for _, e := range expenses {
		key := PeriodKeyFor(e.Date)
		byPeriod[key] = byPeriod[key].Add(e.Amount)
	}
	if len(byPeriod) == 0 {
		return nil
	}

	periods := make([]PeriodKey, 0, len(byPeriod))
	for key := range byPeriod {
		periods = append(periods, key)
	}
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Before(periods[j])
	})

	best := periods[0]
	for _, key := range periods[1:] {
		if byPeriod[key].GreaterThan(byPeriod[best]) {
			best = key
		}
	}

	return &HeaviestMonth{
		Month: best.Month,
		Year:  best.Year,
		Name:  MonthName(best.Month),
		Total: byPeriod[best],
	}
}
