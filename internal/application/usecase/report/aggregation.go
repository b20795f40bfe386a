// Package report contains the expense aggregation and report use cases.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-insights/backend/internal/domain/entity"
)

// Aggregator turns a snapshot of expense records into totals, breakdowns
// and matrices. Every method is a pure function of its inputs plus the
// catalog; nothing is mutated, so concurrent use needs no coordination.
type Aggregator struct {
	catalog *entity.Catalog
}

// NewAggregator creates an Aggregator over the given category catalog.
func NewAggregator(catalog *entity.Catalog) *Aggregator {
	return &Aggregator{catalog: catalog}
}

// CategoryTotal pairs a category with an aggregated amount.
type CategoryTotal struct {
	Category entity.CategoryID
	Total    decimal.Decimal
}

// MonthTotal pairs a period with an aggregated amount.
type MonthTotal struct {
	Period PeriodKey
	Total  decimal.Decimal
}

// CategoryYear holds one category's row of an annual matrix. Monthly is
// indexed 0..11 for months 1..12.
type CategoryYear struct {
	Monthly     [12]decimal.Decimal
	AnnualTotal decimal.Decimal
}

// AnnualMatrix is the full year-by-category aggregation. Every catalog
// category and all 12 months are present regardless of data sparsity.
type AnnualMatrix struct {
	PerCategory   map[entity.CategoryID]*CategoryYear
	MonthlyTotals [12]decimal.Decimal
	GrandTotal    decimal.Decimal
}

// TotalsByCategory sums expense amounts per category. Every catalog
// category appears in the result even with zero expenses; downstream
// consumers rely on the complete key set.
func (a *Aggregator) TotalsByCategory(expenses []*entity.Expense) map[entity.CategoryID]decimal.Decimal {
	totals := make(map[entity.CategoryID]decimal.Decimal, a.catalog.Len())
	for _, id := range a.catalog.IDs() {
		totals[id] = decimal.Zero
	}
	for _, e := range expenses {
		totals[e.Category] = totals[e.Category].Add(e.Amount)
	}
	return totals
}

// GrandTotal sums all expense amounts. Empty input yields zero, not an error.
func (a *Aggregator) GrandTotal(expenses []*entity.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// TopCategories returns up to n categories ordered by total descending.
// Zero-valued categories are omitted; ties are broken by category id
// ascending so the ordering is deterministic.
func (a *Aggregator) TopCategories(expenses []*entity.Expense, n int) []CategoryTotal {
	totals := a.TotalsByCategory(expenses)

	ranked := make([]CategoryTotal, 0, len(totals))
	for _, id := range a.catalog.IDs() {
		if totals[id].IsZero() {
			continue
		}
		ranked = append(ranked, CategoryTotal{Category: id, Total: totals[id]})
	}

	sort.Slice(ranked, func(i, j int) bool {
		cmp := ranked[i].Total.Cmp(ranked[j].Total)
		if cmp != 0 {
			return cmp > 0
		}
		return ranked[i].Category < ranked[j].Category
	})

	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// MonthlyTotals buckets expenses into exactly monthCount trailing calendar
// months ending at now's month, zero-filled and ordered oldest to newest.
// Expenses outside the window are ignored.
func (a *Aggregator) MonthlyTotals(expenses []*entity.Expense, monthCount int, now time.Time) []MonthTotal {
	if monthCount < 1 {
		return nil
	}

	byPeriod := make(map[PeriodKey]decimal.Decimal, monthCount)
	for _, e := range expenses {
		key := PeriodKeyFor(e.Date)
		byPeriod[key] = byPeriod[key].Add(e.Amount)
	}

	result := make([]MonthTotal, 0, monthCount)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(monthCount - 1), 0)
	for i := 0; i < monthCount; i++ {
		key := PeriodKeyFor(first.AddDate(0, i, 0))
		total := decimal.Zero
		if t, ok := byPeriod[key]; ok {
			total = t
		}
		result = append(result, MonthTotal{Period: key, Total: total})
	}
	return result
}

// AnnualMatrixFor aggregates expenses into the 12-month by catalog matrix
// for the given year. Expenses dated outside the year are ignored. Month m
// lands at array index m-1.
func (a *Aggregator) AnnualMatrixFor(expenses []*entity.Expense, year int) *AnnualMatrix {
	matrix := &AnnualMatrix{
		PerCategory: make(map[entity.CategoryID]*CategoryYear, a.catalog.Len()),
		GrandTotal:  decimal.Zero,
	}
	for _, id := range a.catalog.IDs() {
		matrix.PerCategory[id] = &CategoryYear{AnnualTotal: decimal.Zero}
	}

	for _, e := range expenses {
		if e.Date.Year() != year {
			continue
		}
		idx := int(e.Date.Month()) - 1

		matrix.MonthlyTotals[idx] = matrix.MonthlyTotals[idx].Add(e.Amount)
		matrix.GrandTotal = matrix.GrandTotal.Add(e.Amount)

		row, ok := matrix.PerCategory[e.Category]
		if !ok {
			row = &CategoryYear{AnnualTotal: decimal.Zero}
			matrix.PerCategory[e.Category] = row
		}
		row.Monthly[idx] = row.Monthly[idx].Add(e.Amount)
		row.AnnualTotal = row.AnnualTotal.Add(e.Amount)
	}

	return matrix
}

// VariancePercent returns the percent change from previous to current.
// When previous is zero the variance is defined as 0; the division is
// never attempted, so no NaN or Inf can propagate into reports.
func VariancePercent(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		return 0
	}
	return current.Sub(previous).Div(previous).InexactFloat64() * 100
}

// Proportions returns each category's percentage of grandTotal. When the
// grand total is zero every percentage is 0.
func (a *Aggregator) Proportions(totals map[entity.CategoryID]decimal.Decimal, grandTotal decimal.Decimal) map[entity.CategoryID]float64 {
	proportions := make(map[entity.CategoryID]float64, len(totals))
	for id, total := range totals {
		if grandTotal.IsZero() {
			proportions[id] = 0
			continue
		}
		proportions[id] = total.Div(grandTotal).InexactFloat64() * 100
	}
	return proportions
}
