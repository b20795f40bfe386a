// Package report contains the expense aggregation and report use cases.
package report

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-insights/backend/internal/domain/entity"
)

func TestTotalsByCategory(t *testing.T) {
	userID := uuid.New()
	agg := NewAggregator(entity.DefaultCatalog())

	expenses := []*entity.Expense{
		expense(userID, entity.CategoryAlimentacao, "45.90", day(2023, time.June, 2)),
		expense(userID, entity.CategoryTransporte, "35.50", day(2023, time.June, 10)),
		expense(userID, entity.CategoryLazer, "28.00", day(2023, time.June, 20)),
	}

	totals := agg.TotalsByCategory(expenses)

	if len(totals) != entity.DefaultCatalog().Len() {
		t.Fatalf("expected %d categories, got %d", entity.DefaultCatalog().Len(), len(totals))
	}
	if !totals[entity.CategoryAlimentacao].Equal(decimal.RequireFromString("45.90")) {
		t.Errorf("expected food total 45.90, got %s", totals[entity.CategoryAlimentacao])
	}
	if !totals[entity.CategoryMoradia].IsZero() {
		t.Errorf("expected housing total zero, got %s", totals[entity.CategoryMoradia])
	}
	if !totals[entity.CategorySaude].IsZero() {
		t.Errorf("expected health total zero, got %s", totals[entity.CategorySaude])
	}
}

func TestTotalsByCategoryEmpty(t *testing.T) {
	agg := NewAggregator(entity.DefaultCatalog())

	totals := agg.TotalsByCategory(nil)

	if len(totals) != entity.DefaultCatalog().Len() {
		t.Fatalf("expected %d categories, got %d", entity.DefaultCatalog().Len(), len(totals))
	}
	for id, total := range totals {
		if !total.IsZero() {
			t.Errorf("expected zero total for %s, got %s", id, total)
		}
	}
}

func TestGrandTotal(t *testing.T) {
	userID := uuid.New()
	agg := NewAggregator(entity.DefaultCatalog())

	expenses := []*entity.Expense{
		expense(userID, entity.CategoryAlimentacao, "45.90", day(2023, time.June, 2)),
		expense(userID, entity.CategoryTransporte, "35.50", day(2023, time.June, 10)),
		expense(userID, entity.CategoryLazer, "28.00", day(2023, time.June, 20)),
	}

	total := agg.GrandTotal(expenses)
	if !total.Equal(decimal.RequireFromString("109.40")) {
		t.Errorf("expected grand total 109.40, got %s", total)
	}

	if !agg.GrandTotal(nil).IsZero() {
		t.Error("expected zero grand total for no expenses")
	}
}

func TestProportions(t *testing.T) {
	userID := uuid.New()
	agg := NewAggregator(entity.DefaultCatalog())

	expenses := []*entity.Expense{
		expense(userID, entity.CategoryAlimentacao, "45.90", day(2023, time.June, 2)),
		expense(userID, entity.CategoryTransporte, "35.50", day(2023, time.June, 10)),
		expense(userID, entity.CategoryLazer, "28.00", day(2023, time.June, 20)),
	}

	totals := agg.TotalsByCategory(expenses)
	proportions := agg.Proportions(totals, agg.GrandTotal(expenses))

	food := proportions[entity.CategoryAlimentacao]
	if math.Abs(food-41.96) > 0.01 {
		t.Errorf("expected food proportion near 41.96, got %.4f", food)
	}

	var sum float64
	for _, pct := range proportions {
		sum += pct
	}
	if math.Abs(sum-100) > 0.01 {
		t.Errorf("expected proportions to sum to 100, got %.4f", sum)
	}
}

func TestProportionsZeroTotal(t *testing.T) {
	agg := NewAggregator(entity.DefaultCatalog())

	totals := agg.TotalsByCategory(nil)
	proportions := agg.Proportions(totals, decimal.Zero)

	for id, pct := range proportions {
		if pct != 0 {
			t.Errorf("expected zero proportion for %s, got %.4f", id, pct)
		}
	}
}

func TestTopCategories(t *testing.T) {
	userID := uuid.New()
	agg := NewAggregator(entity.DefaultCatalog())

	expenses := []*entity.Expense{
		expense(userID, entity.CategoryAlimentacao, "50.00", day(2023, time.June, 2)),
		expense(userID, entity.CategoryTransporte, "80.00", day(2023, time.June, 5)),
		expense(userID, entity.CategoryLazer, "30.00", day(2023, time.June, 8)),
		expense(userID, entity.CategorySaude, "80.00", day(2023, time.June, 9)),
	}

	t.Run("orders by total descending and omits zeros", func(t *testing.T) {
		top := agg.TopCategories(expenses, -1)
		if len(top) != 4 {
			t.Fatalf("expected 4 entries, got %d", len(top))
		}
		for i := 1; i < len(top); i++ {
			if top[i].Total.GreaterThan(top[i-1].Total) {
				t.Errorf("entry %d (%s) out of order", i, top[i].Category)
			}
		}
	})

	t.Run("breaks ties by category id", func(t *testing.T) {
		top := agg.TopCategories(expenses, 2)
		if top[0].Category != entity.CategorySaude {
			t.Errorf("expected saude first on tie, got %s", top[0].Category)
		}
		if top[1].Category != entity.CategoryTransporte {
			t.Errorf("expected transporte second on tie, got %s", top[1].Category)
		}
	})

	t.Run("limits to n entries", func(t *testing.T) {
		top := agg.TopCategories(expenses, 3)
		if len(top) != 3 {
			t.Errorf("expected 3 entries, got %d", len(top))
		}
	})
}

func TestMonthlyTotals(t *testing.T) {
	userID := uuid.New()
	agg := NewAggregator(entity.DefaultCatalog())
	now := day(2023, time.June, 15)

	expenses := []*entity.Expense{
		expense(userID, entity.CategoryAlimentacao, "100.00", day(2023, time.June, 2)),
		expense(userID, entity.CategoryAlimentacao, "50.00", day(2023, time.April, 10)),
		expense(userID, entity.CategoryTransporte, "25.00", day(2023, time.April, 20)),
	}

	totals := agg.MonthlyTotals(expenses, 6, now)

	if len(totals) != 6 {
		t.Fatalf("expected exactly 6 entries, got %d", len(totals))
	}
	if totals[0].Period != (PeriodKey{Month: 1, Year: 2023}) {
		t.Errorf("expected first period 1/2023, got %d/%d", totals[0].Period.Month, totals[0].Period.Year)
	}
	if totals[5].Period != (PeriodKey{Month: 6, Year: 2023}) {
		t.Errorf("expected last period 6/2023, got %d/%d", totals[5].Period.Month, totals[5].Period.Year)
	}
	if !totals[3].Total.Equal(decimal.RequireFromString("75.00")) {
		t.Errorf("expected april total 75.00, got %s", totals[3].Total)
	}
	if !totals[5].Total.Equal(decimal.RequireFromString("100.00")) {
		t.Errorf("expected june total 100.00, got %s", totals[5].Total)
	}
	for _, idx := range []int{0, 1, 2, 4} {
		if !totals[idx].Total.IsZero() {
			t.Errorf("expected zero total at index %d, got %s", idx, totals[idx].Total)
		}
	}
}

func TestMonthlyTotalsAcrossYearBoundary(t *testing.T) {
	userID := uuid.New()
	agg := NewAggregator(entity.DefaultCatalog())
	now := day(2024, time.February, 10)

	expenses := []*entity.Expense{
		expense(userID, entity.CategoryAlimentacao, "40.00", day(2023, time.December, 5)),
	}

	totals := agg.MonthlyTotals(expenses, 4, now)

	if len(totals) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(totals))
	}
	if totals[0].Period != (PeriodKey{Month: 11, Year: 2023}) {
		t.Errorf("expected first period 11/2023, got %d/%d", totals[0].Period.Month, totals[0].Period.Year)
	}
	if !totals[1].Total.Equal(decimal.RequireFromString("40.00")) {
		t.Errorf("expected december total 40.00, got %s", totals[1].Total)
	}
}

func TestAnnualMatrixFor(t *testing.T) {
	userID := uuid.New()
	catalog := entity.DefaultCatalog()
	agg := NewAggregator(catalog)

	expenses := []*entity.Expense{
		expense(userID, entity.CategoryAlimentacao, "100.00", day(2023, time.March, 5)),
		expense(userID, entity.CategoryAlimentacao, "50.00", day(2023, time.March, 20)),
		expense(userID, entity.CategoryTransporte, "30.00", day(2023, time.July, 1)),
		expense(userID, entity.CategoryAlimentacao, "999.00", day(2022, time.March, 5)), // outside year
	}

	matrix := agg.AnnualMatrixFor(expenses, 2023)

	if len(matrix.PerCategory) != catalog.Len() {
		t.Fatalf("expected %d category rows, got %d", catalog.Len(), len(matrix.PerCategory))
	}

	food := matrix.PerCategory[entity.CategoryAlimentacao]
	if !food.Monthly[2].Equal(decimal.RequireFromString("150.00")) {
		t.Errorf("expected food march total 150.00, got %s", food.Monthly[2])
	}
	if !food.AnnualTotal.Equal(decimal.RequireFromString("150.00")) {
		t.Errorf("expected food annual total 150.00, got %s", food.AnnualTotal)
	}

	if !matrix.MonthlyTotals[6].Equal(decimal.RequireFromString("30.00")) {
		t.Errorf("expected july total 30.00, got %s", matrix.MonthlyTotals[6])
	}
	if !matrix.GrandTotal.Equal(decimal.RequireFromString("180.00")) {
		t.Errorf("expected grand total 180.00, got %s", matrix.GrandTotal)
	}

	housing := matrix.PerCategory[entity.CategoryMoradia]
	for i, total := range housing.Monthly {
		if !total.IsZero() {
			t.Errorf("expected zero housing total at month %d, got %s", i+1, total)
		}
	}
}

func TestVariancePercent(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		previous string
		want     float64
	}{
		{name: "increase", current: "150.00", previous: "100.00", want: 50},
		{name: "decrease", current: "50.00", previous: "100.00", want: -50},
		{name: "unchanged", current: "100.00", previous: "100.00", want: 0},
		{name: "zero previous defines zero variance", current: "150.00", previous: "0", want: 0},
		{name: "both zero", current: "0", previous: "0", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VariancePercent(decimal.RequireFromString(tt.current), decimal.RequireFromString(tt.previous))
			if math.Abs(got-tt.want) > 0.0001 {
				t.Errorf("expected %.2f, got %.4f", tt.want, got)
			}
		})
	}
}
