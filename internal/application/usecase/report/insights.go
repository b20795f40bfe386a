// Package report contains the expense aggregation and report use cases.
package report

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-insights/backend/internal/application/adapter"
	"github.com/expense-insights/backend/internal/domain/entity"
)

// InsightThresholds holds the tunable cutoffs for insight derivation.
// The values come from configuration, not hardcoded call sites.
type InsightThresholds struct {
	// TrendDeadZonePct is the variance band around 0% within which no
	// overall trend insight is emitted, to suppress noise.
	TrendDeadZonePct float64

	// SpikeIncreasePct is the last-month variance above which a category
	// spike insight fires.
	SpikeIncreasePct float64

	// SpikeDecreasePct is the magnitude of negative variance beyond which
	// a category reduction insight fires.
	SpikeDecreasePct float64

	// MaterialityAmount is the minimum absolute amount below which
	// percentage-based spike detection is suppressed.
	MaterialityAmount decimal.Decimal

	// AnomalousMonthPct is how far above the trailing average a month's
	// total must be to be flagged.
	AnomalousMonthPct float64
}

// DefaultInsightThresholds returns the product defaults.
func DefaultInsightThresholds() InsightThresholds {
	return InsightThresholds{
		TrendDeadZonePct:  5,
		SpikeIncreasePct:  30,
		SpikeDecreasePct:  20,
		MaterialityAmount: decimal.NewFromInt(100),
		AnomalousMonthPct: 30,
	}
}

// InsightService derives qualitative observations from a user's spending
// over rolling windows. It is stateless; the reference time is always an
// explicit input so time-sensitive insights are deterministic under test.
type InsightService struct {
	expenseRepo adapter.ExpenseRepository
	agg         *Aggregator
	catalog     *entity.Catalog
	thresholds  InsightThresholds
}

// NewInsightService creates a new InsightService instance.
func NewInsightService(
	expenseRepo adapter.ExpenseRepository,
	catalog *entity.Catalog,
	thresholds InsightThresholds,
) *InsightService {
	return &InsightService{
		expenseRepo: expenseRepo,
		agg:         NewAggregator(catalog),
		catalog:     catalog,
		thresholds:  thresholds,
	}
}

// Derive computes the ordered insight list for userID relative to now.
// Rules run in a fixed order and append as they fire; the output order is
// the emission order. No qualifying condition yields an empty list, which
// is a valid result, not an error.
func (s *InsightService) Derive(ctx context.Context, userID uuid.UUID, now time.Time) ([]entity.Insight, error) {
	// One 12-month snapshot covers every rolling window; the narrower
	// windows are sliced from it in memory.
	start12, end := MonthsAgo(now, 12)
	expenses, err := s.expenseRepo.FetchExpenses(ctx, userID, adapter.ExpenseFilter{
		DateFrom: &start12,
		DateTo:   &end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch expenses for insights: %w", err)
	}

	start6, _ := MonthsAgo(now, 6)
	start3, _ := MonthsAgo(now, 3)
	start1, _ := MonthsAgo(now, 1)

	last6 := sliceWindow(expenses, start6, end)
	last3 := sliceWindow(expenses, start3, end)
	last1 := sliceWindow(expenses, start1, end)

	insights := make([]entity.Insight, 0, 4)
	insights = append(insights, s.overallTrend(last6, last3)...)
	insights = append(insights, s.categorySpikes(last1, last3)...)
	insights = append(insights, s.dormantCategory(last3)...)
	insights = append(insights, s.anomalousMonth(expenses)...)
	return insights, nil
}

// overallTrend compares the average monthly spend of the most recent 3
// months against the 3 months before that.
func (s *InsightService) overallTrend(last6, last3 []*entity.Expense) []entity.Insight {
	three := decimal.NewFromInt(3)
	avg3 := s.agg.GrandTotal(last3).Div(three)
	prevAvg := s.agg.GrandTotal(last6).Sub(s.agg.GrandTotal(last3)).Div(three)

	if prevAvg.Sign() <= 0 {
		return nil
	}

	variance := VariancePercent(avg3, prevAvg)
	switch {
	case variance <= -s.thresholds.TrendDeadZonePct:
		return []entity.Insight{{
			Type: entity.InsightPositive,
			Message: fmt.Sprintf(
				"Seus gastos diminuíram aproximadamente %.0f%% nos últimos 3 meses em comparação com o período anterior.",
				math.Abs(math.Round(variance)),
			),
			Icon: "trending_down",
		}}
	case variance >= s.thresholds.TrendDeadZonePct:
		return []entity.Insight{{
			Type: entity.InsightNegative,
			Message: fmt.Sprintf(
				"Seus gastos aumentaram aproximadamente %.0f%% nos últimos 3 meses em comparação com o período anterior.",
				math.Round(variance),
			),
			Icon: "trending_up",
		}}
	}
	// Inside the dead zone: no insight.
	return nil
}

// categorySpikes flags categories whose last-month spend diverges from
// their trailing 3-month monthly average. Categories under the
// materiality threshold never fire, which keeps trivial amounts quiet.
func (s *InsightService) categorySpikes(last1, last3 []*entity.Expense) []entity.Insight {
	totals1 := s.agg.TotalsByCategory(last1)
	totals3 := s.agg.TotalsByCategory(last3)
	three := decimal.NewFromInt(3)

	var insights []entity.Insight
	for _, id := range s.catalog.IDs() {
		monthTotal := totals1[id]
		baseline := totals3[id].Div(three)
		if baseline.Sign() <= 0 {
			continue
		}

		variance := VariancePercent(monthTotal, baseline)
		switch {
		case variance > s.thresholds.SpikeIncreasePct && monthTotal.GreaterThan(s.thresholds.MaterialityAmount):
			insights = append(insights, entity.Insight{
				Type: entity.InsightNegative,
				Message: fmt.Sprintf(
					"Seus gastos com '%s' aumentaram %.0f%% no último mês.",
					id, math.Round(variance),
				),
				Icon: "warning",
			})
		case variance < -s.thresholds.SpikeDecreasePct && totals3[id].GreaterThan(s.thresholds.MaterialityAmount):
			insights = append(insights, entity.Insight{
				Type: entity.InsightPositive,
				Message: fmt.Sprintf(
					"Seus gastos com '%s' diminuíram %.0f%% no último mês.",
					id, math.Abs(math.Round(variance)),
				),
				Icon: "thumb_up",
			})
		}
	}
	return insights
}

// dormantCategory reports the first catalog category with zero spend in
// the trailing 3-month window. Only the first qualifying category is
// emitted; that matches the externally observed report content.
func (s *InsightService) dormantCategory(last3 []*entity.Expense) []entity.Insight {
	totals := s.agg.TotalsByCategory(last3)
	for _, id := range s.catalog.IDs() {
		if totals[id].IsZero() {
			return []entity.Insight{{
				Type:    entity.InsightNeutral,
				Message: fmt.Sprintf("Não houve gastos na categoria '%s' nos últimos 3 meses.", id),
				Icon:    "info",
			}}
		}
	}
	return nil
}

// anomalousMonth flags the most recent month in the trailing 12-month
// window whose total exceeds the window's monthly average by the
// configured percentage. The average is taken over months that actually
// have expenses.
func (s *InsightService) anomalousMonth(last12 []*entity.Expense) []entity.Insight {
	byPeriod := make(map[PeriodKey]decimal.Decimal)
	for _, e := range last12 {
		key := PeriodKeyFor(e.Date)
		byPeriod[key] = byPeriod[key].Add(e.Amount)
	}
	if len(byPeriod) == 0 {
		return nil
	}

	total := decimal.Zero
	periods := make([]PeriodKey, 0, len(byPeriod))
	for key, t := range byPeriod {
		total = total.Add(t)
		periods = append(periods, key)
	}
	average := total.Div(decimal.NewFromInt(int64(len(byPeriod))))
	if average.Sign() <= 0 {
		return nil
	}

	// Most recent first, so the first hit is the one reported.
	sort.Slice(periods, func(i, j int) bool {
		return periods[j].Before(periods[i])
	})
	for _, key := range periods {
		above := VariancePercent(byPeriod[key], average)
		if above >= s.thresholds.AnomalousMonthPct {
			return []entity.Insight{{
				Type: entity.InsightNeutral,
				Message: fmt.Sprintf(
					"Em %s de %d, seus gastos foram %.0f%% acima da sua média mensal.",
					MonthName(key.Month), key.Year, math.Round(above),
				),
				Icon: "calendar_today",
			}}
		}
	}
	return nil
}

// sliceWindow returns the expenses dated inside [start, end], inclusive.
func sliceWindow(expenses []*entity.Expense, start, end time.Time) []*entity.Expense {
	var window []*entity.Expense
	for _, e := range expenses {
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		window = append(window, e)
	}
	return window
}
