// Package report contains the expense aggregation and report use cases.
package report

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-insights/backend/internal/domain/entity"
	domainerror "github.com/expense-insights/backend/internal/domain/error"
)

func newPeriodSummaryUseCase(repo *fakeExpenseRepo) *GetPeriodSummaryUseCase {
	catalog := entity.DefaultCatalog()
	insights := NewInsightService(repo, catalog, DefaultInsightThresholds())
	return NewGetPeriodSummaryUseCase(repo, catalog, insights, DefaultPeriodBounds())
}

func TestGetPeriodSummary(t *testing.T) {
	userID := uuid.New()
	repo := &fakeExpenseRepo{expenses: []*entity.Expense{
		expense(userID, entity.CategoryAlimentacao, "150.00", day(2023, time.June, 5)),
		expense(userID, entity.CategoryTransporte, "80.00", day(2023, time.June, 12)),
		expense(userID, entity.CategoryAlimentacao, "100.00", day(2023, time.May, 8)),
	}}
	uc := newPeriodSummaryUseCase(repo)

	output, err := uc.Execute(context.Background(), GetPeriodSummaryInput{
		UserID: userID,
		Month:  6,
		Year:   2023,
		Now:    day(2023, time.June, 15),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if output.Month != 6 || output.MonthName != "Junho" || output.Year != 2023 {
		t.Errorf("unexpected period: %d %s %d", output.Month, output.MonthName, output.Year)
	}
	if output.PreviousMonth != 5 || output.PreviousMonthName != "Maio" || output.PreviousYear != 2023 {
		t.Errorf("unexpected previous period: %d %s %d", output.PreviousMonth, output.PreviousMonthName, output.PreviousYear)
	}

	if !output.Total.Equal(decimal.RequireFromString("230.00")) {
		t.Errorf("expected total 230.00, got %s", output.Total)
	}
	if !output.PreviousTotal.Equal(decimal.RequireFromString("100.00")) {
		t.Errorf("expected previous total 100.00, got %s", output.PreviousTotal)
	}
	if math.Abs(output.TotalVariancePct-130) > 0.0001 {
		t.Errorf("expected total variance 130, got %.4f", output.TotalVariancePct)
	}

	if len(output.Categories) != entity.DefaultCatalog().Len() {
		t.Fatalf("expected %d category rows, got %d", entity.DefaultCatalog().Len(), len(output.Categories))
	}

	food := output.Categories[0]
	if food.ID != entity.CategoryAlimentacao || food.Label != "Alimentação" {
		t.Errorf("expected first row alimentacao, got %s", food.ID)
	}
	if !food.Current.Equal(decimal.RequireFromString("150.00")) {
		t.Errorf("expected food current 150.00, got %s", food.Current)
	}
	if !food.Previous.Equal(decimal.RequireFromString("100.00")) {
		t.Errorf("expected food previous 100.00, got %s", food.Previous)
	}
	if math.Abs(food.VariancePct-50) > 0.0001 {
		t.Errorf("expected food variance 50, got %.4f", food.VariancePct)
	}

	transport := output.Categories[1]
	if !transport.Current.Equal(decimal.RequireFromString("80.00")) {
		t.Errorf("expected transport current 80.00, got %s", transport.Current)
	}
	if transport.VariancePct != 0 {
		t.Errorf("expected zero variance without previous spend, got %.4f", transport.VariancePct)
	}

	if output.Insights != nil {
		t.Errorf("expected no insights without the flag, got %d", len(output.Insights))
	}
}

func TestGetPeriodSummaryJanuaryPrevious(t *testing.T) {
	userID := uuid.New()
	repo := &fakeExpenseRepo{expenses: []*entity.Expense{
		expense(userID, entity.CategoryAlimentacao, "50.00", day(2022, time.December, 20)),
	}}
	uc := newPeriodSummaryUseCase(repo)

	output, err := uc.Execute(context.Background(), GetPeriodSummaryInput{
		UserID: userID,
		Month:  1,
		Year:   2023,
		Now:    day(2023, time.January, 15),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if output.PreviousMonth != 12 || output.PreviousYear != 2022 {
		t.Errorf("expected previous 12/2022, got %d/%d", output.PreviousMonth, output.PreviousYear)
	}
	if !output.PreviousTotal.Equal(decimal.RequireFromString("50.00")) {
		t.Errorf("expected previous total 50.00, got %s", output.PreviousTotal)
	}
	if output.TotalVariancePct != -100 {
		t.Errorf("expected variance -100, got %.4f", output.TotalVariancePct)
	}
}

func TestGetPeriodSummaryWithInsights(t *testing.T) {
	userID := uuid.New()
	repo := &fakeExpenseRepo{expenses: []*entity.Expense{
		expense(userID, entity.CategoryAlimentacao, "120.00", day(2023, time.June, 5)),
	}}
	uc := newPeriodSummaryUseCase(repo)

	output, err := uc.Execute(context.Background(), GetPeriodSummaryInput{
		UserID:          userID,
		Month:           6,
		Year:            2023,
		IncludeInsights: true,
		Now:             day(2023, time.June, 15),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(output.Insights) == 0 {
		t.Error("expected insights when requested")
	}
}

func TestGetPeriodSummaryInvalidPeriod(t *testing.T) {
	uc := newPeriodSummaryUseCase(&fakeExpenseRepo{})

	tests := []struct {
		name  string
		month int
		year  int
	}{
		{name: "invalid month", month: 13, year: 2023},
		{name: "invalid year", month: 6, year: 1980},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), GetPeriodSummaryInput{
				UserID: uuid.New(),
				Month:  tt.month,
				Year:   tt.year,
			})
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !domainerror.IsInvalidPeriod(err) {
				t.Errorf("expected invalid period error, got %v", err)
			}
		})
	}
}

func TestGetPeriodSummaryRepositoryError(t *testing.T) {
	repoErr := errors.New("connection refused")
	uc := newPeriodSummaryUseCase(&fakeExpenseRepo{err: repoErr})

	_, err := uc.Execute(context.Background(), GetPeriodSummaryInput{
		UserID: uuid.New(),
		Month:  6,
		Year:   2023,
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, repoErr) {
		t.Errorf("expected wrapped repository error, got %v", err)
	}
}
