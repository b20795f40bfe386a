// Package report contains the expense aggregation and report use cases.
package report

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-insights/backend/internal/domain/entity"
	domainerror "github.com/expense-insights/backend/internal/domain/error"
)

func newProportionUseCase(repo *fakeExpenseRepo) *GetCategoryProportionUseCase {
	return NewGetCategoryProportionUseCase(repo, entity.DefaultCatalog(), DefaultPeriodBounds())
}

func TestGetCategoryProportion(t *testing.T) {
	userID := uuid.New()
	repo := &fakeExpenseRepo{expenses: []*entity.Expense{
		expense(userID, entity.CategoryAlimentacao, "45.90", day(2023, time.June, 2)),
		expense(userID, entity.CategoryTransporte, "35.50", day(2023, time.June, 10)),
		expense(userID, entity.CategoryLazer, "28.00", day(2023, time.June, 20)),
		expense(userID, entity.CategoryAlimentacao, "999.00", day(2023, time.May, 20)), // outside month
	}}
	uc := newProportionUseCase(repo)

	output, err := uc.Execute(context.Background(), GetCategoryProportionInput{
		UserID: userID,
		Month:  6,
		Year:   2023,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !output.Total.Equal(decimal.RequireFromString("109.40")) {
		t.Errorf("expected total 109.40, got %s", output.Total)
	}

	// Zero categories omitted, largest share first.
	if len(output.Categories) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(output.Categories))
	}
	if output.Categories[0].ID != entity.CategoryAlimentacao {
		t.Errorf("expected alimentacao first, got %s", output.Categories[0].ID)
	}
	if output.Categories[2].ID != entity.CategoryLazer {
		t.Errorf("expected lazer last, got %s", output.Categories[2].ID)
	}
	if math.Abs(output.Categories[0].Percent-41.96) > 0.01 {
		t.Errorf("expected alimentacao percent near 41.96, got %.4f", output.Categories[0].Percent)
	}

	var sum float64
	for _, item := range output.Categories {
		sum += item.Percent
	}
	if math.Abs(sum-100) > 0.01 {
		t.Errorf("expected percents to sum to 100, got %.4f", sum)
	}
}

func TestGetCategoryProportionEmptyMonth(t *testing.T) {
	uc := newProportionUseCase(&fakeExpenseRepo{})

	output, err := uc.Execute(context.Background(), GetCategoryProportionInput{
		UserID: uuid.New(),
		Month:  6,
		Year:   2023,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !output.Total.IsZero() {
		t.Errorf("expected zero total, got %s", output.Total)
	}
	if len(output.Categories) != 0 {
		t.Errorf("expected no categories, got %d", len(output.Categories))
	}
}

func TestGetCategoryProportionInvalidPeriod(t *testing.T) {
	uc := newProportionUseCase(&fakeExpenseRepo{})

	_, err := uc.Execute(context.Background(), GetCategoryProportionInput{
		UserID: uuid.New(),
		Month:  0,
		Year:   2023,
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !domainerror.IsInvalidPeriod(err) {
		t.Errorf("expected invalid period error, got %v", err)
	}
}
