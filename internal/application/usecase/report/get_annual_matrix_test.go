// Package report contains the expense aggregation and report use cases.
package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-insights/backend/internal/domain/entity"
	domainerror "github.com/expense-insights/backend/internal/domain/error"
)

func newAnnualMatrixUseCase(repo *fakeExpenseRepo) *GetAnnualMatrixUseCase {
	return NewGetAnnualMatrixUseCase(repo, entity.DefaultCatalog(), DefaultPeriodBounds())
}

func TestGetAnnualMatrix(t *testing.T) {
	userID := uuid.New()
	catalog := entity.DefaultCatalog()
	repo := &fakeExpenseRepo{expenses: []*entity.Expense{
		expense(userID, entity.CategoryAlimentacao, "100.00", day(2023, time.March, 5)),
		expense(userID, entity.CategoryAlimentacao, "50.00", day(2023, time.March, 20)),
		expense(userID, entity.CategoryTransporte, "30.00", day(2023, time.July, 1)),
		expense(userID, entity.CategoryAlimentacao, "999.00", day(2022, time.December, 31)), // outside year
	}}
	uc := newAnnualMatrixUseCase(repo)

	output, err := uc.Execute(context.Background(), GetAnnualMatrixInput{
		UserID: userID,
		Year:   2023,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if output.Year != 2023 {
		t.Errorf("expected year 2023, got %d", output.Year)
	}
	if !output.AnnualTotal.Equal(decimal.RequireFromString("180.00")) {
		t.Errorf("expected annual total 180.00, got %s", output.AnnualTotal)
	}

	// Every catalog category appears, in catalog order, with 12 months each.
	if len(output.Categories) != catalog.Len() {
		t.Fatalf("expected %d categories, got %d", catalog.Len(), len(output.Categories))
	}
	for i, id := range catalog.IDs() {
		if output.Categories[i].ID != id {
			t.Errorf("expected category %d to be %s, got %s", i, id, output.Categories[i].ID)
		}
		if len(output.Categories[i].Months) != 12 {
			t.Errorf("expected 12 months for %s, got %d", id, len(output.Categories[i].Months))
		}
	}

	food := output.Categories[0]
	if !food.AnnualTotal.Equal(decimal.RequireFromString("150.00")) {
		t.Errorf("expected food annual total 150.00, got %s", food.AnnualTotal)
	}
	if food.Months[2].Month != 3 || !food.Months[2].Value.Equal(decimal.RequireFromString("150.00")) {
		t.Errorf("expected food march 150.00, got month %d value %s", food.Months[2].Month, food.Months[2].Value)
	}
	if !food.Months[0].Value.IsZero() {
		t.Errorf("expected food january zero, got %s", food.Months[0].Value)
	}

	if len(output.Months) != 12 {
		t.Fatalf("expected 12 month columns, got %d", len(output.Months))
	}
	if output.Months[0].Name != "Janeiro" || output.Months[11].Name != "Dezembro" {
		t.Errorf("unexpected month names %s .. %s", output.Months[0].Name, output.Months[11].Name)
	}
	if !output.Months[6].Total.Equal(decimal.RequireFromString("30.00")) {
		t.Errorf("expected july column 30.00, got %s", output.Months[6].Total)
	}
}

func TestGetAnnualMatrixEmptyYear(t *testing.T) {
	catalog := entity.DefaultCatalog()
	uc := newAnnualMatrixUseCase(&fakeExpenseRepo{})

	output, err := uc.Execute(context.Background(), GetAnnualMatrixInput{
		UserID: uuid.New(),
		Year:   2023,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !output.AnnualTotal.IsZero() {
		t.Errorf("expected zero annual total, got %s", output.AnnualTotal)
	}
	if len(output.Categories) != catalog.Len() || len(output.Months) != 12 {
		t.Errorf("expected full matrix shape, got %d categories and %d months", len(output.Categories), len(output.Months))
	}
	for _, cat := range output.Categories {
		for _, mv := range cat.Months {
			if !mv.Value.IsZero() {
				t.Errorf("expected zero value for %s month %d, got %s", cat.ID, mv.Month, mv.Value)
			}
		}
	}
}

func TestGetAnnualMatrixInvalidYear(t *testing.T) {
	uc := newAnnualMatrixUseCase(&fakeExpenseRepo{})

	_, err := uc.Execute(context.Background(), GetAnnualMatrixInput{
		UserID: uuid.New(),
		Year:   1999,
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !domainerror.IsInvalidPeriod(err) {
		t.Errorf("expected invalid period error, got %v", err)
	}
}
