// Package expense contains expense-related use cases.
package expense

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-insights/backend/internal/domain/entity"
	domainerror "github.com/expense-insights/backend/internal/domain/error"
)

func TestCreateExpense(t *testing.T) {
	userID := uuid.New()
	repo := &fakeExpenseRepo{}
	cache := &fakeReportCache{}
	uc := NewCreateExpenseUseCase(repo, cache, entity.DefaultCatalog())

	output, err := uc.Execute(context.Background(), CreateExpenseInput{
		UserID:      userID,
		Description: "Supermercado",
		Category:    entity.CategoryAlimentacao,
		Amount:      decimal.RequireFromString("45.905"),
		Date:        day(2023, time.June, 2),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if output.Expense.ID == uuid.Nil {
		t.Error("expected a generated expense ID")
	}
	if output.Expense.Category != entity.CategoryAlimentacao {
		t.Errorf("expected category alimentacao, got %s", output.Expense.Category)
	}
	if output.Expense.CategoryLabel != "Alimentação" {
		t.Errorf("expected label Alimentação, got %s", output.Expense.CategoryLabel)
	}
	// Amounts are normalized to currency scale.
	if !output.Expense.Amount.Equal(decimal.RequireFromString("45.91")) {
		t.Errorf("expected amount rounded to 45.91, got %s", output.Expense.Amount)
	}

	if len(repo.expenses) != 1 {
		t.Fatalf("expected 1 stored expense, got %d", len(repo.expenses))
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != userID {
		t.Errorf("expected report cache invalidation for %s, got %v", userID, cache.invalidated)
	}
}

func TestCreateExpenseValidation(t *testing.T) {
	uc := NewCreateExpenseUseCase(&fakeExpenseRepo{}, &fakeReportCache{}, entity.DefaultCatalog())

	valid := CreateExpenseInput{
		UserID:      uuid.New(),
		Description: "Supermercado",
		Category:    entity.CategoryAlimentacao,
		Amount:      decimal.RequireFromString("45.90"),
		Date:        day(2023, time.June, 2),
	}

	tests := []struct {
		name    string
		mutate  func(*CreateExpenseInput)
		wantErr error
	}{
		{
			name:    "empty description",
			mutate:  func(in *CreateExpenseInput) { in.Description = "  " },
			wantErr: domainerror.ErrMissingDescription,
		},
		{
			name:    "unknown category",
			mutate:  func(in *CreateExpenseInput) { in.Category = "investimentos" },
			wantErr: domainerror.ErrInvalidCategory,
		},
		{
			name:    "negative amount",
			mutate:  func(in *CreateExpenseInput) { in.Amount = decimal.RequireFromString("-1.00") },
			wantErr: domainerror.ErrNegativeAmount,
		},
		{
			name:    "missing date",
			mutate:  func(in *CreateExpenseInput) { in.Date = time.Time{} },
			wantErr: domainerror.ErrMissingDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid
			tt.mutate(&input)

			_, err := uc.Execute(context.Background(), input)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCreateExpenseZeroAmountAllowed(t *testing.T) {
	uc := NewCreateExpenseUseCase(&fakeExpenseRepo{}, &fakeReportCache{}, entity.DefaultCatalog())

	_, err := uc.Execute(context.Background(), CreateExpenseInput{
		UserID:      uuid.New(),
		Description: "Brinde",
		Category:    entity.CategoryOutros,
		Amount:      decimal.Zero,
		Date:        day(2023, time.June, 2),
	})
	if err != nil {
		t.Errorf("expected zero amount to be accepted, got %v", err)
	}
}

func TestCreateExpenseRepositoryError(t *testing.T) {
	repoErr := errors.New("connection refused")
	cache := &fakeReportCache{}
	uc := NewCreateExpenseUseCase(&fakeExpenseRepo{err: repoErr}, cache, entity.DefaultCatalog())

	_, err := uc.Execute(context.Background(), CreateExpenseInput{
		UserID:      uuid.New(),
		Description: "Supermercado",
		Category:    entity.CategoryAlimentacao,
		Amount:      decimal.RequireFromString("45.90"),
		Date:        day(2023, time.June, 2),
	})
	if !errors.Is(err, repoErr) {
		t.Errorf("expected wrapped repository error, got %v", err)
	}
	if len(cache.invalidated) != 0 {
		t.Error("expected no cache invalidation on failure")
	}
}
