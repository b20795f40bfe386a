// Package expense contains expense-related use cases.
package expense

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-insights/backend/internal/domain/entity"
	domainerror "github.com/expense-insights/backend/internal/domain/error"
)

// MaxDescriptionLength is the maximum allowed length for expense descriptions.
const MaxDescriptionLength = 255

// ExpenseOutput represents a single expense in use case outputs.
type ExpenseOutput struct {
	ID            uuid.UUID
	Description   string
	Category      entity.CategoryID
	CategoryLabel string
	CategoryIcon  string
	Amount        decimal.Decimal
	Date          time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func toExpenseOutput(e *entity.Expense, catalog *entity.Catalog) *ExpenseOutput {
	return &ExpenseOutput{
		ID:            e.ID,
		Description:   e.Description,
		Category:      e.Category,
		CategoryLabel: catalog.Label(e.Category),
		CategoryIcon:  catalog.Icon(e.Category),
		Amount:        e.Amount,
		Date:          e.Date,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

// validateExpenseFields checks the writable expense fields shared by
// creation and update.
func validateExpenseFields(
	catalog *entity.Catalog,
	description string,
	category entity.CategoryID,
	amount decimal.Decimal,
	date time.Time,
) error {
	if strings.TrimSpace(description) == "" {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeMissingDescription,
			"description is required",
			domainerror.ErrMissingDescription,
		)
	}
	if len(description) > MaxDescriptionLength {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeDescriptionTooLong,
			"description must not exceed 255 characters",
			domainerror.ErrDescriptionTooLong,
		)
	}
	if !catalog.Contains(category) {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidCategory,
			"category is not part of the catalog",
			domainerror.ErrInvalidCategory,
		)
	}
	if amount.IsNegative() {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeNegativeAmount,
			"amount must not be negative",
			domainerror.ErrNegativeAmount,
		)
	}
	if date.IsZero() {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeMissingDate,
			"date is required",
			domainerror.ErrMissingDate,
		)
	}
	return nil
}
