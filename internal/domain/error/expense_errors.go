// Package error defines domain-specific errors for the Expense Insights application.
package error

import "errors"

// Expense domain errors.
var (
	// ErrExpenseNotFound is returned when an expense does not exist or is soft-deleted.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrExpenseForbidden is returned when an expense belongs to another user.
	ErrExpenseForbidden = errors.New("expense belongs to another user")

	// ErrInvalidCategory is returned when a category is not part of the catalog.
	ErrInvalidCategory = errors.New("category is not part of the catalog")

	// ErrNegativeAmount is returned when an expense amount is negative.
	ErrNegativeAmount = errors.New("amount must be greater than or equal to zero")

	// ErrMissingDescription is returned when an expense has no description.
	ErrMissingDescription = errors.New("description is required")

	// ErrDescriptionTooLong is returned when an expense description exceeds the limit.
	ErrDescriptionTooLong = errors.New("description exceeds maximum length")

	// ErrMissingDate is returned when an expense has no date.
	ErrMissingDate = errors.New("date is required")
)

// ExpenseErrorCode defines error codes for expense errors.
// Format: EXP-XXYYYY where XX is category and YYYY is specific error.
type ExpenseErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidCategory    ExpenseErrorCode = "EXP-010001"
	ErrCodeNegativeAmount     ExpenseErrorCode = "EXP-010002"
	ErrCodeMissingDescription ExpenseErrorCode = "EXP-010003"
	ErrCodeMissingDate        ExpenseErrorCode = "EXP-010004"
	ErrCodeDescriptionTooLong ExpenseErrorCode = "EXP-010005"

	// Access errors (02XXXX)
	ErrCodeExpenseNotFound  ExpenseErrorCode = "EXP-020001"
	ErrCodeExpenseForbidden ExpenseErrorCode = "EXP-020002"

	// Internal errors (99XXXX)
	ErrCodeExpenseInternalError ExpenseErrorCode = "EXP-990001"
)

// ExpenseError represents an expense error with code and message.
type ExpenseError struct {
	Code    ExpenseErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ExpenseError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ExpenseError) Unwrap() error {
	return e.Err
}

// NewExpenseError creates a new ExpenseError with the given code and message.
func NewExpenseError(code ExpenseErrorCode, message string, err error) *ExpenseError {
	return &ExpenseError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
