// Package error defines domain-specific errors for the Expense Insights application.
package error

import "errors"

// Report domain errors.
var (
	// ErrInvalidMonth is returned when a month is outside 1..12.
	ErrInvalidMonth = errors.New("month must be between 1 and 12")

	// ErrInvalidYear is returned when a year is outside the configured valid range.
	ErrInvalidYear = errors.New("year is outside the valid range")

	// ErrInvalidDateRange is returned when an end date precedes its start date.
	ErrInvalidDateRange = errors.New("end date must not be before start date")

	// ErrInvalidDateFormat is returned when a date string cannot be parsed.
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")
)

// ReportErrorCode defines error codes for report errors.
// Format: RPT-XXYYYY where XX is category and YYYY is specific error.
type ReportErrorCode string

const (
	// Period validation errors (01XXXX)
	ErrCodeInvalidMonth      ReportErrorCode = "RPT-010001"
	ErrCodeInvalidYear       ReportErrorCode = "RPT-010002"
	ErrCodeInvalidDateRange  ReportErrorCode = "RPT-010003"
	ErrCodeInvalidDateFormat ReportErrorCode = "RPT-010004"

	// Internal errors (99XXXX)
	ErrCodeReportInternalError ReportErrorCode = "RPT-990001"
)

// ReportError represents a report error with code and message.
type ReportError struct {
	Code    ReportErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError creates a new ReportError with the given code and message.
func NewReportError(code ReportErrorCode, message string, err error) *ReportError {
	return &ReportError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsInvalidPeriod reports whether err is one of the period validation errors.
func IsInvalidPeriod(err error) bool {
	return errors.Is(err, ErrInvalidMonth) ||
		errors.Is(err, ErrInvalidYear) ||
		errors.Is(err, ErrInvalidDateRange) ||
		errors.Is(err, ErrInvalidDateFormat)
}
