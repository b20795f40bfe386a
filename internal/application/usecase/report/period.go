// Package report contains the expense aggregation and report use cases.
package report

import (
	"time"

	domainerror "github.com/expense-insights/backend/internal/domain/error"
)

// monthNames holds the Portuguese month names used in report payloads,
// indexed 1..12.
var monthNames = [13]string{
	"",
	"Janeiro",
	"Fevereiro",
	"Março",
	"Abril",
	"Maio",
	"Junho",
	"Julho",
	"Agosto",
	"Setembro",
	"Outubro",
	"Novembro",
	"Dezembro",
}

// MonthName returns the Portuguese name for month (1..12), or the empty
// string when out of range.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month]
}

// PeriodKey identifies one calendar month. Ordering is by (year, month).
type PeriodKey struct {
	Month int // 1..12
	Year  int
}

// Before reports whether p precedes other.
func (p PeriodKey) Before(other PeriodKey) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Month < other.Month
}

// PeriodKeyFor returns the period containing the given date.
func PeriodKeyFor(date time.Time) PeriodKey {
	return PeriodKey{Month: int(date.Month()), Year: date.Year()}
}

// PeriodBounds carries the valid year range for report periods.
type PeriodBounds struct {
	MinYear int
	MaxYear int
}

// DefaultPeriodBounds returns the year range accepted by upstream validation.
func DefaultPeriodBounds() PeriodBounds {
	return PeriodBounds{MinYear: 2000, MaxYear: 2100}
}

// ValidateYear checks that year falls inside the bounds.
func (b PeriodBounds) ValidateYear(year int) error {
	if year < b.MinYear || year > b.MaxYear {
		return domainerror.NewReportError(
			domainerror.ErrCodeInvalidYear,
			"ano inválido",
			domainerror.ErrInvalidYear,
		)
	}
	return nil
}

// Validate checks that (month, year) is a valid report period.
func (b PeriodBounds) Validate(month, year int) error {
	if month < 1 || month > 12 {
		return domainerror.NewReportError(
			domainerror.ErrCodeInvalidMonth,
			"mês inválido",
			domainerror.ErrInvalidMonth,
		)
	}
	return b.ValidateYear(year)
}

// MonthBounds returns the first and last calendar day of (month, year).
// Leap years are handled by time.Date normalization.
func (b PeriodBounds) MonthBounds(month, year int) (start, end time.Time, err error) {
	if err := b.Validate(month, year); err != nil {
		return time.Time{}, time.Time{}, err
	}

	start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, -1)
	return start, end, nil
}

// PreviousMonth returns the month immediately before (month, year),
// wrapping January back into December of the previous year.
func PreviousMonth(month, year int) (int, int) {
	if month == 1 {
		return 12, year - 1
	}
	return month - 1, year
}

// MonthsBetween returns the inclusive count of calendar months touched by
// the range [start, end]. Two dates in the same month count as 1; the
// result is never below 1 for a valid range, so it is safe as an
// average-per-month denominator.
func MonthsBetween(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month()) + 1
	if months < 1 {
		return 1
	}
	return months
}

// MonthsAgo returns the date range covering the n months before now,
// inclusive of now's date. Used for rolling-window insight computation.
func MonthsAgo(now time.Time, n int) (start, end time.Time) {
	end = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start = end.AddDate(0, -n, 0)
	return start, end
}
