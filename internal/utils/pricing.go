package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

var (
	ErrInvalidDateRange = errors.New("end date must be after start date")
	ErrStartDateInPast  = errors.New("start date must not be in the past")
)

// ParseDate converts a yyyy-mm-dd formatted string into a UTC midnight time.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, expected yyyy-mm-dd: %q", dateStr)
	}
	return t, nil
}

// DaysBetween returns the whole calendar days from start to end.
// The start day counts, the end day does not: 06-01 to 06-04 is 3 days.
// Negative when end precedes start.
func DaysBetween(start, end time.Time) int {
	// Both values are UTC midnights, so the division is exact. Unix seconds
	// avoid time.Duration, which saturates after about 292 years.
	return int((end.Unix() - start.Unix()) / 86400)
}

// CalculateRentalPrice computes the rental duration and total for a date range.
// When the end date is not strictly after the start date both results are zero
// and ErrInvalidDateRange is returned.
func CalculateRentalPrice(startDateStr, endDateStr string, pricePerDay decimal.Decimal) (int, decimal.Decimal, error) {
	start, err := ParseDate(startDateStr)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := ParseDate(endDateStr)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("invalid end date: %w", err)
	}

	days := DaysBetween(start, end)
	if days <= 0 {
		return 0, decimal.Zero, ErrInvalidDateRange
	}

	return days, pricePerDay.Mul(decimal.NewFromInt(int64(days))), nil
}

// Today returns the calendar date of now in loc, as a UTC midnight comparable
// with ParseDate results.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CheckStartNotPast rejects start dates before today in the business time zone.
func CheckStartNotPast(startDateStr string, now time.Time, loc *time.Location) error {
	start, err := ParseDate(startDateStr)
	if err != nil {
		return fmt.Errorf("invalid start date: %w", err)
	}
	if start.Before(Today(now, loc)) {
		return ErrStartDateInPast
	}
	return nil
}
