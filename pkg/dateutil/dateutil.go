package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// DaysInMonth returns the number of days in the given month.
// Day 0 of the next month normalizes to the last day of this one.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MondayIndex converts a Go weekday (Sunday = 0) to a Monday-first index
// (0 = Monday ... 6 = Sunday)
func MondayIndex(weekday time.Weekday) int {
	return (int(weekday) + 6) % 7
}

// FirstWeekdayOffset returns how many blank cells precede the 1st of the month
// in a Monday-first week grid
func FirstWeekdayOffset(year int, month time.Month) int {
	return MondayIndex(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// AddMonths shifts a (year, month) pair by n months, crossing year boundaries
func AddMonths(year int, month time.Month, n int) (int, time.Month) {
	shifted := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	return shifted.Year(), shifted.Month()
}

var monthFormats = []string{
	"2006-01",
	"01/2006",
	"1/2006",
	"January 2006",
	"Jan 2006",
}

// ParseMonth parses a month selection in various formats
// Examples: 2025-03, 03/2025, March 2025, Mar 2025
func ParseMonth(value string) (int, time.Month, error) {
	value = strings.TrimSpace(value)

	for _, format := range monthFormats {
		if t, err := time.Parse(format, value); err == nil {
			return t.Year(), t.Month(), nil
		}
	}

	return 0, 0, fmt.Errorf("unrecognized month %q (expected YYYY-MM)", value)
}

// Today returns today's date (start of day)
func Today() time.Time {
	return StartOfDay(time.Now())
}
