package dateutil

import (
	"fmt"
	"time"
)

// DateLayout is the zero-padded local calendar date format used for every date key
const DateLayout = "2006-01-02"

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// Date builds a local calendar date at midnight
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

// FormatDate formats a date as YYYY-MM-DD using its own calendar fields
func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD key as a local calendar date.
// Out-of-range values such as 2026-02-30 are rejected.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, dateStr, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", dateStr, err)
	}
	return t, nil
}

// IsValidDate reports whether dateStr is a well-formed YYYY-MM-DD date
func IsValidDate(dateStr string) bool {
	_, err := ParseDate(dateStr)
	return err == nil
}

// IsWeekday returns true if the date is Monday-Friday
func IsWeekday(date time.Time) bool {
	weekday := date.Weekday()
	return weekday >= time.Monday && weekday <= time.Friday
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	return !IsWeekday(date)
}

// IsWeekendKey reports whether a YYYY-MM-DD key falls on a weekend.
// Malformed keys are never weekends.
func IsWeekendKey(dateStr string) bool {
	t, err := ParseDate(dateStr)
	if err != nil {
		return false
	}
	return IsWeekend(t)
}

// DaysInMonth returns the number of days of month in year
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MondayOffset returns how many blank cells precede date in a Monday-first week grid
func MondayOffset(date time.Time) int {
	weekday := int(date.Weekday())
	if weekday == 0 {
		return 6
	}
	return weekday - 1
}
