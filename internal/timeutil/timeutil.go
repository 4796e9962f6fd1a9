package timeutil

import (
	"strings"
	"time"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// FeedDateLayout matches the upstream schedule date strings, which carry a
// weekday and month/day but no year (e.g. "Sat, Nov 30").
const FeedDateLayout = "Mon, Jan 2"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseFeedDate resolves a year-less feed date against a season that starts
// in startYear. League seasons span two calendar years: August through
// December fall in the starting year, January through July in the next.
// The result is the calendar date at UTC midnight.
func ParseFeedDate(value string, startYear int) (time.Time, error) {
	parsed, err := time.Parse(FeedDateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, err
	}

	year := startYear
	if parsed.Month() < time.August {
		year = startYear + 1
	}
	return time.Date(year, parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), nil
}
