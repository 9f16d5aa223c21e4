package utils

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate accepts a calendar date (YYYY-MM-DD, read as UTC midnight) or an
// RFC3339 timestamp. An empty string yields nil.
func ParseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	if t, err := time.Parse(dateLayout, value); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		t = t.UTC()
		return &t, nil
	}
	return nil, NewValidationError("Invalid date: " + value)
}

// EndOfDay returns the last millisecond of t's calendar day in UTC.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), time.UTC)
}
