package domain

import (
	"fmt"
	"time"
)

// DateLayout is the canonical calendar-date representation. All date
// comparisons use UTC calendar dates in this layout, where lexical order
// equals chronological order.
const DateLayout = "2006-01-02"

// DateOf returns the UTC calendar date of t.
func DateOf(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ParseDate accepts a calendar date or an RFC3339 timestamp and returns the
// canonical UTC calendar date.
func ParseDate(s string) (string, error) {
	if d, err := time.Parse(DateLayout, s); err == nil {
		return d.Format(DateLayout), nil
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return DateOf(ts), nil
	}
	return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
}

// InRange reports whether date lies within [start, end]. Empty bounds are
// open.
func InRange(date, start, end string) bool {
	if start != "" && date < start {
		return false
	}
	if end != "" && date > end {
		return false
	}
	return true
}
