// Package stats holds pure aggregation over attendance and activity records.
package stats

import (
	"fmt"
	"math"
	"time"
)

// Duration is a worked interval broken down the canonical way: whole
// minutes first, then hours and remainder.
type Duration struct {
	TotalMinutes int
	Hours        int
	Minutes      int
	TotalHours   float64
}

// CalculateDuration floors out - in to whole minutes and derives hours from
// them. Negative intervals count as zero.
func CalculateDuration(in, out time.Time) Duration {
	minutes := int(math.Floor(float64(out.Sub(in).Milliseconds()) / 60000))
	if minutes < 0 {
		minutes = 0
	}
	return Duration{
		TotalMinutes: minutes,
		Hours:        minutes / 60,
		Minutes:      minutes % 60,
		TotalHours:   Round2(float64(minutes) / 60),
	}
}

// FormatDuration renders fractional hours as "9h 30m".
func FormatDuration(hours float64) string {
	if hours < 0 {
		hours = 0
	}
	total := int(math.Round(hours * 60))
	return fmt.Sprintf("%dh %dm", total/60, total%60)
}

// Round2 rounds to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
