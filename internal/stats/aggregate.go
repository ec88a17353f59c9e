package stats

import (
	"math"

	"github.com/alexanderramin/punchclock/internal/domain"
)

// DefaultWeeklyTarget is the weekly hours goal used when none is given.
const DefaultWeeklyTarget = 40

// efficiencyBaseline is completed activities per hour worked that scores 100:
// one activity every two hours.
const efficiencyBaseline = 0.5

// DailyTotal sums hours of records dated date.
func DailyTotal(records []domain.AttendanceRecord, date string) float64 {
	var sum float64
	for _, r := range records {
		if r.Date == date {
			sum += r.TotalHours
		}
	}
	return Round2(sum)
}

// RangeTotal sums hours of records dated within [start, end].
func RangeTotal(records []domain.AttendanceRecord, start, end string) float64 {
	var sum float64
	for _, r := range records {
		if domain.InRange(r.Date, start, end) {
			sum += r.TotalHours
		}
	}
	return Round2(sum)
}

// TotalHours sums hours of all records.
func TotalHours(records []domain.AttendanceRecord) float64 {
	return RangeTotal(records, "", "")
}

// DaysWorked counts distinct dates among records.
func DaysWorked(records []domain.AttendanceRecord) int {
	days := make(map[string]bool, len(records))
	for _, r := range records {
		days[r.Date] = true
	}
	return len(days)
}

// WeeklyProgress returns hours as a percentage of target, capped at 100.
// A non-positive target means the default of 40.
func WeeklyProgress(weekHours, target float64) float64 {
	if target <= 0 {
		target = DefaultWeeklyTarget
	}
	if weekHours <= 0 {
		return 0
	}
	return math.Min(weekHours/target*100, 100)
}

// ActivityCounts tallies activities by status.
type ActivityCounts struct {
	Total      int
	Completed  int
	InProgress int
}

// CountActivities tallies activities by status.
func CountActivities(activities []domain.ActivityRecord) ActivityCounts {
	var c ActivityCounts
	for _, a := range activities {
		c.Total++
		switch a.Status {
		case domain.ActivityCompleted:
			c.Completed++
		case domain.ActivityInProgress:
			c.InProgress++
		}
	}
	return c
}

// CompletionRate is completed activities as a percentage of all, rounded to
// two decimals.
func (c ActivityCounts) CompletionRate() float64 {
	if c.Total == 0 {
		return 0
	}
	return Round2(float64(c.Completed) / float64(c.Total) * 100)
}

// EfficiencyScore relates completed activities to hours worked on a 0 to 100
// scale. Zero hours scores zero.
func EfficiencyScore(records []domain.AttendanceRecord, activities []domain.ActivityRecord) int {
	hours := TotalHours(records)
	if hours <= 0 {
		return 0
	}
	completed := CountActivities(activities).Completed
	return Efficiency(hours, completed)
}

// Efficiency is EfficiencyScore over precomputed totals.
func Efficiency(hours float64, completed int) int {
	if hours <= 0 {
		return 0
	}
	score := math.Min(float64(completed)/hours/efficiencyBaseline*100, 100)
	return int(math.Round(score))
}
