package stats

import (
	"testing"
	"time"

	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateDuration_WorkdayScenario(t *testing.T) {
	in := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	out := time.Date(2024, 1, 15, 17, 30, 0, 0, time.UTC)

	d := CalculateDuration(in, out)
	assert.Equal(t, 570, d.TotalMinutes)
	assert.Equal(t, 9, d.Hours)
	assert.Equal(t, 30, d.Minutes)
	assert.Equal(t, 9.5, d.TotalHours)
	assert.Equal(t, "9h 30m", FormatDuration(d.TotalHours))
}

func TestCalculateDuration_Law(t *testing.T) {
	in := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	for _, span := range []time.Duration{0, 59 * time.Second, 61 * time.Minute, 7*time.Hour + 47*time.Minute + 12*time.Second, 25 * time.Hour} {
		d := CalculateDuration(in, in.Add(span))
		assert.Equal(t, d.TotalMinutes, d.Hours*60+d.Minutes, "span %s", span)
		assert.Less(t, d.Minutes, 60)
		assert.InDelta(t, float64(d.TotalMinutes)/60, d.TotalHours, 0.005)
	}
}

func TestCalculateDuration_NegativeIsZero(t *testing.T) {
	in := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	d := CalculateDuration(in, in.Add(-time.Hour))
	assert.Equal(t, Duration{}, d)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0h 0m", FormatDuration(0))
	assert.Equal(t, "1h 15m", FormatDuration(1.25))
	assert.Equal(t, "0h 0m", FormatDuration(-2))
}

func TestWeeklyProgress(t *testing.T) {
	assert.Equal(t, 50.0, WeeklyProgress(20, 40))
	assert.Equal(t, 100.0, WeeklyProgress(50, 40))
	assert.Equal(t, 0.0, WeeklyProgress(0, 40))
	assert.Equal(t, 25.0, WeeklyProgress(10, 0), "non-positive target uses the default")
}

func TestEfficiencyScore(t *testing.T) {
	done := []domain.ActivityRecord{{Status: domain.ActivityCompleted}}

	assert.Equal(t, 0, EfficiencyScore(nil, done), "no hours worked")
	assert.Equal(t, 100, EfficiencyScore([]domain.AttendanceRecord{{TotalHours: 2}}, done))
	assert.Equal(t, 50, EfficiencyScore([]domain.AttendanceRecord{{TotalHours: 4}}, done))
	assert.Equal(t, 100, Efficiency(1, 10), "capped at 100")
}

func TestTotals(t *testing.T) {
	records := []domain.AttendanceRecord{
		{Date: "2024-01-01", TotalHours: 4},
		{Date: "2024-01-01", TotalHours: 3.5},
		{Date: "2024-01-02", TotalHours: 8},
		{Date: "2024-01-05", TotalHours: 1.25},
	}
	assert.Equal(t, 7.5, DailyTotal(records, "2024-01-01"))
	assert.Equal(t, 0.0, DailyTotal(records, "2024-01-03"))
	assert.Equal(t, 15.5, RangeTotal(records, "2024-01-01", "2024-01-02"))
	assert.Equal(t, 16.75, TotalHours(records))
	assert.Equal(t, 3, DaysWorked(records))
}

func TestCountActivities(t *testing.T) {
	c := CountActivities([]domain.ActivityRecord{
		{Status: domain.ActivityCompleted},
		{Status: domain.ActivityInProgress},
		{Status: domain.ActivityInProgress},
	})
	assert.Equal(t, ActivityCounts{Total: 3, Completed: 1, InProgress: 2}, c)
	assert.Equal(t, 33.33, c.CompletionRate())
	assert.Equal(t, 0.0, ActivityCounts{}.CompletionRate())
}

func TestResolvePeriod(t *testing.T) {
	// Thursday
	ref := time.Date(2024, 2, 29, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		period Period
		want   DateRange
		days   int
	}{
		{"week", PeriodWeek, DateRange{"2024-02-26", "2024-03-03"}, 7},
		{"month", PeriodMonth, DateRange{"2024-02-01", "2024-02-29"}, 29},
		{"year", PeriodYear, DateRange{"2024-01-01", "2024-12-31"}, 366},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePeriod(tt.period, ref, "", "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.days, got.Days())
		})
	}
}

func TestResolvePeriod_SundayBelongsToPreviousWeek(t *testing.T) {
	sunday := time.Date(2024, 3, 3, 23, 0, 0, 0, time.UTC)
	got, err := ResolvePeriod(PeriodWeek, sunday, "", "")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-26", got.Start)
}

func TestResolvePeriod_Custom(t *testing.T) {
	got, err := ResolvePeriod(PeriodCustom, time.Now(), "2024-01-10", "2024-01-20")
	require.NoError(t, err)
	assert.Equal(t, DateRange{"2024-01-10", "2024-01-20"}, got)

	_, err = ResolvePeriod(PeriodCustom, time.Now(), "2024-01-20", "2024-01-10")
	assert.Error(t, err)
	_, err = ResolvePeriod(PeriodCustom, time.Now(), "", "2024-01-10")
	assert.Error(t, err)
	_, err = ResolvePeriod("fortnight", time.Now(), "", "")
	assert.Error(t, err)
}
