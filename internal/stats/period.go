package stats

import (
	"fmt"
	"time"

	"github.com/alexanderramin/punchclock/internal/domain"
)

// Period selects the date range of a statistics report.
type Period string

const (
	PeriodWeek   Period = "week"
	PeriodMonth  Period = "month"
	PeriodYear   Period = "year"
	PeriodCustom Period = "custom"
)

// DateRange is an inclusive range of UTC calendar dates.
type DateRange struct {
	Start string
	End   string
}

// Days returns the number of calendar days in the range.
func (r DateRange) Days() int {
	start, err1 := time.Parse(domain.DateLayout, r.Start)
	end, err2 := time.Parse(domain.DateLayout, r.End)
	if err1 != nil || err2 != nil || end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// ResolvePeriod turns a period into a date range around ref. Weeks run Monday
// through Sunday. Custom periods take start and end verbatim.
func ResolvePeriod(p Period, ref time.Time, start, end string) (DateRange, error) {
	ref = ref.UTC()
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)

	switch p {
	case PeriodWeek, "":
		offset := (int(day.Weekday()) + 6) % 7
		monday := day.AddDate(0, 0, -offset)
		return DateRange{Start: domain.DateOf(monday), End: domain.DateOf(monday.AddDate(0, 0, 6))}, nil
	case PeriodMonth:
		first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		return DateRange{Start: domain.DateOf(first), End: domain.DateOf(first.AddDate(0, 1, -1))}, nil
	case PeriodYear:
		first := time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return DateRange{Start: domain.DateOf(first), End: domain.DateOf(first.AddDate(1, 0, -1))}, nil
	case PeriodCustom:
		if start == "" || end == "" {
			return DateRange{}, fmt.Errorf("custom period requires start and end dates")
		}
		s, err := domain.ParseDate(start)
		if err != nil {
			return DateRange{}, err
		}
		e, err := domain.ParseDate(end)
		if err != nil {
			return DateRange{}, err
		}
		if e < s {
			return DateRange{}, fmt.Errorf("end date %s is before start date %s", e, s)
		}
		return DateRange{Start: s, End: e}, nil
	}
	return DateRange{}, fmt.Errorf("unknown period %q", p)
}
