package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/punchclock/internal/domain"
)

// FormatAttendanceList renders attendance records as a table with a total.
func FormatAttendanceList(records []domain.AttendanceRecord, now time.Time) string {
	if len(records) == 0 {
		return Dim("No attendance records found.") + "\n"
	}

	headers := []string{"ID", "DATE", "IN", "OUT", "HOURS", "USER"}
	rows := make([][]string, 0, len(records))
	var total float64
	for _, r := range records {
		in := r.TimeIn
		rows = append(rows, []string{
			TruncID(r.ID),
			HumanDateFrom(r.Date, now),
			ClockTime(&in),
			ClockTime(r.TimeOut),
			FormatHours(r.TotalHours),
			r.UserName,
		})
		total += r.TotalHours
	}

	var b strings.Builder
	b.WriteString(RenderTable(headers, rows))
	fmt.Fprintf(&b, "\n%s %s across %d records\n", Bold("Total:"), FormatHours(total), len(records))
	return b.String()
}

// FormatActivityList renders activities as a table.
func FormatActivityList(activities []domain.ActivityRecord, now time.Time) string {
	if len(activities) == 0 {
		return Dim("No activities found.") + "\n"
	}

	headers := []string{"ID", "DATE", "STATUS", "TITLE", "TAGS"}
	rows := make([][]string, 0, len(activities))
	for _, a := range activities {
		rows = append(rows, []string{
			TruncID(a.ID),
			HumanDateFrom(a.Date, now),
			ActivityStatusPill(a.Status),
			Truncate(a.Title, 40),
			TagList(a.Tags),
		})
	}
	return RenderTable(headers, rows)
}

// FormatActivity renders one activity in full.
func FormatActivity(a domain.ActivityRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Bold(a.Title), ActivityStatusPill(a.Status))
	fmt.Fprintf(&b, "%s\n\n", Dim(a.ID))
	b.WriteString(a.Description + "\n\n")
	fmt.Fprintf(&b, "%s %s\n", Dim("Date:"), a.Date)
	fmt.Fprintf(&b, "%s %s\n", Dim("Tags:"), TagList(a.Tags))
	if a.AssignedBy != nil && *a.AssignedBy != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("Assigned by:"), *a.AssignedBy)
	}
	if len(a.Photos) > 0 {
		names := make([]string, len(a.Photos))
		for i, p := range a.Photos {
			names[i] = p.Name
		}
		fmt.Fprintf(&b, "%s %s\n", Dim("Photos:"), strings.Join(names, ", "))
	}
	return b.String()
}
