package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/service"
)

// FormatUserStats renders a statistics report.
func FormatUserStats(s *service.UserStats) string {
	var b strings.Builder

	b.WriteString(Header(fmt.Sprintf("%s %s → %s", s.Period, s.Range.Start, s.Range.End)))
	b.WriteString("\n\n")

	b.WriteString(Bold("Attendance") + "\n")
	fmt.Fprintf(&b, "  Total       %s\n", FormatHours(s.Attendance.TotalHours))
	fmt.Fprintf(&b, "  Days worked %d\n", s.Attendance.DaysWorked)
	fmt.Fprintf(&b, "  Average     %s\n", FormatHours(s.Attendance.AverageHours))
	fmt.Fprintf(&b, "  Records     %d\n\n", s.Attendance.RecordCount)

	b.WriteString(Bold("Activities") + "\n")
	fmt.Fprintf(&b, "  Total       %d\n", s.Activities.Total)
	fmt.Fprintf(&b, "  Completed   %d\n", s.Activities.Completed)
	fmt.Fprintf(&b, "  In progress %d\n", s.Activities.InProgress)
	fmt.Fprintf(&b, "  Completion  %s\n\n", RenderPercentProgress(s.Activities.CompletionRate, 20))

	b.WriteString(Bold("Productivity") + "\n")
	fmt.Fprintf(&b, "  Hours/day      %.2f\n", s.Productivity.HoursPerDay)
	fmt.Fprintf(&b, "  Activities/day %.2f\n", s.Productivity.ActivitiesPerDay)
	fmt.Fprintf(&b, "  Efficiency     %s\n", RenderPercentProgress(float64(s.Productivity.Efficiency), 20))
	return b.String()
}

// FormatStatus renders the current session and today's dashboard.
func FormatStatus(session domain.UserSession, elapsed time.Duration, d *service.Dashboard) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s", StatePill(session.State()))
	if session.State() == domain.StateWorking {
		fmt.Fprintf(&b, "  since %s  %s", ClockTime(session.CurrentTimeIn), StyleBold.Render(FormatElapsed(elapsed)))
	}
	b.WriteString("\n\n")

	if d != nil {
		fmt.Fprintf(&b, "Today       %s\n", FormatHours(d.TodayHours))
		fmt.Fprintf(&b, "This week   %s of %s\n", FormatHours(d.WeekHours), FormatHours(d.WeeklyTarget))
		fmt.Fprintf(&b, "            %s\n", RenderPercentProgress(d.WeeklyProgress, 24))
		fmt.Fprintf(&b, "Activities  %d today, %d done\n", d.TodayActivities.Total, d.TodayActivities.Completed)
	}
	return RenderBox("punchclock", strings.TrimRight(b.String(), "\n"))
}
