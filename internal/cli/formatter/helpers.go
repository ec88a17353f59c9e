package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/stats"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// HumanDateFrom renders a canonical calendar date relative to now:
// "Today", "Yesterday" or "Jan 2, 2006".
func HumanDateFrom(date string, now time.Time) string {
	d, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return date
	}
	today := domain.DateOf(now)
	switch date {
	case today:
		return "Today"
	case domain.DateOf(now.AddDate(0, 0, -1)):
		return "Yesterday"
	}
	return d.Format("Jan 2, 2006")
}

// ClockTime renders the local wall-clock time of t, or "--:--" when nil.
func ClockTime(t *time.Time) string {
	if t == nil {
		return "--:--"
	}
	return t.Local().Format("15:04")
}

// FormatHours renders fractional hours as "9h 30m".
func FormatHours(h float64) string {
	return stats.FormatDuration(h)
}

// FormatElapsed renders a running duration as "01:05:09".
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total/60%60, total%60)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Truncate shortens s to at most n runes, ending in "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 4 {
		return s
	}
	return string(r[:n-3]) + "..."
}

// TagList renders tags as "#a #b", or a dim dash when empty.
func TagList(tags []string) string {
	if len(tags) == 0 {
		return StyleDim.Render("--")
	}
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = "#" + t
	}
	return StylePurple.Render(strings.Join(parts, " "))
}
