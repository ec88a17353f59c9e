package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/punchclock/internal/cli/formatter"
	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// punchclockHuhTheme returns a custom huh theme using the Gruvbox palette.
func punchclockHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// activityDraft holds the editable fields of an activity as form strings.
type activityDraft struct {
	Title       string
	Description string
	Tags        string
	Status      string
}

func draftFrom(a domain.ActivityRecord) activityDraft {
	return activityDraft{
		Title:       a.Title,
		Description: a.Description,
		Tags:        strings.Join(a.Tags, ", "),
		Status:      string(a.Status),
	}
}

// applyTo copies the draft onto a. Tags are comma separated.
func (d activityDraft) applyTo(a *domain.ActivityRecord) {
	a.Title = strings.TrimSpace(d.Title)
	a.Description = strings.TrimSpace(d.Description)
	a.Tags = domain.NormalizeTags(strings.Split(d.Tags, ","))
	if d.Status != "" {
		a.Status = domain.ActivityStatus(d.Status)
	}
}

func requiredText(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// wizardActivity creates a huh form that edits d in place.
func wizardActivity(title string, d *activityDraft) *huh.Form {
	if d.Status == "" {
		d.Status = string(domain.ActivityInProgress)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Placeholder("What did you work on?").
				Value(&d.Title).
				Validate(requiredText("title")),
			huh.NewText().
				Title("Description").
				Value(&d.Description).
				Validate(requiredText("description")),
			huh.NewInput().
				Title("Tags").
				Description("Comma separated").
				Value(&d.Tags),
			huh.NewSelect[string]().
				Title("Status").
				Options(
					huh.NewOption("In progress", string(domain.ActivityInProgress)),
					huh.NewOption("Completed", string(domain.ActivityCompleted)),
				).
				Value(&d.Status),
		),
	).WithTheme(punchclockHuhTheme()).WithShowHelp(false)
}

// confirm asks a yes/no question. It returns false without prompting when
// the terminal is not interactive.
func confirm(app *App, question string) (bool, error) {
	if !app.interactive() {
		return false, nil
	}
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(question).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithTheme(punchclockHuhTheme()).WithShowHelp(false).Run()
	return ok, err
}
