package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/punchclock/internal/cli/formatter"
	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// clockInterval is how often the live clock reloads its numbers.
const clockInterval = time.Minute

// snapshot is everything the status screens show.
type snapshot struct {
	session   domain.UserSession
	elapsed   time.Duration
	dashboard *service.Dashboard
}

func loadSnapshot(ctx context.Context, app *App) (snapshot, error) {
	session, err := app.Tracker.State(ctx)
	if err != nil {
		return snapshot{}, err
	}
	elapsed, _, err := app.Tracker.Elapsed(ctx)
	if err != nil {
		return snapshot{}, err
	}
	p, err := app.Profiles.Current(ctx)
	if err != nil {
		return snapshot{}, err
	}
	dash, err := app.Stats.Dashboard(ctx, p.ID)
	if err != nil {
		return snapshot{}, err
	}
	return snapshot{session: session, elapsed: elapsed, dashboard: dash}, nil
}

// ── messages ─────────────────────────────────────────────────────────────────

type clockLoadedMsg struct {
	snap snapshot
	err  error
}

type clockTickMsg time.Time

type clockToggledMsg struct {
	tr  service.Transition
	err error
}

// ── keys ─────────────────────────────────────────────────────────────────────

type clockKeyMap struct {
	Toggle  key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func defaultClockKeys() clockKeyMap {
	return clockKeyMap{
		Toggle:  key.NewBinding(key.WithKeys("t", " "), key.WithHelp("t", "time in/out")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k clockKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Refresh, k.Quit}
}

// ── model ────────────────────────────────────────────────────────────────────

// clockModel is the live clock: the session state, today's totals and a key
// to time in or out. It reloads every clockInterval.
type clockModel struct {
	app      *App
	keys     clockKeyMap
	snap     snapshot
	loaded   bool
	err      error
	notice   string
	width    int
	quitting bool
}

func newClockModel(app *App) *clockModel {
	return &clockModel{app: app, keys: defaultClockKeys()}
}

func (m *clockModel) Init() tea.Cmd {
	return tea.Batch(m.load(), clockTick())
}

func clockTick() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg { return clockTickMsg(t) })
}

func (m *clockModel) load() tea.Cmd {
	app := m.app
	return func() tea.Msg {
		snap, err := loadSnapshot(context.Background(), app)
		return clockLoadedMsg{snap: snap, err: err}
	}
}

func (m *clockModel) toggle() tea.Cmd {
	app := m.app
	working := m.snap.session.State() == domain.StateWorking
	return func() tea.Msg {
		ctx := context.Background()
		var tr service.Transition
		var err error
		if working {
			tr, err = app.Tracker.TimeOut(ctx)
		} else {
			tr, err = app.Tracker.TimeIn(ctx)
		}
		return clockToggledMsg{tr: tr, err: err}
	}
}

func (m *clockModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case clockLoadedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.snap = msg.snap
			m.loaded = true
		}
		return m, nil

	case clockTickMsg:
		return m, tea.Batch(m.load(), clockTick())

	case clockToggledMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.notice = toggleNotice(msg.tr)
		return m, m.load()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			if !m.loaded {
				return m, nil
			}
			return m, m.toggle()
		case key.Matches(msg, m.keys.Refresh):
			m.notice = ""
			return m, m.load()
		}
	}
	return m, nil
}

func toggleNotice(tr service.Transition) string {
	switch {
	case !tr.Changed():
		return formatter.StyleYellow.Render(string(tr.Warning))
	case tr.Record != nil:
		return formatter.StyleGreen.Render("Timed out, worked " + formatter.FormatHours(tr.Record.TotalHours))
	default:
		return formatter.StyleGreen.Render("Timed in at " + formatter.ClockTime(tr.Since))
	}
}

func (m *clockModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	switch {
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	case !m.loaded:
		b.WriteString(formatter.Dim("Loading...") + "\n")
	default:
		b.WriteString(formatter.FormatStatus(m.snap.session, m.snap.elapsed, m.snap.dashboard) + "\n")
	}
	if m.notice != "" {
		b.WriteString(m.notice + "\n")
	}

	hints := make([]string, 0, 3)
	for _, k := range m.keys.ShortHelp() {
		hints = append(hints, formatter.Dim(k.Help().Key+": "+k.Help().Desc))
	}
	sep := formatter.Dim(strings.Repeat("─", max(m.width, 20)))
	b.WriteString(sep + "\n" + strings.Join(hints, "  "))
	return b.String()
}

func newClockCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clock",
		Short: "Live clock with time in/out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("clock needs an interactive terminal; use \"punchclock status\"")
			}
			_, err := tea.NewProgram(newClockModel(app), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}
