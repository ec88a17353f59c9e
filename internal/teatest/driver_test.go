package teatest

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type loadedMsg string

type slowMsg struct{}

// counterModel counts key presses and loads a greeting on Init.
type counterModel struct {
	presses  int
	greeting string
	width    int
}

func (m *counterModel) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return loadedMsg("hello") },
		tea.Tick(time.Hour, func(time.Time) tea.Msg { return slowMsg{} }),
	)
}

func (m *counterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case loadedMsg:
		m.greeting = string(msg)
	case tea.KeyMsg:
		if msg.String() == "q" {
			return m, tea.Quit
		}
		m.presses++
	}
	return m, nil
}

func (m *counterModel) View() string {
	return fmt.Sprintf("%s presses=%d width=%d", m.greeting, m.presses, m.width)
}

func TestDriver_DrainInitRunsImmediateCmdsAndDropsTimers(t *testing.T) {
	d := New(t, &counterModel{}, WithSize(80, 24))
	d.DrainInit()

	assert.True(t, d.ViewContains("hello", "width=80"))
	assert.Equal(t, 1, d.Pending)
}

func TestDriver_TypeSendsEachRune(t *testing.T) {
	d := New(t, &counterModel{})
	d.Type("abc")
	d.Press(tea.KeyEnter)

	assert.True(t, d.ViewContains("presses=4"))
	assert.Len(t, d.Seen, 4)
}

func TestDriver_QuitStopsDelivery(t *testing.T) {
	d := New(t, &counterModel{})
	d.PressKey('q')
	assert.True(t, d.Quitting)

	d.PressKey('x')
	assert.True(t, d.ViewContains("presses=0"))
}

func TestDriver_ViewContainsRequiresAll(t *testing.T) {
	d := New(t, &counterModel{})
	assert.False(t, d.ViewContains("presses=0", "missing"))
}
