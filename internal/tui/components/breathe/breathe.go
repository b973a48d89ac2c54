package breathe

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/mindfulpath/internal/activities/breathing"
)

const tickInterval = 250 * time.Millisecond

var (
	phaseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true).
			Padding(1, 0)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// TickMsg refreshes the view. Ticks scheduled for an earlier exercise are dropped.
type TickMsg struct {
	Time time.Time
	gen  int
}

// FinishedMsg carries a stopped exercise for the parent to record.
type FinishedMsg struct {
	Duration int
	Cycles   int
}

type KeyMap struct {
	Toggle key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys("s", " "),
			key.WithHelp("s/space", "start/stop"),
		),
	}
}

type Model struct {
	Keys    KeyMap
	session *breathing.Session
	now     func() time.Time
	bar     progress.Model
	gen     int
}

func New(now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}
	return Model{
		Keys: DefaultKeyMap(),
		now:  now,
		bar:  progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

func (m *Model) SetSize(width, _ int) {
	m.bar.Width = max(10, min(width-4, 60))
}

// Running reports whether an exercise is in progress.
func (m Model) Running() bool {
	return m.session != nil
}

func tick(gen int) tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, gen: gen}
	})
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Start begins a new exercise and the refresh ticker.
func (m Model) Start() (Model, tea.Cmd) {
	m.session = breathing.Start(m.now)
	m.gen++
	return m, tick(m.gen)
}

// Finish ends the running exercise and returns it; ok is false when idle.
func (m Model) Finish() (Model, FinishedMsg, bool) {
	if m.session == nil {
		return m, FinishedMsg{}, false
	}
	duration, cycles := m.session.Finish()
	m.session = nil
	return m, FinishedMsg{Duration: duration, Cycles: cycles}, true
}

// Stop ends the running exercise, if any, and reports it.
func (m Model) Stop() (Model, tea.Cmd) {
	m, done, ok := m.Finish()
	if !ok {
		return m, nil
	}
	return m, func() tea.Msg { return done }
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if m.session != nil && msg.gen == m.gen {
			return m, tick(m.gen)
		}
	case tea.KeyMsg:
		if key.Matches(msg, m.Keys.Toggle) {
			if m.session == nil {
				return m.Start()
			}
			return m.Stop()
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.session == nil {
		return strings.Join([]string{
			"Guided breathing: inhale 6s, hold 7s, exhale 8s.",
			"",
			hintStyle.Render("Press s or space to begin."),
		}, "\n")
	}

	phase, remaining := m.session.Current()
	elapsed := m.session.Elapsed()
	secs := int((remaining + time.Second - 1) / time.Second)
	return strings.Join([]string{
		phaseStyle.Render(fmt.Sprintf("%s · %ds", strings.ToUpper(string(phase)), secs)),
		phase.Instruction(),
		"",
		m.bar.ViewAs(m.session.Progress()),
		"",
		fmt.Sprintf("Elapsed %s · %d cycles completed", elapsed.Truncate(time.Second), breathing.Cycles(elapsed)),
		hintStyle.Render("Press s or space to finish."),
	}, "\n")
}
