package tui

import (
	"context"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/mindfulpath/internal/constants"
	"github.com/julianstephens/mindfulpath/internal/session"
	"github.com/julianstephens/mindfulpath/internal/tui/components/breathe"
	"github.com/julianstephens/mindfulpath/internal/tui/components/dashboard"
	"github.com/julianstephens/mindfulpath/internal/tui/components/journal"
	"github.com/julianstephens/mindfulpath/internal/tui/components/memory"
)

var tabTitles = []string{"Dashboard", "Breathe", "Memory", "Journal"}

type Option func(*Model)

// WithStartTab opens the UI on tab. Starting on the breathing tab begins an
// exercise immediately.
func WithStartTab(tab constants.SessionState) Option {
	return func(m *Model) { m.state = tab }
}

func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// WithRand sets the source used to shuffle memory game boards.
func WithRand(rng *rand.Rand) Option {
	return func(m *Model) { m.rng = rng }
}

type EntryFormModel struct {
	Kind    journal.Kind
	Content string
}

type Model struct {
	session   *session.Store
	state     constants.SessionState
	keys      KeyMap
	help      help.Model
	dashboard dashboard.Model
	breathe   breathe.Model
	memory    memory.Model
	journal   journal.Model
	form      *huh.Form
	entryForm *EntryFormModel
	initCmd   tea.Cmd
	now       func() time.Time
	rng       *rand.Rand
	status    string
	err       error
	quitting  bool
	width     int
	height    int
}

func NewModel(s *session.Store, opts ...Option) Model {
	m := Model{
		session:   s,
		state:     constants.StateDashboard,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		dashboard: dashboard.New(),
		journal:   journal.New(0, 0),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(&m)
	}
	if int(m.state) < 0 || int(m.state) >= len(tabTitles) {
		m.state = constants.StateDashboard
	}

	m.breathe = breathe.New(m.now)
	m.memory = memory.New(m.rng, m.now)
	if m.state == constants.StateBreathing {
		m.breathe, m.initCmd = m.breathe.Start()
	}
	m.refresh()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateDashboard:
		keys = append(keys, m.dashboard.Keys.Pick)
	case constants.StateBreathing:
		keys = append(keys, m.breathe.Keys.Toggle)
	case constants.StateMemory:
		keys = append(keys, m.memory.Keys.Flip, m.memory.Keys.NewGame)
	case constants.StateJournal:
		keys = append(keys, m.journal.Keys.AddGratitude, m.journal.Keys.AddWriting)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Cancel}

	var actions []key.Binding
	switch m.state {
	case constants.StateDashboard:
		actions = []key.Binding{m.dashboard.Keys.Left, m.dashboard.Keys.Right, m.dashboard.Keys.Select, m.dashboard.Keys.Pick}
	case constants.StateBreathing:
		actions = []key.Binding{m.breathe.Keys.Toggle}
	case constants.StateMemory:
		k := m.memory.Keys
		actions = []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Flip, k.NewGame}
	case constants.StateJournal:
		actions = []key.Binding{m.journal.Keys.AddGratitude, m.journal.Keys.AddWriting, m.journal.Keys.Delete}
	}

	return [][]key.Binding{global, actions}
}

func (m Model) Init() tea.Cmd {
	return m.initCmd
}

// refresh reloads the dashboard summary and journal list from the store.
func (m *Model) refresh() {
	m.dashboard.SetSummary(m.session.GetDailySummary(""))
	data := m.session.Snapshot()
	m.journal.SetEntries(data.GratitudeEntries, data.MindfulWritings)
}

func (m *Model) setStatus(status string, err error) {
	m.status = status
	m.err = err
}

func (m *Model) newEntryForm(kind journal.Kind) *huh.Form {
	m.entryForm = &EntryFormModel{Kind: kind}
	title := "What are you grateful for today?"
	if kind == journal.Writing {
		title = "Mindful reflection"
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title(title).
				Value(&m.entryForm.Content).
				Validate(huh.ValidateNotEmpty()),
		),
	).WithShowHelp(true)
}

// saveEntry stores a journal entry of kind.
func (m *Model) saveEntry(kind journal.Kind, content string) error {
	ctx := context.Background()
	var err error
	if kind == journal.Gratitude {
		_, err = m.session.AddGratitudeEntry(ctx, content)
	} else {
		_, err = m.session.AddMindfulWriting(ctx, content)
	}
	if err != nil {
		m.setStatus("", err)
		return err
	}
	m.setStatus("✓ Saved "+string(kind)+" entry", nil)
	m.refresh()
	return nil
}

func (m *Model) deleteEntry(kind journal.Kind, id string) {
	ctx := context.Background()
	var err error
	if kind == journal.Gratitude {
		err = m.session.RemoveGratitudeEntry(ctx, id)
	} else {
		err = m.session.RemoveMindfulWriting(ctx, id)
	}
	if err != nil {
		m.setStatus("", err)
		return
	}
	m.setStatus("✓ Deleted "+string(kind)+" entry", nil)
	m.refresh()
}
