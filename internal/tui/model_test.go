package tui

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/mindfulpath/internal/constants"
	"github.com/julianstephens/mindfulpath/internal/session"
	"github.com/julianstephens/mindfulpath/internal/storage"
	"github.com/julianstephens/mindfulpath/internal/tui/components/breathe"
	"github.com/julianstephens/mindfulpath/internal/tui/components/dashboard"
	"github.com/julianstephens/mindfulpath/internal/tui/components/journal"
	"github.com/julianstephens/mindfulpath/internal/tui/components/memory"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func setupTestModel(t *testing.T, opts ...Option) (Model, *session.Store, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	s := session.New(storage.NewMemoryStore(), session.WithClock(clock.Now))
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	opts = append([]Option{WithClock(clock.Now)}, opts...)
	return NewModel(s, opts...), s, clock
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, want Model", next)
	}
	return nm, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTabNavigation(t *testing.T) {
	m, _, _ := setupTestModel(t)
	if m.state != constants.StateDashboard {
		t.Fatalf("initial state = %d, want dashboard", m.state)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.state != constants.StateJournal {
		t.Errorf("shift+tab from dashboard = %d, want journal", m.state)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != constants.StateDashboard {
		t.Errorf("tab from journal = %d, want dashboard", m.state)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != constants.StateBreathing {
		t.Errorf("tab from dashboard = %d, want breathing", m.state)
	}
}

func TestWithStartTab(t *testing.T) {
	m, _, _ := setupTestModel(t, WithStartTab(constants.StateMemory))
	if m.state != constants.StateMemory {
		t.Errorf("state = %d, want memory", m.state)
	}
	if m.Init() != nil {
		t.Error("memory tab should not schedule a tick")
	}

	m, _, _ = setupTestModel(t, WithStartTab(constants.SessionState(42)))
	if m.state != constants.StateDashboard {
		t.Errorf("out of range tab = %d, want dashboard", m.state)
	}
}

func TestDashboardMoodCheckIn(t *testing.T) {
	m, s, _ := setupTestModel(t)

	m, cmd := update(t, m, runes("4"))
	if cmd == nil {
		t.Fatal("expected a command from mood key")
	}
	msg, ok := cmd().(dashboard.SelectMoodMsg)
	if !ok || msg.Mood != 4 {
		t.Fatalf("cmd() = %#v, want SelectMoodMsg{4}", msg)
	}

	m, _ = update(t, m, msg)
	data := s.Snapshot()
	if len(data.MoodEntries) != 1 || data.MoodEntries[0].Mood != 4 || data.MoodEntries[0].Label != "Good" {
		t.Fatalf("mood entries = %+v", data.MoodEntries)
	}
	if m.dashboard.Summary.TotalMoodEntries != 1 {
		t.Errorf("dashboard summary not refreshed: %+v", m.dashboard.Summary)
	}
	if !strings.Contains(m.View(), "Mood recorded: Good") {
		t.Error("view is missing the status line")
	}
}

func TestBreathingRecordsOnStop(t *testing.T) {
	m, s, clock := setupTestModel(t, WithStartTab(constants.StateBreathing))
	if !m.breathe.Running() {
		t.Fatal("breathing should start when opened on the breathing tab")
	}
	if m.Init() == nil {
		t.Error("expected Init to schedule the breathing ticker")
	}

	clock.now = clock.now.Add(42*time.Second + 500*time.Millisecond)
	m, cmd := update(t, m, runes("s"))
	if m.breathe.Running() {
		t.Fatal("exercise still running after stop")
	}
	done, ok := cmd().(breathe.FinishedMsg)
	if !ok {
		t.Fatalf("cmd() = %T, want FinishedMsg", done)
	}
	if done.Duration != 42 || done.Cycles != 2 {
		t.Errorf("finished = %+v, want 42s and 2 cycles", done)
	}

	update(t, m, done)
	got := s.Snapshot().BreathingExercises
	if len(got) != 1 || got[0].Duration != 42 || got[0].Cycles != 2 {
		t.Errorf("breathing exercises = %+v", got)
	}
}

func TestQuitRecordsRunningExercise(t *testing.T) {
	m, s, clock := setupTestModel(t, WithStartTab(constants.StateBreathing))
	clock.now = clock.now.Add(30 * time.Second)

	m, cmd := update(t, m, runes("q"))
	if !m.quitting || cmd == nil {
		t.Fatal("expected quit")
	}
	if got := s.Snapshot().BreathingExercises; len(got) != 1 || got[0].Duration != 30 {
		t.Errorf("breathing exercises = %+v", got)
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestBreathingIgnoresZeroDuration(t *testing.T) {
	m, s, _ := setupTestModel(t)
	update(t, m, breathe.FinishedMsg{})
	if n := len(s.Snapshot().BreathingExercises); n != 0 {
		t.Errorf("recorded %d exercises for an empty session", n)
	}
}

func TestMemoryGameWinIsSaved(t *testing.T) {
	m, s, clock := setupTestModel(t, WithStartTab(constants.StateMemory), WithRand(rand.New(rand.NewSource(7))))

	bySymbol := map[string][]int{}
	for i, c := range m.memory.Game().Cards() {
		bySymbol[c.Symbol] = append(bySymbol[c.Symbol], i)
	}

	var last tea.Cmd
	for _, pair := range bySymbol {
		m.memory, _ = m.memory.Flip(pair[0])
		clock.now = clock.now.Add(2 * time.Second)
		m.memory, last = m.memory.Flip(pair[1])
	}
	if last == nil {
		t.Fatal("expected finished command after the last pair")
	}
	done, ok := last().(memory.FinishedMsg)
	if !ok {
		t.Fatalf("cmd() = %T, want FinishedMsg", done)
	}

	update(t, m, done)
	stats := s.Snapshot().MemoryGameStats
	if len(stats) != 1 {
		t.Fatalf("memory stats = %+v", stats)
	}
	if !stats[0].Won || stats[0].Moves != 8 || stats[0].TimeElapsed != 16 {
		t.Errorf("stat = %+v, want won in 8 moves and 16s", stats[0])
	}
}

func TestJournalEntries(t *testing.T) {
	m, s, clock := setupTestModel(t, WithStartTab(constants.StateJournal))

	if err := m.saveEntry(journal.Gratitude, "morning sunlight"); err != nil {
		t.Fatalf("saveEntry() failed: %v", err)
	}
	clock.now = clock.now.Add(time.Minute)
	if err := m.saveEntry(journal.Writing, "felt calm after the walk"); err != nil {
		t.Fatalf("saveEntry() failed: %v", err)
	}

	items := m.journal.Items()
	if len(items) != 2 {
		t.Fatalf("journal items = %d, want 2", len(items))
	}
	if first := items[0].(journal.Item); first.Kind != journal.Writing {
		t.Errorf("newest item kind = %s, want writing", first.Kind)
	}

	if err := m.saveEntry(journal.Gratitude, "   "); err == nil {
		t.Error("expected error for blank entry")
	}

	id := s.Snapshot().GratitudeEntries[0].ID
	m, _ = update(t, m, journal.DeleteEntryMsg{Kind: journal.Gratitude, ID: id})
	if n := len(s.Snapshot().GratitudeEntries); n != 0 {
		t.Errorf("gratitude entries after delete = %d", n)
	}
	if len(m.journal.Items()) != 1 {
		t.Errorf("journal list not refreshed after delete")
	}
}

func TestJournalFormOpensAndCancels(t *testing.T) {
	m, _, _ := setupTestModel(t, WithStartTab(constants.StateJournal))

	m, cmd := update(t, m, runes("g"))
	if cmd == nil {
		t.Fatal("expected add entry command")
	}
	m, _ = update(t, m, cmd())
	if m.form == nil || m.entryForm.Kind != journal.Gratitude {
		t.Fatal("expected gratitude form to open")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.form != nil {
		t.Error("esc should close the form")
	}
}

func TestViewShowsTabs(t *testing.T) {
	m, _, _ := setupTestModel(t)
	view := m.View()
	for _, title := range tabTitles {
		if !strings.Contains(view, title) {
			t.Errorf("view missing tab %q", title)
		}
	}
	if !strings.Contains(view, "How are you feeling?") {
		t.Error("dashboard content missing from view")
	}
}
