package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/mindfulpath/internal/constants"
	"github.com/julianstephens/mindfulpath/internal/logger"
	"github.com/julianstephens/mindfulpath/internal/tui/components/breathe"
	"github.com/julianstephens/mindfulpath/internal/tui/components/dashboard"
	"github.com/julianstephens/mindfulpath/internal/tui/components/journal"
	"github.com/julianstephens/mindfulpath/internal/tui/components/memory"
)

const chromeHeight = 4

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.help.Width = size.Width
		m.dashboard.SetSize(size.Width, size.Height-chromeHeight)
		m.breathe.SetSize(size.Width, size.Height-chromeHeight)
		m.journal.SetSize(size.Width-4, size.Height-chromeHeight-2)
		return m, nil
	}

	// Ticks keep the exercise timer running while other tabs are shown.
	if tick, ok := msg.(breathe.TickMsg); ok {
		var cmd tea.Cmd
		m.breathe, cmd = m.breathe.Update(tick)
		return m, cmd
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case dashboard.SelectMoodMsg:
		if _, err := m.session.AddMoodEntry(context.Background(), msg.Mood, ""); err != nil {
			m.setStatus("", err)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("✓ Mood recorded: %s", constants.MoodLabels[msg.Mood]), nil)
		m.refresh()
		return m, nil

	case breathe.FinishedMsg:
		m.recordBreathing(msg)
		return m, nil

	case memory.FinishedMsg:
		if _, err := m.session.AddMemoryGameResult(context.Background(), msg.Stat.Moves, msg.Stat.TimeElapsed, msg.Stat.Won); err != nil {
			m.setStatus("", err)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("✓ Game saved: %d moves in %ds", msg.Stat.Moves, msg.Stat.TimeElapsed), nil)
		m.refresh()
		return m, nil

	case journal.AddEntryMsg:
		m.form = m.newEntryForm(msg.Kind)
		return m, m.form.Init()

	case journal.DeleteEntryMsg:
		m.deleteEntry(msg.Kind, msg.ID)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			if b, done, ok := m.breathe.Finish(); ok {
				m.breathe = b
				m.recordBreathing(done)
			}
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % constants.SessionState(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + constants.SessionState(len(tabTitles))) % constants.SessionState(len(tabTitles))
			return m, nil
		}
		return m.updateActive(msg)
	}

	// Remaining messages (delayed card hides, list internals) go to the
	// components that may have scheduled them.
	var memCmd, journalCmd tea.Cmd
	m.memory, memCmd = m.memory.Update(msg)
	m.journal, journalCmd = m.journal.Update(msg)
	return m, tea.Batch(memCmd, journalCmd)
}

func (m Model) updateActive(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case constants.StateDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case constants.StateBreathing:
		m.breathe, cmd = m.breathe.Update(msg)
	case constants.StateMemory:
		m.memory, cmd = m.memory.Update(msg)
	case constants.StateJournal:
		m.journal, cmd = m.journal.Update(msg)
	}
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, m.keys.Cancel) {
		m.form = nil
		m.entryForm = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.saveEntry(m.entryForm.Kind, m.entryForm.Content); err != nil {
			// Stay in the form so the entry can be retried or cancelled
			m.form.State = huh.StateNormal
			return m, cmd
		}
		m.form = nil
		m.entryForm = nil
	case huh.StateAborted:
		m.form = nil
		m.entryForm = nil
	}
	return m, cmd
}

func (m *Model) recordBreathing(done breathe.FinishedMsg) {
	if done.Duration == 0 {
		return
	}
	if _, err := m.session.AddBreathingExercise(context.Background(), done.Duration, done.Cycles); err != nil {
		logger.Error("Failed to record breathing exercise", "error", err)
		m.setStatus("", err)
		return
	}
	m.setStatus(fmt.Sprintf("✓ Breathing recorded: %ds, %d cycles", done.Duration, done.Cycles), nil)
	m.refresh()
}
