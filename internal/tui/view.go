package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/mindfulpath/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch {
	case m.form != nil:
		content = m.form.View()
	case m.state == constants.StateDashboard:
		content = m.dashboard.View()
	case m.state == constants.StateBreathing:
		content = m.breathe.View()
	case m.state == constants.StateMemory:
		content = m.memory.View()
	case m.state == constants.StateJournal:
		content = m.journal.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		docStyle.Render(content),
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.err != nil {
		return dangerStyle.Render("Error: " + m.err.Error())
	}
	return statusStyle.Render(m.status)
}
