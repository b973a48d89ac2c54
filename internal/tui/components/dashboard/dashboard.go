package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/mindfulpath/internal/constants"
	"github.com/julianstephens/mindfulpath/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(0, 0, 1, 0)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(20)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	moodStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	selectedMoodStyle = moodStyle.
				BorderForeground(lipgloss.Color("205")).
				Foreground(lipgloss.Color("205")).
				Bold(true)
)

var moodFaces = map[int]string{1: "😢", 2: "😕", 3: "😐", 4: "🙂", 5: "😄"}

// SelectMoodMsg asks the parent to record a mood check-in.
type SelectMoodMsg struct {
	Mood int
}

type KeyMap struct {
	Left   key.Binding
	Right  key.Binding
	Select key.Binding
	Pick   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "lower mood"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "higher mood"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "check in"),
		),
		Pick: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5"),
			key.WithHelp("1-5", "check in"),
		),
	}
}

type Model struct {
	Summary models.DailySummary
	Keys    KeyMap
	cursor  int
	width   int
	height  int
}

func New() Model {
	return Model{Keys: DefaultKeyMap(), cursor: 3}
}

func (m *Model) SetSummary(s models.DailySummary) {
	m.Summary = s
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Cursor is the mood rating currently highlighted.
func (m Model) Cursor() int {
	return m.cursor
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.Keys.Left):
		m.cursor = max(constants.MoodMin, m.cursor-1)
	case key.Matches(keyMsg, m.Keys.Right):
		m.cursor = min(constants.MoodMax, m.cursor+1)
	case key.Matches(keyMsg, m.Keys.Select):
		return m, selectMood(m.cursor)
	case key.Matches(keyMsg, m.Keys.Pick):
		m.cursor = int(keyMsg.String()[0] - '0')
		return m, selectMood(m.cursor)
	}
	return m, nil
}

func selectMood(mood int) tea.Cmd {
	return func() tea.Msg { return SelectMoodMsg{Mood: mood} }
}

func (m Model) View() string {
	s := m.Summary
	rows := []struct{ label, value string }{
		{"Mood check-ins", fmt.Sprintf("%d (average %.1f)", s.TotalMoodEntries, s.AverageMood)},
		{"Breathing", fmt.Sprintf("%.1f min, %d cycles", s.BreathingMinutes, s.TotalBreathingCycles)},
		{"Gratitude", fmt.Sprintf("%d", s.GratitudeCount)},
		{"Reflections", fmt.Sprintf("%d", s.WritingCount)},
		{"Habits done", fmt.Sprintf("%d", s.CompletedHabits)},
		{"Average energy", fmt.Sprintf("%.0f%%", s.AverageEnergy)},
		{"Memory games", fmt.Sprintf("%d won of %d", s.MemoryGameWins, s.TotalMemoryGames)},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Today · " + s.Date))
	b.WriteString("\n")
	for _, r := range rows {
		b.WriteString(labelStyle.Render(r.label) + valueStyle.Render(r.value) + "\n")
	}

	b.WriteString("\nHow are you feeling?\n")
	faces := make([]string, 0, constants.MoodMax)
	for mood := constants.MoodMin; mood <= constants.MoodMax; mood++ {
		style := moodStyle
		if mood == m.cursor {
			style = selectedMoodStyle
		}
		faces = append(faces, style.Render(fmt.Sprintf("%s %d", moodFaces[mood], mood)))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, faces...))
	b.WriteString("\n" + constants.MoodLabels[m.cursor])
	return b.String()
}
