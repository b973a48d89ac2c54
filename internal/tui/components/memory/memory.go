package memory

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/mindfulpath/internal/activities/memorygame"
	"github.com/julianstephens/mindfulpath/internal/models"
)

const (
	columns   = 4
	hideDelay = 800 * time.Millisecond
)

var (
	cardStyle = lipgloss.NewStyle().
			Width(4).
			Align(lipgloss.Center).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	cursorCardStyle = cardStyle.BorderForeground(lipgloss.Color("205"))

	matchedCardStyle = cardStyle.Foreground(lipgloss.Color("42"))

	wonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)
)

// FinishedMsg carries a won game for the parent to record.
type FinishedMsg struct {
	Stat models.MemoryGameStat
}

type hideMsg struct{}

type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Flip    key.Binding
	NewGame key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Flip: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "flip"),
		),
		NewGame: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new game"),
		),
	}
}

type Model struct {
	Keys   KeyMap
	game   *memorygame.Game
	rng    *rand.Rand
	now    func() time.Time
	cursor int
}

func New(rng *rand.Rand, now func() time.Time) Model {
	return Model{
		Keys: DefaultKeyMap(),
		game: memorygame.New(rng, now),
		rng:  rng,
		now:  now,
	}
}

// Game exposes the board being played.
func (m Model) Game() *memorygame.Game {
	return m.game
}

func (m Model) Cursor() int {
	return m.cursor
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Flip turns card i, hiding any mismatched pair still showing first.
func (m Model) Flip(i int) (Model, tea.Cmd) {
	if m.game.Pending() {
		m.game.Hide()
	}
	res, err := m.game.Flip(i)
	if err != nil {
		return m, nil
	}
	switch res {
	case memorygame.Mismatch:
		return m, tea.Tick(hideDelay, func(time.Time) tea.Msg { return hideMsg{} })
	case memorygame.Match:
		if m.game.Won() {
			stat := m.game.Stat()
			return m, func() tea.Msg { return FinishedMsg{Stat: stat} }
		}
	}
	return m, nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	cards := len(m.game.Cards())
	switch msg := msg.(type) {
	case hideMsg:
		m.game.Hide()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Up):
			if m.cursor >= columns {
				m.cursor -= columns
			}
		case key.Matches(msg, m.Keys.Down):
			if m.cursor+columns < cards {
				m.cursor += columns
			}
		case key.Matches(msg, m.Keys.Left):
			if m.cursor%columns > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.Keys.Right):
			if m.cursor%columns < columns-1 && m.cursor+1 < cards {
				m.cursor++
			}
		case key.Matches(msg, m.Keys.Flip):
			return m.Flip(m.cursor)
		case key.Matches(msg, m.Keys.NewGame):
			m.game = memorygame.New(m.rng, m.now)
			m.cursor = 0
		}
	}
	return m, nil
}

func (m Model) View() string {
	cards := m.game.Cards()
	var rows []string
	for start := 0; start < len(cards); start += columns {
		var row []string
		for i := start; i < start+columns && i < len(cards); i++ {
			c := cards[i]
			face := "?"
			style := cardStyle
			switch {
			case c.Matched:
				face, style = c.Symbol, matchedCardStyle
			case c.Flipped:
				face = c.Symbol
			}
			if i == m.cursor {
				style = style.BorderForeground(lipgloss.Color("205"))
				if !c.Matched && !c.Flipped {
					style = cursorCardStyle
				}
			}
			row = append(row, style.Render(face))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	b.WriteString(fmt.Sprintf("\n\nMoves %d · Pairs %d/%d · Time %s\n",
		m.game.Moves(), m.game.Matches(), len(cards)/2, m.game.Elapsed().Truncate(time.Second)))
	if m.game.Won() {
		b.WriteString(wonStyle.Render(fmt.Sprintf("You won! Score %d. Press n to play again.", m.game.Score())))
	}
	return b.String()
}
