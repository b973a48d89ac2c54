package journal

import (
	"sort"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/mindfulpath/internal/models"
)

type Kind string

const (
	Gratitude Kind = "gratitude"
	Writing   Kind = "writing"
)

// AddEntryMsg asks the parent to open the form for a new entry.
type AddEntryMsg struct {
	Kind Kind
}

type DeleteEntryMsg struct {
	Kind Kind
	ID   string
}

type Item struct {
	Kind      Kind
	ID        string
	Content   string
	Timestamp string
}

func (i Item) Title() string {
	if i.Kind == Gratitude {
		return "🙏 " + i.Content
	}
	return "✍ " + i.Content
}

func (i Item) Description() string {
	if len(i.Timestamp) >= 16 {
		return string(i.Kind) + " | " + i.Timestamp[:10] + " " + i.Timestamp[11:16]
	}
	return string(i.Kind)
}

func (i Item) FilterValue() string { return i.Content }

type KeyMap struct {
	AddGratitude key.Binding
	AddWriting   key.Binding
	Delete       key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		AddGratitude: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "add gratitude"),
		),
		AddWriting: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "add reflection"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	Keys KeyMap
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Journal"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)

	return Model{list: l, Keys: DefaultKeyMap()}
}

// SetEntries shows gratitude entries and reflections together, newest first.
func (m *Model) SetEntries(gratitude []models.GratitudeEntry, writings []models.MindfulWriting) {
	items := make([]Item, 0, len(gratitude)+len(writings))
	for _, g := range gratitude {
		items = append(items, Item{Kind: Gratitude, ID: g.ID, Content: g.Content, Timestamp: g.Timestamp})
	}
	for _, w := range writings {
		items = append(items, Item{Kind: Writing, ID: w.ID, Content: w.Content, Timestamp: w.Timestamp})
	}
	sort.SliceStable(items, func(a, b int) bool { return items[a].Timestamp > items[b].Timestamp })

	listItems := make([]list.Item, len(items))
	for i, it := range items {
		listItems[i] = it
	}
	m.list.SetItems(listItems)
}

func (m Model) Items() []list.Item {
	return m.list.Items()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.Keys.AddGratitude):
			return m, func() tea.Msg { return AddEntryMsg{Kind: Gratitude} }
		case key.Matches(msg, m.Keys.AddWriting):
			return m, func() tea.Msg { return AddEntryMsg{Kind: Writing} }
		case key.Matches(msg, m.Keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteEntryMsg{Kind: i.Kind, ID: i.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No journal entries yet.\n  Press 'g' for gratitude or 'w' for a reflection."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
