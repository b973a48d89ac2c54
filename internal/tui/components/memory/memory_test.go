package memory

import (
	"math/rand"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestModel() Model {
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	return New(rand.New(rand.NewSource(3)), func() time.Time { return start })
}

func TestCursorMovement(t *testing.T) {
	m := newTestModel()
	tests := []struct {
		key  tea.KeyMsg
		want int
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, 0},
		{tea.KeyMsg{Type: tea.KeyLeft}, 0},
		{tea.KeyMsg{Type: tea.KeyRight}, 1},
		{tea.KeyMsg{Type: tea.KeyDown}, 5},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")}, 6},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")}, 7},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")}, 7},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}, 11},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}, 15},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}, 15},
	}
	for i, tt := range tests {
		m, _ = m.Update(tt.key)
		if m.Cursor() != tt.want {
			t.Fatalf("step %d (%s): cursor = %d, want %d", i, tt.key, m.Cursor(), tt.want)
		}
	}
}

func TestMismatchHidesOnNextFlip(t *testing.T) {
	m := newTestModel()
	cards := m.Game().Cards()

	a := 0
	b := -1
	c := -1
	for i := 1; i < len(cards); i++ {
		if cards[i].Symbol != cards[a].Symbol {
			if b < 0 {
				b = i
			} else if c < 0 && cards[i].Symbol != cards[b].Symbol {
				c = i
			}
		}
	}

	m, _ = m.Flip(a)
	m, cmd := m.Flip(b)
	if cmd == nil {
		t.Fatal("mismatch should schedule a hide")
	}
	if !m.Game().Pending() {
		t.Fatal("mismatched pair should stay showing")
	}

	m, _ = m.Flip(c)
	got := m.Game().Cards()
	if got[a].Flipped || got[b].Flipped {
		t.Error("previous mismatched pair should be hidden")
	}
	if !got[c].Flipped {
		t.Error("new card should be face up")
	}
	if m.Game().Moves() != 1 {
		t.Errorf("moves = %d, want 1", m.Game().Moves())
	}
}

func TestHideMessage(t *testing.T) {
	m := newTestModel()
	cards := m.Game().Cards()
	other := 1
	for cards[other].Symbol == cards[0].Symbol {
		other++
	}
	m, _ = m.Flip(0)
	m, _ = m.Flip(other)

	m, _ = m.Update(hideMsg{})
	if m.Game().Pending() {
		t.Error("hideMsg should turn the pair face down")
	}
}

func TestNewGameResets(t *testing.T) {
	m := newTestModel()
	m, _ = m.Flip(0)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	for i, c := range m.Game().Cards() {
		if c.Flipped || c.Matched {
			t.Fatalf("card %d not face down after new game", i)
		}
	}
}
