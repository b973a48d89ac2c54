// Package memorygame implements the card-matching game: eight symbol pairs
// shuffled face down, revealed two at a time.
package memorygame

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/julianstephens/mindfulpath/internal/constants"
	"github.com/julianstephens/mindfulpath/internal/models"
)

// Symbols are the card faces; each appears on exactly two cards.
var Symbols = []string{"🌟", "🎨", "🌈", "🎭", "🎪", "🎯", "🎲", "🎮"}

var ErrOutOfRange = errors.New("card index out of range")

type Card struct {
	Symbol  string
	Flipped bool
	Matched bool
}

// FlipResult describes what a Flip did
type FlipResult int

const (
	// Ignored means the flip was rejected: card already face up or matched,
	// or a mismatched pair is still showing.
	Ignored FlipResult = iota
	First
	Match
	Mismatch
)

func (r FlipResult) String() string {
	switch r {
	case First:
		return "first"
	case Match:
		return "match"
	case Mismatch:
		return "mismatch"
	}
	return "ignored"
}

type Game struct {
	cards    []Card
	pending  []int
	moves    int
	matches  int
	now      func() time.Time
	started  time.Time
	finished time.Time
}

// New deals a shuffled board. A nil rng uses a time-seeded source.
func New(rng *rand.Rand, now func() time.Time) *Game {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}

	cards := make([]Card, 0, 2*len(Symbols))
	for _, s := range Symbols[:constants.MemoryGamePairs] {
		cards = append(cards, Card{Symbol: s}, Card{Symbol: s})
	}
	rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })

	return &Game{cards: cards, now: now}
}

// Cards returns a copy of the board
func (g *Game) Cards() []Card {
	return append([]Card(nil), g.cards...)
}

// Flip reveals card i. The second flip of a pair counts as one move; a
// mismatched pair stays face up until Hide is called.
func (g *Game) Flip(i int) (FlipResult, error) {
	if i < 0 || i >= len(g.cards) {
		return Ignored, fmt.Errorf("%w: %d", ErrOutOfRange, i)
	}
	if g.started.IsZero() {
		g.started = g.now()
	}
	if g.Won() || len(g.pending) == 2 || g.cards[i].Flipped || g.cards[i].Matched {
		return Ignored, nil
	}

	g.cards[i].Flipped = true
	g.pending = append(g.pending, i)
	if len(g.pending) == 1 {
		return First, nil
	}

	g.moves++
	a, b := g.pending[0], g.pending[1]
	if g.cards[a].Symbol != g.cards[b].Symbol {
		return Mismatch, nil
	}

	g.cards[a].Matched = true
	g.cards[b].Matched = true
	g.pending = g.pending[:0]
	g.matches++
	if g.Won() {
		g.finished = g.now()
	}
	return Match, nil
}

// Hide turns a showing mismatched pair face down again.
func (g *Game) Hide() {
	if len(g.pending) != 2 {
		return
	}
	for _, i := range g.pending {
		g.cards[i].Flipped = false
	}
	g.pending = g.pending[:0]
}

// Pending reports whether a mismatched pair is waiting to be hidden.
func (g *Game) Pending() bool {
	return len(g.pending) == 2
}

func (g *Game) Moves() int   { return g.moves }
func (g *Game) Matches() int { return g.matches }
func (g *Game) Won() bool    { return g.matches == constants.MemoryGamePairs }

// Elapsed is measured from the first flip and stops when the game is won.
func (g *Game) Elapsed() time.Duration {
	if g.started.IsZero() {
		return 0
	}
	if !g.finished.IsZero() {
		return g.finished.Sub(g.started)
	}
	return g.now().Sub(g.started)
}

// Score applies the time and move bonuses to the current state.
func (g *Game) Score() int {
	return Score(int(g.Elapsed()/time.Second), g.moves)
}

// Score is max(0, 300-seconds) + max(0, 100-5*moves).
func Score(seconds, moves int) int {
	return max(0, constants.MemoryGameTimeBonus-seconds) +
		max(0, constants.MemoryGameMoveBonus-constants.MemoryGameMovePenalty*moves)
}

// Stat returns the record to store for this game.
func (g *Game) Stat() models.MemoryGameStat {
	return models.MemoryGameStat{
		Timestamp:   g.now().UTC().Format(constants.TimestampFormat),
		Moves:       g.moves,
		TimeElapsed: int(g.Elapsed() / time.Second),
		Won:         g.Won(),
	}
}
