package journal

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/mindfulpath/internal/activities/breathing"
	"github.com/julianstephens/mindfulpath/internal/activities/memorygame"
	"github.com/julianstephens/mindfulpath/internal/cli"
	"github.com/julianstephens/mindfulpath/internal/constants"
	"github.com/julianstephens/mindfulpath/internal/tui"
)

// runProgram starts a bubbletea program; replaced in tests.
var runProgram = func(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

type BreatheCmd struct {
	Duration int `short:"d" help:"Record a finished exercise of this many seconds instead of starting the guide."`
	Cycles   int `short:"c" help:"Cycles completed (derived from --duration when omitted)."`
}

func (c *BreatheCmd) Validate() error {
	if c.Duration < 0 || c.Cycles < 0 {
		return fmt.Errorf("duration and cycles must not be negative")
	}
	return nil
}

func (c *BreatheCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	s, err := ctx.LoadSession(bg)
	if err != nil {
		return err
	}

	if c.Duration == 0 && c.Cycles == 0 {
		ctx.Printf("Starting breathing guide: inhale %s, hold %s, exhale %s\n",
			constants.BreathInhale, constants.BreathHold, constants.BreathExhale)
		return runProgram(tui.NewModel(s, tui.WithStartTab(constants.StateBreathing)))
	}

	cycles := c.Cycles
	if cycles == 0 {
		cycles = breathing.Cycles(time.Duration(c.Duration) * time.Second)
	}
	exercise, err := s.AddBreathingExercise(bg, c.Duration, cycles)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Breathing exercise recorded: %ds, %d cycles\n", exercise.Duration, exercise.Cycles)
	return nil
}

type MemoryRecordCmd struct {
	Moves   int  `short:"m" required:"" help:"Moves taken."`
	Seconds int  `short:"s" required:"" help:"Seconds elapsed."`
	Won     bool `short:"w" help:"Whether every pair was matched."`
}

func (c *MemoryRecordCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	s, err := ctx.LoadSession(bg)
	if err != nil {
		return err
	}
	stat, err := s.AddMemoryGameResult(bg, c.Moves, c.Seconds, c.Won)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Memory game recorded: %d moves in %ds", stat.Moves, stat.TimeElapsed)
	if stat.Won {
		ctx.Printf(", score %d", memorygame.Score(stat.TimeElapsed, stat.Moves))
	}
	ctx.Println()
	return nil
}

type MemoryPlayCmd struct{}

func (c *MemoryPlayCmd) Run(ctx *cli.Context) error {
	s, err := ctx.LoadSession(context.Background())
	if err != nil {
		return err
	}
	return runProgram(tui.NewModel(s, tui.WithStartTab(constants.StateMemory)))
}
