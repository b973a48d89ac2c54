package journal

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianstephens/mindfulpath/internal/cli"
	"github.com/julianstephens/mindfulpath/internal/constants"
)

type MoodAddCmd struct {
	Mood  int    `arg:"" help:"Mood rating from 1 (very low) to 5 (great)."`
	Label string `short:"l" help:"Label for the rating (defaults to the standard label)."`
}

func (c *MoodAddCmd) Validate() error {
	if c.Mood < constants.MoodMin || c.Mood > constants.MoodMax {
		return fmt.Errorf("mood must be between %d and %d", constants.MoodMin, constants.MoodMax)
	}
	return nil
}

func (c *MoodAddCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	s, err := ctx.LoadSession(bg)
	if err != nil {
		return err
	}
	entry, err := s.AddMoodEntry(bg, c.Mood, c.Label)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Mood recorded: %d (%s)\n", entry.Mood, entry.Label)
	return nil
}

type MoodListCmd struct {
	Date string `short:"d" help:"Only show entries from this date (YYYY-MM-DD)."`
}

func (c *MoodListCmd) Run(ctx *cli.Context) error {
	s, err := ctx.LoadSession(context.Background())
	if err != nil {
		return err
	}
	entries := s.Snapshot().MoodEntries

	shown := 0
	for _, e := range entries {
		if c.Date != "" && !strings.HasPrefix(e.Timestamp, c.Date) {
			continue
		}
		if shown == 0 {
			ctx.Println("Mood entries:")
		}
		ctx.Printf("  %s  %s %d (%s)\n", e.Timestamp, moodBar(e.Mood), e.Mood, e.Label)
		shown++
	}
	if shown == 0 {
		ctx.Println("No mood entries found")
	}
	return nil
}

func moodBar(mood int) string {
	return strings.Repeat("●", mood) + strings.Repeat("○", constants.MoodMax-mood)
}
