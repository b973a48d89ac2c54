package journal

import (
	"context"
	"errors"
	"strings"

	"github.com/julianstephens/mindfulpath/internal/cli"
)

type GratitudeAddCmd struct {
	Content []string `arg:"" help:"What you are grateful for."`
}

func (c *GratitudeAddCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	s, err := ctx.LoadSession(bg)
	if err != nil {
		return err
	}
	entry, err := s.AddGratitudeEntry(bg, strings.Join(c.Content, " "))
	if err != nil {
		return err
	}
	ctx.Printf("✓ Gratitude entry added (ID: %s)\n", entry.ID)
	return nil
}

type GratitudeListCmd struct {
	ShowIDs bool `help:"Show entry IDs." name:"show-ids"`
}

func (c *GratitudeListCmd) Run(ctx *cli.Context) error {
	s, err := ctx.LoadSession(context.Background())
	if err != nil {
		return err
	}
	entries := s.Snapshot().GratitudeEntries
	if len(entries) == 0 {
		ctx.Println("No gratitude entries found")
		return nil
	}
	ctx.Println("Gratitude entries:")
	for _, e := range entries {
		printEntry(ctx, e.ID, e.Timestamp, e.Content, c.ShowIDs)
	}
	return nil
}

type GratitudeRemoveCmd struct {
	ID string `arg:"" help:"Entry ID."`
}

func (c *GratitudeRemoveCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	s, err := ctx.LoadSession(bg)
	if err != nil {
		return err
	}
	if err := s.RemoveGratitudeEntry(bg, c.ID); err != nil {
		return err
	}
	ctx.Printf("✓ Gratitude entry %s removed\n", c.ID)
	return nil
}

type WritingAddCmd struct {
	Content []string `arg:"" optional:"" help:"Reflection text. Omit to open an editor form."`
}

func (c *WritingAddCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	s, err := ctx.LoadSession(bg)
	if err != nil {
		return err
	}

	content := strings.Join(c.Content, " ")
	if content == "" {
		content, err = promptReflection()
		if err != nil {
			return err
		}
	}
	if strings.TrimSpace(content) == "" {
		return errors.New("reflection cannot be empty")
	}

	writing, err := s.AddMindfulWriting(bg, content)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Reflection saved (ID: %s)\n", writing.ID)
	return nil
}

type WritingListCmd struct {
	ShowIDs bool `help:"Show entry IDs." name:"show-ids"`
}

func (c *WritingListCmd) Run(ctx *cli.Context) error {
	s, err := ctx.LoadSession(context.Background())
	if err != nil {
		return err
	}
	writings := s.Snapshot().MindfulWritings
	if len(writings) == 0 {
		ctx.Println("No reflections found")
		return nil
	}
	ctx.Println("Reflections:")
	for _, w := range writings {
		printEntry(ctx, w.ID, w.Timestamp, w.Content, c.ShowIDs)
	}
	return nil
}

type WritingRemoveCmd struct {
	ID string `arg:"" help:"Reflection ID."`
}

func (c *WritingRemoveCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	s, err := ctx.LoadSession(bg)
	if err != nil {
		return err
	}
	if err := s.RemoveMindfulWriting(bg, c.ID); err != nil {
		return err
	}
	ctx.Printf("✓ Reflection %s removed\n", c.ID)
	return nil
}

func printEntry(ctx *cli.Context, id, timestamp, content string, showID bool) {
	idStr := ""
	if showID {
		idStr = " (ID: " + id + ")"
	}
	ctx.Printf("  %s%s\n      %s\n", timestamp, idStr, cli.Truncate(content, 72))
}
