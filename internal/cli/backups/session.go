package backups

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/julianstephens/mindfulpath/internal/backup"
	"github.com/julianstephens/mindfulpath/internal/cli"
)

type SessionClearCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *SessionClearCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	s, err := ctx.LoadSession(bg)
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := ctx.Confirm("Clear all session data? A backup is taken first.")
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Clear cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	if err := s.Clear(bg); err != nil {
		return err
	}
	ctx.Println("✓ Session cleared")
	return nil
}

type SessionExportCmd struct {
	Output string `short:"o" help:"File to write (default stdout)."`
}

func (c *SessionExportCmd) Run(ctx *cli.Context) error {
	s, err := ctx.LoadSession(context.Background())
	if err != nil {
		return err
	}

	var w io.Writer = ctx.Out
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := backup.WriteExport(w, s.Snapshot(), time.Now()); err != nil {
		return err
	}
	if c.Output != "" {
		ctx.Printf("✓ Session exported to: %s\n", c.Output)
	}
	return nil
}

type SessionImportCmd struct {
	File string `arg:"" help:"Export file to import." type:"existingfile"`
	Yes  bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *SessionImportCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	s, err := ctx.LoadSession(bg)
	if err != nil {
		return err
	}
	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Replace the current session with %s?", c.File))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Import cancelled.")
			return nil
		}
	}

	safety, err := ctx.Backups.RestoreBackup(bg, c.File, s)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	if safety != "" {
		ctx.Printf("✓ Previous session saved to: %s\n", safety)
	}
	ctx.Println("✓ Session imported")
	return nil
}
