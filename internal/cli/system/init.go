package system

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/mindfulpath/internal/cli"
	"github.com/julianstephens/mindfulpath/internal/constants"
	"github.com/julianstephens/mindfulpath/internal/session"
	"github.com/julianstephens/mindfulpath/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Reset the session, after backing it up, before initialization."`
	Source string `help:"Storage location (path or DSN) to copy an existing session from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	bg := context.Background()

	if c.Source != "" && storage.RedactDSN(c.Source) == ctx.Store.Location() {
		return fmt.Errorf("cannot migrate when source and destination are the same: %s", storage.RedactDSN(c.Source))
	}

	// Initialize destination store
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	if err := ctx.Session.Load(bg); err != nil {
		return err
	}
	ctx.MarkLoaded()
	ctx.Printf("Initialized mindfulpath storage at: %s\n", ctx.Store.Location())

	if c.Force {
		if !ctx.Session.Snapshot().IsEmpty() {
			path, err := ctx.Backups.CreateBackup(ctx.Session.Snapshot())
			if err != nil {
				return fmt.Errorf("failed to back up session before reset: %w", err)
			}
			ctx.Printf("Backed up existing session to: %s\n", path)
		}
		if err := ctx.Session.Clear(bg); err != nil {
			return err
		}
		ctx.Println("Cleared existing session data")
	}

	if c.Source != "" {
		ctx.Printf("Migrating data from: %s\n", storage.RedactDSN(c.Source))
		if err := c.migrateData(bg, ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Println("Migration completed successfully!")
	}
	return nil
}

func (c *InitCmd) migrateData(bg context.Context, ctx *cli.Context) error {
	sourceStore, err := storage.Open(c.Source, storage.Options{})
	if err != nil {
		return err
	}
	if err := sourceStore.Load(); err != nil {
		return fmt.Errorf("failed to load source storage: %w", err)
	}
	defer sourceStore.Close()

	source := session.New(sourceStore)
	if err := source.Load(bg); err != nil {
		return err
	}
	data := source.Snapshot()
	if data.IsEmpty() {
		if _, err := sourceStore.Get(bg, constants.SessionStorageKey); errors.Is(err, storage.ErrKeyNotFound) {
			ctx.Println("  Source has no session, nothing to migrate")
			return nil
		}
	}

	if _, err := ctx.Session.Replace(bg, data); err != nil {
		return err
	}
	ctx.Printf("    Migrated %d mood entries\n", len(data.MoodEntries))
	ctx.Printf("    Migrated %d breathing exercises\n", len(data.BreathingExercises))
	ctx.Printf("    Migrated %d gratitude entries\n", len(data.GratitudeEntries))
	ctx.Printf("    Migrated %d mindful writings\n", len(data.MindfulWritings))
	ctx.Printf("    Migrated %d memory games\n", len(data.MemoryGameStats))
	return nil
}
