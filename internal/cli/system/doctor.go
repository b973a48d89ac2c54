package system

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/mindfulpath/internal/cli"
	"github.com/julianstephens/mindfulpath/internal/keyring"
	"github.com/julianstephens/mindfulpath/internal/session"
	"github.com/julianstephens/mindfulpath/internal/storage"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	reachable := false

	// Check 1: storage reachable
	if err := checkStorageReachable(ctx); err != nil {
		ctx.Printf("❌ Storage reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		ctx.Printf("✓ Storage reachable: OK (%s)\n", ctx.Store.Location())
		reachable = true
	}

	// Check 2: schema version and migrations (SQL backends only)
	if reporter, ok := ctx.Store.(storage.SchemaReporter); ok && reachable {
		if err := checkSchema(reporter); err != nil {
			ctx.Printf("❌ Schema version: FAIL\n")
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			ctx.Printf("✓ Schema version: OK\n")
		}
	}

	// Check 3: backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		ctx.Printf("⚠ Backups present: WARNING\n")
		ctx.Printf("   %v\n", err)
	} else {
		ctx.Printf("✓ Backups present: OK\n")
	}

	// Check 4: session data valid (only if storage is reachable)
	if reachable {
		if err := session.Validate(ctx.Session.Snapshot()); err != nil {
			ctx.Printf("❌ Session data: FAIL\n")
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			ctx.Printf("✓ Session data: OK\n")
		}
	} else {
		ctx.Printf("⊘ Session data: SKIPPED (storage not reachable)\n")
	}

	// Check 5: keyring (warning only)
	if keyring.IsAvailable() {
		ctx.Printf("✓ OS keyring: OK\n")
	} else {
		ctx.Printf("⚠ OS keyring: WARNING\n")
		ctx.Printf("   keyring unavailable, secrets must come from the config file or environment\n")
	}

	// Check 6: integration modes
	in := ctx.Config.Integrations
	ctx.Printf("✓ Integrations: auth=%s books=%s geocode=%s translate=%s\n",
		in.Auth.Mode, in.Books.Mode, in.Geocode.Mode, in.Translate.Mode)

	// Check 7: clock sanity
	if err := checkClock(time.Now()); err != nil {
		ctx.Printf("❌ Clock: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		ctx.Printf("✓ Clock: OK\n")
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkStorageReachable(ctx *cli.Context) error {
	if _, err := ctx.LoadSession(context.Background()); err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	return nil
}

func checkSchema(reporter storage.SchemaReporter) error {
	current, latest, err := reporter.SchemaVersion()
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	backups, err := ctx.Backups.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'mindfulpath backup create'")
	}
	return nil
}

// Session dates are UTC, so only the year range is checked.
func checkClock(now time.Time) error {
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
