package backups

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/mindfulpath/internal/backup"
	"github.com/julianstephens/mindfulpath/internal/cli"
	"github.com/julianstephens/mindfulpath/internal/config"
	"github.com/julianstephens/mindfulpath/internal/storage"
)

func setupTestBackups(t *testing.T) (*cli.Context, *bytes.Buffer) {
	cfg := config.Default()
	cfg.Path = filepath.Join(t.TempDir(), "config.yaml")

	ctx := cli.NewContext(cfg, storage.NewMemoryStore(), nil)
	out := &bytes.Buffer{}
	ctx.Out = out
	if _, err := ctx.LoadSession(context.Background()); err != nil {
		t.Fatalf("LoadSession() failed: %v", err)
	}
	return ctx, out
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, out := setupTestBackups(t)
	ctx.Session.AddGratitudeEntry(context.Background(), "friends")

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No backups found.") {
		t.Errorf("unexpected output: %q", out.String())
	}

	out.Reset()
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Backup created: mindfulpath-") {
		t.Errorf("unexpected output: %q", out.String())
	}

	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup list failed: %v", err)
	}
	if !strings.Contains(out.String(), "Available backups (1 total") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestBackupRestore(t *testing.T) {
	ctx, out := setupTestBackups(t)
	bg := context.Background()

	ctx.Session.AddGratitudeEntry(bg, "first")
	path, err := ctx.Backups.CreateBackup(ctx.Session.Snapshot())
	if err != nil {
		t.Fatalf("CreateBackup() failed: %v", err)
	}
	ctx.Session.AddGratitudeEntry(bg, "second")

	// Declining the prompt leaves the session alone.
	ctx.In = strings.NewReader("n\n")
	if err := (&BackupRestoreCmd{BackupFile: filepath.Base(path)}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if got := len(ctx.Session.Snapshot().GratitudeEntries); got != 2 {
		t.Fatalf("entries after cancel = %d, want 2", got)
	}
	if !strings.Contains(out.String(), "Restore cancelled.") {
		t.Errorf("unexpected output: %q", out.String())
	}

	out.Reset()
	ctx.In = strings.NewReader("y\n")
	if err := (&BackupRestoreCmd{BackupFile: filepath.Base(path)}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	entries := ctx.Session.Snapshot().GratitudeEntries
	if len(entries) != 1 || entries[0].Content != "first" {
		t.Errorf("entries after restore = %+v", entries)
	}
	if !strings.Contains(out.String(), "✓ Current session saved to:") {
		t.Errorf("expected safety backup message: %q", out.String())
	}
}

func TestBackupRestoreMissingFile(t *testing.T) {
	ctx, _ := setupTestBackups(t)
	if err := (&BackupRestoreCmd{BackupFile: "nope.json", Yes: true}).Run(ctx); err == nil {
		t.Error("expected error for missing backup")
	}
}

func TestSessionExportImportClear(t *testing.T) {
	ctx, out := setupTestBackups(t)
	bg := context.Background()
	ctx.Session.AddMoodEntry(bg, 3, "")
	ctx.Session.AddMindfulWriting(bg, "rain on the window")

	exportPath := filepath.Join(t.TempDir(), "export.json")
	if err := (&SessionExportCmd{Output: exportPath}).Run(ctx); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	f, err := os.Open(exportPath)
	if err != nil {
		t.Fatalf("export file missing: %v", err)
	}
	exp, err := backup.ReadExport(f)
	f.Close()
	if err != nil {
		t.Fatalf("ReadExport() failed: %v", err)
	}
	if len(exp.Session.MoodEntries) != 1 || len(exp.Session.MindfulWritings) != 1 {
		t.Errorf("exported session = %+v", exp.Session)
	}

	if err := (&SessionClearCmd{Yes: true}).Run(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if !ctx.Session.Snapshot().IsEmpty() {
		t.Fatal("session not empty after clear")
	}
	if backups, _ := ctx.Backups.ListBackups(); len(backups) != 1 {
		t.Errorf("clear should back up first, got %d backups", len(backups))
	}

	out.Reset()
	if err := (&SessionImportCmd{File: exportPath, Yes: true}).Run(ctx); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if got := len(ctx.Session.Snapshot().MoodEntries); got != 1 {
		t.Errorf("mood entries after import = %d, want 1", got)
	}
}

func TestSessionExportStdout(t *testing.T) {
	ctx, out := setupTestBackups(t)
	if err := (&SessionExportCmd{}).Run(ctx); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	exp, err := backup.ReadExport(out)
	if err != nil {
		t.Fatalf("stdout is not a valid export: %v", err)
	}
	if exp.App != "mindfulpath" {
		t.Errorf("App = %q", exp.App)
	}
}

func TestSessionClearCancelled(t *testing.T) {
	ctx, _ := setupTestBackups(t)
	ctx.Session.AddMoodEntry(context.Background(), 2, "")
	ctx.In = strings.NewReader("no\n")

	if err := (&SessionClearCmd{}).Run(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if ctx.Session.Snapshot().IsEmpty() {
		t.Error("session cleared despite declining")
	}
}
