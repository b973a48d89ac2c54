package system

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/mindfulpath/internal/cli"
	"github.com/julianstephens/mindfulpath/internal/config"
	"github.com/julianstephens/mindfulpath/internal/constants"
	"github.com/julianstephens/mindfulpath/internal/keyring"
	"github.com/julianstephens/mindfulpath/internal/storage"
)

func setupTestSystem(t *testing.T, store storage.Provider) (*cli.Context, *bytes.Buffer, func()) {
	cfg := config.Default()
	cfg.Path = filepath.Join(t.TempDir(), "config.yaml")

	ctx := cli.NewContext(cfg, store, nil)
	out := &bytes.Buffer{}
	ctx.Out = out

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}
	return ctx, out, cleanup
}

func TestInitCmd_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	ctx, out, cleanup := setupTestSystem(t, storage.NewJSONStore(path))
	defer cleanup()

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init command failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("storage file was not created at %s", path)
	}
	if !strings.Contains(out.String(), "Initialized mindfulpath storage at: "+path) {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestInitCmd_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	ctx, _, cleanup := setupTestSystem(t, storage.NewSQLiteStore(path))
	defer cleanup()

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Errorf("second init failed (should be idempotent): %v", err)
	}
}

func TestInitCmd_ForceBacksUpAndClears(t *testing.T) {
	ctx, _, cleanup := setupTestSystem(t, storage.NewMemoryStore())
	defer cleanup()
	bg := context.Background()

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("initial init failed: %v", err)
	}
	if _, err := ctx.Session.AddGratitudeEntry(bg, "morning tea"); err != nil {
		t.Fatalf("AddGratitudeEntry() failed: %v", err)
	}

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("init with force failed: %v", err)
	}
	if !ctx.Session.Snapshot().IsEmpty() {
		t.Error("session should be empty after force")
	}
	backups, err := ctx.Backups.ListBackups()
	if err != nil || len(backups) != 1 {
		t.Errorf("backups = %d, %v; want 1", len(backups), err)
	}
}

func TestInitCmd_MigratesFromSource(t *testing.T) {
	bg := context.Background()
	sourcePath := filepath.Join(t.TempDir(), "old.json")

	// Seed the source through a separate context.
	src, _, srcCleanup := setupTestSystem(t, storage.NewJSONStore(sourcePath))
	if err := (&InitCmd{}).Run(src); err != nil {
		t.Fatalf("source init failed: %v", err)
	}
	src.Session.AddMoodEntry(bg, 5, "")
	src.Session.AddMindfulWriting(bg, "quiet walk")
	srcCleanup()

	destPath := filepath.Join(t.TempDir(), "new.db")
	ctx, out, cleanup := setupTestSystem(t, storage.NewSQLiteStore(destPath))
	defer cleanup()

	if err := (&InitCmd{Source: sourcePath}).Run(ctx); err != nil {
		t.Fatalf("init with source failed: %v", err)
	}
	data := ctx.Session.Snapshot()
	if len(data.MoodEntries) != 1 || len(data.MindfulWritings) != 1 {
		t.Errorf("migrated %d moods, %d writings", len(data.MoodEntries), len(data.MindfulWritings))
	}
	if !strings.Contains(out.String(), "Migrated 1 mood entries") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestInitCmd_SourceSameAsDestination(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	ctx, _, cleanup := setupTestSystem(t, storage.NewJSONStore(path))
	defer cleanup()

	if err := (&InitCmd{Source: path}).Run(ctx); err == nil {
		t.Error("expected error when source and destination are the same")
	}
}

func TestDoctorCmd_Healthy(t *testing.T) {
	gokeyring.MockInit()
	ctx, out, cleanup := setupTestSystem(t, storage.NewSQLiteStore(filepath.Join(t.TempDir(), "session.db")))
	defer cleanup()

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	out.Reset()

	// Missing backups is a warning, not a failure
	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("doctor command failed on healthy storage: %v\n%s", err, out.String())
	}
	for _, want := range []string{"✓ Storage reachable", "✓ Schema version", "⚠ Backups present", "✓ Session data"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestDoctorCmd_Uninitialized(t *testing.T) {
	gokeyring.MockInit()
	ctx, out, cleanup := setupTestSystem(t, storage.NewJSONStore(filepath.Join(t.TempDir(), "missing.json")))
	defer cleanup()

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor should fail when storage is not initialized")
	}
	if !strings.Contains(out.String(), "⊘ Session data: SKIPPED") {
		t.Errorf("expected skipped session check:\n%s", out.String())
	}
}

func TestDoctorCmd_CorruptSession(t *testing.T) {
	gokeyring.MockInit()
	store := storage.NewMemoryStore()
	store.Set(context.Background(), constants.SessionStorageKey, []byte(`{"moodEntries":[{"timestamp":"2024-01-01T00:00:00.000Z","mood":9,"label":"??"}]}`))
	ctx, out, cleanup := setupTestSystem(t, store)
	defer cleanup()

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor should fail on invalid session records")
	}
	if !strings.Contains(out.String(), "❌ Session data: FAIL") {
		t.Errorf("expected session data failure:\n%s", out.String())
	}
}

func TestCheckClock(t *testing.T) {
	if err := checkClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Errorf("checkClock(2026) = %v", err)
	}
	if err := checkClock(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)); err == nil {
		t.Error("checkClock(1999) expected error")
	}
}

func TestSecretCommands(t *testing.T) {
	gokeyring.MockInit()
	ctx, out, cleanup := setupTestSystem(t, storage.NewMemoryStore())
	defer cleanup()

	if err := (&SecretSetCmd{Name: "opencage", Value: "oc-123456"}).Run(ctx); err != nil {
		t.Fatalf("secret set failed: %v", err)
	}
	if got, _ := keyring.Get(constants.KeyringOpenCageKey); got != "oc-123456" {
		t.Errorf("stored secret = %q", got)
	}

	out.Reset()
	if err := (&SecretListCmd{}).Run(ctx); err != nil {
		t.Fatalf("secret list failed: %v", err)
	}
	if !strings.Contains(out.String(), "oc*****56") || !strings.Contains(out.String(), "(not set)") {
		t.Errorf("unexpected list output:\n%s", out.String())
	}

	if err := (&SecretDeleteCmd{Name: "OpenCage"}).Run(ctx); err != nil {
		t.Fatalf("secret delete failed: %v", err)
	}
	if err := (&SecretDeleteCmd{Name: "opencage"}).Run(ctx); err == nil {
		t.Error("second delete should fail")
	}
	if err := (&SecretSetCmd{Name: "github", Value: "x"}).Run(ctx); err == nil {
		t.Error("unknown secret name should fail")
	}
}

func TestMaskSecret(t *testing.T) {
	tests := map[string]string{
		"":         "",
		"abc":      "***",
		"abcdef":   "ab**ef",
		"secret12": "se****12",
	}
	for in, want := range tests {
		if got := maskSecret(in); got != want {
			t.Errorf("maskSecret(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDebugCommands(t *testing.T) {
	ctx, out, cleanup := setupTestSystem(t, storage.NewMemoryStore())
	defer cleanup()
	ctx.Config.Integrations.Geocode.APIKey = "very-secret-key"

	if err := (&DebugLocationCmd{}).Run(ctx); err != nil {
		t.Fatalf("debug location failed: %v", err)
	}
	if strings.TrimSpace(out.String()) != "memory://" {
		t.Errorf("location = %q", out.String())
	}

	out.Reset()
	if err := (&DebugDumpCmd{}).Run(ctx); err != nil {
		t.Fatalf("debug dump failed: %v", err)
	}
	if !strings.Contains(out.String(), `"moodEntries": []`) {
		t.Errorf("dump missing empty list:\n%s", out.String())
	}

	out.Reset()
	if err := (&DebugConfigCmd{}).Run(ctx); err != nil {
		t.Fatalf("debug config failed: %v", err)
	}
	if strings.Contains(out.String(), "very-secret-key") {
		t.Error("debug config leaked a secret")
	}
}
