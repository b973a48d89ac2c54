package backup

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/mindfulpath/internal/constants"
	"github.com/julianstephens/mindfulpath/internal/models"
	"github.com/julianstephens/mindfulpath/internal/session"
	"github.com/julianstephens/mindfulpath/internal/storage"
)

func sampleSession() models.SessionData {
	data := models.NewSessionData()
	data.MoodEntries = append(data.MoodEntries, models.MoodEntry{Timestamp: "2024-01-15T09:00:00.000Z", Mood: 4, Label: "Good"})
	data.GratitudeEntries = append(data.GratitudeEntries, models.GratitudeEntry{ID: "g1", Content: "Sunshine", Timestamp: "2024-01-15T10:00:00.000Z"})
	return data
}

func setupManager(t *testing.T) (*Manager, *time.Time) {
	t.Helper()
	now := time.Date(2024, 1, 15, 21, 45, 0, 0, time.UTC)
	mgr := NewManager(t.TempDir())
	mgr.now = func() time.Time { return now }
	return mgr, &now
}

func TestWriteAndReadExport(t *testing.T) {
	var buf bytes.Buffer
	data := sampleSession()
	if err := WriteExport(&buf, data, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("WriteExport() failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"moodEntries"`) {
		t.Error("export should use camelCase session fields")
	}

	exp, err := ReadExport(&buf)
	if err != nil {
		t.Fatalf("ReadExport() failed: %v", err)
	}
	if exp.ExportedAt != "2024-01-15T00:00:00.000Z" {
		t.Errorf("ExportedAt = %q", exp.ExportedAt)
	}
	if diff := cmp.Diff(data, exp.Session); diff != "" {
		t.Errorf("session mismatch (-want +got):\n%s", diff)
	}
}

func TestReadExportRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", "nope"},
		{"wrong app", `{"version":1,"app":"daylit","session":{}}`},
		{"future version", `{"version":99,"app":"mindfulpath","session":{}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadExport(strings.NewReader(tt.doc)); err == nil {
				t.Error("ReadExport() should fail")
			}
		})
	}
}

func TestCreateBackup(t *testing.T) {
	mgr, _ := setupManager(t)

	path, err := mgr.CreateBackup(sampleSession())
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if filepath.Base(path) != "mindfulpath-20240115-2145.json" {
		t.Errorf("backup name = %s", filepath.Base(path))
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("backup file missing: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("backup permissions = %v, want 0600", info.Mode().Perm())
	}
	if _, err := mgr.VerifyBackup(path); err != nil {
		t.Errorf("VerifyBackup() failed: %v", err)
	}
}

func TestCreateBackupNameCollisions(t *testing.T) {
	mgr, _ := setupManager(t)

	var names []string
	for i := 0; i < 3; i++ {
		path, err := mgr.CreateBackup(sampleSession())
		if err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
		names = append(names, filepath.Base(path))
	}

	want := []string{
		"mindfulpath-20240115-2145.json",
		"mindfulpath-20240115-214500.json",
		"mindfulpath-20240115-214500-1.json",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("backup names mismatch (-want +got):\n%s", diff)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 3 {
		t.Errorf("ListBackups() = %d, want 3", len(backups))
	}
}

func TestListBackupsEmptyAndIgnoresForeignFiles(t *testing.T) {
	mgr, _ := setupManager(t)

	backups, err := mgr.ListBackups()
	if err != nil || len(backups) != 0 {
		t.Fatalf("ListBackups() = %v, %v; want empty", backups, err)
	}

	os.MkdirAll(mgr.GetBackupDir(), 0700)
	os.WriteFile(filepath.Join(mgr.GetBackupDir(), "notes.txt"), []byte("x"), 0600)
	os.WriteFile(filepath.Join(mgr.GetBackupDir(), "mindfulpath-garbage.json"), []byte("{}"), 0600)

	backups, _ = mgr.ListBackups()
	if len(backups) != 0 {
		t.Errorf("foreign files should be ignored, got %d", len(backups))
	}
}

func TestRotateBackups(t *testing.T) {
	mgr, now := setupManager(t)

	for i := 0; i < constants.MaxBackups+3; i++ {
		*now = now.Add(time.Hour)
		if _, err := mgr.CreateBackup(sampleSession()); err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != constants.MaxBackups {
		t.Fatalf("ListBackups() = %d, want %d", len(backups), constants.MaxBackups)
	}
	if !backups[0].Timestamp.After(backups[len(backups)-1].Timestamp) {
		t.Error("backups should be sorted newest first")
	}
}

func TestRestoreBackup(t *testing.T) {
	mgr, now := setupManager(t)
	ctx := context.Background()

	path, err := mgr.CreateBackup(sampleSession())
	if err != nil {
		t.Fatal(err)
	}

	store := session.New(storage.NewMemoryStore())
	if _, err := store.AddMindfulWriting(ctx, "current draft"); err != nil {
		t.Fatal(err)
	}

	*now = now.Add(time.Hour)
	safety, err := mgr.RestoreBackup(ctx, path, store)
	if err != nil {
		t.Fatalf("RestoreBackup() failed: %v", err)
	}
	if safety == "" {
		t.Error("non-empty session should be saved before restore")
	}

	if diff := cmp.Diff(sampleSession(), store.Snapshot()); diff != "" {
		t.Errorf("restored session mismatch (-want +got):\n%s", diff)
	}

	saved, err := mgr.VerifyBackup(safety)
	if err != nil {
		t.Fatal(err)
	}
	if len(saved.Session.MindfulWritings) != 1 {
		t.Error("safety backup should contain the pre-restore session")
	}
}

func TestRestoreBackupInvalid(t *testing.T) {
	mgr, _ := setupManager(t)
	store := session.New(storage.NewMemoryStore())

	if _, err := mgr.RestoreBackup(context.Background(), filepath.Join(t.TempDir(), "missing.json"), store); err == nil {
		t.Error("RestoreBackup() should fail for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(bad, []byte(`{"version":1,"app":"mindfulpath","session":{"moodEntries":[{"timestamp":"x","mood":9,"label":"?"}]}}`), 0600)
	if _, err := mgr.RestoreBackup(context.Background(), bad, store); err == nil {
		t.Error("RestoreBackup() should reject invalid records")
	}
	if !store.Snapshot().IsEmpty() {
		t.Error("failed restore must not change the session")
	}
}
