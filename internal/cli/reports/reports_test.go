package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/mindfulpath/internal/cli"
	"github.com/julianstephens/mindfulpath/internal/config"
	"github.com/julianstephens/mindfulpath/internal/models"
	"github.com/julianstephens/mindfulpath/internal/session"
	"github.com/julianstephens/mindfulpath/internal/storage"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func setupTestReports(t *testing.T) (*cli.Context, *bytes.Buffer, *fakeClock) {
	cfg := config.Default()
	cfg.Path = filepath.Join(t.TempDir(), "config.yaml")

	clock := &fakeClock{now: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)}
	ctx := cli.NewContext(cfg, storage.NewMemoryStore(), nil, session.WithClock(clock.Now))
	out := &bytes.Buffer{}
	ctx.Out = out
	if _, err := ctx.LoadSession(context.Background()); err != nil {
		t.Fatalf("LoadSession() failed: %v", err)
	}
	return ctx, out, clock
}

func TestSummaryCmd(t *testing.T) {
	ctx, out, _ := setupTestReports(t)
	bg := context.Background()
	ctx.Session.AddMoodEntry(bg, 3, "")
	ctx.Session.AddMoodEntry(bg, 5, "")
	ctx.Session.AddBreathingExercise(bg, 300, 4)
	ctx.Session.AddBreathingExercise(bg, 480, 6)

	if err := (&SummaryCmd{Date: "2025-06-01"}).Run(ctx); err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	for _, want := range []string{"Summary for 2025-06-01", "2 (average 4.0)", "13.0 min, 10 cycles"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}

	out.Reset()
	if err := (&SummaryCmd{Date: "2025-06-01", JSON: true}).Run(ctx); err != nil {
		t.Fatalf("summary --json failed: %v", err)
	}
	var got models.DailySummary
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if got.AverageMood != 4 || got.BreathingMinutes != 13 {
		t.Errorf("summary = %+v", got)
	}
}

func TestSummaryValidate(t *testing.T) {
	if err := (&SummaryCmd{Date: "06/01/2025"}).Validate(); err == nil {
		t.Error("expected error for malformed date")
	}
	if err := (&SummaryCmd{}).Validate(); err != nil {
		t.Errorf("empty date should be valid: %v", err)
	}
}

func TestDatesCmd(t *testing.T) {
	ctx, out, clock := setupTestReports(t)
	bg := context.Background()

	if err := (&DatesCmd{}).Run(ctx); err != nil {
		t.Fatalf("dates failed: %v", err)
	}
	if !strings.Contains(out.String(), "No activity recorded yet") {
		t.Errorf("unexpected output: %q", out.String())
	}

	ctx.Session.AddGratitudeEntry(bg, "one")
	clock.now = clock.now.AddDate(0, 0, 2)
	ctx.Session.AddGratitudeEntry(bg, "two")

	out.Reset()
	(&DatesCmd{}).Run(ctx)
	if got := out.String(); got != "2025-06-03\n2025-06-01\n" {
		t.Errorf("dates output = %q", got)
	}
}

func TestReportCmd(t *testing.T) {
	ctx, out, clock := setupTestReports(t)
	bg := context.Background()
	ctx.Session.AddMoodEntry(bg, 2, "")
	clock.now = clock.now.AddDate(0, 0, 3)
	ctx.Session.AddMoodEntry(bg, 4, "")

	if err := (&ReportCmd{From: "2025-06-01", To: "2025-06-07", JSON: true}).Run(ctx); err != nil {
		t.Fatalf("report failed: %v", err)
	}
	var got []models.DailySummary
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if len(got) != 2 || got[0].Date != "2025-06-01" || got[1].Date != "2025-06-04" {
		t.Errorf("report = %+v", got)
	}

	out.Reset()
	if err := (&ReportCmd{From: "2025-06-01", To: "2025-06-07"}).Run(ctx); err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if !strings.Contains(out.String(), "2025-06-04") || !strings.Contains(out.String(), "Mood") {
		t.Errorf("unexpected table output:\n%s", out.String())
	}
}

func TestReportDefaultWindow(t *testing.T) {
	ctx, out, clock := setupTestReports(t)
	bg := context.Background()
	ctx.Session.AddMoodEntry(bg, 4, "")
	clock.now = clock.now.AddDate(0, 0, -7)
	ctx.Session.AddMoodEntry(bg, 2, "")
	clock.now = clock.now.AddDate(0, 0, 7)

	if err := (&ReportCmd{JSON: true}).Run(ctx); err != nil {
		t.Fatalf("report failed: %v", err)
	}
	var got []models.DailySummary
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", out.String(), err)
	}
	if len(got) != 1 || got[0].Date != "2025-06-01" {
		t.Errorf("default window = %+v, want only 2025-06-01", got)
	}
}

func TestReportValidate(t *testing.T) {
	if err := (&ReportCmd{From: "2025-02-01", To: "2025-01-01"}).Validate(); err == nil {
		t.Error("expected error when --from is after --to")
	}
}
