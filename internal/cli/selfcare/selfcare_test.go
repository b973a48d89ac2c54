package selfcare

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/mindfulpath/internal/cli"
	"github.com/julianstephens/mindfulpath/internal/config"
	"github.com/julianstephens/mindfulpath/internal/constants"
	"github.com/julianstephens/mindfulpath/internal/storage"
)

func setupTestSelfCare(t *testing.T) (*cli.Context, *bytes.Buffer) {
	cfg := config.Default()
	cfg.Path = filepath.Join(t.TempDir(), "config.yaml")

	ctx := cli.NewContext(cfg, storage.NewMemoryStore(), nil)
	out := &bytes.Buffer{}
	ctx.Out = out
	return ctx, out
}

func TestHabitCommands(t *testing.T) {
	ctx, out := setupTestSelfCare(t)

	if err := (&HabitListCmd{}).Run(ctx); err != nil {
		t.Fatalf("habit list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No habits yet") {
		t.Errorf("unexpected output: %q", out.String())
	}

	if err := (&HabitResetCmd{}).Run(ctx); err != nil {
		t.Fatalf("habit reset failed: %v", err)
	}
	if err := (&HabitDoneCmd{ID: "2"}).Run(ctx); err != nil {
		t.Fatalf("habit done failed: %v", err)
	}
	if err := (&HabitAddCmd{Label: []string{"Evening", "stretch"}}).Run(ctx); err != nil {
		t.Fatalf("habit add failed: %v", err)
	}

	habits := ctx.Session.Snapshot().SelfCare.Habits
	if len(habits) != 5 {
		t.Fatalf("habits = %d, want 5", len(habits))
	}
	if !habits[1].Completed || habits[1].Label != "Healthy Breakfast" {
		t.Errorf("habit 2 = %+v", habits[1])
	}
	if habits[4].Label != "Evening stretch" {
		t.Errorf("new habit = %+v", habits[4])
	}

	if err := (&HabitUndoCmd{ID: "2"}).Run(ctx); err != nil {
		t.Fatalf("habit undo failed: %v", err)
	}
	if ctx.Session.Snapshot().SelfCare.Habits[1].Completed {
		t.Error("habit 2 still completed after undo")
	}
	if err := (&HabitDoneCmd{ID: "missing"}).Run(ctx); err == nil {
		t.Error("expected error for unknown habit")
	}

	out.Reset()
	(&HabitListCmd{}).Run(ctx)
	if !strings.Contains(out.String(), "[ ] Morning Meditation (ID: 1)") {
		t.Errorf("unexpected list output:\n%s", out.String())
	}
}

func TestHabitSetFromFile(t *testing.T) {
	ctx, _ := setupTestSelfCare(t)
	path := filepath.Join(t.TempDir(), "habits.json")
	os.WriteFile(path, []byte(`[{"id":"a","label":"Journal","completed":true}]`), 0600)

	if err := (&HabitSetCmd{File: path}).Run(ctx); err != nil {
		t.Fatalf("habit set failed: %v", err)
	}
	habits := ctx.Session.Snapshot().SelfCare.Habits
	if len(habits) != 1 || habits[0].Timestamp == "" {
		t.Errorf("habits = %+v", habits)
	}

	os.WriteFile(path, []byte(`[{"id":"","label":"bad"}]`), 0600)
	if err := (&HabitSetCmd{File: path}).Run(ctx); err == nil {
		t.Error("expected validation error for empty id")
	}
}

func TestGoalCommands(t *testing.T) {
	ctx, out := setupTestSelfCare(t)

	if err := (&GoalResetCmd{}).Run(ctx); err != nil {
		t.Fatalf("goal reset failed: %v", err)
	}
	if err := (&GoalProgressCmd{ID: "1", Progress: 80}).Run(ctx); err != nil {
		t.Fatalf("goal progress failed: %v", err)
	}
	if err := (&GoalAddCmd{Title: []string{"Read", "more"}, Progress: 10}).Run(ctx); err != nil {
		t.Fatalf("goal add failed: %v", err)
	}

	goals := ctx.Session.Snapshot().SelfCare.Goals
	if len(goals) != 3 || goals[0].Progress != 80 || goals[2].Title != "Read more" {
		t.Errorf("goals = %+v", goals)
	}
	if err := (&GoalProgressCmd{Progress: 120}).Validate(); err == nil {
		t.Error("expected validation error for progress 120")
	}

	out.Reset()
	(&GoalListCmd{}).Run(ctx)
	if !strings.Contains(out.String(), " 80%  Practice mindfulness") {
		t.Errorf("unexpected list output:\n%s", out.String())
	}
}

func TestEnergyCommands(t *testing.T) {
	ctx, out := setupTestSelfCare(t)

	if err := (&EnergyLogCmd{Time: "morning", Level: 70}).Run(ctx); err != nil {
		t.Fatalf("energy log failed: %v", err)
	}
	if err := (&EnergyLogCmd{Time: "Morning", Level: 50}).Run(ctx); err != nil {
		t.Fatalf("energy log failed: %v", err)
	}
	levels := ctx.Session.Snapshot().SelfCare.EnergyLevels
	if len(levels) != 1 || levels[0].Level != 50 || levels[0].Time != constants.EnergyMorning {
		t.Errorf("levels = %+v", levels)
	}

	out.Reset()
	(&EnergyListCmd{}).Run(ctx)
	if !strings.Contains(out.String(), "Afternoon   (not logged)") {
		t.Errorf("unexpected list output:\n%s", out.String())
	}

	if err := (&EnergyLogCmd{Time: "midnight", Level: 10}).Validate(); err == nil {
		t.Error("expected error for invalid time of day")
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		pct  int
		want string
	}{
		{0, "[░░░░░░░░░░]"},
		{50, "[█████░░░░░]"},
		{100, "[██████████]"},
		{150, "[██████████]"},
	}
	for _, tt := range tests {
		if got := progressBar(tt.pct, 10); got != tt.want {
			t.Errorf("progressBar(%d) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}
