package selfcare

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/mindfulpath/internal/cli"
	"github.com/julianstephens/mindfulpath/internal/constants"
	"github.com/julianstephens/mindfulpath/internal/models"
)

type SelfCareCmd struct {
	Habits HabitsCmd `cmd:"" help:"Track daily habits."`
	Goals  GoalsCmd  `cmd:"" help:"Track self-care goals."`
	Energy EnergyCmd `cmd:"" help:"Log energy levels through the day."`
}

type HabitsCmd struct {
	List  HabitListCmd  `cmd:"" help:"List habits." default:"1"`
	Add   HabitAddCmd   `cmd:"" help:"Add a habit."`
	Done  HabitDoneCmd  `cmd:"" help:"Mark a habit completed."`
	Undo  HabitUndoCmd  `cmd:"" help:"Mark a habit not completed."`
	Set   HabitSetCmd   `cmd:"" help:"Replace all habits from a JSON file."`
	Reset HabitResetCmd `cmd:"" help:"Replace all habits with the starter list."`
}

type GoalsCmd struct {
	List     GoalListCmd     `cmd:"" help:"List goals." default:"1"`
	Add      GoalAddCmd      `cmd:"" help:"Add a goal."`
	Progress GoalProgressCmd `cmd:"" help:"Set a goal's progress."`
	Set      GoalSetCmd      `cmd:"" help:"Replace all goals from a JSON file."`
	Reset    GoalResetCmd    `cmd:"" help:"Replace all goals with the starter list."`
}

type EnergyCmd struct {
	List EnergyListCmd `cmd:"" help:"List energy readings." default:"1"`
	Log  EnergyLogCmd  `cmd:"" help:"Record the energy level for a time of day."`
	Set  EnergySetCmd  `cmd:"" help:"Replace all readings from a JSON file."`
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	s, err := ctx.LoadSession(context.Background())
	if err != nil {
		return err
	}
	habits := s.Snapshot().SelfCare.Habits
	if len(habits) == 0 {
		ctx.Println("No habits yet. Add one with 'selfcare habits add' or run 'selfcare habits reset'.")
		return nil
	}
	ctx.Println("Habits:")
	for _, h := range habits {
		mark := "[ ]"
		if h.Completed {
			mark = "[x]"
		}
		ctx.Printf("  %s %s (ID: %s)\n", mark, h.Label, h.ID)
	}
	return nil
}

type HabitAddCmd struct {
	Label []string `arg:"" help:"Habit label."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	s, err := ctx.LoadSession(bg)
	if err != nil {
		return err
	}
	h := models.Habit{ID: uuid.NewString(), Label: strings.Join(c.Label, " ")}
	if _, err := s.MergeSelfCareHabits(bg, []models.Habit{h}); err != nil {
		return err
	}
	ctx.Printf("✓ Habit added: %s (ID: %s)\n", h.Label, h.ID)
	return nil
}

type HabitDoneCmd struct {
	ID string `arg:"" help:"Habit ID."`
}

func (c *HabitDoneCmd) Run(ctx *cli.Context) error {
	return setHabitCompleted(ctx, c.ID, true)
}

type HabitUndoCmd struct {
	ID string `arg:"" help:"Habit ID."`
}

func (c *HabitUndoCmd) Run(ctx *cli.Context) error {
	return setHabitCompleted(ctx, c.ID, false)
}

func setHabitCompleted(ctx *cli.Context, id string, completed bool) error {
	bg := context.Background()
	s, err := ctx.LoadSession(bg)
	if err != nil {
		return err
	}
	for _, h := range s.Snapshot().SelfCare.Habits {
		if h.ID != id {
			continue
		}
		h.Completed = completed
		h.Timestamp = ""
		if _, err := s.MergeSelfCareHabits(bg, []models.Habit{h}); err != nil {
			return err
		}
		state := "completed"
		if !completed {
			state = "not completed"
		}
		ctx.Printf("✓ %s marked %s\n", h.Label, state)
		return nil
	}
	return fmt.Errorf("habit not found: %s", id)
}

type HabitSetCmd struct {
	File string `arg:"" help:"JSON file holding an array of habits." type:"existingfile"`
}

func (c *HabitSetCmd) Run(ctx *cli.Context) error {
	var habits []models.Habit
	if err := readJSON(c.File, &habits); err != nil {
		return err
	}
	bg := context.Background()
	s, err := ctx.LoadSession(bg)
	if err != nil {
		return err
	}
	saved, err := s.UpdateSelfCareHabits(bg, habits)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Replaced habits (%d total)\n", len(saved))
	return nil
}

type HabitResetCmd struct{}

func (c *HabitResetCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	s, err := ctx.LoadSession(bg)
	if err != nil {
		return err
	}
	saved, err := s.UpdateSelfCareHabits(bg, models.DefaultHabits())
	if err != nil {
		return err
	}
	ctx.Printf("✓ Reset to %d starter habits\n", len(saved))
	return nil
}

type GoalListCmd struct{}

func (c *GoalListCmd) Run(ctx *cli.Context) error {
	s, err := ctx.LoadSession(context.Background())
	if err != nil {
		return err
	}
	goals := s.Snapshot().SelfCare.Goals
	if len(goals) == 0 {
		ctx.Println("No goals yet. Add one with 'selfcare goals add' or run 'selfcare goals reset'.")
		return nil
	}
	ctx.Println("Goals:")
	for _, g := range goals {
		ctx.Printf("  %s %3d%%  %s (ID: %s)\n", progressBar(g.Progress, 20), g.Progress, g.Title, g.ID)
	}
	return nil
}

type GoalAddCmd struct {
	Title    []string `arg:"" help:"Goal title."`
	Progress int      `short:"p" help:"Initial progress percentage." default:"0"`
}

func (c *GoalAddCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	s, err := ctx.LoadSession(bg)
	if err != nil {
		return err
	}
	g := models.Goal{ID: uuid.NewString(), Title: strings.Join(c.Title, " "), Progress: c.Progress}
	if _, err := s.MergeSelfCareGoals(bg, []models.Goal{g}); err != nil {
		return err
	}
	ctx.Printf("✓ Goal added: %s (ID: %s)\n", g.Title, g.ID)
	return nil
}

type GoalProgressCmd struct {
	ID       string `arg:"" help:"Goal ID."`
	Progress int    `arg:"" help:"Progress percentage (0-100)."`
}

func (c *GoalProgressCmd) Validate() error {
	if c.Progress < 0 || c.Progress > 100 {
		return fmt.Errorf("progress must be between 0 and 100")
	}
	return nil
}

func (c *GoalProgressCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	s, err := ctx.LoadSession(bg)
	if err != nil {
		return err
	}
	for _, g := range s.Snapshot().SelfCare.Goals {
		if g.ID != c.ID {
			continue
		}
		g.Progress = c.Progress
		g.Timestamp = ""
		if _, err := s.MergeSelfCareGoals(bg, []models.Goal{g}); err != nil {
			return err
		}
		ctx.Printf("✓ %s at %d%%\n", g.Title, g.Progress)
		return nil
	}
	return fmt.Errorf("goal not found: %s", c.ID)
}

type GoalSetCmd struct {
	File string `arg:"" help:"JSON file holding an array of goals." type:"existingfile"`
}

func (c *GoalSetCmd) Run(ctx *cli.Context) error {
	var goals []models.Goal
	if err := readJSON(c.File, &goals); err != nil {
		return err
	}
	bg := context.Background()
	s, err := ctx.LoadSession(bg)
	if err != nil {
		return err
	}
	saved, err := s.UpdateSelfCareGoals(bg, goals)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Replaced goals (%d total)\n", len(saved))
	return nil
}

type GoalResetCmd struct{}

func (c *GoalResetCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	s, err := ctx.LoadSession(bg)
	if err != nil {
		return err
	}
	saved, err := s.UpdateSelfCareGoals(bg, models.DefaultGoals())
	if err != nil {
		return err
	}
	ctx.Printf("✓ Reset to %d starter goals\n", len(saved))
	return nil
}

type EnergyListCmd struct{}

func (c *EnergyListCmd) Run(ctx *cli.Context) error {
	s, err := ctx.LoadSession(context.Background())
	if err != nil {
		return err
	}
	byTime := make(map[constants.EnergyTime]models.EnergyLevel)
	for _, e := range s.Snapshot().SelfCare.EnergyLevels {
		byTime[e.Time] = e
	}
	ctx.Println("Energy levels:")
	for _, t := range constants.EnergyTimes {
		e, ok := byTime[t]
		if !ok {
			ctx.Printf("  %-10s  (not logged)\n", t)
			continue
		}
		ctx.Printf("  %-10s %s %3d%%  %s\n", t, progressBar(e.Level, 20), e.Level, e.Timestamp)
	}
	return nil
}

type EnergyLogCmd struct {
	Time  string `arg:"" help:"Time of day (morning, afternoon, evening)."`
	Level int    `arg:"" help:"Energy level (0-100)."`
}

func (c *EnergyLogCmd) Validate() error {
	if _, err := parseEnergyTime(c.Time); err != nil {
		return err
	}
	if c.Level < 0 || c.Level > 100 {
		return fmt.Errorf("level must be between 0 and 100")
	}
	return nil
}

func (c *EnergyLogCmd) Run(ctx *cli.Context) error {
	t, err := parseEnergyTime(c.Time)
	if err != nil {
		return err
	}
	bg := context.Background()
	s, err := ctx.LoadSession(bg)
	if err != nil {
		return err
	}
	if _, err := s.MergeEnergyLevels(bg, []models.EnergyLevel{{Time: t, Level: c.Level}}); err != nil {
		return err
	}
	ctx.Printf("✓ %s energy logged at %d%%\n", t, c.Level)
	return nil
}

type EnergySetCmd struct {
	File string `arg:"" help:"JSON file holding an array of energy readings." type:"existingfile"`
}

func (c *EnergySetCmd) Run(ctx *cli.Context) error {
	var levels []models.EnergyLevel
	if err := readJSON(c.File, &levels); err != nil {
		return err
	}
	bg := context.Background()
	s, err := ctx.LoadSession(bg)
	if err != nil {
		return err
	}
	saved, err := s.UpdateEnergyLevels(bg, levels)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Replaced energy readings (%d total)\n", len(saved))
	return nil
}

func parseEnergyTime(s string) (constants.EnergyTime, error) {
	for _, t := range constants.EnergyTimes {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid time of day %q (expected morning, afternoon or evening)", s)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func progressBar(pct, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct * width / 100
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}
