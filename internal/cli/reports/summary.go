package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/mindfulpath/internal/cli"
	"github.com/julianstephens/mindfulpath/internal/constants"
	"github.com/julianstephens/mindfulpath/internal/models"
)

type SummaryCmd struct {
	Date string `short:"d" help:"Date to summarize (YYYY-MM-DD, default today in UTC)."`
	JSON bool   `help:"Print the summary as JSON."`
}

func (c *SummaryCmd) Validate() error {
	return validateDate(c.Date)
}

func (c *SummaryCmd) Run(ctx *cli.Context) error {
	s, err := ctx.LoadSession(context.Background())
	if err != nil {
		return err
	}
	summary := s.GetDailySummary(c.Date)
	if c.JSON {
		return printJSON(ctx, summary)
	}

	ctx.Printf("Summary for %s\n\n", summary.Date)
	ctx.Printf("  Mood check-ins:     %d (average %.1f)\n", summary.TotalMoodEntries, summary.AverageMood)
	ctx.Printf("  Breathing:          %.1f min, %d cycles\n", summary.BreathingMinutes, summary.TotalBreathingCycles)
	ctx.Printf("  Gratitude entries:  %d\n", summary.GratitudeCount)
	ctx.Printf("  Reflections:        %d\n", summary.WritingCount)
	ctx.Printf("  Habits completed:   %d\n", summary.CompletedHabits)
	ctx.Printf("  Average energy:     %.0f%%\n", summary.AverageEnergy)
	ctx.Printf("  Memory games won:   %d of %d\n", summary.MemoryGameWins, summary.TotalMemoryGames)
	return nil
}

type DatesCmd struct{}

func (c *DatesCmd) Run(ctx *cli.Context) error {
	s, err := ctx.LoadSession(context.Background())
	if err != nil {
		return err
	}
	dates := s.GetAvailableDates()
	if len(dates) == 0 {
		ctx.Println("No activity recorded yet")
		return nil
	}
	for _, d := range dates {
		ctx.Println(d)
	}
	return nil
}

type ReportCmd struct {
	From string `help:"First date (YYYY-MM-DD, default six days before --to)."`
	To   string `help:"Last date (YYYY-MM-DD, default today in UTC)."`
	JSON bool   `help:"Print the summaries as JSON."`
}

func (c *ReportCmd) Validate() error {
	if err := validateDate(c.From); err != nil {
		return err
	}
	if err := validateDate(c.To); err != nil {
		return err
	}
	if c.From != "" && c.To != "" && c.From > c.To {
		return fmt.Errorf("--from must not be after --to")
	}
	return nil
}

func (c *ReportCmd) Run(ctx *cli.Context) error {
	s, err := ctx.LoadSession(context.Background())
	if err != nil {
		return err
	}
	from, to := s.ReportWindow(c.From, c.To)
	summaries := s.GetRangeSummaries(from, to)
	if c.JSON {
		return printJSON(ctx, summaries)
	}
	if len(summaries) == 0 {
		ctx.Printf("No activity between %s and %s\n", from, to)
		return nil
	}
	ctx.Printf("Activity from %s to %s\n", from, to)
	ctx.Println(renderTable(summaries))
	return nil
}

func renderTable(summaries []models.DailySummary) string {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Date", "Mood", "Breathing", "Gratitude", "Writing", "Habits", "Energy", "Games").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	for _, d := range summaries {
		t.Row(
			d.Date,
			fmt.Sprintf("%.1f (%d)", d.AverageMood, d.TotalMoodEntries),
			fmt.Sprintf("%.1f min", d.BreathingMinutes),
			strconv.Itoa(d.GratitudeCount),
			strconv.Itoa(d.WritingCount),
			strconv.Itoa(d.CompletedHabits),
			fmt.Sprintf("%.0f%%", d.AverageEnergy),
			fmt.Sprintf("%d/%d", d.MemoryGameWins, d.TotalMemoryGames),
		)
	}
	return t.String()
}

func validateDate(date string) error {
	if date == "" {
		return nil
	}
	if _, err := time.Parse(constants.DateFormat, date); err != nil {
		return fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", date)
	}
	return nil
}

func printJSON(ctx *cli.Context, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(data))
	return nil
}
