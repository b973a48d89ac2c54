package session

import (
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/mindfulpath/internal/constants"
	"github.com/julianstephens/mindfulpath/internal/models"
)

// GetDailySummary computes statistics over records whose timestamp starts
// with date. An empty date means today in UTC.
func (s *Store) GetDailySummary(date string) models.DailySummary {
	if date == "" {
		date = s.today()
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Summarize(s.data, date)
}

// ReportDays is the length of the default report window.
const ReportDays = 7

// Today returns the current UTC date according to the store's clock.
func (s *Store) Today() string {
	return s.today()
}

// ReportWindow fills empty bounds with the ReportDays days ending at to,
// where an empty to means today.
func (s *Store) ReportWindow(from, to string) (string, string) {
	if to == "" {
		to = s.today()
	}
	if from == "" {
		if end, err := time.Parse(constants.DateFormat, to); err == nil {
			from = end.AddDate(0, 0, -(ReportDays - 1)).Format(constants.DateFormat)
		}
	}
	return from, to
}

// GetAvailableDates lists every date with at least one record, newest first.
func (s *Store) GetAvailableDates() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return AvailableDates(s.data)
}

// GetRangeSummaries returns a summary for each available date within
// [from, to], oldest first. An empty bound is open.
func (s *Store) GetRangeSummaries(from, to string) []models.DailySummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dates := AvailableDates(s.data)
	summaries := make([]models.DailySummary, 0, len(dates))
	for i := len(dates) - 1; i >= 0; i-- {
		d := dates[i]
		if from != "" && d < from {
			continue
		}
		if to != "" && d > to {
			continue
		}
		summaries = append(summaries, Summarize(s.data, d))
	}
	return summaries
}

// Summarize derives the daily statistics for date from data.
func Summarize(data models.SessionData, date string) models.DailySummary {
	sum := models.DailySummary{Date: date}
	onDate := func(ts string) bool { return strings.HasPrefix(ts, date) }

	moodTotal := 0
	for _, m := range data.MoodEntries {
		if onDate(m.Timestamp) {
			sum.TotalMoodEntries++
			moodTotal += m.Mood
		}
	}
	if sum.TotalMoodEntries > 0 {
		sum.AverageMood = float64(moodTotal) / float64(sum.TotalMoodEntries)
	}

	seconds := 0
	for _, b := range data.BreathingExercises {
		if onDate(b.Timestamp) {
			seconds += b.Duration
			sum.TotalBreathingCycles += b.Cycles
		}
	}
	sum.BreathingMinutes = float64(seconds) / 60

	for _, g := range data.GratitudeEntries {
		if onDate(g.Timestamp) {
			sum.GratitudeCount++
		}
	}
	for _, w := range data.MindfulWritings {
		if onDate(w.Timestamp) {
			sum.WritingCount++
		}
	}
	for _, h := range data.SelfCare.Habits {
		if h.Completed && onDate(h.Timestamp) {
			sum.CompletedHabits++
		}
	}

	energyTotal, energyCount := 0, 0
	for _, e := range data.SelfCare.EnergyLevels {
		if onDate(e.Timestamp) {
			energyTotal += e.Level
			energyCount++
		}
	}
	if energyCount > 0 {
		sum.AverageEnergy = float64(energyTotal) / float64(energyCount)
	}

	for _, g := range data.MemoryGameStats {
		if onDate(g.Timestamp) {
			sum.TotalMemoryGames++
			if g.Won {
				sum.MemoryGameWins++
			}
		}
	}

	return sum
}

// AvailableDates collects the distinct YYYY-MM-DD prefixes across every list.
func AvailableDates(data models.SessionData) []string {
	seen := make(map[string]struct{})
	add := func(ts string) {
		if len(ts) >= len(constants.DateFormat) {
			seen[ts[:len(constants.DateFormat)]] = struct{}{}
		}
	}

	for _, r := range data.MoodEntries {
		add(r.Timestamp)
	}
	for _, r := range data.BreathingExercises {
		add(r.Timestamp)
	}
	for _, r := range data.GratitudeEntries {
		add(r.Timestamp)
	}
	for _, r := range data.MindfulWritings {
		add(r.Timestamp)
	}
	for _, r := range data.MemoryGameStats {
		add(r.Timestamp)
	}
	for _, r := range data.SelfCare.Habits {
		add(r.Timestamp)
	}
	for _, r := range data.SelfCare.Goals {
		add(r.Timestamp)
	}
	for _, r := range data.SelfCare.EnergyLevels {
		add(r.Timestamp)
	}

	dates := make([]string, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates
}
