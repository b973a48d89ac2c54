package models

// SessionData is the full persisted session snapshot
type SessionData struct {
	MoodEntries        []MoodEntry         `json:"moodEntries"`
	BreathingExercises []BreathingExercise `json:"breathingExercises"`
	GratitudeEntries   []GratitudeEntry    `json:"gratitudeEntries"`
	MindfulWritings    []MindfulWriting    `json:"mindfulWritings"`
	MemoryGameStats    []MemoryGameStat    `json:"memoryGameStats"`
	SelfCare           SelfCare            `json:"selfCare"`
}

// NewSessionData returns an empty session with every list initialized,
// so the JSON form always carries arrays rather than nulls.
func NewSessionData() SessionData {
	return SessionData{
		MoodEntries:        []MoodEntry{},
		BreathingExercises: []BreathingExercise{},
		GratitudeEntries:   []GratitudeEntry{},
		MindfulWritings:    []MindfulWriting{},
		MemoryGameStats:    []MemoryGameStat{},
		SelfCare: SelfCare{
			Habits:       []Habit{},
			Goals:        []Goal{},
			EnergyLevels: []EnergyLevel{},
		},
	}
}

// Clone returns a deep copy of the session
func (s SessionData) Clone() SessionData {
	return SessionData{
		MoodEntries:        append([]MoodEntry{}, s.MoodEntries...),
		BreathingExercises: append([]BreathingExercise{}, s.BreathingExercises...),
		GratitudeEntries:   append([]GratitudeEntry{}, s.GratitudeEntries...),
		MindfulWritings:    append([]MindfulWriting{}, s.MindfulWritings...),
		MemoryGameStats:    append([]MemoryGameStat{}, s.MemoryGameStats...),
		SelfCare: SelfCare{
			Habits:       append([]Habit{}, s.SelfCare.Habits...),
			Goals:        append([]Goal{}, s.SelfCare.Goals...),
			EnergyLevels: append([]EnergyLevel{}, s.SelfCare.EnergyLevels...),
		},
	}
}

// IsEmpty reports whether the session holds no records at all
func (s SessionData) IsEmpty() bool {
	return len(s.MoodEntries) == 0 &&
		len(s.BreathingExercises) == 0 &&
		len(s.GratitudeEntries) == 0 &&
		len(s.MindfulWritings) == 0 &&
		len(s.MemoryGameStats) == 0 &&
		len(s.SelfCare.Habits) == 0 &&
		len(s.SelfCare.Goals) == 0 &&
		len(s.SelfCare.EnergyLevels) == 0
}

// DailySummary holds the statistics derived for a single date
type DailySummary struct {
	Date                 string  `json:"date"`
	TotalMoodEntries     int     `json:"totalMoodEntries"`
	AverageMood          float64 `json:"averageMood"`
	BreathingMinutes     float64 `json:"breathingMinutes"`
	TotalBreathingCycles int     `json:"totalBreathingCycles"`
	GratitudeCount       int     `json:"gratitudeCount"`
	WritingCount         int     `json:"writingCount"`
	CompletedHabits      int     `json:"completedHabits"`
	AverageEnergy        float64 `json:"averageEnergy"`
	MemoryGameWins       int     `json:"memoryGameWins"`
	TotalMemoryGames     int     `json:"totalMemoryGames"`
}
