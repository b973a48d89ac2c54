package models

// MoodEntry records a single mood selection
type MoodEntry struct {
	Timestamp string `json:"timestamp" validate:"required"`
	Mood      int    `json:"mood" validate:"min=1,max=5"`
	Label     string `json:"label" validate:"required"`
}

// BreathingExercise records a completed guided breathing session
type BreathingExercise struct {
	Timestamp string `json:"timestamp" validate:"required"`
	Duration  int    `json:"duration" validate:"min=0"` // seconds
	Cycles    int    `json:"cycles" validate:"min=0"`
}

// GratitudeEntry is a single gratitude journal line
type GratitudeEntry struct {
	ID        string `json:"id" validate:"required"`
	Content   string `json:"content" validate:"required"`
	Timestamp string `json:"timestamp" validate:"required"`
}

// MindfulWriting is a free-form journal entry
type MindfulWriting struct {
	ID        string `json:"id" validate:"required"`
	Content   string `json:"content" validate:"required"`
	Timestamp string `json:"timestamp" validate:"required"`
}

// MemoryGameStat records the outcome of one memory game
type MemoryGameStat struct {
	Timestamp   string `json:"timestamp" validate:"required"`
	Moves       int    `json:"moves" validate:"min=0"`
	TimeElapsed int    `json:"timeElapsed" validate:"min=0"` // seconds
	Won         bool   `json:"won"`
}
