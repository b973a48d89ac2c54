package models

import "github.com/julianstephens/mindfulpath/internal/constants"

// Habit is a self-care habit and whether it was completed
type Habit struct {
	ID        string `json:"id" validate:"required"`
	Label     string `json:"label" validate:"required"`
	Completed bool   `json:"completed"`
	Timestamp string `json:"timestamp"`
}

// Goal tracks progress (0-100) towards a self-care goal
type Goal struct {
	ID        string `json:"id" validate:"required"`
	Title     string `json:"title" validate:"required"`
	Progress  int    `json:"progress" validate:"min=0,max=100"`
	Timestamp string `json:"timestamp"`
}

// EnergyLevel is an energy reading (0-100) for a part of the day
type EnergyLevel struct {
	Time      constants.EnergyTime `json:"time" validate:"required,oneof=Morning Afternoon Evening"`
	Level     int                  `json:"level" validate:"min=0,max=100"`
	Timestamp string               `json:"timestamp"`
}

// SelfCare groups the self-care sub-lists
type SelfCare struct {
	Habits       []Habit       `json:"habits"`
	Goals        []Goal        `json:"goals"`
	EnergyLevels []EnergyLevel `json:"energyLevels"`
}

// DefaultHabits returns the starter habit list offered to new sessions
func DefaultHabits() []Habit {
	return []Habit{
		{ID: "1", Label: "Morning Meditation"},
		{ID: "2", Label: "Healthy Breakfast"},
		{ID: "3", Label: "Physical Activity"},
		{ID: "4", Label: "Mindful Break"},
	}
}

// DefaultGoals returns the starter goal list offered to new sessions
func DefaultGoals() []Goal {
	return []Goal{
		{ID: "1", Title: "Practice mindfulness", Progress: 60},
		{ID: "2", Title: "Daily walks", Progress: 40},
	}
}
