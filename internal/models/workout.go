package models

import "time"

const DefaultWorkoutTitle = "Workout"

// Workout is an immutable record of exercises performed on one calendar day.
// Date carries no time-of-day meaning and is kept at UTC midnight.
type Workout struct {
	ID        string     `json:"id" toml:"id"`
	UserID    string     `json:"user_id" toml:"user_id"`
	Title     string     `json:"title" toml:"title"`
	Notes     string     `json:"notes,omitempty" toml:"notes,omitempty"`
	Date      time.Time  `json:"date" toml:"date"`
	Exercises []Exercise `json:"exercises" toml:"exercises"`
}

// WorkoutDraft is the workout currently being tracked, persisted between
// commands until it is saved or cancelled.
type WorkoutDraft struct {
	WorkoutID string     `toml:"workout_id"`
	UserID    string     `toml:"user_id"`
	Title     string     `toml:"title"`
	Notes     string     `toml:"notes"`
	Date      time.Time  `toml:"date"`
	StartTime time.Time  `toml:"start_time"`
	Exercises []Exercise `toml:"exercises"`
}

// DefaultTitle names a workout after its exercise type when every exercise
// shares one, and falls back to DefaultWorkoutTitle otherwise.
func DefaultTitle(exercises []Exercise) string {
	if len(exercises) == 0 {
		return DefaultWorkoutTitle
	}
	first := exercises[0].Type
	for _, ex := range exercises[1:] {
		if ex.Type != first {
			return DefaultWorkoutTitle
		}
	}
	return string(first)
}
