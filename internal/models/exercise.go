package models

type ExerciseType string

const (
	ExerciseTypeCardio  ExerciseType = "Cardio"
	ExerciseTypeLifting ExerciseType = "Lifting"
)

// ExerciseTypes lists the accepted exercise types in display order.
var ExerciseTypes = []ExerciseType{ExerciseTypeCardio, ExerciseTypeLifting}

// Exercise is a single logged exercise. Fields that do not apply to the
// exercise type are left nil.
type Exercise struct {
	ID       string       `json:"id" toml:"id"`
	Type     ExerciseType `json:"type" toml:"type"`
	Name     string       `json:"name" toml:"name"`
	Duration *float64     `json:"duration,omitempty" toml:"duration,omitempty"` // Seconds, cardio.
	Distance *float64     `json:"distance,omitempty" toml:"distance,omitempty"` // Miles or km, cardio.
	Weight   *float64     `json:"weight,omitempty" toml:"weight,omitempty"`
	Reps     *int         `json:"reps,omitempty" toml:"reps,omitempty"`
	Sets     *int         `json:"sets,omitempty" toml:"sets,omitempty"`
}

// Float and Int build optional attributes inline.
func Float(v float64) *float64 { return &v }
func Int(v int) *int { return &v }

//
// For TOML parsing only
//

type ExerciseDefTOML struct {
	Type     string   `toml:"type"`
	Name     string   `toml:"name"`
	Duration *float64 `toml:"duration,omitempty"`
	Distance *float64 `toml:"distance,omitempty"`
	Weight   *float64 `toml:"weight,omitempty"`
	Reps     *int     `toml:"reps,omitempty"`
	Sets     *int     `toml:"sets,omitempty"`
}

type WorkoutImport struct {
	Date      string            `toml:"date"`
	Title     string            `toml:"title"`
	Notes     string            `toml:"notes"`
	Exercises []ExerciseDefTOML `toml:"exercise"`
}
