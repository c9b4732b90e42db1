package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misterclayt0n/fittrack/internal/models"
)

func TestExercise_Valid(t *testing.T) {
	t.Parallel()

	ex, err := Exercise(ExerciseInput{Type: "lifting", Name: " Squat ", Weight: models.Float(100), Reps: models.Int(5), Sets: models.Int(3)})
	require.NoError(t, err)
	assert.NotEmpty(t, ex.ID)
	assert.Equal(t, models.ExerciseTypeLifting, ex.Type)
	assert.Equal(t, "Squat", ex.Name)

	run, err := Exercise(ExerciseInput{Type: "Cardio", Name: "Run", Distance: models.Float(5)})
	require.NoError(t, err)
	assert.Equal(t, models.ExerciseTypeCardio, run.Type)
	assert.NotEqual(t, ex.ID, run.ID)
}

func TestExercise_PartialInputIsAllowed(t *testing.T) {
	t.Parallel()

	// Incomplete exercises are legal; they simply score zero.
	_, err := Exercise(ExerciseInput{Type: "Lifting", Name: "Plank", Reps: models.Int(1)})
	assert.NoError(t, err)

	_, err = Exercise(ExerciseInput{Type: "Cardio", Name: "Walk", Duration: models.Float(600)})
	assert.NoError(t, err)
}

func TestExercise_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      ExerciseInput
		wantMsg string
	}{
		{"unknown type", ExerciseInput{Type: "Yoga", Name: "Flow"}, "type must be one of Cardio, Lifting"},
		{"missing name", ExerciseInput{Type: "Cardio", Name: "  "}, "name is required"},
		{"negative reps", ExerciseInput{Type: "Lifting", Name: "Row", Reps: models.Int(-3)}, "reps must be at least 1"},
		{"zero sets", ExerciseInput{Type: "Lifting", Name: "Row", Sets: models.Int(0)}, "sets must be at least 1"},
		{"negative weight", ExerciseInput{Type: "Lifting", Name: "Row", Weight: models.Float(-1)}, "weight must be at least 0"},
		{"negative distance", ExerciseInput{Type: "Cardio", Name: "Run", Distance: models.Float(-1)}, "distance must be at least 0"},
		{"reps on cardio", ExerciseInput{Type: "Cardio", Name: "Run", Reps: models.Int(10)}, "reps does not apply to cardio exercises"},
		{"distance on lifting", ExerciseInput{Type: "Lifting", Name: "Row", Distance: models.Float(1)}, "distance does not apply to lifting exercises"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Exercise(tt.in)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestExerciseWithID_KeepsID(t *testing.T) {
	t.Parallel()

	ex, err := ExerciseWithID("keep-me", ExerciseInput{Type: "Cardio", Name: "Run", Distance: models.Float(3)})
	require.NoError(t, err)
	assert.Equal(t, "keep-me", ex.ID)
}

func TestExerciseFromTOML(t *testing.T) {
	t.Parallel()

	ex, err := ExerciseFromTOML(models.ExerciseDefTOML{Type: "Lifting", Name: "Bench", Weight: models.Float(80), Reps: models.Int(8), Sets: models.Int(3)})
	require.NoError(t, err)
	assert.Equal(t, 8, *ex.Reps)
}

func TestProfile(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Profile(ProfileInput{Username: "ana", Email: "ana@example.com"}))

	err := Profile(ProfileInput{Username: "", Email: "not-an-email"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "username is required")
	assert.Contains(t, err.Error(), "email must be a valid email address")
}

func TestGroup(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Group(GroupInput{Name: "Morning Runners"}))
	assert.Error(t, Group(GroupInput{}))
}

func TestJoinCode(t *testing.T) {
	t.Parallel()

	code, err := JoinCode(" ab12cd ")
	require.NoError(t, err)
	assert.Equal(t, "AB12CD", code)

	_, err = JoinCode("AB-12")
	assert.Error(t, err)
}
