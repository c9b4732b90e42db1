package cmd

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misterclayt0n/fittrack/internal/models"
)

func TestComputeWeekStreak(t *testing.T) {
	// Wednesday of ISO week 2025-W10.
	now := time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC)
	on := func(y int, m time.Month, d int) models.Workout {
		return models.Workout{Date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
	}

	tests := []struct {
		name     string
		workouts []models.Workout
		want     int
	}{
		{"no workouts", nil, 0},
		{"this week only", []models.Workout{on(2025, 3, 3)}, 1},
		{"three weeks in a row", []models.Workout{on(2025, 3, 4), on(2025, 2, 25), on(2025, 2, 17)}, 3},
		{"gap breaks streak", []models.Workout{on(2025, 3, 4), on(2025, 2, 17)}, 1},
		{"current week not trained yet", []models.Workout{on(2025, 2, 25), on(2025, 2, 18)}, 2},
		{"two workouts same week", []models.Workout{on(2025, 3, 3), on(2025, 3, 5)}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, computeWeekStreak(tt.workouts, now))
		})
	}
}

func TestResolveWorkoutID(t *testing.T) {
	workouts := []models.Workout{
		{ID: "abc12345-0000"},
		{ID: "abc99999-0000"},
		{ID: "def00000-0000"},
	}

	id, err := resolveWorkoutID(workouts, "def")
	require.NoError(t, err)
	assert.Equal(t, "def00000-0000", id)

	id, err = resolveWorkoutID(workouts, "ABC1")
	require.NoError(t, err)
	assert.Equal(t, "abc12345-0000", id)

	_, err = resolveWorkoutID(workouts, "abc")
	assert.ErrorContains(t, err, "matches 2 workouts")

	_, err = resolveWorkoutID(workouts, "zzz")
	assert.Error(t, err)

	_, err = resolveWorkoutID(workouts, " ")
	assert.Error(t, err)
}

func TestPickGroup(t *testing.T) {
	groups := []models.Group{
		{ID: "1", Name: "Runners", Code: "RUN123"},
		{ID: "2", Name: "Lifters", Code: "LFT456"},
	}

	g, err := pickGroup(groups, "runners")
	require.NoError(t, err)
	assert.Equal(t, "1", g.ID)

	g, err = pickGroup(groups, " lft456 ")
	require.NoError(t, err)
	assert.Equal(t, "2", g.ID)

	_, err = pickGroup(groups, "")
	assert.Error(t, err, "ambiguous without a selector")

	g, err = pickGroup(groups[:1], "")
	require.NoError(t, err)
	assert.Equal(t, "1", g.ID)

	_, err = pickGroup(nil, "")
	assert.Error(t, err)

	_, err = pickGroup(groups, "swimmers")
	assert.Error(t, err)
}

func TestCompareStandings(t *testing.T) {
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	server := []models.LeaderboardEntry{
		{UserID: "a", TotalScore: 100.0000000001, WorkoutsCount: 2},
		{UserID: "b", TotalScore: 50, WorkoutsCount: 1},
	}
	local := []models.LeaderboardEntry{
		{UserID: "a", TotalScore: 100, WorkoutsCount: 2},
		{UserID: "b", TotalScore: 50, WorkoutsCount: 1},
	}
	assert.Zero(t, compareStandings(server, local))

	local[1].TotalScore = 49
	assert.Equal(t, 1, compareStandings(server, local))

	assert.Equal(t, 1, compareStandings(server, local[:1]))
}

func TestWorkoutFromImport(t *testing.T) {
	def := &models.WorkoutImport{
		Date:  "2025-02-07",
		Title: " Leg day ",
		Exercises: []models.ExerciseDefTOML{
			{Type: "lifting", Name: "Squat", Weight: models.Float(100), Reps: models.Int(5), Sets: models.Int(5)},
			{Type: "Cardio", Name: "Bike", Distance: models.Float(10)},
		},
	}

	w, err := workoutFromImport(def, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", w.UserID)
	assert.Equal(t, "Leg day", w.Title)
	assert.Equal(t, time.Date(2025, 2, 7, 0, 0, 0, 0, time.UTC), w.Date)
	require.Len(t, w.Exercises, 2)
	assert.Equal(t, models.ExerciseTypeLifting, w.Exercises[0].Type)
	assert.NotEmpty(t, w.Exercises[0].ID)

	def.Exercises[1].Reps = models.Int(3)
	_, err = workoutFromImport(def, "user-1")
	assert.ErrorContains(t, err, "exercise 2")

	_, err = workoutFromImport(&models.WorkoutImport{}, "user-1")
	assert.Error(t, err)
}

func TestDescribeExercise(t *testing.T) {
	assert.Equal(t, "5.00 dist 30m0s", describeExercise(models.Exercise{
		Type: models.ExerciseTypeCardio, Distance: models.Float(5), Duration: models.Float(1800),
	}))
	assert.Equal(t, "100.0kg 3×10", describeExercise(models.Exercise{
		Type: models.ExerciseTypeLifting, Weight: models.Float(100), Reps: models.Int(10), Sets: models.Int(3),
	}))
	assert.Equal(t, "-", describeExercise(models.Exercise{Type: models.ExerciseTypeLifting}))
}

func TestMatchProfile(t *testing.T) {
	profiles := []models.Profile{
		{ID: "id-ana", Username: "Ana"},
		{ID: "id-bruno", Username: "bruno"},
		{ID: "id-bruno-2", Username: "Bruno"},
	}

	p, err := matchProfile(profiles, "ana")
	require.NoError(t, err)
	assert.Equal(t, "id-ana", p.ID)

	p, err = matchProfile(profiles, "id-bruno-2")
	require.NoError(t, err)
	assert.Equal(t, "Bruno", p.Username)

	_, err = matchProfile(profiles, "bruno")
	assert.ErrorContains(t, err, "2 profiles")

	_, err = matchProfile(profiles, "carla")
	assert.Error(t, err)

	_, err = matchProfile(profiles, "  ")
	assert.Error(t, err)
}
