package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misterclayt0n/fittrack/internal/models"
	"github.com/misterclayt0n/fittrack/internal/scoring"
)

func day(n int) time.Time {
	return time.Date(2026, 1, n, 0, 0, 0, 0, time.UTC)
}

func totalFor(t *testing.T, st *Storage, userID string) float64 {
	t.Helper()
	u, err := st.LoadUser(context.Background(), userID)
	require.NoError(t, err)
	return scoring.UserTotalScore(*u)
}

func TestInsertWorkoutWithExercises(t *testing.T) {
	st := newTestStorage(t)
	ctx := context.Background()
	p := seedProfile(t, st, "ana")

	plank := models.Exercise{ID: "e3", Type: models.ExerciseTypeLifting, Name: "Plank", Reps: models.Int(1)}
	w := seedWorkout(t, st, p.ID, day(25), run("e1", 5, 1800), lift("e2", 100, 10, 3), plank)

	workouts, err := st.FetchWorkoutsWithExercises(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, workouts, 1)

	got := workouts[0]
	assert.Equal(t, w.ID, got.ID)
	assert.Equal(t, "Workout", got.Title)
	assert.True(t, day(25).Equal(got.Date))
	require.Len(t, got.Exercises, 3)
	assert.Equal(t, []string{"e1", "e2", "e3"}, []string{got.Exercises[0].ID, got.Exercises[1].ID, got.Exercises[2].ID})
	assert.Nil(t, got.Exercises[0].Weight)
	assert.Nil(t, got.Exercises[2].Weight)
	assert.Equal(t, 1, *got.Exercises[2].Reps)
	assert.InDelta(t, 500, scoring.WorkoutScore(got), 1e-9)
}

func TestInsertWorkoutWithExercises_DefaultTitle(t *testing.T) {
	st := newTestStorage(t)
	p := seedProfile(t, st, "ana")

	w := seedWorkout(t, st, p.ID, day(2), run("e1", 3, 0))

	got, err := st.GetWorkout(context.Background(), w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cardio", got.Title)
}

func TestInsertWorkoutWithExercises_Empty(t *testing.T) {
	st := newTestStorage(t)

	err := st.InsertWorkoutWithExercises(context.Background(), models.Workout{ID: "w", UserID: "u", Date: day(1)})
	assert.ErrorIs(t, err, ErrEmptyWorkout)
}

func TestInsertWorkoutWithExercises_RollsBack(t *testing.T) {
	st := newTestStorage(t)
	ctx := context.Background()
	p := seedProfile(t, st, "ana")

	// The duplicate exercise ID fails the second insert.
	w := models.Workout{ID: "w1", UserID: p.ID, Date: day(1), Exercises: []models.Exercise{
		run("dup", 5, 1800),
		run("dup", 3, 900),
	}}
	require.Error(t, st.InsertWorkoutWithExercises(ctx, w))

	workouts, err := st.FetchWorkoutsWithExercises(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, workouts, "workout row must not survive a failed exercise insert")

	_, err = st.GetWorkout(ctx, "w1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetchWorkoutsWithExercises_NewestFirst(t *testing.T) {
	st := newTestStorage(t)
	ctx := context.Background()
	p := seedProfile(t, st, "ana")
	other := seedProfile(t, st, "bruno")

	seedWorkout(t, st, p.ID, day(1), run("a", 1, 0))
	seedWorkout(t, st, p.ID, day(3), run("b", 1, 0))
	seedWorkout(t, st, p.ID, day(2), run("c", 1, 0))
	seedWorkout(t, st, other.ID, day(9), run("d", 1, 0))

	workouts, err := st.FetchWorkoutsWithExercises(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, workouts, 3)
	assert.Equal(t, "b", workouts[0].Exercises[0].ID)
	assert.Equal(t, "c", workouts[1].Exercises[0].ID)
	assert.Equal(t, "a", workouts[2].Exercises[0].ID)
}

func TestTotalScore_TracksEveryMutation(t *testing.T) {
	st := newTestStorage(t)
	ctx := context.Background()
	p := seedProfile(t, st, "ana")

	require.Zero(t, totalFor(t, st, p.ID))

	w1 := seedWorkout(t, st, p.ID, day(1), lift("e1", 100, 10, 3), run("e2", 5, 1800))
	assert.InDelta(t, 500, totalFor(t, st, p.ID), 1e-9)

	w2 := seedWorkout(t, st, p.ID, day(2), lift("e3", 20, 5, 1))
	assert.InDelta(t, 515, totalFor(t, st, p.ID), 1e-9)

	// Edit: 10 reps -> 13 reps drops into the endurance range.
	require.NoError(t, st.ReplaceExercise(ctx, w1.ID, lift("e1", 100, 13, 3)))
	assert.InDelta(t, 100*13*3/10.0*0.8+200+15, totalFor(t, st, p.ID), 1e-9)

	deleted, err := st.DeleteExercise(ctx, w1.ID, "e2")
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.InDelta(t, 100*13*3/10.0*0.8+15, totalFor(t, st, p.ID), 1e-9)

	deleted, err = st.DeleteExercise(ctx, w2.ID, "e3")
	require.NoError(t, err)
	assert.True(t, deleted, "deleting the last exercise removes the workout")
	assert.InDelta(t, 100*13*3/10.0*0.8, totalFor(t, st, p.ID), 1e-9)

	_, err = st.GetWorkout(ctx, w2.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, st.DeleteWorkout(ctx, w1.ID))
	assert.Zero(t, totalFor(t, st, p.ID))
}

func TestReplaceExercise_KeepsPosition(t *testing.T) {
	st := newTestStorage(t)
	ctx := context.Background()
	p := seedProfile(t, st, "ana")

	w := seedWorkout(t, st, p.ID, day(1), run("e1", 1, 0), run("e2", 2, 0), run("e3", 3, 0))

	replacement := lift("e2", 60, 8, 4)
	replacement.Name = "Bench"
	require.NoError(t, st.ReplaceExercise(ctx, w.ID, replacement))

	got, err := st.GetWorkout(ctx, w.ID)
	require.NoError(t, err)
	require.Len(t, got.Exercises, 3)
	assert.Equal(t, "Bench", got.Exercises[1].Name)
	assert.Equal(t, models.ExerciseTypeLifting, got.Exercises[1].Type)
	assert.Nil(t, got.Exercises[1].Distance)
	assert.Equal(t, 8, *got.Exercises[1].Reps)
}

func TestReplaceAndDeleteExercise_NotFound(t *testing.T) {
	st := newTestStorage(t)
	ctx := context.Background()
	p := seedProfile(t, st, "ana")
	w := seedWorkout(t, st, p.ID, day(1), run("e1", 1, 0))

	assert.ErrorIs(t, st.ReplaceExercise(ctx, w.ID, run("nope", 1, 0)), ErrNotFound)
	assert.ErrorIs(t, st.ReplaceExercise(ctx, "other-workout", run("e1", 1, 0)), ErrNotFound)

	_, err := st.DeleteExercise(ctx, w.ID, "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, st.DeleteWorkout(ctx, "nope"), ErrNotFound)
}

func TestFetchWorkoutsWithExercises_UnreadableDateStillScored(t *testing.T) {
	st := newTestStorage(t)
	ctx := context.Background()
	p := seedProfile(t, st, "ana")

	w := seedWorkout(t, st, p.ID, day(1), run("e1", 5, 1800))
	_, err := st.DB.ExecContext(ctx, `UPDATE workouts SET workout_date = '2024/01/01' WHERE id = ?`, w.ID)
	require.NoError(t, err)

	workouts, err := st.FetchWorkoutsWithExercises(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, workouts, 1)
	assert.True(t, workouts[0].Date.IsZero())
	assert.InDelta(t, 200, scoring.WorkoutsScore(workouts), 1e-9)

	got, err := st.GetWorkout(ctx, w.ID)
	require.NoError(t, err)
	assert.True(t, got.Date.IsZero())
	assert.Len(t, got.Exercises, 1)

	g, err := st.CreateGroup(ctx, "solo", p.ID)
	require.NoError(t, err)
	entries, err := st.GroupLeaderboard(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.InDelta(t, entries[0].TotalScore, totalFor(t, st, p.ID), 1e-9)
	assert.Equal(t, 1, entries[0].WorkoutsCount)
}
