package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countRows(t *testing.T, st *Storage, table string) int {
	t.Helper()
	var n int
	require.NoError(t, st.DB.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestExportImportTOML(t *testing.T) {
	src := newTestStorage(t)
	ctx := context.Background()

	ana := seedProfile(t, src, "ana")
	bruno := seedProfile(t, src, "bruno")
	seedWorkout(t, src, ana.ID, day(1), run("e1", 5, 1800), lift("e2", 100, 10, 3))
	seedWorkout(t, src, bruno.ID, day(2), run("e3", 2, 0))
	g, err := src.CreateGroup(ctx, "Crew", ana.ID)
	require.NoError(t, err)
	_, err = src.JoinGroup(ctx, g.Code, bruno.ID)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "dump.toml")
	require.NoError(t, src.ExportTOML(ctx, path))

	dst := newTestStorage(t)
	require.NoError(t, dst.ImportTOML(ctx, path))

	for _, table := range knownTables {
		assert.Equal(t, countRows(t, src, table), countRows(t, dst, table), table)
	}

	want, err := src.GroupLeaderboard(ctx, g.ID)
	require.NoError(t, err)
	got, err := dst.GroupLeaderboard(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// The cardio-only exercise has no weight; it must stay NULL after import.
	w, err := dst.GetWorkout(ctx, mustWorkoutID(t, dst, bruno.ID))
	require.NoError(t, err)
	assert.Nil(t, w.Exercises[0].Weight)
}

func mustWorkoutID(t *testing.T, st *Storage, userID string) string {
	t.Helper()
	workouts, err := st.FetchWorkoutsWithExercises(context.Background(), userID)
	require.NoError(t, err)
	require.NotEmpty(t, workouts)
	return workouts[0].ID
}

func TestImportTOML_RejectsUnknownTable(t *testing.T) {
	st := newTestStorage(t)

	path := filepath.Join(t.TempDir(), "dump.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[sqlite_master]]
name = "x"
`), 0644))

	err := st.ImportTOML(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown table")
}

func TestImportTOML_ClearsChildrenOfReplacedTables(t *testing.T) {
	st := newTestStorage(t)
	ctx := context.Background()

	ana := seedProfile(t, st, "ana")
	seedWorkout(t, st, ana.ID, day(1), run("e1", 5, 1800))
	g, err := st.CreateGroup(ctx, "Crew", ana.ID)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "dump.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[workouts]]
id = "w-new"
user_id = "`+ana.ID+`"
title = "Imported"
workout_date = "2026-01-05"
created_at = "2026-01-05T10:00:00.000000000Z"

[[training_groups]]
id = "g-new"
name = "Fresh"
code = "FRESH1"
created_by = "`+ana.ID+`"
created_at = "2026-01-05T10:00:00.000000000Z"
`), 0644))

	require.NoError(t, st.ImportTOML(ctx, path))

	assert.Equal(t, 1, countRows(t, st, "workouts"))
	assert.Zero(t, countRows(t, st, "workout_exercises"), "exercises of replaced workouts must go")
	assert.Zero(t, countRows(t, st, "group_members"))
	assert.Equal(t, 1, countRows(t, st, "profiles"), "tables absent from the dump are untouched")

	_, err = st.GetGroup(ctx, g.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTablesToClear(t *testing.T) {
	got := tablesToClear(map[string][]map[string]interface{}{"workouts": nil})
	assert.Equal(t, map[string]bool{"workouts": true, "workout_exercises": true}, got)
}
