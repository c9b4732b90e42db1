package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/misterclayt0n/fittrack/internal/models"
	"github.com/misterclayt0n/fittrack/internal/utils"
)

// InsertWorkoutWithExercises stores a workout and its exercises in one
// transaction, so a failed exercise insert never leaves an orphan workout.
func (s *Storage) InsertWorkoutWithExercises(ctx context.Context, w models.Workout) error {
	if len(w.Exercises) == 0 {
		return ErrEmptyWorkout
	}
	if w.Title == "" {
		w.Title = models.DefaultTitle(w.Exercises)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(timestampLayout)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO workouts (id, user_id, title, notes, workout_date, created_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		w.ID, w.UserID, w.Title, nullString(w.Notes), utils.FormatDay(w.Date), now,
	)
	if err != nil {
		return fmt.Errorf("Failed to create workout: %w", err)
	}

	for i, ex := range w.Exercises {
		if err := insertExercise(ctx, tx, w.ID, w.UserID, i, ex, now); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Failed to commit transaction: %w", err)
	}

	s.log.Info("workout saved",
		slog.String("workout_id", w.ID),
		slog.String("user_id", w.UserID),
		slog.Int("exercises", len(w.Exercises)))
	return nil
}

func insertExercise(ctx context.Context, tx *sql.Tx, workoutID, userID string, order int, ex models.Exercise, createdAt string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO workout_exercises
         (id, workout_id, user_id, sort_order, type, name, duration, distance, weight, reps, sets, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ex.ID, workoutID, userID, order, string(ex.Type), ex.Name,
		nullFloat(ex.Duration), nullFloat(ex.Distance), nullFloat(ex.Weight),
		nullInt(ex.Reps), nullInt(ex.Sets), createdAt,
	)
	if err != nil {
		return fmt.Errorf("Failed to save exercise %s: %w", ex.Name, err)
	}
	return nil
}

// FetchWorkoutsWithExercises returns the user's workouts, newest day first,
// each with its exercises in logged order.
func (s *Storage) FetchWorkoutsWithExercises(ctx context.Context, userID string) ([]models.Workout, error) {
	rows, err := s.DB.QueryContext(ctx, `
        SELECT id, user_id, title, notes, workout_date
        FROM workouts
        WHERE user_id = ?
        ORDER BY workout_date DESC, created_at DESC, id
    `, userID)
	if err != nil {
		return nil, fmt.Errorf("Failed to query workouts: %w", err)
	}

	var workouts []models.Workout
	index := make(map[string]int)
	for rows.Next() {
		var w models.Workout
		var notes sql.NullString
		var date string
		if err := rows.Scan(&w.ID, &w.UserID, &w.Title, &notes, &date); err != nil {
			rows.Close()
			return nil, fmt.Errorf("Failed to scan workout: %w", err)
		}
		w.Notes = notes.String
		w.Date = s.parseWorkoutDate(w.ID, date)
		index[w.ID] = len(workouts)
		workouts = append(workouts, w)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	exercises, err := s.exercisesForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for workoutID, exs := range exercises {
		if i, ok := index[workoutID]; ok {
			workouts[i].Exercises = exs
		}
	}

	return workouts, nil
}

// parseWorkoutDate reads a stored workout day. An unreadable date (possible
// after build-db from a hand-edited dump) yields the zero time; the workout
// is still listed and scored.
func (s *Storage) parseWorkoutDate(workoutID, date string) time.Time {
	parsed, err := time.Parse(utils.DayLayout, date)
	if err != nil {
		s.log.Warn("workout has unreadable date", slog.String("workout_id", workoutID), slog.String("date", date))
		return time.Time{}
	}
	return parsed
}

func (s *Storage) exercisesForUser(ctx context.Context, userID string) (map[string][]models.Exercise, error) {
	rows, err := s.DB.QueryContext(ctx, `
        SELECT e.workout_id, e.id, e.type, e.name, e.duration, e.distance, e.weight, e.reps, e.sets
        FROM workout_exercises e
        JOIN workouts w ON w.id = e.workout_id
        WHERE w.user_id = ?
        ORDER BY e.workout_id, e.sort_order
    `, userID)
	if err != nil {
		return nil, fmt.Errorf("Failed to query exercises: %w", err)
	}
	defer rows.Close()

	byWorkout := make(map[string][]models.Exercise)
	for rows.Next() {
		var workoutID string
		ex, err := scanExercise(rows, &workoutID)
		if err != nil {
			return nil, err
		}
		byWorkout[workoutID] = append(byWorkout[workoutID], ex)
	}
	return byWorkout, rows.Err()
}

func scanExercise(rows *sql.Rows, workoutID *string) (models.Exercise, error) {
	var ex models.Exercise
	var typ string
	var duration, distance, weight sql.NullFloat64
	var reps, sets sql.NullInt64

	if err := rows.Scan(workoutID, &ex.ID, &typ, &ex.Name, &duration, &distance, &weight, &reps, &sets); err != nil {
		return ex, fmt.Errorf("Failed to scan exercise: %w", err)
	}

	ex.Type = models.ExerciseType(typ)
	ex.Duration = floatPtr(duration)
	ex.Distance = floatPtr(distance)
	ex.Weight = floatPtr(weight)
	ex.Reps = intPtr(reps)
	ex.Sets = intPtr(sets)
	return ex, nil
}

// GetWorkout loads a single workout with its exercises.
func (s *Storage) GetWorkout(ctx context.Context, workoutID string) (*models.Workout, error) {
	var w models.Workout
	var notes sql.NullString
	var date string
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, user_id, title, notes, workout_date FROM workouts WHERE id = ?`, workoutID,
	).Scan(&w.ID, &w.UserID, &w.Title, &notes, &date)
	if err != nil {
		return nil, notFound(err, "workout "+workoutID)
	}
	w.Notes = notes.String
	w.Date = s.parseWorkoutDate(w.ID, date)

	rows, err := s.DB.QueryContext(ctx, `
        SELECT workout_id, id, type, name, duration, distance, weight, reps, sets
        FROM workout_exercises
        WHERE workout_id = ?
        ORDER BY sort_order
    `, workoutID)
	if err != nil {
		return nil, fmt.Errorf("Failed to query exercises: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var wid string
		ex, err := scanExercise(rows, &wid)
		if err != nil {
			return nil, err
		}
		w.Exercises = append(w.Exercises, ex)
	}
	return &w, rows.Err()
}

// ReplaceExercise swaps the stored exercise with the same ID for ex, keeping
// its position in the workout.
func (s *Storage) ReplaceExercise(ctx context.Context, workoutID string, ex models.Exercise) error {
	res, err := s.DB.ExecContext(ctx,
		`UPDATE workout_exercises
         SET type = ?, name = ?, duration = ?, distance = ?, weight = ?, reps = ?, sets = ?
         WHERE id = ? AND workout_id = ?`,
		string(ex.Type), ex.Name,
		nullFloat(ex.Duration), nullFloat(ex.Distance), nullFloat(ex.Weight),
		nullInt(ex.Reps), nullInt(ex.Sets),
		ex.ID, workoutID,
	)
	if err != nil {
		return fmt.Errorf("Failed to update exercise: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("exercise %s in workout %s: %w", ex.ID, workoutID, ErrNotFound)
	}
	return nil
}

// DeleteExercise removes one exercise. When it was the last one, the workout
// goes too and workoutDeleted is true.
func (s *Storage) DeleteExercise(ctx context.Context, workoutID, exerciseID string) (workoutDeleted bool, err error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("Failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM workout_exercises WHERE id = ? AND workout_id = ?`, exerciseID, workoutID)
	if err != nil {
		return false, fmt.Errorf("Failed to delete exercise: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return false, fmt.Errorf("exercise %s in workout %s: %w", exerciseID, workoutID, ErrNotFound)
	}

	var remaining int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM workout_exercises WHERE workout_id = ?`, workoutID,
	).Scan(&remaining); err != nil {
		return false, fmt.Errorf("Failed to count exercises: %w", err)
	}

	if remaining == 0 {
		if _, err := tx.ExecContext(ctx, `DELETE FROM workouts WHERE id = ?`, workoutID); err != nil {
			return false, fmt.Errorf("Failed to delete empty workout: %w", err)
		}
		workoutDeleted = true
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("Failed to commit transaction: %w", err)
	}

	if workoutDeleted {
		s.log.Info("deleted last exercise, workout removed", slog.String("workout_id", workoutID))
	}
	return workoutDeleted, nil
}

func (s *Storage) DeleteWorkout(ctx context.Context, workoutID string) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM workout_exercises WHERE workout_id = ?`, workoutID); err != nil {
		return fmt.Errorf("Failed to delete exercises: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM workouts WHERE id = ?`, workoutID)
	if err != nil {
		return fmt.Errorf("Failed to delete workout: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("workout %s: %w", workoutID, ErrNotFound)
	}

	return tx.Commit()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func nullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
