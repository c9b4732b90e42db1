package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/misterclayt0n/fittrack/internal/models"
	"golang.org/x/sync/errgroup"
)

// exerciseScoreSQL is the scoring formula of internal/scoring written in
// SQL. The two must stay in lockstep: TestGroupLeaderboard_MatchesLocalScoring
// fails when they drift.
const exerciseScoreSQL = `
    CASE e.type
        WHEN 'Cardio' THEN
            CASE WHEN e.distance IS NULL THEN 0
            ELSE e.distance * 20
                + CASE WHEN e.duration IS NOT NULL AND e.duration > 0
                       THEN (e.distance / (e.duration / 3600.0)) * 10
                       ELSE 0 END
            END
        WHEN 'Lifting' THEN
            CASE WHEN e.weight IS NULL OR e.reps IS NULL OR e.sets IS NULL THEN 0
            ELSE (e.weight * e.reps * e.sets / 10.0)
                * CASE WHEN e.reps <= 5 THEN 1.5
                       WHEN e.reps <= 12 THEN 1.0
                       ELSE 0.8 END
            END
        ELSE 0
    END`

// GroupLeaderboard aggregates every member's total score in the database.
// Rows come back highest score first, ties in join order; callers still run
// them through scoring.SortLeaderboard before display.
func (s *Storage) GroupLeaderboard(ctx context.Context, groupID string) ([]models.LeaderboardEntry, error) {
	query := fmt.Sprintf(`
        SELECT
            m.user_id,
            p.username,
            COALESCE((
                SELECT SUM(%s)
                FROM workout_exercises e
                JOIN workouts w ON w.id = e.workout_id
                WHERE w.user_id = m.user_id
            ), 0) AS total_score,
            (SELECT COUNT(*) FROM workouts w WHERE w.user_id = m.user_id) AS workouts_count
        FROM group_members m
        LEFT JOIN profiles p ON p.id = m.user_id
        WHERE m.group_id = ?
        ORDER BY ROUND(total_score, 6) DESC, m.joined_at, m.rowid
    `, exerciseScoreSQL)

	rows, err := s.DB.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("Failed to compute leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		var username sql.NullString
		if err := rows.Scan(&e.UserID, &username, &e.TotalScore, &e.WorkoutsCount); err != nil {
			return nil, fmt.Errorf("Failed to scan leaderboard row: %w", err)
		}
		e.Username = username.String
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	s.log.Debug("leaderboard computed", slog.String("group_id", groupID), slog.Int("members", len(entries)))
	return entries, nil
}

// LoadMembers fetches every member of the group with their raw workouts, in
// join order. Members are loaded concurrently.
func (s *Storage) LoadMembers(ctx context.Context, groupID string) ([]models.User, error) {
	ids, err := s.GroupMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}

	members := make([]models.User, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, id := range ids {
		g.Go(func() error {
			u, err := s.loadMember(gctx, id)
			if err != nil {
				return fmt.Errorf("loading member %s: %w", id, err)
			}
			members[i] = *u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return members, nil
}

// loadMember tolerates members without a profile row; they still compete
// with whatever workouts they have.
func (s *Storage) loadMember(ctx context.Context, id string) (*models.User, error) {
	u, err := s.LoadUser(ctx, id)
	if err == nil {
		return u, nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	workouts, err := s.FetchWorkoutsWithExercises(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.User{ID: id, Workouts: workouts}, nil
}
