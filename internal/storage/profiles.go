package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/misterclayt0n/fittrack/internal/models"
)

func (s *Storage) CreateProfile(ctx context.Context, p models.Profile) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO profiles (id, username, email, created_at) VALUES (?, ?, ?, ?)`,
		p.ID, p.Username, p.Email, p.CreatedAt.UTC().Format(timestampLayout),
	)
	if err != nil {
		return fmt.Errorf("Failed to create profile: %w", err)
	}
	return nil
}

func (s *Storage) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	var p models.Profile
	var username, email sql.NullString
	var createdAt string

	err := s.DB.QueryRowContext(ctx,
		`SELECT id, username, email, created_at FROM profiles WHERE id = ?`, id,
	).Scan(&p.ID, &username, &email, &createdAt)
	if err != nil {
		return nil, notFound(err, "profile "+id)
	}

	p.Username = username.String
	p.Email = email.String
	p.CreatedAt, _ = time.Parse(timestampLayout, createdAt)
	return &p, nil
}

func (s *Storage) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, username, email, created_at FROM profiles ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("Failed to query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		var p models.Profile
		var username, email sql.NullString
		var createdAt string
		if err := rows.Scan(&p.ID, &username, &email, &createdAt); err != nil {
			return nil, fmt.Errorf("Failed to scan profile: %w", err)
		}
		p.Username = username.String
		p.Email = email.String
		p.CreatedAt, _ = time.Parse(timestampLayout, createdAt)
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// LoadUser returns a profile together with all of its workouts. The total
// score is left for the caller to derive.
func (s *Storage) LoadUser(ctx context.Context, id string) (*models.User, error) {
	p, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	workouts, err := s.FetchWorkoutsWithExercises(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.User{
		ID:       p.ID,
		Name:     p.Username,
		Email:    p.Email,
		Workouts: workouts,
	}, nil
}
