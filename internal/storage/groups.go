package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/misterclayt0n/fittrack/internal/models"
)

// CreateGroup stores a new group with creatorID as its first member. Join
// codes are drawn until one is unused, up to the configured attempt limit.
func (s *Storage) CreateGroup(ctx context.Context, name, creatorID string) (*models.Group, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("Failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	code, err := s.unusedCode(ctx, tx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	g := &models.Group{
		ID:        uuid.New().String(),
		Name:      name,
		Code:      code,
		MemberIDs: []string{creatorID},
		CreatedBy: creatorID,
		CreatedAt: now,
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO training_groups (id, name, code, created_by, created_at) VALUES (?, ?, ?, ?, ?)`,
		g.ID, g.Name, g.Code, g.CreatedBy, now.Format(timestampLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("Failed to create group: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO group_members (group_id, user_id, joined_at) VALUES (?, ?, ?)`,
		g.ID, creatorID, now.Format(timestampLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("Failed to add creator to group: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("Failed to commit transaction: %w", err)
	}

	s.log.Info("group created", slog.String("group_id", g.ID), slog.String("code", g.Code))
	return g, nil
}

func (s *Storage) unusedCode(ctx context.Context, tx *sql.Tx) (string, error) {
	for attempt := 1; attempt <= s.codeAttempts; attempt++ {
		code := s.newCode()

		var taken bool
		err := tx.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM training_groups WHERE code = ?)`, code,
		).Scan(&taken)
		if err != nil {
			return "", fmt.Errorf("Failed to check join code: %w", err)
		}
		if !taken {
			return code, nil
		}
		s.log.Debug("join code collision, drawing again", slog.String("code", code), slog.Int("attempt", attempt))
	}
	return "", fmt.Errorf("%w after %d attempts", ErrCodeExhausted, s.codeAttempts)
}

// JoinGroup adds userID to the group with the given code. Joining a group
// twice is a no-op.
func (s *Storage) JoinGroup(ctx context.Context, code, userID string) (*models.Group, error) {
	var groupID string
	err := s.DB.QueryRowContext(ctx,
		`SELECT id FROM training_groups WHERE code = ?`, code,
	).Scan(&groupID)
	if err != nil {
		return nil, notFound(err, "group with code "+code)
	}

	_, err = s.DB.ExecContext(ctx,
		`INSERT INTO group_members (group_id, user_id, joined_at) VALUES (?, ?, ?)
         ON CONFLICT(group_id, user_id) DO NOTHING`,
		groupID, userID, time.Now().UTC().Format(timestampLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("Failed to join group: %w", err)
	}

	return s.GetGroup(ctx, groupID)
}

func (s *Storage) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	var g models.Group
	var createdAt string
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, name, code, created_by, created_at FROM training_groups WHERE id = ?`, groupID,
	).Scan(&g.ID, &g.Name, &g.Code, &g.CreatedBy, &createdAt)
	if err != nil {
		return nil, notFound(err, "group "+groupID)
	}
	g.CreatedAt, _ = time.Parse(timestampLayout, createdAt)

	members, err := s.GroupMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}
	g.MemberIDs = members
	return &g, nil
}

// GetGroupByName looks a group up by name among the groups userID belongs to.
func (s *Storage) GetGroupByName(ctx context.Context, name, userID string) (*models.Group, error) {
	var groupID string
	err := s.DB.QueryRowContext(ctx, `
        SELECT g.id
        FROM training_groups g
        JOIN group_members m ON m.group_id = g.id
        WHERE g.name = ? AND m.user_id = ?
        ORDER BY g.created_at DESC
        LIMIT 1
    `, name, userID).Scan(&groupID)
	if err != nil {
		return nil, notFound(err, "group "+name)
	}
	return s.GetGroup(ctx, groupID)
}

// GroupMembers returns member IDs in the order they joined.
func (s *Storage) GroupMembers(ctx context.Context, groupID string) ([]string, error) {
	rows, err := s.DB.QueryContext(ctx, `
        SELECT user_id FROM group_members
        WHERE group_id = ?
        ORDER BY joined_at, rowid
    `, groupID)
	if err != nil {
		return nil, fmt.Errorf("Failed to query members: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("Failed to scan member: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListGroupsForUser returns the groups userID belongs to, newest first.
func (s *Storage) ListGroupsForUser(ctx context.Context, userID string) ([]models.Group, error) {
	rows, err := s.DB.QueryContext(ctx, `
        SELECT g.id
        FROM training_groups g
        JOIN group_members m ON m.group_id = g.id
        WHERE m.user_id = ?
        ORDER BY g.created_at DESC
    `, userID)
	if err != nil {
		return nil, fmt.Errorf("Failed to query groups: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("Failed to scan group: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	groups := make([]models.Group, 0, len(ids))
	for _, id := range ids {
		g, err := s.GetGroup(ctx, id)
		if err != nil {
			return nil, err
		}
		groups = append(groups, *g)
	}
	return groups, nil
}

// DeleteGroup removes a group and its memberships. Only the creator may
// delete a group.
func (s *Storage) DeleteGroup(ctx context.Context, groupID, requesterID string) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var createdBy string
	err = tx.QueryRowContext(ctx,
		`SELECT created_by FROM training_groups WHERE id = ?`, groupID,
	).Scan(&createdBy)
	if err != nil {
		return notFound(err, "group "+groupID)
	}
	if createdBy != requesterID {
		return fmt.Errorf("only the creator can delete group %s: %w", groupID, ErrForbidden)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM group_members WHERE group_id = ?`, groupID); err != nil {
		return fmt.Errorf("Failed to delete memberships: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM training_groups WHERE id = ?`, groupID); err != nil {
		return fmt.Errorf("Failed to delete group: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Failed to commit transaction: %w", err)
	}

	s.log.Info("group deleted", slog.String("group_id", groupID))
	return nil
}
