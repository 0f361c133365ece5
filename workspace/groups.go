// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package workspace

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/quickly-draw/models"
)

// GroupStore keeps the latest partition result of one workspace.
type GroupStore struct {
	db          *sql.DB
	workspaceID string
}

func NewGroupStore(db *sql.DB, workspaceID string) *GroupStore {
	return &GroupStore{db: db, workspaceID: workspaceID}
}

// Replace swaps the stored groups for groups in one transaction.
func (s *GroupStore) Replace(ctx context.Context, generation uint64, groups []models.Group) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.deleteAll(ctx, tx); err != nil {
		return err
	}

	for gi, g := range groups {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO team (id, workspace_id, generation, position, name)
			VALUES ($1, $2, $3, $4, $5)
		`, g.ID, s.workspaceID, int64(generation), gi, g.Name)
		if err != nil {
			return fmt.Errorf("failed to insert group: %w", err)
		}

		for mi, m := range g.Members {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO team_member (team_id, workspace_id, participant_id, name, position)
				VALUES ($1, $2, $3, $4, $5)
			`, g.ID, s.workspaceID, m.ID, m.Name, mi)
			if err != nil {
				return fmt.Errorf("failed to insert group member: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit groups: %w", err)
	}
	return nil
}

// List returns the stored groups in partition order.
func (s *GroupStore) List(ctx context.Context) ([]models.Group, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.name, m.participant_id, m.name
		FROM team t
		LEFT JOIN team_member m ON m.team_id = t.id
		WHERE t.workspace_id = $1
		ORDER BY t.position, m.position
	`, s.workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}
	defer rows.Close()

	groups := []models.Group{}
	for rows.Next() {
		var (
			groupID, groupName   string
			memberID, memberName sql.NullString
		)
		if err := rows.Scan(&groupID, &groupName, &memberID, &memberName); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}

		if len(groups) == 0 || groups[len(groups)-1].ID != groupID {
			groups = append(groups, models.Group{
				ID:      groupID,
				Name:    groupName,
				Members: []models.Participant{},
			})
		}
		if memberID.Valid {
			last := &groups[len(groups)-1]
			last.Members = append(last.Members, models.Participant{ID: memberID.String, Name: memberName.String})
		}
	}
	return groups, rows.Err()
}

// Count returns the number of stored groups.
func (s *GroupStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM team WHERE workspace_id = $1`, s.workspaceID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count groups: %w", err)
	}
	return n, nil
}

// Clear removes the stored groups.
func (s *GroupStore) Clear(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.deleteAll(ctx, tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit group removal: %w", err)
	}
	return nil
}

func (s *GroupStore) deleteAll(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM team_member WHERE workspace_id = $1`, s.workspaceID); err != nil {
		return fmt.Errorf("failed to delete group members: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM team WHERE workspace_id = $1`, s.workspaceID); err != nil {
		return fmt.Errorf("failed to delete groups: %w", err)
	}
	return nil
}
