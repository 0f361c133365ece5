// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package roster

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/quickly-draw/models"
)

// Store is the SQL-backed roster of a single workspace.
// Callers serialize mutations; every mutation runs in one transaction.
type Store struct {
	db          *sql.DB
	workspaceID string
}

func NewStore(db *sql.DB, workspaceID string) *Store {
	return &Store{db: db, workspaceID: workspaceID}
}

// List returns the roster in insertion order.
func (s *Store) List(ctx context.Context) ([]models.Participant, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name
		FROM participant
		WHERE workspace_id = $1
		ORDER BY position
	`, s.workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	defer rows.Close()

	participants := []models.Participant{}
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

// Import parses raw text and appends the names after the existing entries.
func (s *Store) Import(ctx context.Context, raw string) ([]models.Participant, error) {
	added := NewParticipants(ParseNames(raw))
	if len(added) == 0 {
		return added, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var last int
	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(position), 0)
		FROM participant
		WHERE workspace_id = $1
	`, s.workspaceID).Scan(&last)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster position: %w", err)
	}

	if err := s.insert(ctx, tx, added, last+1); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit import: %w", err)
	}

	slog.Info("roster imported", "workspace_id", s.workspaceID, "added", len(added))
	return added, nil
}

// LoadSample replaces the roster with SampleNames.
func (s *Store) LoadSample(ctx context.Context) ([]models.Participant, error) {
	sample := NewParticipants(SampleNames)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.deleteAll(ctx, tx); err != nil {
		return nil, err
	}
	if err := s.insert(ctx, tx, sample, 1); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit sample roster: %w", err)
	}

	slog.Info("sample roster loaded", "workspace_id", s.workspaceID, "count", len(sample))
	return sample, nil
}

// Clear empties the roster unconditionally.
func (s *Store) Clear(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.deleteAll(ctx, tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit clear: %w", err)
	}

	slog.Info("roster cleared", "workspace_id", s.workspaceID)
	return nil
}

// Deduplicate drops every entry whose name already appeared earlier in the
// roster and returns how many were removed.
func (s *Store) Deduplicate(ctx context.Context) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Keep the lowest position per name
	res, err := tx.ExecContext(ctx, `
		DELETE FROM participant
		WHERE workspace_id = $1
		  AND position NOT IN (
			SELECT MIN(position)
			FROM participant
			WHERE workspace_id = $1
			GROUP BY name
		  )
	`, s.workspaceID)
	if err != nil {
		return 0, fmt.Errorf("failed to remove duplicates: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count removed duplicates: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit dedupe: %w", err)
	}

	slog.Info("roster deduplicated", "workspace_id", s.workspaceID, "removed", removed)
	return int(removed), nil
}

// DuplicateNames lists names that occur at least twice, ordered by first
// appearance.
func (s *Store) DuplicateNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name
		FROM participant
		WHERE workspace_id = $1
		GROUP BY name
		HAVING COUNT(*) >= 2
		ORDER BY MIN(position)
	`, s.workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query duplicate names: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan duplicate name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Drop deletes every row owned by the workspace.
func (s *Store) Drop(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM participant WHERE workspace_id = $1`, s.workspaceID)
	if err != nil {
		return fmt.Errorf("failed to drop roster: %w", err)
	}
	return nil
}

func (s *Store) deleteAll(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM participant WHERE workspace_id = $1`, s.workspaceID)
	if err != nil {
		return fmt.Errorf("failed to delete participants: %w", err)
	}
	return nil
}

func (s *Store) insert(ctx context.Context, tx *sql.Tx, ps []models.Participant, firstPosition int) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO participant (id, workspace_id, name, position)
		VALUES ($1, $2, $3, $4)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare participant insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range ps {
		if _, err := stmt.ExecContext(ctx, p.ID, s.workspaceID, p.Name, firstPosition+i); err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}
	return nil
}
