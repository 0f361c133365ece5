// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// ResetSchema drops every table and recreates the schema.
// Workspaces are scoped to a process, so the server calls this at boot.
func ResetSchema(db *sql.DB) error {
	_, err := db.Exec(dropSchema)
	if err != nil {
		return fmt.Errorf("failed to drop schema: %w", err)
	}

	return CreateSchema(db)
}

const dropSchema = `
DROP TABLE IF EXISTS team_member;
DROP TABLE IF EXISTS team;
DROP TABLE IF EXISTS participant;
DROP TABLE IF EXISTS workspace;
`

// Statements use only types and syntax shared by SQLite and PostgreSQL.
const schema = `
-- Workspaces
CREATE TABLE IF NOT EXISTS workspace (
    id TEXT PRIMARY KEY,
    created_at TIMESTAMP NOT NULL
);

-- Roster entries, ordered by position within a workspace
CREATE TABLE IF NOT EXISTS participant (
    id TEXT PRIMARY KEY,
    workspace_id TEXT NOT NULL,
    name TEXT NOT NULL CHECK (name <> ''),
    position INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_participant_workspace ON participant(workspace_id, position);
CREATE INDEX IF NOT EXISTS idx_participant_name ON participant(workspace_id, name);

-- Groups from the latest partition run
CREATE TABLE IF NOT EXISTS team (
    id TEXT PRIMARY KEY,
    workspace_id TEXT NOT NULL,
    generation INTEGER NOT NULL,
    position INTEGER NOT NULL,
    name TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_team_workspace ON team(workspace_id, position);

-- Group members; names are copied so groups survive roster edits
CREATE TABLE IF NOT EXISTS team_member (
    team_id TEXT NOT NULL,
    workspace_id TEXT NOT NULL,
    participant_id TEXT NOT NULL,
    name TEXT NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (team_id, participant_id)
);

CREATE INDEX IF NOT EXISTS idx_team_member_workspace ON team_member(workspace_id);
`
