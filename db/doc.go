// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the workspace store and manages its schema.

# Drivers

Two drivers are supported:

  - sqlite (default): modernc.org/sqlite, in-memory unless a file URL is given
  - postgres: github.com/lib/pq

An empty URL selects DefaultSQLiteURL:

	conn, err := db.Open(db.TypeSQLite, "")

# Schema

ResetSchema drops and recreates every table. The server calls it at boot, so
nothing outlives the process:

	if err := db.ResetSchema(conn); err != nil {
		return err
	}

CreateSchema alone is safe to call multiple times; it uses IF NOT EXISTS.

# Tables

  - workspace: one row per live workspace
  - participant: roster entries ordered by position
  - team: groups from the latest partition run
  - team_member: members of each group, names copied at partition time

# Relationships

	workspace 1──* participant
	workspace 1──* team
	team 1──* team_member

Rows are deleted explicitly by the workspace registry; no foreign keys are
declared so the same schema runs on both drivers.
*/
package db
