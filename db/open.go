// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

// DefaultSQLiteURL keeps the store in process memory
const DefaultSQLiteURL = "file:quickly-draw?mode=memory&cache=shared"

var ErrUnknownDatabaseType = errors.New("unknown database type")

// Open connects to the configured database and verifies the connection.
func Open(dbType, url string) (*sql.DB, error) {
	var driver string
	switch dbType {
	case TypeSQLite, "":
		driver = "sqlite"
		if url == "" {
			url = DefaultSQLiteURL
		}
	case TypePostgres:
		driver = "postgres"
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDatabaseType, dbType)
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	// A single connection keeps an in-memory SQLite database alive and
	// serializes writers.
	if driver == "sqlite" {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return conn, nil
}
