// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Draw API server.

Quickly Draw is an HR helper: keep a list of names, run a lucky draw with an
animated reveal, and split the list into randomly shuffled groups with
generated team names.

# Starting the Server

With no configuration the server keeps its sessions in an in-memory SQLite
database:

	go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -gemini-key "..."

Settings may also come from the environment or a .env file.

# Configuration

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): connection string, required for postgres
  - GEMINI_API_KEY (-gemini-key): enables generated names and messages
  - GEMINI_MODEL (-gemini-model): model name
  - NAMING_TIMEOUT (-naming-timeout): per request limit for Gemini
  - SPIN_STEPS, SPIN_INTERVAL, SPIN_SLOW_AFTER, SPIN_SLOW_BY: draw animation
  - WORKSPACE_IDLE_TTL (-idle-ttl): idle sessions are evicted after this
  - JANITOR_INTERVAL: how often idle sessions are looked for

The schema is dropped and recreated at startup, so nothing survives a
restart.

# Architecture

  - handlers: HTTP request handlers (workspaces, roster, draw, groups)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, request validation
  - models: Request/response and domain types
  - workspace: Session registry tying the engines together
  - roster, draw, partition: Roster store and the two engines
  - naming: Gemini team names and winner messages with fallbacks
  - export: CSV export of groups
  - ident, random: Id generation and randomness sources
  - db: Connection and schema
  - cliparse: Configuration parsing

The hrkit command in cmd/hrkit runs the same engines offline.

See package documentation for each component.
*/
package main
