// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded first; variables already set
in the environment are not overridden.

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - DatabaseURL: connection string (default: in-memory SQLite)
  - GeminiAPIKey: enables AI team names and winner messages
  - GeminiModel: model name (default: gemini-3-flash-preview)
  - NamingTimeout: per-call naming timeout (default: 10s)
  - SpinSteps, SpinInterval, SpinSlowAfter, SpinSlowBy: draw animation
    schedule (defaults: 40 steps, 50ms, slow down after 30 by 30ms)
  - WorkspaceIdleTTL: idle workspaces are evicted after this (default: 2h)
  - JanitorInterval: how often eviction runs (default: 1m)

# CLI Flags

	-p              Server port
	-d              Database URL
	-t              Database type
	-gemini-key     Gemini API key
	-gemini-model   Gemini model
	-naming-timeout Naming timeout
	-spin-steps     Draw animation steps (0 disables)
	-spin-interval  Initial draw animation interval
	-idle-ttl       Workspace idle TTL

# Environment Variables

Flags fall back to environment variables:

	PORT               → -p
	DATABASE_URL       → -d
	DATABASE_TYPE      → -t
	GEMINI_API_KEY     → -gemini-key
	GEMINI_MODEL       → -gemini-model
	NAMING_TIMEOUT     → -naming-timeout
	SPIN_STEPS         → -spin-steps
	SPIN_INTERVAL      → -spin-interval
	WORKSPACE_IDLE_TTL → -idle-ttl

SPIN_SLOW_AFTER, SPIN_SLOW_BY and JANITOR_INTERVAL are environment only.
CLI flags take precedence over environment variables.

# Validation

The final Config is checked with go-playground/validator:

  - DATABASE_TYPE must be sqlite or postgres
  - DATABASE_URL must be provided for postgres
  - durations must be positive
*/
package cliparse
