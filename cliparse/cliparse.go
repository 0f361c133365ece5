// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Port         int    `validate:"min=1,max=65535"`
	DatabaseURL  string `validate:"required_if=DatabaseType postgres"`
	DatabaseType string `validate:"oneof=sqlite postgres"`

	// Naming collaborator; an empty key disables generation
	GeminiAPIKey  string
	GeminiModel   string
	NamingTimeout time.Duration `validate:"gt=0"`

	// Draw animation schedule
	SpinSteps     int           `validate:"min=0"`
	SpinInterval  time.Duration `validate:"min=0"`
	SpinSlowAfter int           `validate:"min=0"`
	SpinSlowBy    time.Duration `validate:"min=0"`

	WorkspaceIdleTTL time.Duration `validate:"gt=0"`
	JanitorInterval  time.Duration `validate:"gt=0"`
}

var validate = validator.New()

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	// A missing .env file is fine; real env vars always win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	fs := flag.NewFlagSet("quickly-draw", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.GeminiAPIKey, "gemini-key", "", "Gemini API key (prefer env)")
	fs.StringVar(&cfg.GeminiModel, "gemini-model", "", "Gemini model")
	fs.DurationVar(&cfg.NamingTimeout, "naming-timeout", 0, "Timeout for name and message generation")

	fs.IntVar(&cfg.SpinSteps, "spin-steps", -1, "Draw animation steps (0 disables)")
	fs.DurationVar(&cfg.SpinInterval, "spin-interval", 0, "Initial draw animation interval")
	fs.DurationVar(&cfg.WorkspaceIdleTTL, "idle-ttl", 0, "Evict workspaces idle longer than this")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	var err error
	if cfg.Port == 0 {
		if cfg.Port, err = envInt("PORT", 3318); err != nil {
			return Config{}, err
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}

	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = os.Getenv("GEMINI_MODEL")
	}
	if cfg.NamingTimeout == 0 {
		if cfg.NamingTimeout, err = envDuration("NAMING_TIMEOUT", 10*time.Second); err != nil {
			return Config{}, err
		}
	}

	if cfg.SpinSteps < 0 {
		if cfg.SpinSteps, err = envInt("SPIN_STEPS", 40); err != nil {
			return Config{}, err
		}
	}
	if cfg.SpinInterval == 0 {
		if cfg.SpinInterval, err = envDuration("SPIN_INTERVAL", 50*time.Millisecond); err != nil {
			return Config{}, err
		}
	}
	if cfg.SpinSlowAfter, err = envInt("SPIN_SLOW_AFTER", 30); err != nil {
		return Config{}, err
	}
	if cfg.SpinSlowBy, err = envDuration("SPIN_SLOW_BY", 30*time.Millisecond); err != nil {
		return Config{}, err
	}

	if cfg.WorkspaceIdleTTL == 0 {
		if cfg.WorkspaceIdleTTL, err = envDuration("WORKSPACE_IDLE_TTL", 2*time.Hour); err != nil {
			return Config{}, err
		}
	}
	if cfg.JanitorInterval, err = envDuration("JANITOR_INTERVAL", time.Minute); err != nil {
		return Config{}, err
	}

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func envInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return v, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return v, nil
}
