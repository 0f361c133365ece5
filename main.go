// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/quickly-draw/cliparse"
	"github.com/danielhkuo/quickly-draw/db"
	"github.com/danielhkuo/quickly-draw/middleware"
	"github.com/danielhkuo/quickly-draw/naming"
	"github.com/danielhkuo/quickly-draw/router"
	"github.com/danielhkuo/quickly-draw/workspace"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the session store
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Sessions never outlive the process
	if err := db.ResetSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	names := newNamingService(ctx, cfg)
	reg := workspace.NewRegistry(dbConn, names, workspace.ConfigOptions(cfg)...)

	// Create router
	mux := router.NewRouter(reg, cfg)

	// Create server; no write timeout so draw streams can run
	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return reg.Run(gctx, cfg.JanitorInterval)
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	if closeErr := reg.Close(context.Background()); closeErr != nil {
		slog.Error("failed to close workspaces", "error", closeErr)
	}

	if err != nil {
		slog.Error("Server closed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server closed")
}

// newNamingService uses Gemini when a key is configured. Without one every
// name and message falls back to the fixed strings.
func newNamingService(ctx context.Context, cfg cliparse.Config) *naming.Service {
	if cfg.GeminiAPIKey == "" {
		slog.Info("no Gemini API key; using fallback names")
		return naming.NewService(nil, cfg.NamingTimeout)
	}

	gen, err := naming.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		slog.Warn("Gemini unavailable; using fallback names", "error", err)
		return naming.NewService(nil, cfg.NamingTimeout)
	}

	slog.Info("naming collaborator ready", "model", gen.Name())
	return naming.NewService(gen, cfg.NamingTimeout)
}
