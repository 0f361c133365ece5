// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/quickly-draw/cliparse"
	"github.com/danielhkuo/quickly-draw/handlers"
	"github.com/danielhkuo/quickly-draw/middleware"
	"github.com/danielhkuo/quickly-draw/workspace"
)

func NewRouter(reg *workspace.Registry, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	workspaceHandler := handlers.NewWorkspaceHandler(reg)
	rosterHandler := handlers.NewRosterHandler(reg)
	drawHandler := handlers.NewDrawHandler(reg, cfg)
	groupHandler := handlers.NewGroupHandler(reg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Workspace lifecycle
	mux.HandleFunc("POST /workspaces", middleware.WithLogging(workspaceHandler.Create))
	mux.HandleFunc("GET /workspaces/{id}", middleware.WithLogging(workspaceHandler.Get))
	mux.HandleFunc("DELETE /workspaces/{id}", middleware.WithLogging(workspaceHandler.Delete))

	// Roster
	mux.HandleFunc("GET /workspaces/{id}/participants", middleware.WithLogging(rosterHandler.List))
	mux.HandleFunc("POST /workspaces/{id}/participants", middleware.WithLogging(rosterHandler.Import))
	mux.HandleFunc("DELETE /workspaces/{id}/participants", middleware.WithLogging(rosterHandler.Clear))
	mux.HandleFunc("POST /workspaces/{id}/participants/sample", middleware.WithLogging(rosterHandler.LoadSample))
	mux.HandleFunc("POST /workspaces/{id}/participants/dedupe", middleware.WithLogging(rosterHandler.Dedupe))

	// Lucky draw
	mux.HandleFunc("GET /workspaces/{id}/draw", middleware.WithLogging(drawHandler.State))
	mux.HandleFunc("POST /workspaces/{id}/draw", middleware.WithLogging(drawHandler.Draw))
	mux.HandleFunc("PUT /workspaces/{id}/draw/settings", middleware.WithLogging(drawHandler.Settings))
	mux.HandleFunc("POST /workspaces/{id}/draw/reset", middleware.WithLogging(drawHandler.Reset))

	// Groups
	mux.HandleFunc("POST /workspaces/{id}/groups", middleware.WithLogging(groupHandler.Create))
	mux.HandleFunc("GET /workspaces/{id}/groups", middleware.WithLogging(groupHandler.List))
	mux.HandleFunc("DELETE /workspaces/{id}/groups", middleware.WithLogging(groupHandler.Clear))
	mux.HandleFunc("GET /workspaces/{id}/groups/export", middleware.WithLogging(groupHandler.Export))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-draw API v1"))
	})

	return mux
}
