// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Draw API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(reg, cfg)

# Endpoints

Health:

	GET /health

Workspaces:

	POST   /workspaces      - Create workspace
	GET    /workspaces/{id} - Counts and age
	DELETE /workspaces/{id} - Tear down

Roster:

	GET    /workspaces/{id}/participants        - Names and duplicates
	POST   /workspaces/{id}/participants        - Import names
	DELETE /workspaces/{id}/participants        - Clear roster
	POST   /workspaces/{id}/participants/sample - Load sample roster
	POST   /workspaces/{id}/participants/dedupe - Remove duplicates

Lucky draw:

	GET  /workspaces/{id}/draw          - Pool, history, winner
	POST /workspaces/{id}/draw          - Draw (SSE with Accept: text/event-stream)
	PUT  /workspaces/{id}/draw/settings - Toggle repeats
	POST /workspaces/{id}/draw/reset    - Refill pool, clear history

Groups:

	POST   /workspaces/{id}/groups        - Partition the roster
	GET    /workspaces/{id}/groups        - Latest groups
	DELETE /workspaces/{id}/groups        - Clear groups
	GET    /workspaces/{id}/groups/export - CSV download

# Handler Initialization

The router creates handler instances with dependency injection:

	workspaceHandler := handlers.NewWorkspaceHandler(reg)
	rosterHandler := handlers.NewRosterHandler(reg)
	drawHandler := handlers.NewDrawHandler(reg, cfg)
	groupHandler := handlers.NewGroupHandler(reg)

All handlers receive the workspace registry and configuration.
*/
package router
