// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/quickly-draw/export"
	"github.com/danielhkuo/quickly-draw/middleware"
	"github.com/danielhkuo/quickly-draw/models"
	"github.com/danielhkuo/quickly-draw/workspace"
)

type GroupHandler struct {
	reg *workspace.Registry
	now func() time.Time
}

func NewGroupHandler(reg *workspace.Registry) *GroupHandler {
	return &GroupHandler{reg: reg, now: time.Now}
}

// Create handles POST /workspaces/{id}/groups
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	ws, ok := lookupWorkspace(h.reg, w, r)
	if !ok {
		return
	}

	var req models.PartitionRequest
	if err := middleware.ParseAndValidate(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	groups, err := ws.Partition(r.Context(), req.GroupSize)
	if err != nil {
		writeError(w, err, "Failed to create groups")
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, models.GroupsResponse{Groups: groups})
}

// List handles GET /workspaces/{id}/groups
func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	ws, ok := lookupWorkspace(h.reg, w, r)
	if !ok {
		return
	}

	groups, err := ws.Groups(r.Context())
	if err != nil {
		writeError(w, err, "Failed to load groups")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.GroupsResponse{Groups: groups})
}

// Clear handles DELETE /workspaces/{id}/groups
func (h *GroupHandler) Clear(w http.ResponseWriter, r *http.Request) {
	ws, ok := lookupWorkspace(h.reg, w, r)
	if !ok {
		return
	}

	if err := ws.ResetGroups(r.Context()); err != nil {
		writeError(w, err, "Failed to clear groups")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Export handles GET /workspaces/{id}/groups/export
func (h *GroupHandler) Export(w http.ResponseWriter, r *http.Request) {
	ws, ok := lookupWorkspace(h.reg, w, r)
	if !ok {
		return
	}

	groups, err := ws.Groups(r.Context())
	if err != nil {
		writeError(w, err, "Failed to load groups")
		return
	}
	if len(groups) == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "No groups to export")
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(h.now())+`"`)
	w.WriteHeader(http.StatusOK)
	if err := export.WriteGroupsCSV(w, groups); err != nil {
		slog.Error("failed to write CSV export", "workspace_id", ws.ID, "error", err)
	}
}
