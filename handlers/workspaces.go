// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/quickly-draw/middleware"
	"github.com/danielhkuo/quickly-draw/models"
	"github.com/danielhkuo/quickly-draw/workspace"
)

type WorkspaceHandler struct {
	reg *workspace.Registry
}

func NewWorkspaceHandler(reg *workspace.Registry) *WorkspaceHandler {
	return &WorkspaceHandler{reg: reg}
}

// Create handles POST /workspaces
func (h *WorkspaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	ws, err := h.reg.Create(r.Context())
	if err != nil {
		writeError(w, err, "Failed to create workspace")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreateWorkspaceResponse{
		WorkspaceID: ws.ID,
		CreatedAt:   ws.CreatedAt,
	})
}

// Get handles GET /workspaces/{id}
func (h *WorkspaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	ws, ok := lookupWorkspace(h.reg, w, r)
	if !ok {
		return
	}

	summary, err := ws.Summary(r.Context())
	if err != nil {
		writeError(w, err, "Failed to load workspace")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, summary)
}

// Delete handles DELETE /workspaces/{id}
func (h *WorkspaceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.reg.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err, "Failed to delete workspace")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
