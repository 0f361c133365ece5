// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-draw/draw"
	"github.com/danielhkuo/quickly-draw/ident"
	"github.com/danielhkuo/quickly-draw/middleware"
	"github.com/danielhkuo/quickly-draw/partition"
	"github.com/danielhkuo/quickly-draw/workspace"
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, workspace.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, draw.ErrEmptyPool),
		errors.Is(err, draw.ErrDrawCancelled),
		errors.Is(err, draw.ErrClosed),
		errors.Is(err, workspace.ErrSuperseded),
		errors.Is(err, partition.ErrInsufficientParticipants):
		return http.StatusConflict
	case errors.Is(err, partition.ErrInvalidGroupSize):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError answers with the mapped status. Internal errors are logged and
// replaced by fallback so store details do not leak.
func writeError(w http.ResponseWriter, err error, fallback string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error(fallback, "error", err)
		middleware.ErrorResponse(w, status, fallback)
		return
	}
	middleware.ErrorResponse(w, status, errorMessage(err))
}

// errorMessage drops the wrapped cause of a cancelled draw.
func errorMessage(err error) string {
	if errors.Is(err, draw.ErrDrawCancelled) {
		return draw.ErrDrawCancelled.Error()
	}
	return err.Error()
}

// lookupWorkspace resolves the {id} path value or writes a 404.
func lookupWorkspace(reg *workspace.Registry, w http.ResponseWriter, r *http.Request) (*workspace.Workspace, bool) {
	id := r.PathValue("id")
	if !ident.ValidWorkspaceID(id) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Workspace not found")
		return nil, false
	}

	ws, err := reg.Get(id)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Workspace not found")
		return nil, false
	}
	return ws, true
}
