// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/danielhkuo/quickly-draw/middleware"
	"github.com/danielhkuo/quickly-draw/models"
	"github.com/danielhkuo/quickly-draw/workspace"
)

var (
	errUnsupportedMediaType = errors.New("body must be JSON, text/plain or multipart/form-data")
	errBodyTooLarge         = fmt.Errorf("names must not exceed %d bytes", middleware.MaxBodyBytes)
)

type RosterHandler struct {
	reg *workspace.Registry
}

func NewRosterHandler(reg *workspace.Registry) *RosterHandler {
	return &RosterHandler{reg: reg}
}

// List handles GET /workspaces/{id}/participants
func (h *RosterHandler) List(w http.ResponseWriter, r *http.Request) {
	ws, ok := lookupWorkspace(h.reg, w, r)
	if !ok {
		return
	}

	list, dups, err := ws.Roster(r.Context())
	if err != nil {
		writeError(w, err, "Failed to load participants")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.RosterResponse{
		Participants:   list,
		DuplicateNames: dups,
	})
}

// Import handles POST /workspaces/{id}/participants
// Accepts {"text": ...}, a text/plain body, or an uploaded "file" field.
func (h *RosterHandler) Import(w http.ResponseWriter, r *http.Request) {
	ws, ok := lookupWorkspace(h.reg, w, r)
	if !ok {
		return
	}

	raw, err := readRosterText(w, r)
	if errors.Is(err, errUnsupportedMediaType) {
		middleware.ErrorResponse(w, http.StatusUnsupportedMediaType, err.Error())
		return
	}
	if errors.Is(err, errBodyTooLarge) {
		middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	}
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	added, total, err := ws.Import(r.Context(), raw)
	if err != nil {
		writeError(w, err, "Failed to import participants")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.ImportResponse{
		Added: added,
		Total: total,
	})
}

func readRosterText(w http.ResponseWriter, r *http.Request) (string, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		mediaType = ""
	}

	switch mediaType {
	case "application/json", "":
		var req models.ImportRequest
		if err := middleware.ParseAndValidate(r, &req); err != nil {
			return "", err
		}
		return req.Text, nil

	case "text/plain", "text/csv":
		defer r.Body.Close()
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, middleware.MaxBodyBytes))
		if isTooLarge(err) {
			return "", errBodyTooLarge
		}
		if err != nil {
			return "", fmt.Errorf("failed to read body: %w", err)
		}
		return string(body), nil

	case "multipart/form-data":
		if r.ContentLength > middleware.MaxBodyBytes {
			return "", errBodyTooLarge
		}
		r.Body = http.MaxBytesReader(w, r.Body, middleware.MaxBodyBytes)
		if err := r.ParseMultipartForm(middleware.MaxBodyBytes); err != nil {
			if isTooLarge(err) {
				return "", errBodyTooLarge
			}
			return "", fmt.Errorf("invalid form: %w", err)
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return "", errors.New("file is required")
		}
		defer file.Close()

		body, err := io.ReadAll(io.LimitReader(file, middleware.MaxBodyBytes+1))
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		if len(body) > middleware.MaxBodyBytes {
			return "", errBodyTooLarge
		}
		return string(body), nil

	default:
		return "", errUnsupportedMediaType
	}
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// LoadSample handles POST /workspaces/{id}/participants/sample
func (h *RosterHandler) LoadSample(w http.ResponseWriter, r *http.Request) {
	ws, ok := lookupWorkspace(h.reg, w, r)
	if !ok {
		return
	}

	list, err := ws.LoadSample(r.Context())
	if err != nil {
		writeError(w, err, "Failed to load sample")
		return
	}

	dups, err := ws.DuplicateNames(r.Context())
	if err != nil {
		writeError(w, err, "Failed to load sample")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.RosterResponse{
		Participants:   list,
		DuplicateNames: dups,
	})
}

// Dedupe handles POST /workspaces/{id}/participants/dedupe
func (h *RosterHandler) Dedupe(w http.ResponseWriter, r *http.Request) {
	ws, ok := lookupWorkspace(h.reg, w, r)
	if !ok {
		return
	}

	removed, total, err := ws.Deduplicate(r.Context())
	if err != nil {
		writeError(w, err, "Failed to remove duplicates")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.DedupeResponse{
		Removed: removed,
		Total:   total,
	})
}

// Clear handles DELETE /workspaces/{id}/participants
func (h *RosterHandler) Clear(w http.ResponseWriter, r *http.Request) {
	ws, ok := lookupWorkspace(h.reg, w, r)
	if !ok {
		return
	}

	if err := ws.Clear(r.Context()); err != nil {
		writeError(w, err, "Failed to clear participants")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
