// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/quickly-draw/cliparse"
	"github.com/danielhkuo/quickly-draw/draw"
	"github.com/danielhkuo/quickly-draw/middleware"
	"github.com/danielhkuo/quickly-draw/models"
	"github.com/danielhkuo/quickly-draw/workspace"
)

const (
	eventStreamType = "text/event-stream"

	// streamSlack covers the winner event written after the last frame
	streamSlack = 5 * time.Second
)

type DrawHandler struct {
	reg  *workspace.Registry
	spin draw.Spin
}

func NewDrawHandler(reg *workspace.Registry, cfg cliparse.Config) *DrawHandler {
	return &DrawHandler{reg: reg, spin: workspace.SpinConfig(cfg)}
}

// State handles GET /workspaces/{id}/draw
func (h *DrawHandler) State(w http.ResponseWriter, r *http.Request) {
	ws, ok := lookupWorkspace(h.reg, w, r)
	if !ok {
		return
	}

	st := ws.DrawState()
	middleware.JSONResponse(w, http.StatusOK, models.DrawStateResponse{
		Pool:        st.Pool,
		AllowRepeat: st.AllowRepeat,
		History:     st.History,
		Winner:      st.Winner,
	})
}

// Draw handles POST /workspaces/{id}/draw
// With Accept: text/event-stream the spin is streamed as "frame" events
// followed by one "winner" or "error" event. Otherwise the winner is
// returned as JSON without a spin.
func (h *DrawHandler) Draw(w http.ResponseWriter, r *http.Request) {
	ws, ok := lookupWorkspace(h.reg, w, r)
	if !ok {
		return
	}

	if !strings.Contains(r.Header.Get("Accept"), eventStreamType) {
		winner, err := ws.Draw(r.Context(), nil)
		if err != nil {
			writeError(w, err, "Failed to draw")
			return
		}
		middleware.JSONResponse(w, http.StatusOK, models.DrawResponse{
			Winner:   winner,
			PoolSize: ws.PoolSize(),
		})
		return
	}

	stream := &eventStream{w: w, rc: http.NewResponseController(w)}
	// the spin can outlast the server's write timeout
	deadline := time.Now().Add(h.spin.Duration() + streamSlack)
	if err := stream.rc.SetWriteDeadline(deadline); err != nil && !errors.Is(err, http.ErrNotSupported) {
		slog.Warn("failed to extend write deadline", "workspace_id", ws.ID, "error", err)
	}
	slog.Debug("streaming draw", "workspace_id", ws.ID, "spin", h.spin.Duration())

	winner, err := ws.Draw(r.Context(), func(f models.SpinFrame) {
		if err := stream.send("frame", f); err != nil {
			slog.Debug("failed to stream spin frame", "workspace_id", ws.ID, "error", err)
		}
	})

	// nothing streamed yet: answer like the JSON endpoint
	if !stream.started {
		if err != nil {
			writeError(w, err, "Failed to draw")
			return
		}
		stream.send("winner", models.DrawResponse{Winner: winner, PoolSize: ws.PoolSize()})
		return
	}

	if err != nil {
		status := statusFor(err)
		stream.send("error", models.ErrorResponse{Error: http.StatusText(status), Message: errorMessage(err)})
		return
	}
	stream.send("winner", models.DrawResponse{Winner: winner, PoolSize: ws.PoolSize()})
}

// Settings handles PUT /workspaces/{id}/draw/settings
func (h *DrawHandler) Settings(w http.ResponseWriter, r *http.Request) {
	ws, ok := lookupWorkspace(h.reg, w, r)
	if !ok {
		return
	}

	var req models.DrawSettingsRequest
	if err := middleware.ParseAndValidate(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	ws.SetAllowRepeat(*req.AllowRepeat)
	h.State(w, r)
}

// Reset handles POST /workspaces/{id}/draw/reset
func (h *DrawHandler) Reset(w http.ResponseWriter, r *http.Request) {
	ws, ok := lookupWorkspace(h.reg, w, r)
	if !ok {
		return
	}

	ws.ResetDraw()
	h.State(w, r)
}

// eventStream writes server-sent events. Headers go out with the first
// event so that errors before it can still use a regular status code.
type eventStream struct {
	w       http.ResponseWriter
	rc      *http.ResponseController
	started bool
}

func (s *eventStream) send(event string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", event, err)
	}

	if !s.started {
		s.started = true
		h := s.w.Header()
		h.Set("Content-Type", eventStreamType)
		h.Set("Cache-Control", "no-cache")
		h.Set("Connection", "keep-alive")
		s.w.WriteHeader(http.StatusOK)
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	return s.rc.Flush()
}
