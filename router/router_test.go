// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/quickly-draw/models"
	"github.com/danielhkuo/quickly-draw/naming"
	"github.com/danielhkuo/quickly-draw/testutil"
	"github.com/danielhkuo/quickly-draw/workspace"
)

func setupRouter(t *testing.T) (*http.ServeMux, *workspace.Registry) {
	t.Helper()
	cfg := testutil.GetTestConfig()
	reg := workspace.NewRegistry(testutil.SetupTestDB(t), naming.NewService(nil, cfg.NamingTimeout), workspace.ConfigOptions(cfg)...)
	t.Cleanup(func() { reg.Close(context.Background()) })
	return NewRouter(reg, cfg), reg
}

func TestHealthEndpoint(t *testing.T) {
	mux, _ := setupRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux, _ := setupRouter(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "quickly-draw API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestUnknownPathNotFound(t *testing.T) {
	mux, _ := setupRouter(t)

	req := httptest.NewRequest("GET", "/unknown", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestRouteExistence(t *testing.T) {
	mux, _ := setupRouter(t)

	// Unknown workspaces answer 404 from the handler, not 405 from the mux
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},

		{"POST", "/workspaces"},
		{"GET", "/workspaces/test-id"},
		{"DELETE", "/workspaces/test-id"},

		{"GET", "/workspaces/test-id/participants"},
		{"POST", "/workspaces/test-id/participants"},
		{"DELETE", "/workspaces/test-id/participants"},
		{"POST", "/workspaces/test-id/participants/sample"},
		{"POST", "/workspaces/test-id/participants/dedupe"},

		{"GET", "/workspaces/test-id/draw"},
		{"POST", "/workspaces/test-id/draw"},
		{"PUT", "/workspaces/test-id/draw/settings"},
		{"POST", "/workspaces/test-id/draw/reset"},

		{"POST", "/workspaces/test-id/groups"},
		{"GET", "/workspaces/test-id/groups"},
		{"DELETE", "/workspaces/test-id/groups"},
		{"GET", "/workspaces/test-id/groups/export"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux, _ := setupRouter(t)

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},                           // Only GET is defined
		{"PATCH", "/workspaces/test-id"},              // GET and DELETE only
		{"PUT", "/workspaces/test-id/groups"},         // POST, GET, DELETE only
		{"GET", "/workspaces/test-id/draw/reset"},     // Only POST is defined
		{"POST", "/workspaces/test-id/draw/settings"}, // Only PUT is defined
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestPathParameterExtraction(t *testing.T) {
	mux, reg := setupRouter(t)

	ws, err := reg.Create(context.Background())
	if err != nil {
		t.Fatalf("Failed to create workspace: %v", err)
	}

	t.Run("workspace ID extraction", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/workspaces/"+ws.ID, nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200 for existing workspace, got %d. Body: %s", w.Code, w.Body.String())
		}

		var summary models.WorkspaceSummary
		if err := json.NewDecoder(w.Body).Decode(&summary); err != nil {
			t.Fatalf("Failed to decode summary: %v", err)
		}
		if summary.WorkspaceID != ws.ID {
			t.Errorf("Expected workspace %s, got %s", ws.ID, summary.WorkspaceID)
		}
	})

	t.Run("nested route reaches the same workspace", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/workspaces/"+ws.ID+"/participants", strings.NewReader("Ada\nBo"))
		req.Header.Set("Content-Type", "text/plain")
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d. Body: %s", w.Code, w.Body.String())
		}
		if n := len(ws.DrawState().Pool); n != 2 {
			t.Errorf("Expected pool of 2, got %d", n)
		}
	})
}

func TestDrawStreamThroughRouter(t *testing.T) {
	mux, reg := setupRouter(t)

	ws, err := reg.Create(context.Background())
	if err != nil {
		t.Fatalf("Failed to create workspace: %v", err)
	}
	if _, _, err := ws.Import(context.Background(), "A,B,C"); err != nil {
		t.Fatalf("Failed to import: %v", err)
	}

	req := httptest.NewRequest("POST", "/workspaces/"+ws.ID+"/draw", nil)
	req.Header.Set("Accept", "text/event-stream")
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if ct := w.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("Expected event stream, got %q", ct)
	}
	if !w.Flushed {
		t.Error("Expected frames to be flushed through the logging middleware")
	}
	if !strings.Contains(w.Body.String(), "event: winner") {
		t.Errorf("Expected winner event, got %s", w.Body.String())
	}
}
