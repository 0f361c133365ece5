// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-draw/cliparse"
	"github.com/danielhkuo/quickly-draw/naming"
	"github.com/danielhkuo/quickly-draw/random"
	"github.com/danielhkuo/quickly-draw/testutil"
	"github.com/danielhkuo/quickly-draw/workspace"
)

// setupRegistry returns a registry on a fresh database whose naming always
// falls back, unless gen is given.
func setupRegistry(t *testing.T, gen naming.Generator) *workspace.Registry {
	t.Helper()
	return setupRegistryWithConfig(t, testutil.GetTestConfig(), gen)
}

func setupRegistryWithConfig(t *testing.T, cfg cliparse.Config, gen naming.Generator) *workspace.Registry {
	t.Helper()
	opts := append(workspace.ConfigOptions(cfg), workspace.WithSource(random.Seeded(1, 2)))
	reg := workspace.NewRegistry(testutil.SetupTestDB(t), naming.NewService(gen, cfg.NamingTimeout), opts...)
	t.Cleanup(func() { reg.Close(context.Background()) })
	return reg
}

// seedWorkspace creates a workspace holding the given comma-separated names.
func seedWorkspace(t *testing.T, reg *workspace.Registry, names string) *workspace.Workspace {
	t.Helper()
	ws, err := reg.Create(context.Background())
	require.NoError(t, err)
	if names != "" {
		_, _, err = ws.Import(context.Background(), names)
		require.NoError(t, err)
	}
	return ws
}

// serve runs handler with the workspace id set as the {id} path value.
func serve(handler http.HandlerFunc, req *http.Request, id string) *httptest.ResponseRecorder {
	req.SetPathValue("id", id)
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func fixedClock() time.Time {
	return time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
}
