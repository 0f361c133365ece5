// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-draw/middleware"
	"github.com/danielhkuo/quickly-draw/models"
	"github.com/danielhkuo/quickly-draw/testutil"
)

func participantNames(ps []models.Participant) []string {
	return lo.Map(ps, func(p models.Participant, _ int) string { return p.Name })
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

// oversizedNames is a names list one line longer than the body limit allows.
func oversizedNames() string {
	line := "Participant Name\n"
	return strings.Repeat(line, middleware.MaxBodyBytes/len(line)+1)
}

func TestRosterHandler_Import(t *testing.T) {
	tests := []struct {
		name           string
		request        func(t *testing.T) *http.Request
		expectedStatus int
		expectedNames  []string
	}{
		{
			name: "JSON text",
			request: func(t *testing.T) *http.Request {
				return testutil.MakeRequest("POST", "/", models.ImportRequest{Text: "Ada\nBo, Cy"}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedNames:  []string{"Ada", "Bo", "Cy"},
		},
		{
			name: "plain text body",
			request: func(t *testing.T) *http.Request {
				req := httptest.NewRequest("POST", "/", strings.NewReader("林志豪，王美玲\n"))
				req.Header.Set("Content-Type", "text/plain; charset=utf-8")
				return req
			},
			expectedStatus: http.StatusCreated,
			expectedNames:  []string{"林志豪", "王美玲"},
		},
		{
			name: "uploaded file",
			request: func(t *testing.T) *http.Request {
				body, contentType := multipartBody(t, "file", "names.csv", "Ada,Bo\r\nCy\r\n")
				req := httptest.NewRequest("POST", "/", body)
				req.Header.Set("Content-Type", contentType)
				return req
			},
			expectedStatus: http.StatusCreated,
			expectedNames:  []string{"Ada", "Bo", "Cy"},
		},
		{
			name: "upload without file field",
			request: func(t *testing.T) *http.Request {
				body, contentType := multipartBody(t, "other", "names.txt", "Ada")
				req := httptest.NewRequest("POST", "/", body)
				req.Header.Set("Content-Type", contentType)
				return req
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing text",
			request: func(t *testing.T) *http.Request {
				return testutil.MakeRequest("POST", "/", map[string]string{}, nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "invalid JSON",
			request: func(t *testing.T) *http.Request {
				req := httptest.NewRequest("POST", "/", strings.NewReader("{"))
				req.Header.Set("Content-Type", "application/json")
				return req
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "oversized upload",
			request: func(t *testing.T) *http.Request {
				body, contentType := multipartBody(t, "file", "names.txt", oversizedNames())
				req := httptest.NewRequest("POST", "/", body)
				req.Header.Set("Content-Type", contentType)
				return req
			},
			expectedStatus: http.StatusRequestEntityTooLarge,
		},
		{
			name: "oversized plain text body",
			request: func(t *testing.T) *http.Request {
				req := httptest.NewRequest("POST", "/", strings.NewReader(oversizedNames()))
				req.Header.Set("Content-Type", "text/plain")
				return req
			},
			expectedStatus: http.StatusRequestEntityTooLarge,
		},
		{
			name: "unsupported media type",
			request: func(t *testing.T) *http.Request {
				req := httptest.NewRequest("POST", "/", strings.NewReader("<names/>"))
				req.Header.Set("Content-Type", "application/xml")
				return req
			},
			expectedStatus: http.StatusUnsupportedMediaType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := setupRegistry(t, nil)
			handler := NewRosterHandler(reg)
			ws := seedWorkspace(t, reg, "")

			w := serve(handler.Import, tt.request(t), ws.ID)
			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus != http.StatusCreated {
				assert.Empty(t, ws.DrawState().Pool)
				return
			}
			var resp models.ImportResponse
			testutil.AssertJSON(t, w, &resp)
			assert.Equal(t, tt.expectedNames, participantNames(resp.Added))
			assert.Equal(t, len(tt.expectedNames), resp.Total)
			assert.Len(t, ws.DrawState().Pool, len(tt.expectedNames))
		})
	}
}

func TestRosterHandler_ListReportsDuplicates(t *testing.T) {
	reg := setupRegistry(t, nil)
	handler := NewRosterHandler(reg)
	ws := seedWorkspace(t, reg, "Ada,Bo,Ada,Cy,Bo")

	w := serve(handler.List, testutil.MakeRequest("GET", "/", nil, nil), ws.ID)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.RosterResponse
	testutil.AssertJSON(t, w, &resp)
	assert.Equal(t, []string{"Ada", "Bo", "Ada", "Cy", "Bo"}, participantNames(resp.Participants))
	assert.Equal(t, []string{"Ada", "Bo"}, resp.DuplicateNames)
}

func TestRosterHandler_Dedupe(t *testing.T) {
	reg := setupRegistry(t, nil)
	handler := NewRosterHandler(reg)
	ws := seedWorkspace(t, reg, "Ada,Bo,Ada,Cy,Bo")

	w := serve(handler.Dedupe, testutil.MakeRequest("POST", "/", nil, nil), ws.ID)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.DedupeResponse
	testutil.AssertJSON(t, w, &resp)
	assert.Equal(t, 2, resp.Removed)
	assert.Equal(t, 3, resp.Total)

	list, dups, err := ws.Roster(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []string{"Ada", "Bo", "Cy"}, participantNames(list))
	assert.Empty(t, dups)
}

func TestRosterHandler_LoadSampleAndClear(t *testing.T) {
	reg := setupRegistry(t, nil)
	handler := NewRosterHandler(reg)
	ws := seedWorkspace(t, reg, "Zed")

	w := serve(handler.LoadSample, testutil.MakeRequest("POST", "/", nil, nil), ws.ID)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.RosterResponse
	testutil.AssertJSON(t, w, &resp)
	assert.Len(t, resp.Participants, 10)
	assert.NotContains(t, participantNames(resp.Participants), "Zed")
	assert.Len(t, resp.DuplicateNames, 1)

	w = serve(handler.Clear, testutil.MakeRequest("DELETE", "/", nil, nil), ws.ID)
	testutil.AssertStatus(t, w, http.StatusNoContent)
	assert.Empty(t, ws.DrawState().Pool)
}

func TestRosterHandler_UnknownWorkspace(t *testing.T) {
	reg := setupRegistry(t, nil)
	handler := NewRosterHandler(reg)

	w := serve(handler.List, testutil.MakeRequest("GET", "/", nil, nil), "missing")
	testutil.AssertStatus(t, w, http.StatusNotFound)
}
