// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/quickly-draw/models"
	"github.com/danielhkuo/quickly-draw/testutil"
)

// TestConcurrentDraws verifies that simultaneous draws never hand out the
// same participant twice and stop exactly when the pool is empty
func TestConcurrentDraws(t *testing.T) {
	reg := setupRegistry(t, nil)
	handler := NewDrawHandler(reg, testutil.GetTestConfig())
	ws := seedWorkspace(t, reg, "A,B,C,D,E,F,G,H")

	numDrawers := 20
	var successCount, conflictCount atomic.Int32
	var mu sync.Mutex
	winners := map[string]int{}
	var wg sync.WaitGroup

	for i := 0; i < numDrawers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			w := serve(handler.Draw, testutil.MakeRequest("POST", "/", nil, nil), ws.ID)
			switch w.Code {
			case http.StatusOK:
				var resp models.DrawResponse
				testutil.AssertJSON(t, w, &resp)
				mu.Lock()
				winners[resp.Winner.ID]++
				mu.Unlock()
				successCount.Add(1)
			case http.StatusConflict:
				conflictCount.Add(1)
			default:
				t.Errorf("Unexpected status %d: %s", w.Code, w.Body.String())
			}
		}()
	}
	wg.Wait()

	if successCount.Load() != 8 {
		t.Errorf("Expected 8 successful draws, got %d", successCount.Load())
	}
	if conflictCount.Load() != int32(numDrawers-8) {
		t.Errorf("Expected %d empty-pool conflicts, got %d", numDrawers-8, conflictCount.Load())
	}
	for id, n := range winners {
		if n != 1 {
			t.Errorf("Participant %s drawn %d times", id, n)
		}
	}

	st := ws.DrawState()
	if len(st.Pool) != 0 {
		t.Errorf("Expected empty pool, got %d", len(st.Pool))
	}
	if len(st.History) != 8 {
		t.Errorf("Expected 8 history entries, got %d", len(st.History))
	}
}

// TestConcurrentImports verifies that parallel imports keep every name and
// leave the draw pool in step with the roster
func TestConcurrentImports(t *testing.T) {
	reg := setupRegistry(t, nil)
	handler := NewRosterHandler(reg)
	ws := seedWorkspace(t, reg, "")

	numImporters := 10
	var wg sync.WaitGroup

	for i := 0; i < numImporters; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			name := "Importer" + string(rune('A'+idx))
			req := testutil.MakeRequest("POST", "/", models.ImportRequest{Text: name + "\n" + name + "-2"}, nil)
			w := serve(handler.Import, req, ws.ID)
			if w.Code != http.StatusCreated {
				t.Errorf("Import %d failed: %d - %s", idx, w.Code, w.Body.String())
			}
		}(i)
	}
	wg.Wait()

	list, _, err := ws.Roster(t.Context())
	if err != nil {
		t.Fatalf("Failed to list roster: %v", err)
	}
	if len(list) != 2*numImporters {
		t.Errorf("Expected %d participants, got %d", 2*numImporters, len(list))
	}
	if pool := ws.DrawState().Pool; len(pool) != len(list) {
		t.Errorf("Expected pool of %d, got %d", len(list), len(pool))
	}
}

// TestDrawCancelledByRosterChange verifies that changing the roster while a
// spin is running cancels the draw without touching history
func TestDrawCancelledByRosterChange(t *testing.T) {
	reg := setupRegistry(t, nil)
	drawHandler := NewDrawHandler(reg, testutil.GetTestConfig())
	ws := seedWorkspace(t, reg, "A,B,C")

	started := make(chan struct{})
	proceed := make(chan struct{})
	var once sync.Once
	result := make(chan error, 1)
	go func() {
		_, err := ws.Draw(t.Context(), func(models.SpinFrame) {
			once.Do(func() {
				close(started)
				<-proceed
			})
		})
		result <- err
	}()

	<-started
	_, _, err := ws.Import(t.Context(), "D")
	close(proceed)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if err := <-result; statusFor(err) != http.StatusConflict {
		t.Errorf("Expected cancelled draw, got %v", err)
	}

	w := serve(drawHandler.State, testutil.MakeRequest("GET", "/", nil, nil), ws.ID)
	var st models.DrawStateResponse
	testutil.AssertJSON(t, w, &st)
	if len(st.History) != 0 {
		t.Errorf("Expected empty history, got %d", len(st.History))
	}
	if len(st.Pool) != 4 {
		t.Errorf("Expected pool of 4, got %d", len(st.Pool))
	}
}
