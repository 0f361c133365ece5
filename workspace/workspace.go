// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package workspace

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/quickly-draw/draw"
	"github.com/danielhkuo/quickly-draw/models"
	"github.com/danielhkuo/quickly-draw/partition"
	"github.com/danielhkuo/quickly-draw/random"
	"github.com/danielhkuo/quickly-draw/roster"
)

var (
	ErrNotFound   = errors.New("workspace not found")
	ErrSuperseded = errors.New("partition superseded by a newer request")
)

// Workspace is one user's session: a roster, a draw engine fed by it, and
// the latest partition result.
type Workspace struct {
	ID        string
	CreatedAt time.Time

	db     *sql.DB
	roster *roster.Store
	groups *GroupStore
	engine *draw.Engine
	namer  partition.Namer
	rng    random.Source
	now    func() time.Time

	// mu orders roster mutations with pool re-seeding and guards
	// partitionGen and closed. It is never held while the draw spin runs.
	mu           sync.Mutex
	partitionGen uint64
	closed       bool

	lastSeen atomic.Int64
}

// Roster returns the participants and the names that occur more than once.
func (w *Workspace) Roster(ctx context.Context) ([]models.Participant, []string, error) {
	list, err := w.roster.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	return list, roster.DuplicateNames(list), nil
}

// DuplicateNames reports duplicate names straight from the store.
func (w *Workspace) DuplicateNames(ctx context.Context) ([]string, error) {
	return w.roster.DuplicateNames(ctx)
}

// Import appends names parsed from raw and returns the new entries and the
// roster size.
func (w *Workspace) Import(ctx context.Context, raw string) ([]models.Participant, int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil, 0, ErrNotFound
	}

	added, err := w.roster.Import(ctx, raw)
	if err != nil {
		return nil, 0, err
	}
	list, err := w.syncPoolLocked(ctx)
	if err != nil {
		return nil, 0, err
	}
	return added, len(list), nil
}

// LoadSample replaces the roster with the sample names.
func (w *Workspace) LoadSample(ctx context.Context) ([]models.Participant, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil, ErrNotFound
	}

	if _, err := w.roster.LoadSample(ctx); err != nil {
		return nil, err
	}
	return w.syncPoolLocked(ctx)
}

// Clear empties the roster.
func (w *Workspace) Clear(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrNotFound
	}

	if err := w.roster.Clear(ctx); err != nil {
		return err
	}
	_, err := w.syncPoolLocked(ctx)
	return err
}

// Deduplicate removes later duplicates and returns how many were removed
// and the new roster size.
func (w *Workspace) Deduplicate(ctx context.Context) (int, int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return 0, 0, ErrNotFound
	}

	removed, err := w.roster.Deduplicate(ctx)
	if err != nil {
		return 0, 0, err
	}
	list, err := w.syncPoolLocked(ctx)
	if err != nil {
		return 0, 0, err
	}
	return removed, len(list), nil
}

func (w *Workspace) syncPoolLocked(ctx context.Context) ([]models.Participant, error) {
	list, err := w.roster.List(ctx)
	if err != nil {
		return nil, err
	}
	w.engine.OnRosterChanged(list)
	return list, nil
}

// Draw runs one draw; see draw.Engine.Draw.
func (w *Workspace) Draw(ctx context.Context, onFrame draw.FrameFunc) (models.Participant, error) {
	return w.engine.Draw(ctx, onFrame)
}

func (w *Workspace) PoolSize() int {
	return w.engine.PoolSize()
}

func (w *Workspace) DrawState() draw.State {
	return w.engine.Snapshot()
}

func (w *Workspace) SetAllowRepeat(allow bool) {
	w.engine.SetAllowRepeat(allow)
}

func (w *Workspace) ResetDraw() {
	w.engine.Reset()
}

// Partition splits the current roster into groups and stores them. If
// another Partition or ResetGroups happens while names are being
// generated, this result is dropped and ErrSuperseded returned. A workspace
// deleted meanwhile yields ErrNotFound.
func (w *Workspace) Partition(ctx context.Context, groupSize int) ([]models.Group, error) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil, ErrNotFound
	}
	list, err := w.roster.List(ctx)
	if err != nil {
		w.mu.Unlock()
		return nil, err
	}
	if err := partition.Validate(len(list), groupSize); err != nil {
		w.mu.Unlock()
		return nil, err
	}
	w.partitionGen++
	gen := w.partitionGen
	w.mu.Unlock()

	groups, err := partition.Partition(ctx, list, groupSize, w.rng, w.namer)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil, ErrNotFound
	}
	if gen != w.partitionGen {
		slog.Info("discarding stale partition", "workspace_id", w.ID, "generation", gen)
		return nil, ErrSuperseded
	}
	// the request may already be gone; the result is still kept
	if err := w.groups.Replace(context.WithoutCancel(ctx), gen, groups); err != nil {
		return nil, err
	}

	slog.Info("roster partitioned", "workspace_id", w.ID, "groups", len(groups), "group_size", groupSize)
	return groups, nil
}

// Groups returns the stored partition result.
func (w *Workspace) Groups(ctx context.Context) ([]models.Group, error) {
	return w.groups.List(ctx)
}

// ResetGroups drops the stored groups and invalidates running partitions.
func (w *Workspace) ResetGroups(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrNotFound
	}
	w.partitionGen++
	return w.groups.Clear(ctx)
}

// Summary reports counts for the API.
func (w *Workspace) Summary(ctx context.Context) (models.WorkspaceSummary, error) {
	list, err := w.roster.List(ctx)
	if err != nil {
		return models.WorkspaceSummary{}, err
	}
	groupCount, err := w.groups.Count(ctx)
	if err != nil {
		return models.WorkspaceSummary{}, err
	}
	st := w.engine.Snapshot()

	return models.WorkspaceSummary{
		WorkspaceID:      w.ID,
		CreatedAt:        w.CreatedAt,
		LastSeenAt:       w.LastSeen(),
		CreatedAgo:       humanize.RelTime(w.CreatedAt, w.now(), "ago", "from now"),
		ParticipantCount: len(list),
		PoolSize:         len(st.Pool),
		WinnerCount:      len(st.History),
		GroupCount:       groupCount,
	}, nil
}

func (w *Workspace) touch() {
	w.lastSeen.Store(w.now().UnixNano())
}

// LastSeen is the last time the workspace was looked up.
func (w *Workspace) LastSeen() time.Time {
	return time.Unix(0, w.lastSeen.Load())
}

// close stops the draw engine and deletes every row the workspace owns.
// Later mutations through a handle fetched earlier return ErrNotFound.
func (w *Workspace) close(ctx context.Context) error {
	w.engine.Close()

	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	w.partitionGen++

	if err := w.groups.Clear(ctx); err != nil {
		return err
	}
	if err := w.roster.Drop(ctx); err != nil {
		return err
	}
	if _, err := w.db.ExecContext(ctx, `DELETE FROM workspace WHERE id = $1`, w.ID); err != nil {
		return fmt.Errorf("failed to delete workspace: %w", err)
	}
	return nil
}
