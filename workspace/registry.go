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
	"time"

	"github.com/danielhkuo/quickly-draw/cliparse"
	"github.com/danielhkuo/quickly-draw/draw"
	"github.com/danielhkuo/quickly-draw/ident"
	"github.com/danielhkuo/quickly-draw/partition"
	"github.com/danielhkuo/quickly-draw/random"
	"github.com/danielhkuo/quickly-draw/roster"
)

const DefaultIdleTTL = 2 * time.Hour

// Names supplies team names and winner messages. naming.Service
// satisfies it.
type Names interface {
	partition.Namer
	draw.Announcer
}

type Option func(*Registry)

// ConfigOptions applies the spin schedule and idle TTL from cfg.
func ConfigOptions(cfg cliparse.Config) []Option {
	return []Option{
		WithSpin(SpinConfig(cfg)),
		WithIdleTTL(cfg.WorkspaceIdleTTL),
	}
}

// SpinConfig is the spin schedule configured by cfg.
func SpinConfig(cfg cliparse.Config) draw.Spin {
	return draw.Spin{
		Steps:     cfg.SpinSteps,
		Interval:  cfg.SpinInterval,
		SlowAfter: cfg.SpinSlowAfter,
		SlowBy:    cfg.SpinSlowBy,
	}
}

func WithSpin(s draw.Spin) Option {
	return func(r *Registry) { r.spin = s }
}

// WithSource shares src between every workspace. It is wrapped so that
// concurrent use is safe.
func WithSource(src random.Source) Option {
	return func(r *Registry) { r.rng = random.Locked(src) }
}

func WithIdleTTL(ttl time.Duration) Option {
	return func(r *Registry) { r.idleTTL = ttl }
}

func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// Registry holds the live workspaces of the process.
type Registry struct {
	db      *sql.DB
	names   Names
	spin    draw.Spin
	rng     random.Source
	idleTTL time.Duration
	now     func() time.Time

	mu         sync.RWMutex
	workspaces map[string]*Workspace
}

func NewRegistry(db *sql.DB, names Names, opts ...Option) *Registry {
	r := &Registry{
		db:         db,
		names:      names,
		spin:       draw.DefaultSpin,
		rng:        random.Default(),
		idleTTL:    DefaultIdleTTL,
		now:        time.Now,
		workspaces: make(map[string]*Workspace),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create starts an empty workspace.
func (r *Registry) Create(ctx context.Context) (*Workspace, error) {
	id := ident.NewWorkspaceID()
	now := r.now()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO workspace (id, created_at) VALUES ($1, $2)
	`, id, now.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	engineOpts := []draw.Option{
		draw.WithSource(r.rng),
		draw.WithSpin(r.spin),
		draw.WithClock(r.now),
	}
	if r.names != nil {
		engineOpts = append(engineOpts, draw.WithAnnouncer(r.names))
	}

	w := &Workspace{
		ID:        id,
		CreatedAt: now,
		db:        r.db,
		roster:    roster.NewStore(r.db, id),
		groups:    NewGroupStore(r.db, id),
		engine:    draw.New(engineOpts...),
		namer:     r.names,
		rng:       r.rng,
		now:       r.now,
	}
	w.touch()

	r.mu.Lock()
	r.workspaces[id] = w
	r.mu.Unlock()

	slog.Info("workspace created", "workspace_id", id)
	return w, nil
}

// Get returns the workspace and marks it as seen.
func (r *Registry) Get(id string) (*Workspace, error) {
	r.mu.RLock()
	w, ok := r.workspaces[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	w.touch()
	return w, nil
}

// Delete closes the workspace and removes its rows.
func (r *Registry) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	w, ok := r.workspaces[id]
	delete(r.workspaces, id)
	r.mu.Unlock()
	if !ok {
		return ErrNotFound
	}

	if err := w.close(ctx); err != nil {
		return err
	}
	slog.Info("workspace deleted", "workspace_id", id)
	return nil
}

// EvictIdle deletes workspaces not seen for longer than the idle TTL and
// returns how many were removed.
func (r *Registry) EvictIdle(ctx context.Context) int {
	cutoff := r.now().Add(-r.idleTTL)

	r.mu.RLock()
	var stale []string
	for id, w := range r.workspaces {
		if w.LastSeen().Before(cutoff) {
			stale = append(stale, id)
		}
	}
	r.mu.RUnlock()

	evicted := 0
	for _, id := range stale {
		err := r.Delete(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			slog.Error("failed to evict workspace", "workspace_id", id, "error", err)
			continue
		}
		evicted++
	}
	if evicted > 0 {
		slog.Info("evicted idle workspaces", "count", evicted)
	}
	return evicted
}

// Run evicts idle workspaces every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.EvictIdle(ctx)
		}
	}
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.workspaces)
}

// Close deletes every workspace.
func (r *Registry) Close(ctx context.Context) error {
	r.mu.RLock()
	ids := make([]string, 0, len(r.workspaces))
	for id := range r.workspaces {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	var errs []error
	for _, id := range ids {
		if err := r.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
