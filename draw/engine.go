// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package draw

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/danielhkuo/quickly-draw/models"
	"github.com/danielhkuo/quickly-draw/random"
)

var (
	ErrEmptyPool     = errors.New("all participants already drawn; add more or reset")
	ErrDrawCancelled = errors.New("draw cancelled")
	ErrClosed        = errors.New("draw engine closed")
)

// Announcer writes the congratulation for a winner. It must not fail;
// naming.Service satisfies it.
type Announcer interface {
	WinnerMessage(ctx context.Context, name string) string
}

type Option func(*Engine)

func WithSource(src random.Source) Option {
	return func(e *Engine) { e.rng = src }
}

func WithSpin(s Spin) Option {
	return func(e *Engine) { e.spin = s }
}

func WithAnnouncer(a Announcer) Option {
	return func(e *Engine) { e.announcer = a }
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// State is a copy of the engine state safe to hand out.
type State struct {
	Pool        []models.Participant
	AllowRepeat bool
	History     []models.Participant
	Winner      *models.Winner
}

type current struct {
	winner models.Winner
	seq    uint64
}

// Engine samples winners from a pool derived from the roster.
// All methods are safe for concurrent use.
type Engine struct {
	mu        sync.Mutex
	rng       random.Source
	spin      Spin
	announcer Announcer
	now       func() time.Time

	roster      []models.Participant
	pool        []models.Participant
	allowRepeat bool
	history     []models.Participant
	current     *current

	// seq identifies the latest draw; reset and roster changes bump it so
	// a draw whose spin is still running can tell it has been superseded.
	seq        uint64
	cancelSpin context.CancelFunc

	ctx    context.Context
	stop   context.CancelFunc
	wg     sync.WaitGroup
	closed bool
}

func New(opts ...Option) *Engine {
	ctx, stop := context.WithCancel(context.Background())
	e := &Engine{
		rng:     random.Default(),
		spin:    DefaultSpin,
		now:     time.Now,
		roster:  []models.Participant{},
		pool:    []models.Participant{},
		history: []models.Participant{},
		ctx:     ctx,
		stop:    stop,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Draw picks one winner uniformly from the pool. When onFrame is non-nil
// the spin animation plays first; the winner is chosen only after it ends
// and does not depend on where the display pointer stopped.
func (e *Engine) Draw(ctx context.Context, onFrame FrameFunc) (models.Participant, error) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return models.Participant{}, ErrClosed
	}
	if len(e.pool) == 0 {
		e.mu.Unlock()
		return models.Participant{}, ErrEmptyPool
	}

	e.abortSpinLocked()
	e.seq++
	seq := e.seq
	spinCtx, cancel := context.WithCancel(ctx)
	e.cancelSpin = cancel
	e.current = nil
	display := slices.Clone(e.pool)
	e.mu.Unlock()

	err := e.spin.Run(spinCtx, display, onFrame)
	cancel()

	e.mu.Lock()
	defer e.mu.Unlock()

	if seq == e.seq {
		e.cancelSpin = nil
	}
	if err != nil {
		return models.Participant{}, fmt.Errorf("%w: %w", ErrDrawCancelled, err)
	}
	if seq != e.seq || e.closed {
		return models.Participant{}, ErrDrawCancelled
	}
	if len(e.pool) == 0 {
		return models.Participant{}, ErrEmptyPool
	}

	winner := e.pool[e.rng.IntN(len(e.pool))]

	e.history = append([]models.Participant{winner}, e.history...)
	if !e.allowRepeat {
		// by id: the pool may have been re-seeded while the spin ran
		e.pool = slices.DeleteFunc(e.pool, func(p models.Participant) bool {
			return p.ID == winner.ID
		})
	}
	e.current = &current{
		winner: models.Winner{Participant: winner, DrawnAt: e.now()},
		seq:    seq,
	}
	e.announceLocked(seq, winner)

	slog.Info("winner drawn", "winner_id", winner.ID, "pool_size", len(e.pool), "allow_repeat", e.allowRepeat)
	return winner, nil
}

// announceLocked requests the congratulation in the background. The result
// is applied only while the same draw is still the current one.
func (e *Engine) announceLocked(seq uint64, winner models.Participant) {
	if e.announcer == nil {
		return
	}

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()

		msg := e.announcer.WinnerMessage(e.ctx, winner.Name)

		e.mu.Lock()
		defer e.mu.Unlock()
		if e.current == nil || e.current.seq != seq || e.current.winner.Participant.ID != winner.ID {
			slog.Debug("discarding stale winner message", "winner_id", winner.ID)
			return
		}
		e.current.winner.Message = msg
	}()
}

// SetAllowRepeat toggles repeat mode. The current pool is left as is.
func (e *Engine) SetAllowRepeat(allow bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.allowRepeat = allow
}

// Reset restores the pool from the latest roster and forgets all winners.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.abortSpinLocked()
	e.seq++
	e.pool = slices.Clone(e.roster)
	e.history = []models.Participant{}
	e.current = nil
}

// OnRosterChanged re-seeds the pool from roster. History is kept as is,
// even for participants no longer on the roster.
func (e *Engine) OnRosterChanged(roster []models.Participant) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.abortSpinLocked()
	e.seq++
	e.roster = slices.Clone(roster)
	e.pool = slices.Clone(roster)
	if e.roster == nil {
		e.roster = []models.Participant{}
		e.pool = []models.Participant{}
	}
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := State{
		Pool:        slices.Clone(e.pool),
		AllowRepeat: e.allowRepeat,
		History:     slices.Clone(e.history),
	}
	if e.current != nil {
		w := e.current.winner
		st.Winner = &w
	}
	return st
}

// PoolSize returns the number of participants still eligible.
func (e *Engine) PoolSize() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pool)
}

// Close cancels any running spin and pending message requests and waits
// for them to finish. Draw returns ErrClosed afterwards.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.abortSpinLocked()
	e.stop()
	e.mu.Unlock()

	e.wg.Wait()
}

func (e *Engine) abortSpinLocked() {
	if e.cancelSpin != nil {
		e.cancelSpin()
		e.cancelSpin = nil
	}
}
