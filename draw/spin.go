// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package draw

import (
	"context"
	"time"

	"github.com/danielhkuo/quickly-draw/models"
)

// FrameFunc receives each step of the spin animation.
type FrameFunc func(models.SpinFrame)

// Spin is the schedule of the cosmetic reveal: Steps frames, the first
// Interval apart, each gap after step SlowAfter wider by SlowBy.
type Spin struct {
	Steps     int
	Interval  time.Duration
	SlowAfter int
	SlowBy    time.Duration
}

// DefaultSpin is 40 steps starting at 50ms that slow down near the end.
var DefaultSpin = Spin{
	Steps:     40,
	Interval:  50 * time.Millisecond,
	SlowAfter: 30,
	SlowBy:    30 * time.Millisecond,
}

// Run walks a display pointer round-robin over pool, emitting one frame per
// step. It only reads pool and never picks a winner. Returns ctx.Err() if
// cancelled between steps.
func (s Spin) Run(ctx context.Context, pool []models.Participant, onFrame FrameFunc) error {
	if len(pool) == 0 || s.Steps <= 0 || onFrame == nil {
		return ctx.Err()
	}

	interval := s.Interval
	pointer := 0
	for step := 1; step <= s.Steps; step++ {
		pointer = (pointer + 1) % len(pool)
		onFrame(models.SpinFrame{Step: step, Index: pointer, Name: pool[pointer].Name})

		if step == s.Steps {
			break
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		if step > s.SlowAfter {
			interval += s.SlowBy
		}
	}
	return ctx.Err()
}

// Duration is the total wall time of a full run.
func (s Spin) Duration() time.Duration {
	var total time.Duration
	interval := s.Interval
	for step := 1; step < s.Steps; step++ {
		total += interval
		if step > s.SlowAfter {
			interval += s.SlowBy
		}
	}
	return total
}
