// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package draw implements the lucky draw engine.

# Pool

The engine keeps a pool copied from the roster. Every roster change and
every Reset re-seeds it. Without repeat mode each winner leaves the pool, so
successive draws shrink it by one until Draw returns ErrEmptyPool:

	e := draw.New(draw.WithAnnouncer(namingService))
	e.OnRosterChanged(participants)
	winner, err := e.Draw(ctx, nil)

# Spin

Passing a FrameFunc plays the reveal animation first. The display pointer
moves round-robin over a snapshot of the pool; the winner is sampled
afterwards with a uniform random index. A new draw, Reset, OnRosterChanged
or Close cancels a running spin, and the interrupted draw returns
ErrDrawCancelled without touching the pool.

# Messages

After each draw the Announcer is called in the background. The message is
attached to the winner only if that draw is still the current one when the
answer arrives.
*/
package draw
