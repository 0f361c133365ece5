// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package random abstracts the randomness used by the draw and partition
// engines so tests can run against a seeded generator.
package random

import (
	"math/rand/v2"
	"sync"
)

// Source is satisfied by *rand.Rand from math/rand/v2.
// Shuffle must be an unbiased Fisher-Yates shuffle.
type Source interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

type global struct{}

func (global) IntN(n int) int                     { return rand.IntN(n) }
func (global) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// Default returns a goroutine-safe source backed by the runtime's
// randomly seeded generator.
func Default() Source {
	return global{}
}

// Seeded returns a deterministic source. Not safe for concurrent use.
func Seeded(seed1, seed2 uint64) Source {
	return rand.New(rand.NewPCG(seed1, seed2))
}

type locked struct {
	mu  sync.Mutex
	src Source
}

// Locked makes src safe for concurrent use.
func Locked(src Source) Source {
	return &locked{src: src}
}

func (l *locked) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.IntN(n)
}

func (l *locked) Shuffle(n int, swap func(i, j int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.src.Shuffle(n, swap)
}
