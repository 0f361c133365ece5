// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package naming

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

const DefaultTimeout = 10 * time.Second

// Service is the boundary in front of a Generator. Its methods never fail:
// errors, timeouts and empty answers all degrade to fallbacks.
type Service struct {
	gen     Generator
	timeout time.Duration
}

// NewService wraps gen. A nil gen yields a service that always falls back.
func NewService(gen Generator, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{gen: gen, timeout: timeout}
}

// TeamNames returns at most count names. An empty result means every slot
// falls back to its "Group N" label.
func (s *Service) TeamNames(ctx context.Context, count int) []string {
	if count <= 0 {
		return []string{}
	}
	if s == nil || s.gen == nil {
		return []string{}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	names, err := s.gen.TeamNames(ctx, count)
	if err != nil {
		slog.Warn("team name generation failed",
			"error", fmt.Errorf("%w: %w", ErrCollaboratorUnavailable, err),
			"count", count,
		)
		return []string{}
	}

	if len(names) > count {
		names = names[:count]
	}
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = strings.TrimSpace(n)
	}
	return out
}

// WinnerMessage returns a congratulation for name, falling back to a
// fixed sentence containing the name.
func (s *Service) WinnerMessage(ctx context.Context, name string) string {
	if s == nil || s.gen == nil {
		return FallbackWinnerMessage(name)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	msg, err := s.gen.WinnerMessage(ctx, name)
	if err != nil {
		slog.Warn("winner message generation failed",
			"error", fmt.Errorf("%w: %w", ErrCollaboratorUnavailable, err),
		)
		return FallbackWinnerMessage(name)
	}

	msg = strings.TrimSpace(msg)
	if msg == "" {
		return FallbackWinnerMessage(name)
	}
	return msg
}
