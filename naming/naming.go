// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

//go:generate go run go.uber.org/mock/mockgen -source=naming.go -destination=../mocks/mock_generator.go -package=mocks

package naming

import (
	"context"
	"errors"
	"fmt"
)

var ErrCollaboratorUnavailable = errors.New("naming collaborator unavailable")

// Generator produces cosmetic text. Implementations may fail freely;
// Service turns every failure into fallback text.
type Generator interface {
	TeamNames(ctx context.Context, count int) ([]string, error)
	WinnerMessage(ctx context.Context, name string) (string, error)
}

// FallbackGroupName returns the label used for group index i (0-based)
// when no generated name is available.
func FallbackGroupName(i int) string {
	return fmt.Sprintf("Group %d", i+1)
}

// FallbackWinnerMessage returns the congratulation used when generation fails.
func FallbackWinnerMessage(name string) string {
	return fmt.Sprintf("Congratulations, %s!", name)
}

// GroupName picks the generated name for slot i, or the fallback label
// when the slot is missing or blank.
func GroupName(names []string, i int) string {
	if i < len(names) && names[i] != "" {
		return names[i]
	}
	return FallbackGroupName(i)
}
