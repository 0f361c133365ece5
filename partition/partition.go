// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package partition

import (
	"context"
	"errors"
	"slices"

	"github.com/samber/lo"

	"github.com/danielhkuo/quickly-draw/ident"
	"github.com/danielhkuo/quickly-draw/models"
	"github.com/danielhkuo/quickly-draw/naming"
	"github.com/danielhkuo/quickly-draw/random"
)

const MinGroupSize = 2

var (
	ErrInsufficientParticipants = errors.New("at least 2 participants are required to form groups")
	ErrInvalidGroupSize         = errors.New("group size must be at least 2")
)

// Namer supplies one name per group. It must not fail; missing or blank
// slots fall back to "Group N".
type Namer interface {
	TeamNames(ctx context.Context, count int) []string
}

// Validate checks the preconditions of Partition without doing any work.
func Validate(rosterSize, groupSize int) error {
	if rosterSize < 2 {
		return ErrInsufficientParticipants
	}
	if groupSize < MinGroupSize {
		return ErrInvalidGroupSize
	}
	return nil
}

// Partition shuffles a copy of roster and slices it into ceil(n/groupSize)
// contiguous groups of at most groupSize members. Only the last group may
// be short. namer may be nil.
func Partition(ctx context.Context, roster []models.Participant, groupSize int, rng random.Source, namer Namer) ([]models.Group, error) {
	if err := Validate(len(roster), groupSize); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = random.Default()
	}

	shuffled := slices.Clone(roster)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	chunks := lo.Chunk(shuffled, groupSize)

	var names []string
	if namer != nil {
		names = namer.TeamNames(ctx, len(chunks))
	}

	groups := make([]models.Group, len(chunks))
	for i, members := range chunks {
		groups[i] = models.Group{
			ID:      ident.NewGroupID(),
			Name:    naming.GroupName(names, i),
			Members: members,
		}
	}
	return groups, nil
}

// GroupCount is ceil(rosterSize / groupSize).
func GroupCount(rosterSize, groupSize int) int {
	if groupSize <= 0 {
		return 0
	}
	return (rosterSize + groupSize - 1) / groupSize
}
