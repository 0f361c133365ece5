// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package roster

import (
	"regexp"
	"strings"

	"github.com/samber/lo"

	"github.com/danielhkuo/quickly-draw/ident"
	"github.com/danielhkuo/quickly-draw/models"
)

// separators: newlines, ASCII commas and fullwidth commas
var separators = regexp.MustCompile(`[\n,，]+`)

// SampleNames is the demo roster. It deliberately contains one duplicate.
var SampleNames = []string{
	"張小明", "李大華", "王曉芬", "陳美玲", "林志豪",
	"林志豪", "吳淑芬", "郭台銘", "蔡英文", "馬英九",
}

// ParseNames splits raw text into trimmed, non-empty names in input order.
func ParseNames(raw string) []string {
	parts := separators.Split(raw, -1)
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// NewParticipants assigns a fresh id to each name.
func NewParticipants(names []string) []models.Participant {
	return lo.Map(names, func(name string, _ int) models.Participant {
		return models.Participant{ID: ident.NewParticipantID(), Name: name}
	})
}

// Deduplicate keeps the first participant for each exact name, preserving order.
func Deduplicate(ps []models.Participant) []models.Participant {
	return lo.UniqBy(ps, func(p models.Participant) string {
		return p.Name
	})
}

// DuplicateNames lists names occurring at least twice, in order of first
// appearance.
func DuplicateNames(ps []models.Participant) []string {
	counts := lo.CountValuesBy(ps, func(p models.Participant) string {
		return p.Name
	})
	names := lo.Uniq(lo.Map(ps, func(p models.Participant, _ int) string {
		return p.Name
	}))
	return lo.Filter(names, func(name string, _ int) bool {
		return counts[name] >= 2
	})
}
