// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package naming

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseTeamNames validates a loosely-typed {"names": [...]} payload.
// Entries that are not non-blank strings become empty slots so positions
// are preserved; the result is truncated to count.
func ParseTeamNames(raw string, count int) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}, nil
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("decode team names: %w", err)
	}

	list, ok := payload["names"].([]any)
	if !ok {
		// missing or wrong-typed "names" is treated as no names
		return []string{}, nil
	}

	if count >= 0 && len(list) > count {
		list = list[:count]
	}

	names := make([]string, len(list))
	for i, v := range list {
		s, ok := v.(string)
		if !ok {
			continue
		}
		names[i] = strings.TrimSpace(s)
	}
	return names, nil
}
