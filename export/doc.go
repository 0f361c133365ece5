// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package export renders partition results as a downloadable CSV file:
// UTF-8 BOM, a header row, then one quoted (group, member) row per member.
package export
