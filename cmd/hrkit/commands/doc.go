// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package commands defines the hrkit CLI, an offline front end to the roster,
// draw and partition engines.
//
// Commands
//
//   - draw        Draw one or more winners
//   - groups      Shuffle names into groups, optionally writing CSV
//   - duplicates  List names that appear more than once
//
// Names are read from --file (or stdin) and split on newlines and commas.
// Setting GEMINI_API_KEY enables generated team names and congratulations;
// without it the fixed fallbacks are used. --seed makes a run repeatable.
package commands
