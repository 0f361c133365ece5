// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package naming supplies cosmetic text: team names for groups and
congratulation messages for draw winners.

# Generators

A Generator talks to a text-generation backend and may fail:

	gen, err := naming.NewGemini(ctx, apiKey, naming.DefaultModel)

Gemini requests team names as structured JSON ({"names": [...]}) and
validates the answer with ParseTeamNames before returning it.

# Service

Service is the only thing the engines call. It applies a timeout and turns
every failure into a fallback value, so naming can never fail a draw or a
partition:

	svc := naming.NewService(gen, 10*time.Second)
	names := svc.TeamNames(ctx, 3)      // may be shorter than 3, or empty
	msg := svc.WinnerMessage(ctx, name) // "Congratulations, {name}!" on failure

Missing or blank team name slots are filled by GroupName with "Group N".
*/
package naming
