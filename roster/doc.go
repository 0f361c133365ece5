// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package roster holds the canonical, ordered participant list of a workspace.

# Parsing

Raw text from an upload or a paste is split on newlines, commas and
fullwidth commas, trimmed, and stripped of empty entries:

	names := roster.ParseNames("Ada, Bo\nCy")
	ps := roster.NewParticipants(names)

Duplicate names are allowed. DuplicateNames reports them and Deduplicate
keeps the first occurrence of each name.

# Store

Store persists one workspace's roster in SQL, ordered by position:

	store := roster.NewStore(db, workspaceID)
	added, err := store.Import(ctx, raw) // appends
	_, err = store.LoadSample(ctx)       // replaces
	err = store.Clear(ctx)
	removed, err := store.Deduplicate(ctx)
*/
package roster
