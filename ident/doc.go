// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ident generates the opaque identifiers used across the service.

# Record IDs

Participants and groups get short random hex IDs:

	id := ident.NewParticipantID() // 12 hex characters
	id, err := ident.GenerateID(16) // 32 hex characters

IDs are never reused; two participants with the same name still get
distinct IDs.

# Workspace IDs

Workspaces are keyed by random UUIDs:

	id := ident.NewWorkspaceID()
	ok := ident.ValidWorkspaceID(id)
*/
package ident
