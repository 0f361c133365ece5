// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - ImportRequest: text (names separated by newlines or commas)
  - DrawSettingsRequest: allow_repeat
  - PartitionRequest: group_size

Request types carry validator tags checked by the handlers.

# Response Types

Types for JSON responses:

  - CreateWorkspaceResponse: workspace_id, created_at
  - WorkspaceSummary: counts for roster, pool, winners and groups
  - RosterResponse: participants, duplicate_names
  - ImportResponse: added, total
  - DedupeResponse: removed, total
  - DrawResponse: winner, pool_size
  - DrawStateResponse: pool, allow_repeat, history, winner
  - GroupsResponse: groups
  - ErrorResponse: error, message

# Domain Types

  - Participant: opaque id plus trimmed, non-empty name
  - Group: id, name and ordered members
  - Winner: latest draw result with its congratulation message
  - SpinFrame: one step of the draw animation
*/
package models
