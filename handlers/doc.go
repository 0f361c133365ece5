// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly Draw API.

# Handler Types

Each handler is a struct with registry and config dependencies:

  - WorkspaceHandler: workspace lifecycle (create, summary, delete)
  - RosterHandler: participant import, sample roster, dedupe, clear
  - DrawHandler: lucky draw, draw settings, reset
  - GroupHandler: partitioning, group listing, CSV export

Handlers are created via constructor functions that accept the workspace
registry and Config:

	drawHandler := handlers.NewDrawHandler(reg, cfg)

Every route under /workspaces/{id} answers 404 when the workspace is
unknown or has been evicted.

# Roster Import

	POST /workspaces/{id}/participants

The body may be JSON ({"text": "..."}), text/plain, or a multipart form
with a "file" field. Names are split on newlines and commas.

# Draw Stream

	POST /workspaces/{id}/draw

Plain requests get the winner as JSON. With Accept: text/event-stream the
spin is streamed as server-sent events:

	event: frame
	data: {"step":1,"index":1,"name":"..."}

	event: winner
	data: {"winner":{...},"pool_size":4}

A draw cancelled mid-spin ends the stream with an "error" event.

# Errors

Domain errors map to status codes in one place (statusFor): an empty pool,
a cancelled draw, a superseded partition and too few participants are 409;
an invalid group size is 400.
*/
package handlers
