// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package workspace ties a roster, a draw engine and the latest partition
result into one session.

# Workspaces

A Workspace is created through a Registry and addressed by a UUID. Every
roster mutation re-seeds the draw pool while the workspace lock is held, so
the pool never lags behind the roster a caller has just changed. Draws take
no workspace lock; the draw engine serializes them itself and a roster
change cancels a spin that is still running.

# Partitions

Partition reserves a generation number before asking for team names and
checks it again before storing the result. A newer Partition or a
ResetGroups in between makes the older call return ErrSuperseded.

# Lifetime

Workspaces live only as long as the process. Registry.Run evicts those idle
longer than the configured TTL, deleting their rows from the store.
*/
package workspace
