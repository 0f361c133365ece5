// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package partition splits a roster into fixed-capacity groups.

The roster is copied and shuffled with Fisher-Yates, then cut into
contiguous chunks of groupSize. The last group takes whatever is left, so
five people in groups of two come out as 2, 2 and 1:

	groups, err := partition.Partition(ctx, participants, 2, random.Default(), namingService)

Group names come from a Namer, one per group by position. Slots the namer
does not fill are labelled "Group 1", "Group 2", and so on.
*/
package partition
