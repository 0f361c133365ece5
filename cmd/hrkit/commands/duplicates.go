// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package commands

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/quickly-draw/models"
	"github.com/danielhkuo/quickly-draw/roster"
)

func duplicatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "duplicates",
		Short: "List names that appear more than once",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := readRoster(cmd, false)
			if err != nil {
				return err
			}

			dups := roster.DuplicateNames(list)
			if len(dups) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No duplicate names among %s participants\n", humanize.Comma(int64(len(list))))
				return nil
			}

			counts := lo.CountValuesBy(list, func(p models.Participant) string { return p.Name })
			table := newTable(cmd.OutOrStdout(), "Name", "Count")
			for _, name := range dups {
				table.Append([]string{name, strconv.Itoa(counts[name])})
			}
			table.Render()
			return nil
		},
	}
}
