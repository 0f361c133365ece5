// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/quickly-draw/export"
	"github.com/danielhkuo/quickly-draw/models"
	"github.com/danielhkuo/quickly-draw/partition"
)

func groupsCmd() *cobra.Command {
	var (
		size   int
		output string
		dedupe bool
	)

	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Shuffle the names into groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := readRoster(cmd, dedupe)
			if err != nil {
				return err
			}

			groups, err := partition.Partition(cmd.Context(), list, size, rng, names)
			if err != nil {
				return err
			}

			table := newTable(cmd.OutOrStdout(), "Group", "Size", "Members")
			for _, g := range groups {
				members := lo.Map(g.Members, func(p models.Participant, _ int) string { return p.Name })
				table.Append([]string{g.Name, strconv.Itoa(len(g.Members)), strings.Join(members, ", ")})
			}
			table.Render()

			if output == "" {
				return nil
			}
			if output == "auto" {
				output = export.Filename(time.Now())
			}
			if err := writeCSV(output, groups); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nWrote %d groups to %s\n", len(groups), output)
			return nil
		},
	}

	cmd.Flags().IntVarP(&size, "size", "s", 0, "members per group (at least 2)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write groups as CSV to this path (auto names it by date)")
	cmd.Flags().BoolVar(&dedupe, "dedupe", false, "drop repeated names before grouping")
	_ = cmd.MarkFlagRequired("size")
	return cmd
}

func writeCSV(path string, groups []models.Group) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV: %w", err)
	}
	if err := export.WriteGroupsCSV(f, groups); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
