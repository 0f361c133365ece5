// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package commands

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/quickly-draw/draw"
	"github.com/danielhkuo/quickly-draw/models"
)

func drawCmd() *cobra.Command {
	var (
		count        int
		allowRepeat  bool
		dedupe       bool
		congratulate bool
		animate      bool
	)

	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Draw winners from the names",
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("count must be at least 1")
			}

			list, err := readRoster(cmd, dedupe)
			if err != nil {
				return err
			}

			engine := draw.New(draw.WithSource(rng))
			defer engine.Close()
			engine.SetAllowRepeat(allowRepeat)
			engine.OnRosterChanged(list)

			var onFrame draw.FrameFunc
			if animate {
				stderr := cmd.ErrOrStderr()
				onFrame = func(f models.SpinFrame) {
					fmt.Fprintf(stderr, "\r%-24s", f.Name)
				}
			}

			table := newTable(cmd.OutOrStdout(), "Draw", "Name")
			if congratulate {
				table = newTable(cmd.OutOrStdout(), "Draw", "Name", "Message")
			}

			drawn := 0
			for i := 0; i < count; i++ {
				winner, err := engine.Draw(cmd.Context(), onFrame)
				if errors.Is(err, draw.ErrEmptyPool) {
					break
				}
				if err != nil {
					return err
				}
				if animate {
					fmt.Fprint(cmd.ErrOrStderr(), "\r")
				}
				drawn++

				row := []string{humanize.Ordinal(drawn), winner.Name}
				if congratulate {
					row = append(row, names.WinnerMessage(cmd.Context(), winner.Name))
				}
				table.Append(row)
			}
			table.Render()

			if drawn < count {
				fmt.Fprintf(cmd.OutOrStdout(), "\nOnly %d of %d draws made: %v\n", drawn, count, draw.ErrEmptyPool)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of winners to draw")
	cmd.Flags().BoolVar(&allowRepeat, "allow-repeat", false, "winners stay in the pool")
	cmd.Flags().BoolVar(&dedupe, "dedupe", false, "drop repeated names before drawing")
	cmd.Flags().BoolVar(&congratulate, "congratulate", false, "add a congratulation for each winner")
	cmd.Flags().BoolVar(&animate, "animate", false, "show the spin on stderr")
	return cmd
}
