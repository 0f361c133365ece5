// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/quickly-draw/models"
	"github.com/danielhkuo/quickly-draw/naming"
	"github.com/danielhkuo/quickly-draw/random"
	"github.com/danielhkuo/quickly-draw/roster"
)

var (
	namesFile   string
	geminiKey   string
	geminiModel string
	timeout     time.Duration
	seed        uint64

	names *naming.Service
	rng   random.Source
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "hrkit",
		Short:        "Lucky draws and random groups from a list of names",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if geminiKey == "" {
				geminiKey = os.Getenv("GEMINI_API_KEY")
			}

			names = naming.NewService(nil, timeout)
			if geminiKey != "" {
				gen, err := naming.NewGemini(cmd.Context(), geminiKey, geminiModel)
				if err != nil {
					slog.Warn("Gemini unavailable; using fallback names", "error", err)
				} else {
					names = naming.NewService(gen, timeout)
				}
			}

			rng = random.Default()
			if seed != 0 {
				rng = random.Seeded(seed, seed)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&namesFile, "file", "f", "-", "names file, one per line or comma separated (- for stdin)")
	root.PersistentFlags().StringVar(&geminiKey, "gemini-key", "", "Gemini API key (default $GEMINI_API_KEY)")
	root.PersistentFlags().StringVar(&geminiModel, "gemini-model", naming.DefaultModel, "Gemini model")
	root.PersistentFlags().DurationVar(&timeout, "timeout", naming.DefaultTimeout, "limit for each Gemini request")
	root.PersistentFlags().Uint64Var(&seed, "seed", 0, "fixed random seed (0 picks one)")

	root.AddCommand(drawCmd(), groupsCmd(), duplicatesCmd())
	return root
}

// readRoster loads participants from --file.
func readRoster(cmd *cobra.Command, dedupe bool) ([]models.Participant, error) {
	var r io.Reader = cmd.InOrStdin()
	if namesFile != "-" {
		f, err := os.Open(namesFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open names file: %w", err)
		}
		defer f.Close()
		r = f
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read names: %w", err)
	}

	list := roster.NewParticipants(roster.ParseNames(string(raw)))
	if dedupe {
		list = roster.Deduplicate(list)
	}
	return list, nil
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}
