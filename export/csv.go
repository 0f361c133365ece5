// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/danielhkuo/quickly-draw/models"
)

const (
	ContentType = "text/csv; charset=utf-8"

	// bom lets spreadsheet apps detect UTF-8 for non-ASCII names
	bom = "\ufeff"
)

var header = []string{"Group Name", "Member Name"}

// WriteGroupsCSV writes one row per member with every field quoted.
func WriteGroupsCSV(w io.Writer, groups []models.Group) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(bom); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}
	if err := writeRow(bw, header...); err != nil {
		return err
	}
	for _, g := range groups {
		for _, m := range g.Members {
			if err := writeRow(bw, g.Name, m.Name); err != nil {
				return err
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// Filename names the download after the given date.
func Filename(t time.Time) string {
	return fmt.Sprintf("groups_%s.csv", t.Format("2006-01-02"))
}

func writeRow(w *bufio.Writer, fields ...string) error {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	if _, err := w.WriteString(strings.Join(quoted, ",") + "\n"); err != nil {
		return fmt.Errorf("failed to write CSV row: %w", err)
	}
	return nil
}
