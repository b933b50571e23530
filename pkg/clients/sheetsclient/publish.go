package sheetsclient

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// headerRow is the 0-based row holding column names; the rows above it carry the preamble
const headerRow = 2

// PublishedTable is a table written to a tab below a two-line preamble.
// The first column of Header and of every row is the row key (the project ID).
type PublishedTable struct {
	Preamble [headerRow]string
	Header   []string
	Rows     [][]interface{}
}

// PublishTable writes the table to tabTitle, creating the tab if needed.
// When the tab exists its content is replaced, except for columns added by hand to the right of
// the published header: those are kept and their cells follow the row key to its new position.
func (c *Client) PublishTable(ctx context.Context, spreadsheetID, tabTitle string, table *PublishedTable) error {
	titles, err := c.SheetTitles(ctx, spreadsheetID)
	if err != nil {
		return err
	}

	var existing [][]interface{}
	if slices.Contains(titles, tabTitle) {
		existing, err = c.GetValues(ctx, spreadsheetID, a1(tabTitle, "A1:ZZ"))
		if err != nil {
			return fmt.Errorf("failed to read existing tab data: %w", err)
		}
		if err := c.ClearValues(ctx, spreadsheetID, a1(tabTitle, "A1:ZZ")); err != nil {
			return err
		}
	} else if _, err := c.CreateSheet(ctx, spreadsheetID, tabTitle); err != nil {
		return fmt.Errorf("failed to create tab: %w", err)
	}

	if err := c.UpdateValues(ctx, spreadsheetID, a1(tabTitle, "A1"), mergeTable(existing, table)); err != nil {
		return fmt.Errorf("failed to write tab %s: %w", tabTitle, err)
	}

	return nil
}

// mergeTable renders the table, carrying over hand-added columns from the existing tab content
func mergeTable(existing [][]interface{}, table *PublishedTable) [][]interface{} {
	var extraCols []int
	extraByKey := map[string][]interface{}{}

	if len(existing) > headerRow {
		oldHeader := existing[headerRow]
		for i := len(table.Header); i < len(oldHeader); i++ {
			if name := cellString(oldHeader, i); name != "" && !slices.Contains(table.Header, name) {
				extraCols = append(extraCols, i)
			}
		}
		for _, row := range existing[headerRow+1:] {
			key := cellString(row, 0)
			if key == "" || len(extraCols) == 0 {
				continue
			}
			cells := make([]interface{}, len(extraCols))
			for j, col := range extraCols {
				cells[j] = cellString(row, col)
			}
			extraByKey[key] = cells
		}
	}

	out := make([][]interface{}, 0, headerRow+1+len(table.Rows))
	for _, line := range table.Preamble {
		out = append(out, []interface{}{line})
	}

	header := make([]interface{}, 0, len(table.Header)+len(extraCols))
	for _, h := range table.Header {
		header = append(header, h)
	}
	for _, col := range extraCols {
		header = append(header, existing[headerRow][col])
	}
	out = append(out, header)

	for _, row := range table.Rows {
		full := make([]interface{}, 0, len(header))
		full = append(full, row...)
		for len(full) < len(table.Header) {
			full = append(full, "")
		}
		if len(extraCols) > 0 {
			extra, ok := extraByKey[cellString(row, 0)]
			if !ok {
				extra = make([]interface{}, len(extraCols))
				for j := range extra {
					extra[j] = ""
				}
			}
			full = append(full, extra...)
		}
		out = append(out, full)
	}

	return out
}

func cellString(row []interface{}, i int) string {
	if i >= len(row) || row[i] == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(row[i]))
}

// a1 builds an A1-notation range on a tab, quoting the title so spaces and accents are allowed
func a1(tabTitle, cells string) string {
	return "'" + strings.ReplaceAll(tabTitle, "'", "''") + "'!" + cells
}
