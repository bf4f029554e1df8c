package commands

import (
	"fmt"
	"io"
)

// RenderTable renders rows under headers with fixed-width columns.
// In quiet mode, headers are omitted and rows are tab-separated for piping.
// colorize, when non-nil, styles each cell after padding so escape codes do
// not disturb the column widths.
func RenderTable(w io.Writer, pal *palette, headers []string, rows [][]string, quiet bool, colorize func(col int, cell string) string) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	if !quiet {
		for i, h := range headers {
			if i > 0 {
				_, _ = fmt.Fprint(w, "  ")
			}
			_, _ = fmt.Fprint(w, pal.header("%s", h))
			if i < len(headers)-1 {
				_, _ = fmt.Fprintf(w, "%*s", widths[i]-len(h), "")
			}
		}
		_, _ = fmt.Fprintln(w)
	}

	for _, row := range rows {
		for i, cell := range row {
			if quiet {
				if i > 0 {
					_, _ = fmt.Fprint(w, "\t")
				}
				_, _ = fmt.Fprint(w, cell)
				continue
			}
			if i > 0 {
				_, _ = fmt.Fprint(w, "  ")
			}
			padded := cell
			if i < len(row)-1 && i < len(widths) {
				padded = fmt.Sprintf("%-*s", widths[i], cell)
			}
			if colorize != nil {
				// Style the cell text only; trailing padding stays plain.
				padded = colorize(i, cell) + padded[len(cell):]
			}
			_, _ = fmt.Fprint(w, padded)
		}
		_, _ = fmt.Fprintln(w)
	}
}
