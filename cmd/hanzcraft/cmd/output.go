package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/f3rmion/hanzcraft/internal/game"
	"github.com/mattn/go-runewidth"
)

// printTable writes rows as columns padded by display width, so Han
// characters line up with ASCII.
func printTable(w io.Writer, header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], runewidth.StringWidth(cell))
			}
		}
	}

	line := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			if i == len(cells)-1 {
				parts[i] = cell
				continue
			}
			parts[i] = runewidth.FillRight(cell, widths[i])
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	line(header)
	rule := make([]string, len(header))
	for i := range header {
		rule[i] = strings.Repeat("-", widths[i])
	}
	line(rule)
	for _, row := range rows {
		line(row)
	}
}

// printNotices writes notices one per line, prefixed by their kind.
func printNotices(w io.Writer, notices []game.Notice) {
	for _, n := range notices {
		fmt.Fprintf(w, "[%s] %s\n", n.Kind, n)
	}
}
