package stats

import (
	"strings"
	"unicode/utf8"
)

// formatTable lays rows out in space-padded columns sized to the widest
// cell. rightAlign selects per-column alignment; missing entries are
// left-aligned.
func formatTable(headers []string, rows [][]string, rightAlign []bool) []string {
	cols := len(headers)
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return nil
	}

	widths := make([]int, cols)
	measure := func(row []string) {
		for i, cell := range row {
			if w := utf8.RuneCountInString(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(headers)
	for _, row := range rows {
		measure(row)
	}

	lines := make([]string, 0, len(rows)+1)
	render := func(row []string) string {
		var b strings.Builder
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if i > 0 {
				b.WriteString("  ")
			}
			pad := widths[i] - utf8.RuneCountInString(cell)
			right := i < len(rightAlign) && rightAlign[i]
			if right && pad > 0 {
				b.WriteString(strings.Repeat(" ", pad))
			}
			b.WriteString(cell)
			if !right && pad > 0 && i < cols-1 {
				b.WriteString(strings.Repeat(" ", pad))
			}
		}
		return b.String()
	}
	lines = append(lines, render(headers))
	for _, row := range rows {
		lines = append(lines, render(row))
	}
	return lines
}
