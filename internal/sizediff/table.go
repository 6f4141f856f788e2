package sizediff

import "strings"

var (
	tableHeader = []string{"Filename", "Size", "Change", ""}
	tableAlign  = []string{":---", ":---:", ":---:", ":---:"}
)

// MarkdownTable renders rows as a Markdown pipe table with a Filename/Size/Change header.
// Trailing columns that are empty in every row are dropped. All rows are expected to have
// the same number of columns; the first row decides the width.
func MarkdownTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	width := len(rows[0])
	for width > 0 && columnEmpty(rows, width-1) {
		width--
	}
	if width == 0 {
		return ""
	}

	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, tableLine(fitColumns(tableHeader, width, "")))
	lines = append(lines, tableLine(fitColumns(tableAlign, width, ":---:")))
	for _, row := range rows {
		lines = append(lines, tableLine(fitColumns(row, width, "")))
	}

	return strings.Join(lines, "\n")
}

// columnEmpty reports whether column i is empty (or missing) in every row
func columnEmpty(rows [][]string, i int) bool {
	for _, row := range rows {
		if i < len(row) && row[i] != "" {
			return false
		}
	}
	return true
}

// fitColumns truncates or pads cells to exactly width entries without touching the input
func fitColumns(cells []string, width int, pad string) []string {
	out := make([]string, width)
	for i := range out {
		if i < len(cells) {
			out[i] = cells[i]
		} else {
			out[i] = pad
		}
	}
	return out
}

func tableLine(cells []string) string {
	return "| " + strings.Join(cells, " | ") + " |"
}
