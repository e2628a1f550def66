package convert

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

var tableSeparator = regexp.MustCompile(`^[|\s\-:]+$`)

// isTableSeparator reports whether line is a header separator row like |---|:--:|
func isTableSeparator(line string) bool {
	return tableSeparator.MatchString(strings.TrimSpace(line))
}

// normalizeTable renders pipe table lines as a monospace code block.
// The editor schema has no table node, so the table is laid out as text.
func normalizeTable(lines []string) Block {
	var rows [][]string
	for i, line := range lines {
		if i == 1 && isTableSeparator(line) {
			continue
		}
		rows = append(rows, splitTableRow(line))
	}

	cols := 0
	for _, row := range rows {
		cols = max(cols, len(row))
	}
	if cols == 0 {
		return Block{
			Kind:    Paragraph,
			Content: FormatInline(joinTrimmed(lines)),
		}
	}

	widths := make([]int, cols)
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	out := make([]string, 0, len(rows)+1)
	for r, row := range rows {
		padded := make([]string, cols)
		for i := range cols {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			padded[i] = runewidth.FillRight(cell, widths[i])
		}
		out = append(out, strings.Join(padded, " | "))

		if r == 0 {
			rule := make([]string, cols)
			for i, w := range widths {
				rule[i] = strings.Repeat("-", w)
			}
			out = append(out, strings.Join(rule, "-+-"))
		}
	}

	return Block{
		Kind:     CodeBlock,
		Language: "text",
		Code:     strings.Join(out, "\n"),
	}
}

// splitTableRow splits a row on pipes, dropping only the empty edge cells
// produced by leading and trailing pipes
func splitTableRow(line string) []string {
	parts := strings.Split(strings.TrimSpace(line), "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	if len(cells) > 0 && cells[0] == "" {
		cells = cells[1:]
	}
	if len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}
