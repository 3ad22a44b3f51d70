package pretty

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	tablePadding   = 2
	tableSeparator = "-"
)

// Table is a left-aligned text table with a header row.
type Table struct {
	Headers []string
	Rows    [][]string
}

// AddRow appends a row. Missing cells render empty.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Render lays the table out with columns sized to their widest cell.
// Widths are measured with lipgloss so styled cells align.
func (t *Table) Render(s *Styles) string {
	if len(t.Headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i := range min(len(row), len(widths)) {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder
	headers := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		headers[i] = s.Header.Render(h)
	}
	b.WriteString(t.line(headers, widths))

	total := 0
	for _, w := range widths {
		total += w
	}
	total += tablePadding * (len(widths) - 1)
	b.WriteString(s.Border.Render(strings.Repeat(tableSeparator, total)))
	b.WriteByte('\n')

	for _, row := range t.Rows {
		b.WriteString(t.line(row, widths))
	}
	return b.String()
}

func (t *Table) line(cells []string, widths []int) string {
	var b strings.Builder
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		b.WriteString(cell)
		if i < len(widths)-1 {
			b.WriteString(strings.Repeat(" ", w-lipgloss.Width(cell)+tablePadding))
		}
	}
	return strings.TrimRight(b.String(), " ") + "\n"
}
