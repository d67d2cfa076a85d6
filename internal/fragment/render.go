package fragment

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const columnGap = "  "

// Render lays the document out as text. Tables are column-aligned; cells
// wider than maxCell (when > 0) are truncated with an ellipsis.
func (d *Document) Render(maxCell int) string {
	if d == nil {
		return ""
	}
	var sections []string
	for _, t := range d.Tables {
		if s := t.render(maxCell); s != "" {
			sections = append(sections, s)
		}
	}
	if len(d.Text) > 0 {
		sections = append(sections, strings.Join(d.Text, "\n"))
	}
	return strings.Join(sections, "\n\n")
}

// RowCount is the number of data rows across all tables.
func (d *Document) RowCount() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, t := range d.Tables {
		n += len(t.Rows)
	}
	return n
}

func (t Table) render(maxCell int) string {
	src := make([][]string, 0, len(t.Rows)+1)
	if len(t.Header) > 0 {
		src = append(src, t.Header)
	}
	src = append(src, t.Rows...)
	if len(src) == 0 {
		return ""
	}

	var widths []int
	rows := make([][]string, len(src))
	for ri, row := range src {
		rows[ri] = make([]string, len(row))
		for i, cell := range row {
			if maxCell > 0 {
				cell = runewidth.Truncate(cell, maxCell, "…")
			}
			rows[ri][i] = cell
			w := runewidth.StringWidth(cell)
			if i >= len(widths) {
				widths = append(widths, w)
			} else if w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder
	for ri, row := range rows {
		line := make([]string, len(row))
		for i, cell := range row {
			if i == len(row)-1 {
				line[i] = cell
				continue
			}
			line[i] = runewidth.FillRight(cell, widths[i])
		}
		sb.WriteString(strings.TrimRight(strings.Join(line, columnGap), " "))
		sb.WriteByte('\n')
		if ri == 0 && len(t.Header) > 0 {
			total := 0
			for i, w := range widths {
				total += w
				if i > 0 {
					total += len(columnGap)
				}
			}
			sb.WriteString(strings.Repeat("-", total))
			sb.WriteByte('\n')
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
