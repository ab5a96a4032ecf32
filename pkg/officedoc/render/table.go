package render

import (
	"fmt"
	"strings"

	"github.com/vortex/officedoc/pkg/officedoc/model"
)

// renderTable emits tbl as a pipe table (default), an HTML <table> (when
// any cell spans and table_fallback=Html), or falls through to the
// Markdown pipe form for table_fallback=Ascii (ASCII box tables are the
// plain-text renderer's concern, not Markdown's). Nested tables are never
// inlined into a cell; they are queued and emitted standalone afterward.
func (m *mdRenderer) renderTable(sb *strings.Builder, tbl *model.Table) {
	hasSpan := false
	for _, row := range tbl.Rows {
		for _, c := range row.Cells {
			if c.ColSpan > 1 || c.RowSpan > 1 {
				hasSpan = true
			}
		}
	}

	if hasSpan && m.opts.TableFallback == TableHTML {
		m.renderTableHTML(sb, tbl)
	} else {
		m.renderTablePipe(sb, tbl)
	}
	sb.WriteString("\n")

	var nested []*model.Table
	for _, row := range tbl.Rows {
		for _, c := range row.Cells {
			for i := range c.NestedTables {
				nested = append(nested, &c.NestedTables[i])
			}
		}
	}
	for _, nt := range nested {
		m.renderTable(sb, nt)
	}
}

func (m *mdRenderer) cellText(c *model.Cell) string {
	var parts []string
	for _, p := range c.Content {
		merged := mergeRuns(p.Runs)
		var line strings.Builder
		m.renderRuns(&line, merged)
		text := strings.ReplaceAll(line.String(), "\n", " ")
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "<br>")
}

func (m *mdRenderer) renderTablePipe(sb *strings.Builder, tbl *model.Table) {
	cols := tbl.ColumnCount()
	if cols == 0 {
		return
	}

	rows := make([][]string, len(tbl.Rows))
	aligns := make([]model.Alignment, cols)
	alignSet := make([]bool, cols)
	for ri, row := range tbl.Rows {
		var cells []string
		col := 0
		for _, c := range row.Cells {
			cells = append(cells, m.cellText(&c))
			if !alignSet[minInt(col, cols-1)] && ri > 0 {
				aligns[minInt(col, cols-1)] = c.Alignment
				alignSet[minInt(col, cols-1)] = true
			}
			span := c.ColSpan
			if span < 1 {
				span = 1
			}
			col += span
		}
		rows[ri] = cells
	}

	if len(rows) > 0 && len(rows[0]) < cols {
		pad := cols - len(rows[0])
		padded := make([]string, 0, cols)
		padded = append(padded, "#")
		for i := 1; i < pad; i++ {
			padded = append(padded, "")
		}
		padded = append(padded, rows[0]...)
		rows[0] = padded
	}

	writeRow := func(cells []string) {
		sb.WriteString("|")
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			sb.WriteString(" " + escapePipe(cell) + " |")
		}
		sb.WriteString("\n")
	}

	if len(rows) > 0 {
		writeRow(rows[0])
	}

	sb.WriteString("|")
	for i := 0; i < cols; i++ {
		switch aligns[i] {
		case model.AlignCenter:
			sb.WriteString(" :---: |")
		case model.AlignRight:
			sb.WriteString(" ---: |")
		default:
			sb.WriteString(" --- |")
		}
	}
	sb.WriteString("\n")

	for _, cells := range rows[minInt(1, len(rows)):] {
		writeRow(cells)
	}
}

func escapePipe(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func (m *mdRenderer) renderTableHTML(sb *strings.Builder, tbl *model.Table) {
	sb.WriteString("<table>\n")
	for ri, row := range tbl.Rows {
		sb.WriteString("<tr>\n")
		tag := "td"
		if row.IsHeader || ri == 0 {
			tag = "th"
		}
		for _, c := range row.Cells {
			attrs := ""
			if c.ColSpan > 1 {
				attrs += fmt.Sprintf(" colspan=\"%d\"", c.ColSpan)
			}
			if c.RowSpan > 1 {
				attrs += fmt.Sprintf(" rowspan=\"%d\"", c.RowSpan)
			}
			sb.WriteString("<" + tag + attrs + ">" + m.cellText(&c) + "</" + tag + ">\n")
		}
		sb.WriteString("</tr>\n")
	}
	sb.WriteString("</table>\n")
}
