package model

// VerticalAlignment is a cell's vertical content alignment.
type VerticalAlignment int

const (
	VAlignTop VerticalAlignment = iota
	VAlignMiddle
	VAlignBottom
)

// Table is an ordered set of rows. ColumnCount is the max over rows of the
// sum of each row's cell ColSpan values; it is computed on demand rather
// than stored, since it is derived and callers must never observe a stale
// value after mutation.
type Table struct {
	Rows          []Row  `json:"rows"`
	ColumnWidths  []int  `json:"column_widths,omitempty"`
	Caption       string `json:"caption,omitempty"`
	StyleID       string `json:"style_id,omitempty"`
}

// ColumnCount returns max over rows of the sum of each row's cell spans.
func (t *Table) ColumnCount() int {
	max := 0
	for _, row := range t.Rows {
		n := 0
		for _, c := range row.Cells {
			span := c.ColSpan
			if span < 1 {
				span = 1
			}
			n += span
		}
		if n > max {
			max = n
		}
	}
	return max
}

// Row is one table row. At most one contiguous prefix of a Table's rows may
// carry IsHeader=true; the first row with an explicit header flag marks the
// header block.
type Row struct {
	Cells    []Cell `json:"cells"`
	IsHeader bool   `json:"is_header,omitempty"`
	Height   int    `json:"height,omitempty"`
}

// Cell is one table cell. A source cell with row_span=0 (a vertical-merge
// continuation) is never materialized as a Cell — it is absorbed into the
// originating cell's RowSpan at parse time, so RowSpan here is always >= 1.
type Cell struct {
	Content           []Paragraph       `json:"content"`
	NestedTables      []Table           `json:"nested_tables,omitempty"`
	ColSpan           int               `json:"col_span"`
	RowSpan           int               `json:"row_span"`
	Alignment         Alignment         `json:"alignment"`
	VerticalAlignment VerticalAlignment `json:"vertical_alignment"`
	IsHeader          bool              `json:"is_header,omitempty"`
	Background        string            `json:"background,omitempty"`
}
