package model

import "testing"

func TestTable_ColumnCount(t *testing.T) {
	tests := []struct {
		name string
		tbl  Table
		want int
	}{
		{"empty", Table{}, 0},
		{"single row no span", Table{Rows: []Row{
			{Cells: []Cell{{}, {}, {}}},
		}}, 3},
		{"colspan counted", Table{Rows: []Row{
			{Cells: []Cell{{ColSpan: 2}, {ColSpan: 1}}},
		}}, 3},
		{"zero colspan treated as one", Table{Rows: []Row{
			{Cells: []Cell{{ColSpan: 0}, {ColSpan: 0}}},
		}}, 2},
		{"widest row wins", Table{Rows: []Row{
			{Cells: []Cell{{}, {}}},
			{Cells: []Cell{{}, {}, {}, {}}},
			{Cells: []Cell{{}}},
		}}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tbl.ColumnCount(); got != tt.want {
				t.Errorf("ColumnCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestHeadingLevel_Clamp(t *testing.T) {
	tests := []struct {
		name string
		h    HeadingLevel
		max  int
		want HeadingLevel
	}{
		{"within max", H2, 4, H2},
		{"above max clamps", H6, 3, H3},
		{"zero max treated as 6", H6, 0, H6},
		{"negative max treated as 6", H5, -1, H5},
		{"above 6 treated as 6", H4, 9, H4},
		{"none stays none", HeadingNone, 4, HeadingNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.h.Clamp(tt.max); got != tt.want {
				t.Errorf("Clamp(%d) = %d, want %d", tt.max, got, tt.want)
			}
		})
	}
}

func TestTextStyle_Equality(t *testing.T) {
	a := TextStyle{Bold: true, Font: "Arial", Size: 24}
	b := TextStyle{Bold: true, Font: "Arial", Size: 24}
	c := TextStyle{Bold: true, Font: "Arial", Size: 22}

	if a != b {
		t.Error("identical styles should compare equal")
	}
	if a == c {
		t.Error("styles differing in Size should not compare equal")
	}
}
