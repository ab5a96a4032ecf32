package render

import (
	"strings"
	"testing"

	"github.com/vortex/officedoc/pkg/officedoc/model"
)

func simpleTable() *model.Table {
	return &model.Table{Rows: []model.Row{
		{IsHeader: true, Cells: []model.Cell{
			{ColSpan: 1, RowSpan: 1, Content: []model.Paragraph{{Runs: []model.TextRun{{Text: "Name"}}}}},
			{ColSpan: 1, RowSpan: 1, Content: []model.Paragraph{{Runs: []model.TextRun{{Text: "Age"}}}}},
		}},
		{Cells: []model.Cell{
			{ColSpan: 1, RowSpan: 1, Content: []model.Paragraph{{Runs: []model.TextRun{{Text: "Alice"}}}}},
			{ColSpan: 1, RowSpan: 1, Content: []model.Paragraph{{Runs: []model.TextRun{{Text: "30"}}}}},
		}},
	}}
}

func TestRenderTablePipe(t *testing.T) {
	m := &mdRenderer{doc: model.NewDocument(), opts: DefaultOptions()}
	var sb strings.Builder
	m.renderTable(&sb, simpleTable())
	out := sb.String()

	if !strings.Contains(out, "| Name | Age |") {
		t.Errorf("renderTable() = %q, want a header row", out)
	}
	if !strings.Contains(out, "| Alice | 30 |") {
		t.Errorf("renderTable() = %q, want a data row", out)
	}
	if !strings.Contains(out, "| --- | --- |") {
		t.Errorf("renderTable() = %q, want a default-aligned separator row", out)
	}
}

func TestRenderTable_HTMLFallbackOnSpan(t *testing.T) {
	tbl := &model.Table{Rows: []model.Row{
		{Cells: []model.Cell{
			{ColSpan: 2, RowSpan: 1, Content: []model.Paragraph{{Runs: []model.TextRun{{Text: "Merged"}}}}},
		}},
	}}
	opts := DefaultOptions()
	opts.TableFallback = TableHTML
	m := &mdRenderer{doc: model.NewDocument(), opts: opts}
	var sb strings.Builder
	m.renderTable(&sb, tbl)
	out := sb.String()

	if !strings.Contains(out, "<table>") || !strings.Contains(out, `colspan="2"`) {
		t.Errorf("renderTable() = %q, want an HTML table with colspan", out)
	}
}

func TestCellText_JoinsMultipleParagraphsWithBr(t *testing.T) {
	m := &mdRenderer{doc: model.NewDocument(), opts: DefaultOptions()}
	cell := model.Cell{Content: []model.Paragraph{
		{Runs: []model.TextRun{{Text: "line one"}}},
		{Runs: []model.TextRun{{Text: "line two"}}},
	}}
	got := m.cellText(&cell)
	if got != "line one<br>line two" {
		t.Errorf("cellText() = %q, want %q", got, "line one<br>line two")
	}
}

func TestEscapePipe(t *testing.T) {
	if got := escapePipe("a|b"); got != `a\|b` {
		t.Errorf("escapePipe() = %q, want %q", got, `a\|b`)
	}
}
