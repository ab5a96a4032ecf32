package render

import (
	"strconv"
	"strings"

	"golang.org/x/text/width"

	"github.com/vortex/officedoc/pkg/officedoc/model"
)

// Text renders doc as plain text: sections joined by blank lines,
// paragraphs with list prefixes and the same inter-run spacing rule as
// the Markdown renderer, tables as East-Asian-display-width-aware ASCII
// box tables, and an optional cleanup pass.
func Text(doc *model.Document, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	t := &textRenderer{opts: opts}

	var sb strings.Builder
	for i, sec := range doc.Sections {
		if i > 0 {
			sb.WriteString("\n")
		}
		t.renderBlocks(&sb, doc, sec.Content)
		t.renderNotes(&sb, doc, sec.Notes)
	}

	out := sb.String()
	if opts.Cleanup != nil {
		out = Cleanup(out, opts.Cleanup)
	}
	return out, nil
}

type textRenderer struct {
	opts *Options
}

func (t *textRenderer) renderBlocks(sb *strings.Builder, doc *model.Document, blocks []model.Block) {
	for _, b := range blocks {
		switch b.Type {
		case model.BlockParagraph:
			t.renderParagraph(sb, b.Paragraph)
		case model.BlockTable:
			t.renderTable(sb, b.Table)
		case model.BlockImage:
			t.renderImage(sb, b.Image)
		case model.BlockPageBreak, model.BlockSectionBreak:
			sb.WriteString("\n")
		}
	}
	_ = doc
}

// renderNotes appends notes (a presentation slide's speaker notes) as a
// plain "Notes:" block after the section body.
func (t *textRenderer) renderNotes(sb *strings.Builder, doc *model.Document, notes []model.Block) {
	if len(notes) == 0 {
		return
	}
	var body strings.Builder
	t.renderBlocks(&body, doc, notes)
	text := strings.TrimRight(body.String(), "\n")
	if text == "" {
		return
	}
	sb.WriteString("\nNotes:\n")
	sb.WriteString(text)
	sb.WriteString("\n")
}

func (t *textRenderer) renderImage(sb *strings.Builder, img *model.ImageRef) {
	if img.Alt != "" {
		sb.WriteString("[Image: " + img.Alt + "]\n\n")
	} else {
		sb.WriteString("[Image]\n\n")
	}
}

func (t *textRenderer) renderParagraph(sb *strings.Builder, p *model.Paragraph) {
	merged := mergeRuns(p.Runs)
	if len(merged) == 0 {
		if !t.opts.IncludeEmptyParagraphs {
			return
		}
	}

	var line strings.Builder
	if p.ListInfo != nil {
		line.WriteString(strings.Repeat("  ", p.ListInfo.Level))
		if p.ListInfo.ListType == model.ListNumbered {
			n := 1
			if p.ListInfo.Number != nil {
				n = *p.ListInfo.Number
			}
			line.WriteString(strconv.Itoa(n) + ". ")
		} else {
			line.WriteString("• ")
		}
	}

	t.renderRuns(&line, merged)
	sb.WriteString(line.String())
	sb.WriteString("\n")
	if t.opts.ParagraphSpacing {
		sb.WriteString("\n")
	}
}

func (t *textRenderer) renderRuns(sb *strings.Builder, runs []mergedRun) {
	prevEnd := ' '
	for i, r := range runs {
		text, skip := textFilterRevision(r.TextRun, t.opts.RevisionHandling)
		if skip {
			continue
		}
		if i > 0 && needsInterRunSpace(prevEnd, text) {
			sb.WriteString(" ")
		}
		sb.WriteString(text)
		if len(text) > 0 {
			prevEnd = lastRune(text)
		}
		if r.LineBreak && t.opts.PreserveLineBreaks {
			sb.WriteString("\n")
		}
	}
}

// textFilterRevision applies the revision-handling policy with no markup
// wrapping (ShowMarkup has nothing to show in plain text, so it behaves
// like AcceptAll: Deleted text is dropped, Inserted text is kept).
func textFilterRevision(r model.TextRun, handling RevisionHandling) (string, bool) {
	switch r.Revision {
	case model.RevisionDeleted:
		if handling == RevisionRejectAll {
			return r.Text, false
		}
		return "", true
	case model.RevisionInserted:
		if handling == RevisionRejectAll {
			return "", true
		}
		return r.Text, false
	default:
		return r.Text, false
	}
}

// --------------------------------------------------------------------------
// ASCII tables
// --------------------------------------------------------------------------

func (t *textRenderer) renderTable(sb *strings.Builder, tbl *model.Table) {
	cols := tbl.ColumnCount()
	if cols == 0 {
		return
	}

	grid := make([][]string, 0, len(tbl.Rows))
	headerRows := 0
	for _, row := range tbl.Rows {
		var cells []string
		for _, c := range row.Cells {
			cells = append(cells, t.cellText(&c))
			span := c.ColSpan
			if span < 1 {
				span = 1
			}
			for k := 1; k < span; k++ {
				cells = append(cells, "")
			}
		}
		for len(cells) < cols {
			cells = append(cells, "")
		}
		grid = append(grid, cells)
		if row.IsHeader {
			headerRows++
		}
	}
	if headerRows == 0 && len(grid) > 0 {
		headerRows = 1
	}

	widths := make([]int, cols)
	for _, row := range grid {
		for c := 0; c < cols; c++ {
			if w := displayWidth(row[c]); w > widths[c] {
				widths[c] = w
			}
		}
	}

	writeBorder := func(fill byte) {
		sb.WriteByte('+')
		for _, w := range widths {
			sb.Write(repeatByte(fill, w+2))
			sb.WriteByte('+')
		}
		sb.WriteString("\n")
	}
	writeRow := func(row []string) {
		sb.WriteByte('|')
		for c, w := range widths {
			cell := ""
			if c < len(row) {
				cell = row[c]
			}
			sb.WriteString(" " + padDisplay(cell, w) + " |")
		}
		sb.WriteString("\n")
	}

	writeBorder('-')
	for i, row := range grid {
		writeRow(row)
		if i == headerRows-1 {
			writeBorder('=')
		}
	}
	writeBorder('-')
	sb.WriteString("\n")
}

func (t *textRenderer) cellText(c *model.Cell) string {
	var parts []string
	for _, p := range c.Content {
		merged := mergeRuns(p.Runs)
		var line strings.Builder
		t.renderRuns(&line, merged)
		text := strings.ReplaceAll(line.String(), "\n", " ")
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

func repeatByte(b byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}

// displayWidth returns s's East-Asian display width: wide/fullwidth
// runes count as 2 columns, everything else as 1, so CJK content aligns
// in a monospaced terminal.
func displayWidth(s string) int {
	total := 0
	for _, r := range s {
		total += runeWidth(r)
	}
	return total
}

func runeWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}

func padDisplay(s string, target int) string {
	w := displayWidth(s)
	if w >= target {
		return s
	}
	return s + strings.Repeat(" ", target-w)
}
