package render

import (
	"strings"
	"testing"

	"github.com/vortex/officedoc/pkg/officedoc/model"
)

func docWithParagraph(p model.Paragraph) *model.Document {
	doc := model.NewDocument()
	doc.Sections = append(doc.Sections, &model.Section{
		Index:   0,
		Name:    "Document",
		Content: []model.Block{model.NewParagraphBlock(&p)},
	})
	return doc
}

func TestMarkdown_HeadingLevel(t *testing.T) {
	doc := docWithParagraph(model.Paragraph{
		Heading: model.H2,
		Runs:    []model.TextRun{{Text: "Section Title"}},
	})
	out, err := Markdown(doc, DefaultOptions())
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	if !strings.HasPrefix(out, "## Section Title") {
		t.Errorf("Markdown() = %q, want a level-2 heading prefix", out)
	}
}

func TestMarkdown_BoldItalicFormatting(t *testing.T) {
	doc := docWithParagraph(model.Paragraph{
		Runs: []model.TextRun{
			{Text: "bold", Style: model.TextStyle{Bold: true}},
			{Text: " and "},
			{Text: "italic", Style: model.TextStyle{Italic: true}},
		},
	})
	out, err := Markdown(doc, DefaultOptions())
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	if !strings.Contains(out, "**bold**") || !strings.Contains(out, "*italic*") {
		t.Errorf("Markdown() = %q, want bold/italic markers", out)
	}
}

func TestMarkdown_NumberedList(t *testing.T) {
	n := 1
	doc := docWithParagraph(model.Paragraph{
		ListInfo: &model.ListInfo{ListType: model.ListNumbered, Level: 0, Number: &n},
		Runs:     []model.TextRun{{Text: "First item"}},
	})
	out, err := Markdown(doc, DefaultOptions())
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	if !strings.HasPrefix(out, "1. First item") {
		t.Errorf("Markdown() = %q, want a numbered list item", out)
	}
}

func TestMarkdown_RevisionHandling(t *testing.T) {
	doc := docWithParagraph(model.Paragraph{
		Runs: []model.TextRun{
			{Text: "kept "},
			{Text: "deleted", Revision: model.RevisionDeleted},
		},
	})

	accept := DefaultOptions()
	accept.RevisionHandling = RevisionAcceptAll
	out, _ := Markdown(doc, accept)
	if strings.Contains(out, "deleted") {
		t.Errorf("AcceptAll should drop deleted runs, got %q", out)
	}

	reject := DefaultOptions()
	reject.RevisionHandling = RevisionRejectAll
	out, _ = Markdown(doc, reject)
	if !strings.Contains(out, "deleted") {
		t.Errorf("RejectAll should keep deleted runs as plain text, got %q", out)
	}

	show := DefaultOptions()
	show.RevisionHandling = RevisionShowMarkup
	out, _ = Markdown(doc, show)
	if !strings.Contains(out, "~~deleted~~") {
		t.Errorf("ShowMarkup should wrap deleted runs in strikethrough, got %q", out)
	}
}

func TestMergeRuns_CoalescesSameStyle(t *testing.T) {
	runs := []model.TextRun{
		{Text: "a", Style: model.TextStyle{Bold: true}},
		{Text: "b", Style: model.TextStyle{Bold: true}},
		{Text: "c", Style: model.TextStyle{}},
	}
	merged := mergeRuns(runs)
	if len(merged) != 2 {
		t.Fatalf("len(merged) = %d, want 2", len(merged))
	}
	if merged[0].Text != "ab" {
		t.Errorf("merged[0].Text = %q, want %q", merged[0].Text, "ab")
	}
}

func TestMergeRuns_LineBreakBreaksMerge(t *testing.T) {
	runs := []model.TextRun{
		{Text: "a", LineBreak: true},
		{Text: "b"},
	}
	merged := mergeRuns(runs)
	if len(merged) != 2 {
		t.Fatalf("a line break should prevent merging, got %d merged runs", len(merged))
	}
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"pipe and backtick", "a|b`c", `a\|b\` + "`" + `c`},
		{"interior asterisk escaped", "a*b*c", `a\*b\*c`},
		{"trailing marker left bare", "NOTE:*", "NOTE:*"},
		{"leading underscore before word left bare", "_hello", "_hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escapeMarkdown(tt.in); got != tt.want {
				t.Errorf("escapeMarkdown(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNeedsInterRunSpace(t *testing.T) {
	tests := []struct {
		name    string
		prevEnd rune
		next    string
		want    bool
	}{
		{"word boundary needs space", 'o', "world", true},
		{"space before means no extra space", ' ', "world", false},
		{"punctuation leader suppressed", 'o', ".", false},
		{"empty next", 'o', "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := needsInterRunSpace(tt.prevEnd, tt.next); got != tt.want {
				t.Errorf("needsInterRunSpace(%q, %q) = %v, want %v", tt.prevEnd, tt.next, got, tt.want)
			}
		})
	}
}

func TestMarkdown_RendersSectionNotes(t *testing.T) {
	doc := model.NewDocument()
	doc.Sections = append(doc.Sections, &model.Section{
		Index:   0,
		Name:    "Slide 1",
		Content: []model.Block{model.NewParagraphBlock(&model.Paragraph{Runs: []model.TextRun{{Text: "Slide body"}}})},
		Notes:   []model.Block{model.NewParagraphBlock(&model.Paragraph{Runs: []model.TextRun{{Text: "Speaker note text"}}})},
	})

	out, err := Markdown(doc, DefaultOptions())
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	if !strings.Contains(out, "Slide body") {
		t.Errorf("Markdown() = %q, want the slide body rendered", out)
	}
	if !strings.Contains(out, "> **Notes:**") || !strings.Contains(out, "> Speaker note text") {
		t.Errorf("Markdown() = %q, want notes rendered as a blockquote", out)
	}
}

func TestMarkdown_NoNotesOmitsNotesBlock(t *testing.T) {
	doc := docWithParagraph(model.Paragraph{Runs: []model.TextRun{{Text: "Body"}}})
	out, err := Markdown(doc, DefaultOptions())
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	if strings.Contains(out, "Notes:") {
		t.Errorf("Markdown() = %q, want no Notes block when Section.Notes is empty", out)
	}
}

func TestMarkdown_Frontmatter(t *testing.T) {
	doc := docWithParagraph(model.Paragraph{Runs: []model.TextRun{{Text: "Body"}}})
	doc.Metadata.Title = "My Document"

	opts := DefaultOptions()
	opts.IncludeFrontmatter = true
	out, err := Markdown(doc, opts)
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	if !strings.HasPrefix(out, "---\n") || !strings.Contains(out, "title: My Document") {
		t.Errorf("Markdown() = %q, want a YAML frontmatter block with title", out)
	}
}
