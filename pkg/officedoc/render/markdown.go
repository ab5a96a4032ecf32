package render

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vortex/officedoc/pkg/officedoc/heading"
	"github.com/vortex/officedoc/pkg/officedoc/model"
)

// Markdown renders doc as GitHub-Flavored Markdown: an optional YAML
// frontmatter fence, run-merged paragraphs with heading/list
// prefixes and inline formatting, pipe or HTML tables, and an optional
// cleanup pass. When opts.HeadingConfig is set, the two-pass heading
// analyzer's per-paragraph decisions override each paragraph's advisory
// heading level ("analyzed" mode); otherwise the advisory level is used
// directly ("standard" mode).
func Markdown(doc *model.Document, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	m := &mdRenderer{doc: doc, opts: opts}
	if opts.HeadingConfig != nil {
		m.decisions = heading.Analyze(doc.Sections, opts.HeadingConfig)
	}

	var sb strings.Builder
	if opts.IncludeFrontmatter {
		fm, err := renderFrontmatter(doc)
		if err != nil {
			return "", model.NewError(model.ErrRender, err, "rendering frontmatter")
		}
		sb.WriteString(fm)
	}

	for i, sec := range doc.Sections {
		if i > 0 {
			sb.WriteString("\n")
		}
		m.renderBlocks(&sb, sec.Content)
		m.renderNotes(&sb, sec.Notes)
	}

	out := sb.String()
	if opts.Cleanup != nil {
		out = Cleanup(out, opts.Cleanup)
	}
	return out, nil
}

type mdRenderer struct {
	doc       *model.Document
	opts      *Options
	decisions map[*model.Paragraph]heading.Decision
}

// --------------------------------------------------------------------------
// Frontmatter
// --------------------------------------------------------------------------

func renderFrontmatter(doc *model.Document) (string, error) {
	fm := map[string]any{}
	md := doc.Metadata
	if md.Title != "" {
		fm["title"] = md.Title
	}
	if md.Author != "" {
		fm["author"] = md.Author
	}
	if md.Subject != "" {
		fm["subject"] = md.Subject
	}
	if md.Description != "" {
		fm["description"] = md.Description
	}
	if len(md.Keywords) > 0 {
		fm["keywords"] = md.Keywords
	}
	if md.Created != nil {
		fm["created"] = md.Created.Format("2006-01-02T15:04:05Z07:00")
	}
	if md.Modified != nil {
		fm["modified"] = md.Modified.Format("2006-01-02T15:04:05Z07:00")
	}
	if label, count := sectionCountLabel(doc); count > 0 {
		fm[label] = count
	}
	if len(fm) == 0 {
		return "", nil
	}
	body, err := yaml.Marshal(fm)
	if err != nil {
		return "", err
	}
	return "---\n" + string(body) + "---\n\n", nil
}

// sectionCountLabel chooses "pages"/"sheets"/"slides" from the first
// section's name prefix.
func sectionCountLabel(doc *model.Document) (string, int) {
	if len(doc.Sections) == 0 {
		return "", 0
	}
	name := strings.ToLower(doc.Sections[0].Name)
	switch {
	case strings.HasPrefix(name, "slide"):
		return "slides", len(doc.Sections)
	case name != "" && name != "document":
		return "sheets", len(doc.Sections)
	default:
		return "pages", len(doc.Sections)
	}
}

// --------------------------------------------------------------------------
// Blocks
// --------------------------------------------------------------------------

func (m *mdRenderer) renderBlocks(sb *strings.Builder, blocks []model.Block) {
	for _, b := range blocks {
		switch b.Type {
		case model.BlockParagraph:
			m.renderParagraph(sb, b.Paragraph)
		case model.BlockTable:
			m.renderTable(sb, b.Table)
		case model.BlockImage:
			m.renderImage(sb, b.Image)
		case model.BlockPageBreak, model.BlockSectionBreak:
			sb.WriteString("\n---\n\n")
		}
	}
}

// renderNotes appends notes (a presentation slide's speaker notes) as a
// blockquote after the section body. Notes don't go through heading
// analysis — they're rendered with a fresh, decision-less renderer so a
// note paragraph's advisory heading level (if any) still maps through
// headingLevel's fallback path, not through m.decisions.
func (m *mdRenderer) renderNotes(sb *strings.Builder, notes []model.Block) {
	if len(notes) == 0 {
		return
	}
	var body strings.Builder
	notesRenderer := &mdRenderer{doc: m.doc, opts: m.opts}
	notesRenderer.renderBlocks(&body, notes)

	text := strings.TrimRight(body.String(), "\n")
	if text == "" {
		return
	}
	sb.WriteString("\n> **Notes:**\n")
	for _, line := range strings.Split(text, "\n") {
		sb.WriteString("> " + line + "\n")
	}
	sb.WriteString("\n")
}

func (m *mdRenderer) renderImage(sb *strings.Builder, img *model.ImageRef) {
	filename := img.ResourceID
	if res, ok := m.doc.Resources[img.ResourceID]; ok {
		filename = res.SuggestedFilename(img.ResourceID)
	}
	sb.WriteString(fmt.Sprintf("![%s](%s%s)\n\n", img.Alt, m.opts.ImagePathPrefix, filename))
}

// --------------------------------------------------------------------------
// Paragraphs
// --------------------------------------------------------------------------

func (m *mdRenderer) headingLevel(p *model.Paragraph) model.HeadingLevel {
	if m.decisions != nil {
		d, ok := m.decisions[p]
		if !ok || !d.IsHeading() {
			return model.HeadingNone
		}
		return d.Level.Clamp(m.opts.MaxHeadingLevel)
	}
	return p.Heading.Clamp(m.opts.MaxHeadingLevel)
}

func (m *mdRenderer) renderParagraph(sb *strings.Builder, p *model.Paragraph) {
	merged := mergeRuns(p.Runs)
	if len(merged) == 0 && len(p.Images) == 0 {
		if !m.opts.IncludeEmptyParagraphs {
			return
		}
	}

	var line strings.Builder
	if lvl := m.headingLevel(p); lvl != model.HeadingNone {
		line.WriteString(strings.Repeat("#", int(lvl)))
		line.WriteString(" ")
	} else if p.ListInfo != nil {
		line.WriteString(strings.Repeat("  ", p.ListInfo.Level))
		if p.ListInfo.ListType == model.ListNumbered {
			n := 1
			if p.ListInfo.Number != nil {
				n = *p.ListInfo.Number
			}
			line.WriteString(strconv.Itoa(n) + ". ")
		} else {
			marker := m.opts.ListMarker
			if marker == 0 {
				marker = '-'
			}
			line.WriteRune(marker)
			line.WriteString(" ")
		}
	}

	m.renderRuns(&line, merged)

	for _, img := range p.Images {
		m.renderImage(&line, &img)
	}

	sb.WriteString(line.String())
	if m.opts.ParagraphSpacing {
		sb.WriteString("\n\n")
	} else {
		sb.WriteString("\n")
	}
}

// mergedRun is one run after adjacent same-style/same-hyperlink coalescing.
type mergedRun struct {
	model.TextRun
}

// mergeRuns coalesces adjacent runs sharing Style, Hyperlink and Revision,
// unless the earlier run carries a line or page break — concatenating raw text with no
// inserted whitespace so CJK compounds split across runs ("CJ" + "대한통운")
// don't acquire a spurious space.
func mergeRuns(runs []model.TextRun) []mergedRun {
	var out []mergedRun
	for _, r := range runs {
		if n := len(out); n > 0 {
			prev := &out[n-1]
			if !prev.LineBreak && !prev.PageBreak &&
				prev.Style == r.Style && prev.Hyperlink == r.Hyperlink &&
				prev.Revision == r.Revision {
				prev.Text += r.Text
				prev.LineBreak = r.LineBreak
				prev.PageBreak = r.PageBreak
				continue
			}
		}
		out = append(out, mergedRun{TextRun: r})
	}
	return out
}

func (m *mdRenderer) renderRuns(sb *strings.Builder, runs []mergedRun) {
	prevEnd := ' '
	for i, r := range runs {
		text, skip := m.renderRunFiltered(r.TextRun)
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

		if r.PageBreak {
			sb.WriteString("\n\n---\n\n")
		} else if r.LineBreak && m.opts.PreserveLineBreaks {
			sb.WriteString("  \n")
		}
	}
}

func lastRune(s string) rune {
	var last rune
	for _, r := range s {
		last = r
	}
	return last
}

// needsInterRunSpace decides inter-run spacing: a single space is
// inserted between rendered runs only when the previous char is
// non-whitespace, the next char is non-whitespace, and the next char is
// not one of a fixed set of leading punctuation.
func needsInterRunSpace(prevEnd rune, next string) bool {
	if next == "" {
		return false
	}
	nextStart := []rune(next)[0]
	if isSpaceRune(prevEnd) || isSpaceRune(nextStart) {
		return false
	}
	if strings.ContainsRune(".,:;!?)]}\"'…", nextStart) {
		return false
	}
	return true
}

func isSpaceRune(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// renderRunFiltered applies the revision filter, escaping, inline
// formatting, and hyperlink wrap to one merged run, in that order.
// skip reports a run dropped entirely by the revision filter.
func (m *mdRenderer) renderRunFiltered(r model.TextRun) (string, bool) {
	switch r.Revision {
	case model.RevisionDeleted:
		switch m.opts.RevisionHandling {
		case RevisionRejectAll:
			// kept as plain text
		case RevisionShowMarkup:
			return "~~" + m.formatRunText(r) + "~~", false
		default: // AcceptAll
			return "", true
		}
	case model.RevisionInserted:
		switch m.opts.RevisionHandling {
		case RevisionRejectAll:
			return "", true
		case RevisionShowMarkup:
			return "<ins>" + m.formatRunText(r) + "</ins>", false
		default: // AcceptAll
			// kept as plain text
		}
	}
	return m.formatRunText(r), false
}

func (m *mdRenderer) formatRunText(r model.TextRun) string {
	text := r.Text
	if m.opts.EscapeSpecialChars {
		text = escapeMarkdown(text)
	}

	if r.Style.Code {
		text = "`" + text + "`"
	}
	if r.Style.Strikethrough {
		text = "~~" + text + "~~"
	}
	switch {
	case r.Style.Bold && r.Style.Italic:
		text = "***" + text + "***"
	case r.Style.Bold:
		text = "**" + text + "**"
	case r.Style.Italic:
		text = "*" + text + "*"
	}

	if r.Hyperlink != "" {
		text = "[" + text + "](" + r.Hyperlink + ")"
	}
	return text
}

const openerChars = "([{\"'"
const closerChars = ")]}\"'"

// escapeMarkdown escapes backslash/backtick/pipe unconditionally, and
// escapes '*'/'_' only when interior — neither left-flanked by an opener,
// space, or string start, nor right-flanked by a closer, space, or string
// end — so a trailing marker like "NOTE:*" is left bare.
func escapeMarkdown(s string) string {
	runes := []rune(s)
	var sb strings.Builder
	for i, r := range runes {
		switch r {
		case '\\', '`', '|':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case '*', '_':
			leftOK := i == 0 || isFlankChar(runes[i-1], openerChars)
			rightOK := i == len(runes)-1 || isFlankChar(runes[i+1], closerChars)
			if !leftOK && !rightOK {
				sb.WriteByte('\\')
			}
			sb.WriteRune(r)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func isFlankChar(r rune, set string) bool {
	return isSpaceRune(r) || strings.ContainsRune(set, r)
}
