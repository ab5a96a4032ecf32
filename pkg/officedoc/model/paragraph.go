package model

// HeadingLevel is the advisory heading level carried on a Paragraph, or the
// final decision emitted by the heading analyzer. H1..H6 map to Markdown's
// "#".."######".
type HeadingLevel int

const (
	HeadingNone HeadingLevel = iota
	H1
	H2
	H3
	H4
	H5
	H6
)

// Clamp caps h at max (1..6); max <= 0 is treated as 6.
func (h HeadingLevel) Clamp(max int) HeadingLevel {
	if max <= 0 || max > 6 {
		max = 6
	}
	if int(h) > max {
		return HeadingLevel(max)
	}
	return h
}

// Alignment is paragraph justification.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
	AlignJustify
)

// ListType distinguishes bullet and numbered lists.
type ListType int

const (
	ListBullet ListType = iota
	ListNumbered
)

// ListInfo is attached to a Paragraph that participates in a list. Number is
// assigned by the numbering engine at parse time, never at render time.
type ListInfo struct {
	ListType ListType `json:"list_type"`
	Level    int      `json:"level"`
	Number   *int     `json:"number,omitempty"`
}

// Paragraph is a sequence of runs and inline images plus paragraph-level
// formatting. Heading is advisory input to the heading analyzer — the
// renderer's effective heading comes from the analyzer's decision, never
// from this field directly (see heading.Analyze).
type Paragraph struct {
	Runs         []TextRun  `json:"runs"`
	Images       []ImageRef `json:"images,omitempty"`
	Heading      HeadingLevel `json:"heading"`
	Alignment    Alignment  `json:"alignment"`
	ListInfo     *ListInfo  `json:"list_info,omitempty"`
	StyleID      string     `json:"style_id,omitempty"`
	StyleName    string     `json:"style_name,omitempty"`
	IndentLevel  int        `json:"indent_level,omitempty"`
}

// Revision marks a run as part of a tracked insertion or deletion.
type Revision int

const (
	RevisionNone Revision = iota
	RevisionInserted
	RevisionDeleted
)

// TextRun is a maximal substring of a paragraph sharing one TextStyle, plus
// any structural markers (tab text folded into Text, line/page breaks,
// hyperlink target, tracked-revision tag).
type TextRun struct {
	Text       string   `json:"text"`
	Style      TextStyle `json:"style"`
	Hyperlink  string    `json:"hyperlink,omitempty"`
	LineBreak  bool      `json:"line_break,omitempty"`
	PageBreak  bool      `json:"page_break,omitempty"`
	Revision   Revision  `json:"revision"`
}

// TextStyle is character formatting. Two styles are equal iff all fields
// match — run-merging in the Markdown/text renderers depends on this, so
// TextStyle must stay a plain comparable struct (no slices/maps).
type TextStyle struct {
	Bold          bool   `json:"bold,omitempty"`
	Italic        bool   `json:"italic,omitempty"`
	Underline     bool   `json:"underline,omitempty"`
	Strikethrough bool   `json:"strikethrough,omitempty"`
	Superscript   bool   `json:"superscript,omitempty"`
	Subscript     bool   `json:"subscript,omitempty"`
	Code          bool   `json:"code,omitempty"`
	Font          string `json:"font,omitempty"`
	Size          int    `json:"size,omitempty"` // half-points
	Color         string `json:"color,omitempty"`
	Highlight     string `json:"highlight,omitempty"`
}
