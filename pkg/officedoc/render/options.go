// Package render turns a parsed *model.Document back into Markdown, plain
// text, or JSON: run-merging with script-aware inter-run spacing, table
// emission (pipe/HTML/ASCII), and an optional Unicode cleanup pass.
package render

import "github.com/vortex/officedoc/pkg/officedoc/heading"

// TableFallback selects how a table with merged cells is emitted.
type TableFallback int

const (
	TableMarkdown TableFallback = iota
	TableHTML
	TableASCII
)

// RevisionHandling controls how tracked-change runs are rendered.
type RevisionHandling int

const (
	RevisionAcceptAll RevisionHandling = iota
	RevisionRejectAll
	RevisionShowMarkup
)

// CleanupPreset selects a bundle of cleanup-pipeline flags; Custom lets a
// caller set CleanupOptions fields individually.
type CleanupPreset int

const (
	CleanupMinimal CleanupPreset = iota
	CleanupDefault
	CleanupAggressive
	CleanupCustom
)

// CleanupOptions gates each stage of the cleanup pipeline.
// NewCleanupOptions(preset) returns the flag bundle a preset expands to;
// fields can be overridden individually afterward.
type CleanupOptions struct {
	NormalizeUnicode     bool
	RemovePUA            bool
	DropPageNumberLines  bool
	DropFooterPhrases    bool
	DropTOCLeaderLines   bool
	PreserveFrontmatter  bool
	CollapseBlankLines   bool
	DropSeparatorLines   bool
	CollapseInlineSpaces bool
}

// NewCleanupOptions expands preset into its concrete flag bundle.
func NewCleanupOptions(preset CleanupPreset) *CleanupOptions {
	switch preset {
	case CleanupMinimal:
		return &CleanupOptions{
			NormalizeUnicode:     true,
			CollapseBlankLines:   true,
			CollapseInlineSpaces: true,
		}
	case CleanupAggressive:
		return &CleanupOptions{
			NormalizeUnicode:     true,
			RemovePUA:            true,
			DropPageNumberLines:  true,
			DropFooterPhrases:    true,
			DropTOCLeaderLines:   true,
			PreserveFrontmatter:  true,
			CollapseBlankLines:   true,
			DropSeparatorLines:   true,
			CollapseInlineSpaces: true,
		}
	default: // CleanupDefault, CleanupCustom (caller fills fields in)
		return &CleanupOptions{
			NormalizeUnicode:     true,
			DropPageNumberLines:  true,
			DropFooterPhrases:    true,
			PreserveFrontmatter:  true,
			CollapseBlankLines:   true,
			DropSeparatorLines:   true,
			CollapseInlineSpaces: true,
		}
	}
}

// Options configures every renderer.
type Options struct {
	ImageDir            string
	ImagePathPrefix      string
	TableFallback        TableFallback
	MaxHeadingLevel      int
	IncludeFrontmatter   bool
	PreserveLineBreaks   bool
	IncludeEmptyParagraphs bool
	ListMarker           rune
	ParagraphSpacing     bool
	EscapeSpecialChars   bool
	Cleanup              *CleanupOptions
	HeadingConfig        *heading.Config
	RevisionHandling     RevisionHandling
}

// DefaultOptions returns the renderer's baseline defaults.
func DefaultOptions() *Options {
	return &Options{
		MaxHeadingLevel:        4,
		IncludeFrontmatter:     false,
		PreserveLineBreaks:     true,
		IncludeEmptyParagraphs: false,
		ListMarker:             '-',
		ParagraphSpacing:       true,
		EscapeSpecialChars:     true,
		RevisionHandling:       RevisionAcceptAll,
	}
}

// JSONFormat selects compact or pretty-printed JSON output.
type JSONFormat int

const (
	JSONCompact JSONFormat = iota
	JSONPretty
)
