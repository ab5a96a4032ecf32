package render

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Cleanup applies the Unicode cleanup pipeline to s, in order: Unicode
// normalize+fold, PUA removal, line cleanup, structural filter, final
// whitespace. Each stage is gated by its CleanupOptions flag,
// so a nil or all-false opts is a no-op. Idempotent: Cleanup(Cleanup(s)) ==
// Cleanup(s), since every stage only removes or canonicalizes characters
// already in canonical/removed form on a second pass.
func Cleanup(s string, opts *CleanupOptions) string {
	if opts == nil {
		return s
	}
	if opts.NormalizeUnicode {
		s = normalizeAndFold(s)
	}
	if opts.RemovePUA {
		s = removePUA(s)
	}
	if opts.DropPageNumberLines || opts.DropFooterPhrases || opts.DropTOCLeaderLines {
		s = lineCleanup(s, opts)
	}
	if opts.CollapseBlankLines || opts.DropSeparatorLines {
		s = structuralFilter(s, opts)
	}
	if opts.CollapseInlineSpaces {
		s = finalWhitespace(s)
	}
	return s
}

// foldReplacer maps decorative bullet glyphs, dash/minus variants, curly
// quotes/guillemets, and assorted Unicode space/zero-width characters to a
// small canonical set. The keys are literal glyphs; the trailing comments
// name the code points where they are hard to tell apart on screen.
var foldReplacer = strings.NewReplacer(
	"·", "•", // MIDDLE DOT -> BULLET
	"∙", "•", // BULLET OPERATOR -> BULLET
	"⁃", "•", // HYPHEN BULLET -> BULLET
	"●", "•", // BLACK CIRCLE -> BULLET
	"–", "-", // EN DASH
	"—", "-", // EM DASH
	"−", "-", // MINUS SIGN
	"‒", "-", // FIGURE DASH
	"‘", "'", // LEFT SINGLE QUOTATION MARK
	"’", "'", // RIGHT SINGLE QUOTATION MARK
	"‚", "'", // SINGLE LOW-9 QUOTATION MARK
	"‹", "'", // SINGLE LEFT ANGLE QUOTATION MARK
	"“", "\"", // LEFT DOUBLE QUOTATION MARK
	"”", "\"", // RIGHT DOUBLE QUOTATION MARK
	"„", "\"", // DOUBLE LOW-9 QUOTATION MARK
	"›", "\"", // SINGLE RIGHT ANGLE QUOTATION MARK
	"«", "\"", // LEFT DOUBLE ANGLE QUOTATION MARK
	"»", "\"", // RIGHT DOUBLE ANGLE QUOTATION MARK
	" ", " ", // NO-BREAK SPACE
	" ", " ", " ", " ", " ", " ", " ", " ",
	" ", " ", " ", " ", " ", " ", " ", " ",
	" ", " ", " ", " ", " ", " ", " ", " ",
	" ", " ", "　", " ", // IDEOGRAPHIC SPACE
	"​", "", // ZERO WIDTH SPACE
	"‌", "", // ZERO WIDTH NON-JOINER
	"‍", "", // ZERO WIDTH JOINER
	"﻿", "", // ZERO WIDTH NO-BREAK SPACE / BOM
)

func normalizeAndFold(s string) string {
	s = norm.NFC.String(s)
	return foldReplacer.Replace(s)
}

func removePUA(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if isPUA(r) {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func isPUA(r rune) bool {
	return (r >= 0xE000 && r <= 0xF8FF) ||
		(r >= 0xF0000 && r <= 0xFFFFD) ||
		(r >= 0x100000 && r <= 0x10FFFD)
}

var (
	pageNumberLine = regexp.MustCompile(`(?i)^\s*(page\s+\d+|\d{1,5})\s*$`)
	footerPhrase   = regexp.MustCompile(`(?i)all rights reserved|copyright|\x{00A9}`)
	tocDotLeader   = regexp.MustCompile(`\.{4,}\s*\d+\s*$`)
	tocEllipsis    = regexp.MustCompile(`\x{2026}\s*\d+\s*$`)
	tocHeading     = regexp.MustCompile(`(?i)^\s*(table of contents|contents)\s*$`)
)

// lineCleanup drops page-number, footer-phrase and TOC-leader lines,
// preserving any YAML frontmatter fence when PreserveFrontmatter is set.
func lineCleanup(s string, opts *CleanupOptions) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))

	inFrontmatter := false
	for i, line := range lines {
		if opts.PreserveFrontmatter && i == 0 && strings.TrimSpace(line) == "---" {
			inFrontmatter = true
			out = append(out, line)
			continue
		}
		if inFrontmatter {
			out = append(out, line)
			if strings.TrimSpace(line) == "---" {
				inFrontmatter = false
			}
			continue
		}

		if opts.DropPageNumberLines && pageNumberLine.MatchString(line) {
			continue
		}
		if opts.DropFooterPhrases && footerPhrase.MatchString(line) {
			continue
		}
		if opts.DropTOCLeaderLines && (tocDotLeader.MatchString(line) || tocEllipsis.MatchString(line) || tocHeading.MatchString(line)) {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// structuralFilter collapses runs of blank lines to one and drops
// single-separator-character lines.
func structuralFilter(s string, opts *CleanupOptions) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blankRun := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if opts.DropSeparatorLines && trimmed != "" && isSeparatorLine(trimmed) {
			continue
		}
		if trimmed == "" {
			if opts.CollapseBlankLines {
				if blankRun {
					continue
				}
				blankRun = true
			}
			out = append(out, line)
			continue
		}
		blankRun = false
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// isSeparatorLine reports whether trimmed is made up entirely of one
// repeated character drawn from "-=_*~" (a horizontal-rule-style line).
func isSeparatorLine(trimmed string) bool {
	const separators = "-=_*~"
	if trimmed == "" {
		return false
	}
	first := rune(trimmed[0])
	if !strings.ContainsRune(separators, first) {
		return false
	}
	for _, r := range trimmed {
		if r != first {
			return false
		}
	}
	return true
}

var internalSpaceRun = regexp.MustCompile(`[ \t]{2,}`)

// finalWhitespace collapses internal whitespace runs to one space,
// right-trims each line, and trims the whole document.
func finalWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		line = internalSpaceRun.ReplaceAllString(line, " ")
		lines[i] = strings.TrimRightFunc(line, unicode.IsSpace)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
