package render

import "testing"

func TestNewCleanupOptions_Minimal(t *testing.T) {
	opts := NewCleanupOptions(CleanupMinimal)
	if !opts.NormalizeUnicode || !opts.CollapseBlankLines || !opts.CollapseInlineSpaces {
		t.Errorf("CleanupMinimal = %+v, want the three baseline flags set", opts)
	}
	if opts.RemovePUA || opts.DropPageNumberLines || opts.DropFooterPhrases {
		t.Errorf("CleanupMinimal = %+v, want the aggressive-only flags unset", opts)
	}
}

func TestNewCleanupOptions_Aggressive(t *testing.T) {
	opts := NewCleanupOptions(CleanupAggressive)
	if !opts.RemovePUA || !opts.DropPageNumberLines || !opts.DropFooterPhrases ||
		!opts.DropTOCLeaderLines || !opts.PreserveFrontmatter || !opts.DropSeparatorLines {
		t.Errorf("CleanupAggressive = %+v, want every flag set", opts)
	}
}

func TestNewCleanupOptions_DefaultDoesNotRemovePUA(t *testing.T) {
	opts := NewCleanupOptions(CleanupDefault)
	if opts.RemovePUA || opts.DropTOCLeaderLines {
		t.Errorf("CleanupDefault = %+v, want RemovePUA/DropTOCLeaderLines unset", opts)
	}
	if !opts.DropPageNumberLines || !opts.PreserveFrontmatter {
		t.Errorf("CleanupDefault = %+v, want page-number and frontmatter flags set", opts)
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.MaxHeadingLevel != 4 {
		t.Errorf("MaxHeadingLevel = %d, want 4", opts.MaxHeadingLevel)
	}
	if opts.ListMarker != '-' {
		t.Errorf("ListMarker = %q, want '-'", opts.ListMarker)
	}
	if opts.RevisionHandling != RevisionAcceptAll {
		t.Errorf("RevisionHandling = %v, want RevisionAcceptAll", opts.RevisionHandling)
	}
	if opts.Cleanup != nil {
		t.Error("DefaultOptions should leave Cleanup nil (caller opts in)")
	}
}
