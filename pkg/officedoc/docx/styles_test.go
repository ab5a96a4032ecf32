package docx

import (
	"testing"

	"github.com/vortex/officedoc/pkg/officedoc/model"
)

const sampleStylesXML = `<?xml version="1.0"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:style w:type="paragraph" w:styleId="Normal" w:default="1">
    <w:name w:val="Normal"/>
  </w:style>
  <w:style w:type="paragraph" w:styleId="Heading1">
    <w:name w:val="heading 1"/>
    <w:basedOn w:val="Normal"/>
    <w:pPr><w:outlineLvl w:val="0"/><w:jc w:val="center"/></w:pPr>
    <w:rPr><w:b/><w:sz w:val="32"/></w:rPr>
  </w:style>
  <w:style w:type="character" w:styleId="Emphasis">
    <w:name w:val="Emphasis"/>
    <w:rPr><w:i/></w:rPr>
  </w:style>
</w:styles>`

func TestParseStyles_ResolvesInheritance(t *testing.T) {
	st, err := ParseStyles(sampleStylesXML)
	if err != nil {
		t.Fatalf("ParseStyles: %v", err)
	}

	r := st.GetResolved("Heading1")
	if !r.RunStyle.Bold || r.RunStyle.Size != 32 {
		t.Errorf("RunStyle = %+v, want Bold and Size=32", r.RunStyle)
	}
	if r.OutlineLevel != 0 {
		t.Errorf("OutlineLevel = %d, want 0", r.OutlineLevel)
	}
	if !r.HasAlign || r.Alignment != model.AlignCenter {
		t.Errorf("Alignment = %v (HasAlign=%v), want AlignCenter", r.Alignment, r.HasAlign)
	}
	if r.Name != "heading 1" {
		t.Errorf("Name = %q, want %q", r.Name, "heading 1")
	}
}

func TestParseStyles_UnknownIDYieldsZeroValue(t *testing.T) {
	st, err := ParseStyles(sampleStylesXML)
	if err != nil {
		t.Fatalf("ParseStyles: %v", err)
	}
	r := st.GetResolved("NoSuchStyle")
	if r.OutlineLevel != -1 || r.HasAlign {
		t.Errorf("got %+v, want zero-value resolved (OutlineLevel -1, HasAlign false)", r)
	}
}

func TestParseStyles_CycleGuard(t *testing.T) {
	cyclic := `<?xml version="1.0"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:style w:type="paragraph" w:styleId="A"><w:name w:val="A"/><w:basedOn w:val="B"/></w:style>
  <w:style w:type="paragraph" w:styleId="B"><w:name w:val="B"/><w:basedOn w:val="A"/></w:style>
</w:styles>`
	st, err := ParseStyles(cyclic)
	if err != nil {
		t.Fatalf("ParseStyles: %v", err)
	}
	r := st.GetResolved("A")
	if r.Name == "" {
		t.Error("expected a resolved name from the cyclic chain")
	}
}

func TestHeadingLevelFromOutline(t *testing.T) {
	tests := []struct {
		in   int
		want model.HeadingLevel
	}{
		{-1, model.HeadingNone},
		{0, model.H1},
		{3, model.H4},
		{10, model.H6},
	}
	for _, tt := range tests {
		if got := headingLevelFromOutline(tt.in); got != tt.want {
			t.Errorf("headingLevelFromOutline(%d) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestHeadingLevelFromName(t *testing.T) {
	tests := []struct {
		in   string
		want model.HeadingLevel
	}{
		{"Title", model.H1},
		{"Subtitle", model.H2},
		{"Heading 2", model.H2},
		{"heading3", model.H3},
		{"Normal", model.HeadingNone},
	}
	for _, tt := range tests {
		if got := headingLevelFromName(tt.in); got != tt.want {
			t.Errorf("headingLevelFromName(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseAlignment(t *testing.T) {
	tests := []struct {
		in   string
		want model.Alignment
	}{
		{"center", model.AlignCenter},
		{"right", model.AlignRight},
		{"end", model.AlignRight},
		{"both", model.AlignJustify},
		{"distribute", model.AlignJustify},
		{"", model.AlignLeft},
		{"start", model.AlignLeft},
	}
	for _, tt := range tests {
		if got := parseAlignment(tt.in); got != tt.want {
			t.Errorf("parseAlignment(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
