package opc

import "testing"

func TestParseRelationships(t *testing.T) {
	data := []byte(`<?xml version="1.0"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/image1.png"/>
  <Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/image2.png"/>
  <Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
</Relationships>`)

	rels, err := parseRelationships(data)
	if err != nil {
		t.Fatalf("parseRelationships: %v", err)
	}

	images := rels.ByType(RelTypeImage)
	if len(images) != 2 {
		t.Fatalf("ByType(image) = %d relationships, want 2", len(images))
	}

	styles := rels.ByType(RelTypeStyles)
	if len(styles) != 1 || styles[0].Target != "styles.xml" {
		t.Errorf("ByType(styles) = %+v", styles)
	}

	if _, ok := rels.Get("rId9"); ok {
		t.Error("Get should not find an unknown id")
	}
}

func TestRelationships_NilSafe(t *testing.T) {
	var rels *Relationships
	if _, ok := rels.Get("rId1"); ok {
		t.Error("Get on a nil *Relationships should return ok=false")
	}
	if got := rels.ByType(RelTypeImage); got != nil {
		t.Error("ByType on a nil *Relationships should return nil")
	}
	if got := rels.All(); got != nil {
		t.Error("All on a nil *Relationships should return nil")
	}
}

func TestRelsPathFor(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"nested part", "word/document.xml", "word/_rels/document.xml.rels"},
		{"root part", "document.xml", "_rels/document.xml.rels"},
		{"deeply nested", "ppt/slides/slide1.xml", "ppt/slides/_rels/slide1.xml.rels"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := relsPathFor(tt.in); got != tt.want {
				t.Errorf("relsPathFor(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitPath(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantDir  string
		wantFile string
	}{
		{"nested", "word/document.xml", "word", "document.xml"},
		{"root", "document.xml", "", "document.xml"},
		{"leading slash", "/word/document.xml", "word", "document.xml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, file := splitPath(tt.in)
			if dir != tt.wantDir || file != tt.wantFile {
				t.Errorf("splitPath(%q) = (%q, %q), want (%q, %q)", tt.in, dir, file, tt.wantDir, tt.wantFile)
			}
		})
	}
}
