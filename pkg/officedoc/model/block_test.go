package model

import "testing"

func TestNewParagraphBlock(t *testing.T) {
	p := &Paragraph{Heading: H2}
	b := NewParagraphBlock(p)

	if b.Type != BlockParagraph {
		t.Errorf("Type = %v, want %v", b.Type, BlockParagraph)
	}
	if b.Paragraph != p {
		t.Error("Paragraph should point at the wrapped value")
	}
	if b.Table != nil || b.Image != nil {
		t.Error("only Paragraph should be set")
	}
}

func TestNewTableBlock(t *testing.T) {
	tbl := &Table{Rows: []Row{{Cells: []Cell{{}}}}}
	b := NewTableBlock(tbl)

	if b.Type != BlockTable {
		t.Errorf("Type = %v, want %v", b.Type, BlockTable)
	}
	if b.Table != tbl {
		t.Error("Table should point at the wrapped value")
	}
}

func TestNewImageBlock(t *testing.T) {
	img := &ImageRef{ResourceID: "rId4", Alt: "a logo"}
	b := NewImageBlock(img)

	if b.Type != BlockImage {
		t.Errorf("Type = %v, want %v", b.Type, BlockImage)
	}
	if b.Image != img {
		t.Error("Image should point at the wrapped value")
	}
}

func TestNewPageBreakBlock(t *testing.T) {
	b := NewPageBreakBlock()
	if b.Type != BlockPageBreak {
		t.Errorf("Type = %v, want %v", b.Type, BlockPageBreak)
	}
	if b.Paragraph != nil || b.Table != nil || b.Image != nil {
		t.Error("a page break block should carry no payload")
	}
}

func TestNewSectionBreakBlock(t *testing.T) {
	b := NewSectionBreakBlock()
	if b.Type != BlockSectionBreak {
		t.Errorf("Type = %v, want %v", b.Type, BlockSectionBreak)
	}
}
