package docx

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/vortex/officedoc/pkg/officedoc/model"
	"github.com/vortex/officedoc/pkg/officedoc/opc"
)

func buildContainer(t *testing.T, files map[string]string) *opc.Container {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("Create(%q): %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("Write(%q): %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip.Close: %v", err)
	}
	c, err := opc.FromBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("opc.FromBytes: %v", err)
	}
	return c
}

const minimalPackageRels = `<?xml version="1.0"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const minimalDocumentRels = `<?xml version="1.0"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
</Relationships>`

const minimalDocumentXML = `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p>
      <w:pPr><w:pStyle w:val="Heading1"/></w:pPr>
      <w:r><w:t>Document Title</w:t></w:r>
    </w:p>
    <w:p>
      <w:r><w:rPr><w:b/></w:rPr><w:t>Bold text, </w:t></w:r>
      <w:r><w:t>plain text.</w:t></w:r>
    </w:p>
    <w:tbl>
      <w:tr>
        <w:tc><w:p><w:r><w:t>A1</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>B1</w:t></w:r></w:p></w:tc>
      </w:tr>
    </w:tbl>
  </w:body>
</w:document>`

func TestParse_BuildsDocumentFromMinimalPackage(t *testing.T) {
	c := buildContainer(t, map[string]string{
		"_rels/.rels":                 minimalPackageRels,
		"word/document.xml":           minimalDocumentXML,
		"word/_rels/document.xml.rels": minimalDocumentRels,
		"word/styles.xml":             sampleStylesXML,
		"docProps/core.xml":           `<?xml version="1.0"?><cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/"><dc:title>Test Doc</dc:title></cp:coreProperties>`,
	})

	doc, err := Parse(c)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if doc.Metadata.Title != "Test Doc" {
		t.Errorf("Metadata.Title = %q, want %q", doc.Metadata.Title, "Test Doc")
	}
	if len(doc.Sections) != 1 {
		t.Fatalf("len(Sections) = %d, want 1", len(doc.Sections))
	}

	content := doc.Sections[0].Content
	if len(content) != 3 {
		t.Fatalf("len(Content) = %d, want 3 (title paragraph, body paragraph, table)", len(content))
	}

	title := content[0]
	if title.Type != model.BlockParagraph || title.Paragraph.Heading != model.H1 {
		t.Errorf("first block = %+v, want a H1 paragraph", title)
	}
	if got := title.Paragraph.Runs[0].Text; got != "Document Title" {
		t.Errorf("title text = %q", got)
	}

	body := content[1]
	if len(body.Paragraph.Runs) != 2 || !body.Paragraph.Runs[0].Style.Bold {
		t.Fatalf("body paragraph runs = %+v, want first run bold", body.Paragraph.Runs)
	}

	table := content[2]
	if table.Type != model.BlockTable || table.Table.ColumnCount() != 2 {
		t.Errorf("table block = %+v, want a 2-column table", table)
	}
}

const tableCellStyleDocumentXML = `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:tbl>
      <w:tr>
        <w:tc>
          <w:p>
            <w:pPr><w:pStyle w:val="Heading1"/></w:pPr>
            <w:r><w:t>Styled cell</w:t></w:r>
          </w:p>
        </w:tc>
      </w:tr>
    </w:tbl>
  </w:body>
</w:document>`

func TestParse_TableCellParagraphResolvesNamedStyle(t *testing.T) {
	c := buildContainer(t, map[string]string{
		"_rels/.rels":                  minimalPackageRels,
		"word/document.xml":            tableCellStyleDocumentXML,
		"word/_rels/document.xml.rels": minimalDocumentRels,
		"word/styles.xml":              sampleStylesXML,
	})

	doc, err := Parse(c)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	content := doc.Sections[0].Content
	if len(content) != 1 || content[0].Type != model.BlockTable {
		t.Fatalf("content = %+v, want a single table block", content)
	}

	cell := content[0].Table.Rows[0].Cells[0]
	if len(cell.Content) != 1 {
		t.Fatalf("cell.Content = %+v, want 1 paragraph", cell.Content)
	}
	cp := cell.Content[0]
	if cp.StyleName != "heading 1" {
		t.Errorf("cell paragraph StyleName = %q, want %q", cp.StyleName, "heading 1")
	}
	if len(cp.Runs) != 1 || !cp.Runs[0].Style.Bold || cp.Runs[0].Style.Size != 32 {
		t.Errorf("cell paragraph runs = %+v, want the named style's Bold/Size=32 to apply", cp.Runs)
	}
}

func TestParse_MissingMainDocumentRelationship(t *testing.T) {
	c := buildContainer(t, map[string]string{
		"_rels/.rels": `<?xml version="1.0"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"/>`,
	})
	if _, err := Parse(c); err == nil {
		t.Fatal("expected an error when the officeDocument relationship is absent")
	}
}
