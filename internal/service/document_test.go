package service

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/vortex/officedoc/pkg/officedoc/render"
)

const minimalPackageRels = `<?xml version="1.0"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const minimalDocumentRels = `<?xml version="1.0"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"/>`

const minimalDocumentXML = `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Hello</w:t></w:r></w:p>
  </w:body>
</w:document>`

const minimalCoreProps = `<?xml version="1.0"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
                    xmlns:dc="http://purl.org/dc/elements/1.1/">
  <dc:title>Sample Title</dc:title>
</cp:coreProperties>`

func buildDocxBytes(t *testing.T) []byte {
	t.Helper()
	files := map[string]string{
		"_rels/.rels":                  minimalPackageRels,
		"word/document.xml":            minimalDocumentXML,
		"word/_rels/document.xml.rels": minimalDocumentRels,
		"docProps/core.xml":            minimalCoreProps,
	}
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
	return buf.Bytes()
}

func TestParse_ReturnsDocumentInfo(t *testing.T) {
	svc := NewDocumentService()
	info, err := svc.Parse(buildDocxBytes(t))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if info.Format != "Docx" {
		t.Errorf("Format = %q, want Docx", info.Format)
	}
	if info.Title != "Sample Title" {
		t.Errorf("Title = %q, want %q", info.Title, "Sample Title")
	}
	if info.SectionCount != 1 {
		t.Errorf("SectionCount = %d, want 1", info.SectionCount)
	}
}

func TestParse_InvalidBytesReturnsError(t *testing.T) {
	svc := NewDocumentService()
	if _, err := svc.Parse([]byte("not a zip")); err == nil {
		t.Error("expected an error for non-ZIP input")
	}
}

func TestConvert_MarkdownAndTextAndJSON(t *testing.T) {
	svc := NewDocumentService()
	data := buildDocxBytes(t)

	md, ct, err := svc.Convert(data, FormatMarkdown, nil)
	if err != nil {
		t.Fatalf("Convert(markdown): %v", err)
	}
	if !strings.Contains(md, "Hello") || ct != "text/markdown; charset=utf-8" {
		t.Errorf("Convert(markdown) = (%q, %q)", md, ct)
	}

	text, ct, err := svc.Convert(data, FormatText, nil)
	if err != nil {
		t.Fatalf("Convert(text): %v", err)
	}
	if !strings.Contains(text, "Hello") || ct != "text/plain; charset=utf-8" {
		t.Errorf("Convert(text) = (%q, %q)", text, ct)
	}

	js, ct, err := svc.Convert(data, FormatJSON, nil)
	if err != nil {
		t.Fatalf("Convert(json): %v", err)
	}
	if !strings.Contains(js, "Hello") || ct != "application/json" {
		t.Errorf("Convert(json) = (%q, %q)", js, ct)
	}
}

func TestConvert_UnsupportedFormat(t *testing.T) {
	svc := NewDocumentService()
	_, _, err := svc.Convert(buildDocxBytes(t), OutputFormat("pdf"), render.DefaultOptions())
	if err == nil {
		t.Error("expected an error for an unsupported output format")
	}
}
