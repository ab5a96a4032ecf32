package opc

import "testing"

func TestReadContentTypes(t *testing.T) {
	manifest := `<?xml version="1.0"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`
	data := buildZip(t, map[string]string{
		ContentTypesPath:    manifest,
		"word/document.xml": "<document/>",
	})
	c, err := FromBytes(data)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}

	ct, err := c.ReadContentTypes()
	if err != nil {
		t.Fatalf("ReadContentTypes: %v", err)
	}

	if ct.Defaults["xml"] != "application/xml" {
		t.Errorf("Defaults[xml] = %q", ct.Defaults["xml"])
	}
	if ct.Overrides["/word/document.xml"] != ContentTypeDocumentMain {
		t.Errorf("Overrides[/word/document.xml] = %q", ct.Overrides["/word/document.xml"])
	}

	if got := ct.ContainsAny(ContentTypeWorkbookMain); got != "" {
		t.Errorf("ContainsAny(workbook) = %q, want empty", got)
	}
	if got := ct.ContainsAny(ContentTypeDocumentMain); got != ContentTypeDocumentMain {
		t.Errorf("ContainsAny(document) = %q, want %q", got, ContentTypeDocumentMain)
	}
}

func TestReadContentTypes_MissingFile(t *testing.T) {
	data := buildZip(t, map[string]string{"word/document.xml": "<document/>"})
	c, err := FromBytes(data)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if _, err := c.ReadContentTypes(); err == nil {
		t.Error("expected an error when [Content_Types].xml is absent")
	}
}
