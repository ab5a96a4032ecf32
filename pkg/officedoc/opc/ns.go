package opc

// Nsmap maps the namespace prefixes officedoc's parsers look for to their
// canonical URIs. officedoc never emits XML, so this table exists purely
// for documentation/validation purposes — etree element matching in this
// codebase compares only the local tag name (etree.Element.Tag), and
// attribute lookups such as "r:id" or "w:val" match the literal prefix
// text used by the source document; no URI is resolved.
var Nsmap = map[string]string{
	"a":   "http://schemas.openxmlformats.org/drawingml/2006/main",
	"c":   "http://schemas.openxmlformats.org/drawingml/2006/chart",
	"cp":  "http://schemas.openxmlformats.org/package/2006/metadata/core-properties",
	"dc":  "http://purl.org/dc/elements/1.1/",
	"dcterms": "http://purl.org/dc/terms/",
	"r":   "http://schemas.openxmlformats.org/officeDocument/2006/relationships",
	"w":   "http://schemas.openxmlformats.org/wordprocessingml/2006/main",
	"wp":  "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing",
	"pic": "http://schemas.openxmlformats.org/drawingml/2006/picture",
	"ct":  "http://schemas.openxmlformats.org/package/2006/content-types",
	"pr":  "http://schemas.openxmlformats.org/package/2006/relationships",
	"p":   "http://schemas.openxmlformats.org/presentationml/2006/main",
	"x":   "http://schemas.openxmlformats.org/spreadsheetml/2006/main",
}

// Content type URIs for the three main parts.
const (
	ContentTypeDocumentMain     = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	ContentTypeWorkbookMain     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"
	ContentTypePresentationMain = "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"
)

// Relationship type URIs used to navigate from a package/part to its
// related parts.
const (
	RelTypeOfficeDocument  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	RelTypeCoreProperties  = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	RelTypeImage           = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	RelTypeHyperlink       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
	RelTypeStyles          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	RelTypeNumbering       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering"
	RelTypeSharedStrings   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/sharedStrings"
	RelTypeWorksheet       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet"
	RelTypeSlide           = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	RelTypeNotesSlide      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesSlide"
	RelTypeChart           = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/chart"
)
