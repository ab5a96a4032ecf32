// Package detect identifies which of the three OOXML formats a container
// holds, in priority order: ZIP magic, then [Content_Types].xml main-part
// URIs, then folder-structure fallback.
package detect

import (
	"io"

	"github.com/vortex/officedoc/pkg/officedoc/model"
	"github.com/vortex/officedoc/pkg/officedoc/opc"
)

// FormatType is the detected OOXML document kind.
type FormatType int

const (
	Unknown FormatType = iota
	Docx
	Xlsx
	Pptx
)

func (f FormatType) String() string {
	switch f {
	case Docx:
		return "Docx"
	case Xlsx:
		return "Xlsx"
	case Pptx:
		return "Pptx"
	default:
		return "Unknown"
	}
}

// FromPath detects the format of the OOXML file at path.
func FromPath(path string) (FormatType, error) {
	c, err := opc.Open(path)
	if err != nil {
		return Unknown, err
	}
	return FromContainer(c)
}

// FromBytes detects the format of an in-memory OOXML file. Non-ZIP input
// (missing magic bytes) yields Unknown together with an ErrUnknownFormat
// error.
func FromBytes(data []byte) (FormatType, error) {
	if !opc.HasZipMagic(data) {
		return Unknown, model.NewError(model.ErrUnknownFormat, nil, "not a ZIP-packaged file")
	}
	c, err := opc.FromBytes(data)
	if err != nil {
		return Unknown, err
	}
	return FromContainer(c)
}

// FromReader detects the format of an OOXML file behind an io.ReaderAt.
func FromReader(r io.ReaderAt, size int64) (FormatType, error) {
	c, err := opc.FromReader(r, size)
	if err != nil {
		return Unknown, err
	}
	return FromContainer(c)
}

// FromContainer runs the content-types/folder-structure policy against an
// already-open Container.
func FromContainer(c *opc.Container) (FormatType, error) {
	ct, err := c.ReadContentTypes()
	if err != nil {
		if model.IsKind(err, model.ErrMissingComponent) {
			return Unknown, err
		}
		return Unknown, err
	}

	if uri := ct.ContainsAny(opc.ContentTypeDocumentMain); uri != "" {
		return Docx, nil
	}
	if uri := ct.ContainsAny(opc.ContentTypeWorkbookMain); uri != "" {
		return Xlsx, nil
	}
	if uri := ct.ContainsAny(opc.ContentTypePresentationMain); uri != "" {
		return Pptx, nil
	}

	// Folder-structure fallback: exactly one of word/, xl/, ppt/ present.
	hasWord := len(c.ListFilesWithPrefix("word/")) > 0
	hasXl := len(c.ListFilesWithPrefix("xl/")) > 0
	hasPpt := len(c.ListFilesWithPrefix("ppt/")) > 0

	count := 0
	var found FormatType
	if hasWord {
		count++
		found = Docx
	}
	if hasXl {
		count++
		found = Xlsx
	}
	if hasPpt {
		count++
		found = Pptx
	}
	if count == 1 {
		return found, nil
	}
	return Unknown, model.NewError(model.ErrUnknownFormat, nil, "no recognizable main content type or folder structure")
}
