// Package officedoc parses Word, Excel, and PowerPoint OOXML packages into
// a format-agnostic document model and renders that model to Markdown,
// plain text, or JSON. It is the library's external surface; the parser,
// model, and render packages underneath stay free of process state.
package officedoc

import (
	"io"

	"github.com/vortex/officedoc/pkg/officedoc/detect"
	"github.com/vortex/officedoc/pkg/officedoc/docx"
	"github.com/vortex/officedoc/pkg/officedoc/model"
	"github.com/vortex/officedoc/pkg/officedoc/opc"
	"github.com/vortex/officedoc/pkg/officedoc/pptx"
	"github.com/vortex/officedoc/pkg/officedoc/render"
	"github.com/vortex/officedoc/pkg/officedoc/xlsx"
)

// ParseFile opens and parses the OOXML package at path, detecting its
// format before dispatching to the matching parser.
func ParseFile(path string) (*model.Document, error) {
	c, err := opc.Open(path)
	if err != nil {
		return nil, err
	}
	return parseContainer(c)
}

// ParseBytes parses an in-memory OOXML package.
func ParseBytes(data []byte) (*model.Document, error) {
	c, err := opc.FromBytes(data)
	if err != nil {
		return nil, err
	}
	return parseContainer(c)
}

// ParseReader parses an OOXML package behind a seekable reader. Every
// archive entry is still read into memory when the container is opened.
func ParseReader(r io.ReaderAt, size int64) (*model.Document, error) {
	c, err := opc.FromReader(r, size)
	if err != nil {
		return nil, err
	}
	return parseContainer(c)
}

func parseContainer(c *opc.Container) (*model.Document, error) {
	format, err := detect.FromContainer(c)
	if err != nil {
		return nil, err
	}
	switch format {
	case detect.Docx:
		return docx.Parse(c)
	case detect.Xlsx:
		return xlsx.Parse(c)
	case detect.Pptx:
		return pptx.Parse(c)
	default:
		return nil, model.NewError(model.ErrUnknownFormat, nil, "unable to determine document format")
	}
}

// ExtractText parses the file at path and renders it straight to plain
// text using render.DefaultOptions, for callers that only want the text
// content and don't need the intermediate Document.
func ExtractText(path string) (string, error) {
	doc, err := ParseFile(path)
	if err != nil {
		return "", err
	}
	return ToText(doc, render.DefaultOptions())
}

// ToMarkdown renders doc as Markdown. A nil opts uses render.DefaultOptions.
func ToMarkdown(doc *model.Document, opts *render.Options) (string, error) {
	return render.Markdown(doc, opts)
}

// ToText renders doc as plain text. A nil opts uses render.DefaultOptions.
func ToText(doc *model.Document, opts *render.Options) (string, error) {
	return render.Text(doc, opts)
}

// ToJSON serializes doc to JSON in the given format.
func ToJSON(doc *model.Document, format render.JSONFormat) (string, error) {
	return render.JSON(doc, format)
}
