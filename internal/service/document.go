// Package service implements the document-service layer consumed by
// internal/handler: parsing an uploaded OOXML package and rendering it to
// one of the supported output formats.
package service

import (
	"fmt"

	"github.com/vortex/officedoc/pkg/officedoc"
	"github.com/vortex/officedoc/pkg/officedoc/detect"
	"github.com/vortex/officedoc/pkg/officedoc/model"
	"github.com/vortex/officedoc/pkg/officedoc/render"
)

// DocumentInfo holds metadata extracted after parsing a document.
type DocumentInfo struct {
	Format        string `json:"format"`
	Title         string `json:"title,omitempty"`
	Author        string `json:"author,omitempty"`
	Subject       string `json:"subject,omitempty"`
	SectionCount  int    `json:"section_count"`
	ResourceCount int    `json:"resource_count"`
}

// OutputFormat selects the rendering performed by Convert.
type OutputFormat string

const (
	FormatMarkdown OutputFormat = "markdown"
	FormatText     OutputFormat = "text"
	FormatJSON     OutputFormat = "json"
)

// DocumentService defines the operations exposed over HTTP.
type DocumentService interface {
	// Parse reads an OOXML package and returns its metadata.
	Parse(data []byte) (*DocumentInfo, error)

	// Convert parses an OOXML package and renders it to the given format,
	// returning the rendered body and its MIME content type.
	Convert(data []byte, format OutputFormat, opts *render.Options) (body string, contentType string, err error)
}

type documentService struct{}

// NewDocumentService creates a new DocumentService instance.
func NewDocumentService() DocumentService {
	return &documentService{}
}

func (s *documentService) Parse(data []byte) (*DocumentInfo, error) {
	doc, err := officedoc.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("service: parse document: %w", err)
	}

	format, _ := detect.FromBytes(data)
	return &DocumentInfo{
		Format:        format.String(),
		Title:         doc.Metadata.Title,
		Author:        doc.Metadata.Author,
		Subject:       doc.Metadata.Subject,
		SectionCount:  len(doc.Sections),
		ResourceCount: len(doc.Resources),
	}, nil
}

func (s *documentService) Convert(data []byte, format OutputFormat, opts *render.Options) (string, string, error) {
	doc, err := officedoc.ParseBytes(data)
	if err != nil {
		return "", "", fmt.Errorf("service: parse document: %w", err)
	}
	if opts == nil {
		opts = render.DefaultOptions()
	}

	switch format {
	case FormatMarkdown:
		out, err := officedoc.ToMarkdown(doc, opts)
		return out, "text/markdown; charset=utf-8", wrapErr(err)
	case FormatText:
		out, err := officedoc.ToText(doc, opts)
		return out, "text/plain; charset=utf-8", wrapErr(err)
	case FormatJSON:
		out, err := officedoc.ToJSON(doc, render.JSONPretty)
		return out, "application/json", wrapErr(err)
	default:
		return "", "", model.NewError(model.ErrInvalidData, nil, fmt.Sprintf("unsupported output format %q", format))
	}
}

func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("service: render document: %w", err)
}
