package handler

import (
	"io"
	"net/http"

	"github.com/vortex/officedoc/pkg/officedoc/render"
	"github.com/vortex/officedoc/pkg/response"

	"github.com/vortex/officedoc/internal/service"
)

// DocumentHandler exposes HTTP endpoints for parsing and converting OOXML
// documents.
type DocumentHandler struct {
	svc         service.DocumentService
	defaultOpts *render.Options
}

// NewDocumentHandler creates a handler backed by the given service.
// defaultOpts seeds render.Options for requests that don't override them;
// a nil value falls back to render.DefaultOptions.
func NewDocumentHandler(svc service.DocumentService, defaultOpts *render.Options) *DocumentHandler {
	if defaultOpts == nil {
		defaultOpts = render.DefaultOptions()
	}
	return &DocumentHandler{svc: svc, defaultOpts: defaultOpts}
}

// Parse handles POST /api/v1/documents/parse
// Accepts a multipart form with a "file" field containing a Word, Excel,
// or PowerPoint package. Returns JSON metadata about the document.
func (h *DocumentHandler) Parse(w http.ResponseWriter, r *http.Request) {
	data, err := readUploadedFile(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	info, err := h.svc.Parse(data)
	if err != nil {
		response.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	response.JSON(w, http.StatusOK, info)
}

// Convert handles POST /api/v1/documents/convert?format=markdown|text|json
// Accepts a Word, Excel, or PowerPoint package and returns it rendered to
// the requested format.
func (h *DocumentHandler) Convert(w http.ResponseWriter, r *http.Request) {
	data, err := readUploadedFile(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	format := service.OutputFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = service.FormatMarkdown
	}

	body, contentType, err := h.svc.Convert(data, format, h.defaultOpts)
	if err != nil {
		response.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, body)
}

// readUploadedFile extracts the file bytes from a multipart upload. It
// looks for a form field named "file".
func readUploadedFile(r *http.Request) ([]byte, error) {
	if err := r.ParseMultipartForm(100 << 20); err != nil { // 100 MB max
		return nil, err
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}
