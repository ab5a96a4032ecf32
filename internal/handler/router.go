package handler

import (
	"log/slog"
	"net/http"

	"github.com/vortex/officedoc/pkg/officedoc/render"

	"github.com/vortex/officedoc/internal/middleware"
	"github.com/vortex/officedoc/internal/service"
)

// NewRouter builds the HTTP mux with all routes and middleware.
func NewRouter(logger *slog.Logger, svc service.DocumentService, defaultOpts *render.Options, maxBodyBytes int64) http.Handler {
	mux := http.NewServeMux()

	doc := NewDocumentHandler(svc, defaultOpts)

	// Health endpoints
	mux.HandleFunc("GET /health", Health)
	mux.HandleFunc("GET /ready", Health)

	// Document endpoints
	mux.HandleFunc("POST /api/v1/documents/parse", doc.Parse)
	mux.HandleFunc("POST /api/v1/documents/convert", doc.Convert)

	// Apply middleware chain (innermost first; Logging ends up outermost)
	var h http.Handler = mux
	h = middleware.MaxBodySize(maxBodyBytes)(h)
	h = middleware.CORS(h)
	h = middleware.Recovery(logger)(h)
	h = middleware.Logging(logger)(h)

	return h
}
