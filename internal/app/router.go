package app

import (
	"net/http"

	"github.com/mandalnilabja/artgen/internal/transport/http/handler"
	"github.com/mandalnilabja/artgen/internal/transport/http/middleware"
	"go.uber.org/zap"
)

// RouterOptions configures the HTTP router behavior.
type RouterOptions struct {
	Logger *zap.Logger
}

// NewRouter creates and configures the HTTP router with all application routes.
// Returns an http.Handler with middleware applied.
func NewRouter(repo *handler.Repo, opts *RouterOptions) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /generate-image", repo.Images.Generate)
	mux.HandleFunc("GET /health", repo.Infra.HealthCheck)

	// Root returns JSON status and answers every unmatched route with JSON
	mux.HandleFunc("/", repo.Infra.RootStatus)

	// Apply middleware chain (order: outer to inner)
	var h http.Handler = mux

	logger := zap.NewNop()
	if opts != nil && opts.Logger != nil {
		logger = opts.Logger
	}

	h = middleware.Recover(logger)(h)
	h = middleware.RequestLogger(logger)(h)

	// Request ID (always applied)
	h = middleware.RequestID(h)

	// CORS (always applied for browser clients)
	h = middleware.CORS(h)

	return h
}
