package infra

import (
	"net/http"
	"time"

	"github.com/mandalnilabja/artgen/internal/types"
	"github.com/mandalnilabja/artgen/internal/version"
)

// APIName identifies the generation backend in status responses.
const APIName = "clipdrop"

// RootStatus returns JSON status and version information at /. Any other
// path gets a JSON 404, and non-GET methods on / get a JSON 405.
func (h *Handlers) RootStatus(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		types.WriteError(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		types.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	response := map[string]any{
		"name":      "artgen",
		"version":   version.Version,
		"status":    "running",
		"uptime_s":  int64(time.Since(h.StartTime).Seconds()),
		"endpoints": []string{"POST /generate-image", "GET /health"},
	}
	types.WriteJSON(w, http.StatusOK, response)
}

// HealthCheck returns a fixed liveness payload. It never touches upstreams.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	types.WriteJSON(w, http.StatusOK, types.HealthResponse{
		Status:  "healthy",
		Service: h.Service,
		Version: version.Version,
		API:     APIName,
	})
}
