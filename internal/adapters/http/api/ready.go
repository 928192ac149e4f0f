package api

import "net/http"

// ReadyHandler reports whether capture is still running.
type ReadyHandler struct {
	deps Dependencies
}

// NewReadyHandler creates a new readiness handler.
func NewReadyHandler(deps Dependencies) *ReadyHandler {
	return &ReadyHandler{deps: deps}
}

type readyResponse struct {
	Status string `json:"status"`
	RunID  any    `json:"run_id,omitempty"`
}

// HandleReady handles GET /readyz. It answers 503 once capture has failed
// or stopped.
func (h *ReadyHandler) HandleReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
		return
	}
	if err := h.deps.Err(); err != nil {
		writeError(w, http.StatusServiceUnavailable, "capture_failed", err)
		return
	}
	stats := h.deps.GetStats()
	if started, _ := stats["started"].(bool); !started {
		writeError(w, http.StatusServiceUnavailable, "not_capturing", nil)
		return
	}
	writeJSON(w, http.StatusOK, readyResponse{Status: "capturing", RunID: stats["runId"]})
}
