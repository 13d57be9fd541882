// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// RefreshHandler triggers a feed reload.
type RefreshHandler struct {
	deps Dependencies
}

// NewRefreshHandler creates a new refresh handler.
func NewRefreshHandler(deps Dependencies) *RefreshHandler {
	return &RefreshHandler{deps: deps}
}

type refreshResponse struct {
	Status string `json:"status"`
}

// HandleRefresh handles POST /api/refresh requests. A failed reload keeps
// the previous snapshot and reports 502.
func (h *RefreshHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	const op = "api.refresh"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if err := h.deps.Refresh(r.Context()); err != nil {
		writeError(w, http.StatusBadGateway, "refresh_failed", WrapKind(op, ErrRefresh, err))
		return
	}
	writeJSON(w, http.StatusOK, refreshResponse{Status: "ok"})
}
