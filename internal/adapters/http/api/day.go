// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strings"

	"github.com/nlsvndrp/aperowo-nils/internal/domain/calendar"
	"github.com/nlsvndrp/aperowo-nils/internal/domain/model"
)

// DayHandler serves the events of a single day.
type DayHandler struct {
	deps Dependencies
}

// NewDayHandler creates a new day handler.
func NewDayHandler(deps Dependencies) *DayHandler {
	return &DayHandler{deps: deps}
}

type dayResponse struct {
	Day    string        `json:"day"`
	Events []model.Event `json:"events"`
}

// HandleGetDay handles GET /api/day/{iso} requests. A day without events is
// a regular response with an empty list, not an error.
func (h *DayHandler) HandleGetDay(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_day"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	iso := strings.TrimPrefix(r.URL.Path, "/api/day/")
	if iso == "" || strings.Contains(iso, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	day, err := calendar.ParseDay(iso)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	canonical := day.Format(calendar.ISODay)
	events := h.deps.Day(r.Context(), canonical)
	if events == nil {
		events = []model.Event{}
	}
	writeJSON(w, http.StatusOK, dayResponse{Day: canonical, Events: events})
}
