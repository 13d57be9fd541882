// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/nlsvndrp/aperowo-nils/internal/domain/calendar"
	"github.com/nlsvndrp/aperowo-nils/internal/domain/model"
	"github.com/nlsvndrp/aperowo-nils/internal/domain/navigate"
)

// MonthHandler serves the month view: grid, active day and day events.
type MonthHandler struct {
	deps Dependencies
}

// NewMonthHandler creates a new month handler.
func NewMonthHandler(deps Dependencies) *MonthHandler {
	return &MonthHandler{deps: deps}
}

// monthResponse is the wire shape of a month view.
type monthResponse struct {
	Year      int                      `json:"year"`
	Month     int                      `json:"month"`
	ActiveDay string                   `json:"active_day,omitempty"`
	Weeks     [][]calendar.Cell        `json:"weeks"`
	Days      map[string][]model.Event `json:"days"`
	BaseURL   string                   `json:"base_url,omitempty"`
}

// HandleGetMonth handles GET /api/month requests.
//
// Query parameters: year and month (1-12, default: the current month),
// delta (months to shift before rendering), select (ISO day to activate,
// switching the displayed month when needed). Delta is applied before
// select, mirroring the navigation transitions.
func (h *MonthHandler) HandleGetMonth(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_month"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	now := time.Now()
	year, month := now.Year(), int(now.Month())

	q := r.URL.Query()
	if s := q.Get("year"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		year = v
	}
	if s := q.Get("month"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 || v > 12 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		month = v
	}

	ix := h.deps.Index(r.Context())
	view := navigate.View{Year: year, Month: time.Month(month)}

	if s := q.Get("delta"); s != "" {
		delta, err := strconv.Atoi(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		view = navigate.Goto(view, delta, ix)
	}
	if sel := q.Get("select"); sel != "" {
		var err error
		view, err = navigate.Select(view, sel)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
	}
	if view.ActiveDay == "" {
		if day, ok := ix.FirstDayIn(view.Year, view.Month); ok {
			view.ActiveDay = day
		}
	}

	weeks := calendar.Matrix(view.Year, view.Month)
	days := make(map[string][]model.Event)
	for _, week := range weeks {
		for _, cell := range week {
			if events := ix.Events(cell.ISO); len(events) > 0 {
				days[cell.ISO] = events
			}
		}
	}

	writeJSON(w, http.StatusOK, monthResponse{
		Year:      view.Year,
		Month:     int(view.Month),
		ActiveDay: view.ActiveDay,
		Weeks:     weeks,
		Days:      days,
		BaseURL:   h.deps.BaseURL(),
	})
}
