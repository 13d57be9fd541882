// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/nlsvndrp/aperowo-nils/internal/domain/dayindex"
	"github.com/nlsvndrp/aperowo-nils/internal/domain/model"
)

// Dependencies bundles what handlers need from the service layer. Using an
// interface keeps the handler layer loosely coupled to implementations.
type Dependencies interface {
	// Day returns the ordered events of one ISO day.
	Day(ctx context.Context, iso string) []model.Event

	// Index returns the current day index snapshot.
	Index(ctx context.Context) dayindex.Index

	// Events returns all loaded events.
	Events(ctx context.Context) []model.Event

	// Refresh reloads the feed and swaps the snapshot.
	Refresh(ctx context.Context) error

	// BaseURL is the host relative event URLs resolve against.
	BaseURL() string
}

// Server wires HTTP routes for the calendar API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	monthHandler   *MonthHandler
	dayHandler     *DayHandler
	eventsHandler  *EventsHandler
	refreshHandler *RefreshHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		monthHandler:   NewMonthHandler(deps),
		dayHandler:     NewDayHandler(deps),
		eventsHandler:  NewEventsHandler(deps),
		refreshHandler: NewRefreshHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/month", MetricsMiddleware(s.monthHandler.HandleGetMonth, "month"))
	mux.HandleFunc("/api/day/", MetricsMiddleware(s.dayHandler.HandleGetDay, "day"))
	mux.HandleFunc("/api/events", MetricsMiddleware(s.eventsHandler.HandleGetEvents, "events"))
	mux.HandleFunc("/api/refresh", MetricsMiddleware(s.refreshHandler.HandleRefresh, "refresh"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// Error wrapping helpers tagging failures with the operation name.

// NewKind returns kind tagged with op.
func NewKind(op string, kind error) error {
	return fmt.Errorf("%s: %w", op, kind)
}

// WrapKind wraps err under kind, tagged with op.
func WrapKind(op string, kind, err error) error {
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}

// Wrap tags err with op.
func Wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
