// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"golang.org/x/text/language"

	service "github.com/okian/dragonbalance/internal/app"
	"github.com/okian/dragonbalance/internal/domain/layout"
	"github.com/okian/dragonbalance/internal/domain/roster"
	"github.com/okian/dragonbalance/internal/platform/i18n"
)

// maxRequestBytes bounds request bodies. A full DB20 chart is under 2 KiB.
const maxRequestBytes = 64 << 10

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Compute(ctx context.Context, req service.Request) (service.Outcome, error)
	Export(ctx context.Context, w io.Writer, tag language.Tag, req service.Request) error
	Roster() *roster.Roster
	Layouts() *layout.Table
}

// Server wires HTTP routes for the form page and the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	formHandler    *FormHandler
	balanceHandler *BalanceHandler
	rosterHandler  *RosterHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, bundle *i18n.Bundle, opts ...Option) *Server {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if t := deps.Layouts(); t != nil && !t.Supports(o.defaultBoatSize) {
		o.defaultBoatSize = t.Smallest()
	}
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		formHandler:    NewFormHandler(deps, bundle, o),
		balanceHandler: NewBalanceHandler(deps, bundle, o),
		rosterHandler:  NewRosterHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/api/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/balance", MetricsMiddleware(s.balanceHandler.HandleBalance, "balance"))
	mux.HandleFunc("/api/report", MetricsMiddleware(s.balanceHandler.HandleReport, "report"))
	mux.HandleFunc("/api/roster", MetricsMiddleware(s.rosterHandler.HandleRoster, "roster"))
	mux.HandleFunc("/api/layouts", MetricsMiddleware(s.rosterHandler.HandleLayouts, "layouts"))
	mux.HandleFunc("/{$}", MetricsMiddleware(s.formHandler.HandleForm, "form"))
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

func writePDF(w http.ResponseWriter, filename string, body []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
