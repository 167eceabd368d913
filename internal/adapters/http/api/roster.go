package api

import (
	"net/http"
)

// RosterHandler exposes the read-only roster and layout table.
type RosterHandler struct {
	deps Dependencies
}

// NewRosterHandler creates a new roster handler.
func NewRosterHandler(deps Dependencies) *RosterHandler {
	return &RosterHandler{deps: deps}
}

// HandleRoster handles GET /api/roster requests.
func (h *RosterHandler) HandleRoster(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Roster().Entries())
}

// HandleLayouts handles GET /api/layouts requests.
func (h *RosterHandler) HandleLayouts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Layouts().All())
}
