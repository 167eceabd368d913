package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	service "github.com/okian/dragonbalance/internal/app"
	"github.com/okian/dragonbalance/internal/domain/layout"
	"github.com/okian/dragonbalance/internal/platform/i18n"
	"github.com/okian/dragonbalance/pkg/logger"
	"github.com/okian/dragonbalance/pkg/metrics"
)

// BalanceHandler handles the JSON compute and report endpoints.
type BalanceHandler struct {
	deps        Dependencies
	bundle      *i18n.Bundle
	defaultSize int
	filename    string
	log         logger.Logger
}

// NewBalanceHandler creates a new balance handler.
func NewBalanceHandler(deps Dependencies, bundle *i18n.Bundle, o *options) *BalanceHandler {
	return &BalanceHandler{
		deps:        deps,
		bundle:      bundle,
		defaultSize: o.defaultBoatSize,
		filename:    o.reportFilename,
		log:         o.log,
	}
}

func (h *BalanceHandler) decode(w http.ResponseWriter, r *http.Request, op string) (service.Request, bool) {
	var req service.Request
	body := http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		metrics.RecordBalanceRejection(metrics.ReasonBadRequest)
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: %w", op, ErrBadRequest, err))
		return req, false
	}
	if req.BoatSize == 0 {
		req.BoatSize = h.defaultSize
	}
	return req, true
}

// HandleBalance handles POST /api/balance requests.
func (h *BalanceHandler) HandleBalance(w http.ResponseWriter, r *http.Request) {
	const op = "api.balance"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	req, ok := h.decode(w, r, op)
	if !ok {
		return
	}

	out, err := h.deps.Compute(r.Context(), req)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleReport handles POST /api/report requests.
func (h *BalanceHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	const op = "api.report"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	req, ok := h.decode(w, r, op)
	if !ok {
		return
	}

	tag, _ := h.bundle.Resolve(r)
	var buf bytes.Buffer
	if err := h.deps.Export(r.Context(), &buf, tag, req); err != nil {
		h.fail(w, r, op, err)
		return
	}
	writePDF(w, h.filename, buf.Bytes())
}

func (h *BalanceHandler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, layout.ErrUnsupportedBoatSize) {
		writeError(w, http.StatusBadRequest, "unsupported_boat_size", err)
		return
	}
	h.log.Error(r.Context(), "request failed",
		logger.String("op", op),
		logger.String("request_id", RequestID(r.Context())),
		logger.Error(err),
	)
	writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%s: %w", op, ErrExport))
}
