package api

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	service "github.com/okian/dragonbalance/internal/app"
	"github.com/okian/dragonbalance/internal/domain/balance"
	"github.com/okian/dragonbalance/internal/domain/layout"
	"github.com/okian/dragonbalance/internal/platform/i18n"
	"github.com/okian/dragonbalance/pkg/logger"
	"github.com/okian/dragonbalance/pkg/metrics"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

const actionPDF = "pdf"

// FormHandler serves the seating form and its PDF export.
type FormHandler struct {
	deps        Dependencies
	bundle      *i18n.Bundle
	defaultSize int
	filename    string
	log         logger.Logger
}

// NewFormHandler creates a new form handler.
func NewFormHandler(deps Dependencies, bundle *i18n.Bundle, o *options) *FormHandler {
	return &FormHandler{
		deps:        deps,
		bundle:      bundle,
		defaultSize: o.defaultBoatSize,
		filename:    o.reportFilename,
		log:         o.log,
	}
}

type option struct {
	Name     string
	Label    string
	Selected bool
}

type selectView struct {
	Options []option
}

type seatRow struct {
	Bench       int
	LeftKey     string
	RightKey    string
	Left, Right string
}

type formView struct {
	p       *message.Printer
	weights func(string) float64

	Lang      string
	Languages []string
	BoatSize  int
	Sizes     []layout.Layout
	Names     []string
	Drummer   string
	Helm      string
	Rows      []seatRow
	Result    *balance.Result
	Error     string
}

func (v formView) T(key string, args ...any) string {
	return v.p.Sprintf(key, args...)
}

func (v formView) KG(x float64) string {
	return v.p.Sprintf("%.1f", x)
}

func (v formView) Pct(x float64) string {
	return v.p.Sprintf("%.2f", x)
}

// Select lists every roster name as an option with current marked.
func (v formView) Select(current string) selectView {
	opts := make([]option, 0, len(v.Names))
	for _, name := range v.Names {
		label := "-"
		if name != "" {
			label = v.p.Sprintf("report.seat", name, v.weights(name))
		}
		opts = append(opts, option{Name: name, Label: label, Selected: name == current})
	}
	return selectView{Options: opts}
}

// HandleForm handles GET and POST / requests.
func (h *FormHandler) HandleForm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	ctx := r.Context()

	tag, persist := h.bundle.Resolve(r)
	if persist {
		i18n.SetCookie(w, tag)
	}
	view := h.newView(tag)

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := r.ParseForm(); err != nil {
		metrics.RecordBalanceRejection(metrics.ReasonBadRequest)
		view.Error = err.Error()
		h.render(w, r, http.StatusBadRequest, h.withRows(view, h.defaultSize, nil))
		return
	}

	raw := strings.TrimSpace(r.PostForm.Get("boat_size"))
	if raw == "" {
		raw = strings.TrimSpace(r.URL.Query().Get("boat_size"))
	}
	size, benches, reason := h.boatSize(raw)
	if reason != "" {
		metrics.RecordBalanceRejection(reason)
		h.log.Debug(ctx, "rejected boat size on form", logger.String("boat_size", raw), logger.String("request_id", RequestID(ctx)))
		view.Error = view.T("error.unsupported_boat_size", raw)
		h.render(w, r, http.StatusBadRequest, h.withRows(view, h.defaultSize, nil))
		return
	}

	req := service.Request{
		BoatSize: size,
		Drummer:  r.PostForm.Get("drummer"),
		Helm:     r.PostForm.Get("helm"),
		Seats:    make(balance.Seats, 2*benches),
	}
	for i := 1; i <= benches; i++ {
		for _, side := range []balance.Side{balance.Left, balance.Right} {
			key := balance.SeatKey(side, i)
			req.Seats[key] = r.PostForm.Get(key)
		}
	}
	view.Drummer, view.Helm = req.Drummer, req.Helm
	view = h.withRows(view, size, req.Seats)

	if r.Method == http.MethodGet {
		h.render(w, r, http.StatusOK, view)
		return
	}

	if r.PostForm.Get("action") == actionPDF {
		h.export(w, r, tag, req)
		return
	}

	out, err := h.deps.Compute(ctx, req)
	if err != nil {
		h.log.Error(ctx, "form compute failed", logger.Error(err), logger.String("request_id", RequestID(ctx)))
		view.Error = http.StatusText(http.StatusInternalServerError)
		h.render(w, r, http.StatusInternalServerError, view)
		return
	}
	view.Result = &out.Result
	h.render(w, r, http.StatusOK, view)
}

// boatSize parses raw; an empty value selects the default. reason is empty on success.
func (h *FormHandler) boatSize(raw string) (size, benches int, reason string) {
	size = h.defaultSize
	if raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, metrics.ReasonBadRequest
		}
		size = n
	}
	benches, err := h.deps.Layouts().Benches(size)
	if err != nil {
		return 0, 0, metrics.ReasonUnsupportedBoatSize
	}
	return size, benches, ""
}

func (h *FormHandler) newView(tag language.Tag) formView {
	langs := make([]string, 0)
	for _, t := range h.bundle.Supported() {
		langs = append(langs, t.String())
	}
	r := h.deps.Roster()
	return formView{
		p:         h.bundle.Printer(tag),
		weights:   r.Weight,
		Lang:      tag.String(),
		Languages: langs,
		Sizes:     h.deps.Layouts().All(),
		Names:     r.Names(),
	}
}

func (h *FormHandler) withRows(view formView, size int, seats balance.Seats) formView {
	benches, err := h.deps.Layouts().Benches(size)
	if err != nil {
		benches = 0
	}
	view.BoatSize = size
	view.Rows = make([]seatRow, 0, benches)
	for i := 1; i <= benches; i++ {
		l, r := balance.SeatKey(balance.Left, i), balance.SeatKey(balance.Right, i)
		view.Rows = append(view.Rows, seatRow{Bench: i, LeftKey: l, RightKey: r, Left: seats[l], Right: seats[r]})
	}
	return view
}

func (h *FormHandler) render(w http.ResponseWriter, r *http.Request, status int, view formView) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "index.html", view); err != nil {
		h.log.Error(r.Context(), "form render failed", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (h *FormHandler) export(w http.ResponseWriter, r *http.Request, tag language.Tag, req service.Request) {
	ctx := r.Context()
	var buf bytes.Buffer
	if err := h.deps.Export(ctx, &buf, tag, req); err != nil {
		h.log.Error(ctx, "form export failed", logger.Error(err), logger.String("request_id", RequestID(ctx)))
		status := http.StatusInternalServerError
		if errors.Is(err, layout.ErrUnsupportedBoatSize) {
			status = http.StatusBadRequest
		}
		http.Error(w, http.StatusText(status), status)
		return
	}
	writePDF(w, h.filename, buf.Bytes())
}
