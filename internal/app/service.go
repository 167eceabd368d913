// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"golang.org/x/text/language"

	"github.com/okian/dragonbalance/internal/domain/balance"
	"github.com/okian/dragonbalance/internal/domain/layout"
	"github.com/okian/dragonbalance/internal/domain/report"
	"github.com/okian/dragonbalance/internal/domain/roster"
	"github.com/okian/dragonbalance/pkg/logger"
	"github.com/okian/dragonbalance/pkg/metrics"
)

// Request is one seating chart to evaluate.
type Request struct {
	BoatSize int           `json:"boat_size"`
	Drummer  string        `json:"drummer"`
	Helm     string        `json:"helm"`
	Seats    balance.Seats `json:"seats"`
}

// Outcome is a computed seating chart.
type Outcome struct {
	BoatSize int            `json:"boat_size"`
	Benches  int            `json:"benches"`
	Drummer  string         `json:"drummer"`
	Helm     string         `json:"helm"`
	Result   balance.Result `json:"result"`
}

// Document converts the outcome into the report's input.
func (o Outcome) Document() report.Document {
	return report.Document{
		BoatSize: o.BoatSize,
		Benches:  o.Benches,
		Drummer:  o.Drummer,
		Helm:     o.Helm,
		Result:   o.Result,
	}
}

// Renderer writes a report document. *report.Renderer satisfies it.
type Renderer interface {
	Render(w io.Writer, tag language.Tag, doc report.Document) error
}

// Service computes balances against a roster loaded once at startup.
type Service struct {
	roster   *roster.Roster
	layouts  *layout.Table
	calc     *balance.Calculator
	renderer Renderer
	logger   logger.Logger

	startedAt    time.Time
	computations atomic.Int64
	rejections   atomic.Int64
	exports      atomic.Int64
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRoster sets the paddler roster.
func WithRoster(r *roster.Roster) Option {
	return func(s *Service) {
		if r != nil {
			s.roster = r
		}
	}
}

// WithLayouts replaces the default layout table.
func WithLayouts(t *layout.Table) Option {
	return func(s *Service) {
		if t != nil {
			s.layouts = t
		}
	}
}

// WithRenderer sets the report renderer used by Export.
func WithRenderer(r Renderer) Option {
	return func(s *Service) {
		s.renderer = r
	}
}

// New constructs a Service. Without WithRoster the roster is empty.
func New(opts ...Option) *Service {
	s := &Service{
		roster:    roster.New(nil),
		layouts:   layout.Default(),
		logger:    logger.Nop(),
		startedAt: time.Now(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.calc = balance.NewCalculator(s.roster, s.layouts)
	metrics.UpdateRosterSize(s.roster.Len(), s.roster.Skipped())

	return s
}

// Roster returns the loaded roster.
func (s *Service) Roster() *roster.Roster {
	return s.roster
}

// Layouts returns the supported boat layouts.
func (s *Service) Layouts() *layout.Table {
	return s.layouts
}

// Compute evaluates req. Drummer and helm weights come from the roster like
// any seat; an unsupported boat size wraps layout.ErrUnsupportedBoatSize.
func (s *Service) Compute(ctx context.Context, req Request) (Outcome, error) {
	start := time.Now()

	res, err := s.calc.Compute(req.BoatSize, req.Seats, s.roster.Weight(req.Drummer), s.roster.Weight(req.Helm))
	if err != nil {
		if errors.Is(err, layout.ErrUnsupportedBoatSize) {
			s.rejections.Add(1)
			metrics.RecordBalanceRejection(metrics.ReasonUnsupportedBoatSize)
			s.logger.Debug(ctx, "rejected boat size", logger.Int("boat_size", req.BoatSize))
		}
		return Outcome{}, fmt.Errorf("compute balance: %w", err)
	}

	s.computations.Add(1)
	metrics.RecordBalanceComputation(req.BoatSize)
	metrics.RecordComputeLatency(float64(time.Since(start).Microseconds()) / 1000)

	return Outcome{
		BoatSize: req.BoatSize,
		Benches:  len(res.Assignments),
		Drummer:  req.Drummer,
		Helm:     req.Helm,
		Result:   res,
	}, nil
}

// Export computes req and writes its report to w in the language of tag.
func (s *Service) Export(ctx context.Context, w io.Writer, tag language.Tag, req Request) error {
	if s.renderer == nil {
		return ErrNoRenderer
	}

	out, err := s.Compute(ctx, req)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := s.renderer.Render(w, tag, out.Document()); err != nil {
		metrics.RecordReportError()
		metrics.RecordErrorByComponent("report", "render")
		s.logger.Error(ctx, "report render failed",
			logger.Int("boat_size", req.BoatSize),
			logger.String("lang", tag.String()),
			logger.Error(err),
		)
		return fmt.Errorf("export report: %w", err)
	}

	s.exports.Add(1)
	metrics.RecordReportExport(tag.String())
	metrics.RecordReportRenderDuration(float64(time.Since(start).Microseconds()) / 1000)
	s.logger.Debug(ctx, "report exported",
		logger.Int("boat_size", req.BoatSize),
		logger.String("lang", tag.String()),
	)
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	sizes := make([]int, 0)
	for _, l := range s.layouts.All() {
		sizes = append(sizes, l.Size)
	}

	return map[string]interface{}{
		"paddlers":       s.roster.Len(),
		"skippedRows":    s.roster.Skipped(),
		"boatSizes":      sizes,
		"computations":   s.computations.Load(),
		"rejections":     s.rejections.Load(),
		"exports":        s.exports.Load(),
		"uptimeSeconds":  int64(time.Since(s.startedAt).Seconds()),
		"reportsEnabled": s.renderer != nil,
	}
}
