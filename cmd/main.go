package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/dragonbalance/internal/adapters/http/api"
	"github.com/okian/dragonbalance/internal/adapters/http/site"
	"github.com/okian/dragonbalance/internal/adapters/http/swagger"
	app "github.com/okian/dragonbalance/internal/app"
	"github.com/okian/dragonbalance/internal/config"
	"github.com/okian/dragonbalance/internal/domain/layout"
	"github.com/okian/dragonbalance/internal/domain/report"
	"github.com/okian/dragonbalance/internal/domain/roster"
	"github.com/okian/dragonbalance/internal/platform/i18n"
	"github.com/okian/dragonbalance/pkg/logger"
	"github.com/okian/dragonbalance/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 30 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	if err := run(); err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func run() error {
	// Initialize logging with defaults until the configured format is known
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	handler, err := buildHandler(ctx, cfg, log)
	if err != nil {
		return err
	}

	go startSystemMetricsUpdater(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Wait for shutdown signal or a listener failure
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
	return nil
}

// buildHandler loads the roster, layouts and catalogs named by cfg and
// returns the fully routed HTTP handler.
func buildHandler(ctx context.Context, cfg *config.Config, log logger.Logger) (http.Handler, error) {
	sizes, err := cfg.BenchesBySize()
	if err != nil {
		return nil, fmt.Errorf("failed to read layouts: %w", err)
	}
	layouts, err := layout.New(sizes)
	if err != nil {
		return nil, fmt.Errorf("failed to build layouts: %w", err)
	}

	bundle, err := i18n.Load(cfg.DefaultLanguage)
	if err != nil {
		return nil, fmt.Errorf("failed to load translations: %w", err)
	}

	svc := app.New(
		app.WithLogger(log.Named("service")),
		app.WithRoster(roster.Load(ctx, cfg.RosterPath, roster.WithLogger(log.Named("roster")))),
		app.WithLayouts(layouts),
		app.WithRenderer(report.NewRenderer(bundle)),
	)

	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	site.Register(ctx, mux)

	apiServer := api.NewServer(svc, svc, bundle,
		api.WithLogger(log.Named("api")),
		api.WithReportFilename(cfg.ReportFilename),
		api.WithDefaultBoatSize(cfg.DefaultBoatSize),
	)
	apiServer.Register(ctx, mux)

	return api.RequestIDMiddleware(mux), nil
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	updateSystemMetrics()

	ticker := time.NewTicker(metrics.RefreshInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
