package api

import "github.com/okian/dragonbalance/pkg/logger"

const defaultReportFilename = "balance_dragonboat.pdf"

type options struct {
	log             logger.Logger
	reportFilename  string
	defaultBoatSize int
}

func defaultOptions() *options {
	return &options{
		log:            logger.Nop(),
		reportFilename: defaultReportFilename,
	}
}

// Option configures the API server.
type Option func(*options)

// WithLogger sets the logger used by handlers.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithReportFilename sets the attachment name of exported reports.
func WithReportFilename(name string) Option {
	return func(o *options) {
		if name != "" {
			o.reportFilename = name
		}
	}
}

// WithDefaultBoatSize sets the boat size used when a request names none.
// Without it, or when the size has no layout, the smallest layout is used.
func WithDefaultBoatSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.defaultBoatSize = size
		}
	}
}
