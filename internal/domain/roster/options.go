package roster

import "github.com/okian/dragonbalance/pkg/logger"

type options struct {
	log logger.Logger
}

// Option configures Load.
type Option func(*options)

// WithLogger sets the logger used to report skipped rows and fallbacks.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}
