package report

import "time"

// Option configures a Renderer.
type Option func(*Renderer)

// WithCompression toggles stream compression. Tests disable it to inspect text.
func WithCompression(on bool) Option {
	return func(r *Renderer) {
		r.compress = on
	}
}

// WithClock fixes the document creation time.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		if now != nil {
			r.now = now
		}
	}
}
