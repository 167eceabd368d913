package balance

import "github.com/okian/dragonbalance/internal/domain/layout"

// ErrUnsupportedBoatSize is returned by Compute for sizes missing from the
// layout table. It is the layout sentinel, re-exported for callers that only
// import this package.
var ErrUnsupportedBoatSize = layout.ErrUnsupportedBoatSize
