package layout

import "errors"

// Sentinel kinds for layout errors.
var (
	ErrUnsupportedBoatSize = errors.New("unsupported boat size")
	ErrInvalidLayout       = errors.New("invalid layout")
	ErrEmptyTable          = errors.New("layout table is empty")
)
