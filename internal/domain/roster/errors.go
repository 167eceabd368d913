package roster

import "errors"

// Sentinel kinds for roster errors.
var (
	ErrInvalidWeight = errors.New("weight must be a finite non-negative number")
)
