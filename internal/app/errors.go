package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNoRenderer = errors.New("report renderer not configured")
)
