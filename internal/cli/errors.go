package cli

import "errors"

// Sentinel kinds for CLI errors.
var (
	ErrInvalidSeat = errors.New("invalid seat assignment")
	ErrRemote      = errors.New("remote request failed")
)
