package i18n

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrCatalog        = errors.New("invalid message catalog")
	ErrUnknownDefault = errors.New("default language has no catalog")
)
