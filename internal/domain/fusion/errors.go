package fusion

import "errors"

// Sentinel error kinds for fusion.
var (
	ErrInvalidScore    = errors.New("all scores must be between 0 and 1")
	ErrUnknownStrategy = errors.New("unknown fusion strategy")
)
