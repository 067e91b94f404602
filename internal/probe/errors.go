package probe

import "errors"

var (
	// ErrNotReady is returned when /readyz does not answer 200.
	ErrNotReady = errors.New("service not ready")
	// ErrMismatch is returned when any response differs from its scenario.
	ErrMismatch = errors.New("scenario mismatch")
)
