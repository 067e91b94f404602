package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted = errors.New("service not started")
	// ErrStopped is returned by Start once Stop has released the stress log.
	ErrStopped = errors.New("service stopped")
)
