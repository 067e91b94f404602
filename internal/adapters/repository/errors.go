package repository

import "errors"

// Sentinel kinds for stress log errors.
var (
	ErrClosed    = errors.New("stress log closed")
	ErrEmptyPath = errors.New("stress log path is empty")
)
