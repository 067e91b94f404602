package channel

import "errors"

// Errors face scorers return to select a specific neutral default.
var (
	ErrUndecodable = errors.New("image could not be decoded")
	ErrNoFace      = errors.New("no face detected")
	ErrOutOfRange  = errors.New("channel score outside [0,1]")
)
