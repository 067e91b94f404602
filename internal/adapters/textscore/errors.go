package textscore

import "errors"

var (
	// ErrInference is returned when the text classifier cannot produce a probability.
	ErrInference = errors.New("text inference failed")
	// ErrUnknownBackend is returned for an unrecognised backend name.
	ErrUnknownBackend = errors.New("unknown text backend")
)
