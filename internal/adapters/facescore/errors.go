package facescore

import "errors"

// ErrDetector is returned when the emotion detector cannot be reached or answers badly.
var ErrDetector = errors.New("emotion detector failed")
