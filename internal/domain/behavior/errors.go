package behavior

import "errors"

// Sentinel error kinds for behavior scoring.
var (
	ErrInvalidInput  = errors.New("invalid study behavior data")
	ErrEmptyDataset  = errors.New("empty training dataset")
	ErrModelNotReady = errors.New("behavior model not ready")
)
