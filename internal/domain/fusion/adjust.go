package fusion

import (
	"math"

	"github.com/okian/mindscan/internal/domain/model"
)

const (
	dampenFactor      = 0.5
	dampenFloor       = 0.2
	lowBehaviorStress = 0.5
)

// AdjustText returns the text score to fuse. A Positive text is halved
// (floored at 0.2) when behavior stress is below 0.5; otherwise the score
// passes through unchanged.
func AdjustText(text model.ChannelScore, behaviorStress float64) float64 {
	if text.Label == string(model.SentimentPositive) && behaviorStress < lowBehaviorStress {
		return math.Max(dampenFloor, text.Value*dampenFactor)
	}
	return text.Value
}
