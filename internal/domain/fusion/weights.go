package fusion

import "github.com/okian/mindscan/internal/domain/model"

// Regime names which weight preset a request used.
type Regime string

// Weight regimes.
const (
	RegimeNormal  Regime = "normal"
	RegimeExtreme Regime = "extreme"
)

const extremeBehavior = 0.9

// Weights are the per-channel fusion weights; they sum to 1.
type Weights struct {
	Text     float64 `json:"text"`
	Face     float64 `json:"face"`
	Behavior float64 `json:"behavior"`
}

// Presets.
var (
	NormalWeights  = Weights{Text: 0.3, Face: 0.3, Behavior: 0.4}
	ExtremeWeights = Weights{Text: 0.25, Face: 0.25, Behavior: 0.5}
)

// SelectWeights picks the preset from the behavior scores alone. Either
// behavior score above 0.9 selects the extreme regime.
func SelectWeights(b model.BehaviorScore) (Weights, Regime) {
	if b.Stress > extremeBehavior || b.Depression > extremeBehavior {
		return ExtremeWeights, RegimeExtreme
	}
	return NormalWeights, RegimeNormal
}

// Combine returns the weighted sum of the three channel values.
func (w Weights) Combine(text, face, behavior float64) float64 {
	return text*w.Text + face*w.Face + behavior*w.Behavior
}
