// Package behavior turns self-reported study metrics into stress and
// depression scores using rule tables blended with a trained regressor.
package behavior

import (
	"fmt"
	"math"

	"github.com/okian/mindscan/internal/domain/model"
)

// Blend factors for the final behavior scores.
const (
	predictedWeight = 0.6
	ruleWeight      = 0.4
	boostFactor     = 1.2
	inputArity      = 4
)

// Predictor estimates stress from a raw behavior tuple.
type Predictor interface {
	Predict(x [4]float64) float64
}

// Breakdown exposes every intermediate value of one analysis.
type Breakdown struct {
	RuleStress     float64
	RuleDepression float64
	Predicted      float64
	Idle           bool
	Score          model.BehaviorScore
}

// Scorer converts a BehaviorInput into a stress/depression pair.
type Scorer struct {
	predictor Predictor
}

// NewScorer returns a Scorer backed by a trained predictor.
func NewScorer(p Predictor) *Scorer {
	return &Scorer{predictor: p}
}

// Analyze returns the clipped stress and depression scores for in.
func (s *Scorer) Analyze(in model.BehaviorInput) model.BehaviorScore {
	return s.Explain(in).Score
}

// Explain runs the analysis and keeps the intermediate values.
func (s *Scorer) Explain(in model.BehaviorInput) Breakdown {
	b := Breakdown{
		RuleStress:     ruleStress(in),
		RuleDepression: ruleDepression(in),
		Idle:           idle(in),
	}
	if b.Idle {
		b.RuleStress = math.Min(b.RuleStress, idleRuleCap)
		b.RuleDepression = math.Min(b.RuleDepression, idleRuleCap)
	}
	b.Predicted = s.predictor.Predict(in.Vector())

	// The regressor only targets stress; depression is rules alone.
	b.Score = model.BehaviorScore{
		Stress:     clip((b.Predicted*predictedWeight + b.RuleStress*ruleWeight) * boostFactor),
		Depression: clip(b.RuleDepression * boostFactor),
	}
	return b
}

// ParseInput validates a raw study-behavior array and converts it.
// It requires exactly four finite, non-negative values.
func ParseInput(values []float64) (model.BehaviorInput, error) {
	if len(values) != inputArity {
		return model.BehaviorInput{}, fmt.Errorf("expected %d values, got %d: %w", inputArity, len(values), ErrInvalidInput)
	}
	var v [4]float64
	for i, x := range values {
		if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 {
			return model.BehaviorInput{}, fmt.Errorf("value %d (%v) must be a non-negative number: %w", i, x, ErrInvalidInput)
		}
		v[i] = x
	}
	return model.BehaviorFromVector(v), nil
}

func clip(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
