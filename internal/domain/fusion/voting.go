package fusion

import (
	"fmt"
	"math"
)

// Voting defaults.
const (
	DefaultVotingThreshold = 0.6
	defaultSoftWeight      = 0.7
	spreadSoftWeight       = 0.8
	spreadThreshold        = 0.2
)

// Voting blends confidence-weighted soft voting with threshold hard voting.
type Voting struct {
	threshold float64
}

// NewVoting returns a voting strategy whose hard votes count scores above threshold.
func NewVoting(threshold float64) Voting {
	return Voting{threshold: threshold}
}

// Name implements Strategy.
func (Voting) Name() string { return StrategyVoting }

// Fuse implements Strategy. Stress votes over the behavior stress score and
// depression over the behavior depression score.
func (v Voting) Fuse(in Input) (Output, error) {
	stress, err := v.Vote(in.Text, in.Face, in.Behavior.Stress)
	if err != nil {
		return Output{}, fmt.Errorf("stress vote: %w", err)
	}
	depression, err := v.Vote(in.Text, in.Face, in.Behavior.Depression)
	if err != nil {
		return Output{}, fmt.Errorf("depression vote: %w", err)
	}
	return Output{Stress: stress, Depression: depression}, nil
}

// Vote combines three channel scores in [0,1] into one score in [0,1].
func (v Voting) Vote(scores ...float64) (float64, error) {
	if len(scores) == 0 {
		return 0, ErrInvalidScore
	}
	for _, s := range scores {
		if math.IsNaN(s) || s < 0 || s > 1 {
			return 0, fmt.Errorf("score %v: %w", s, ErrInvalidScore)
		}
	}

	// Confidence is distance from the uninformative midpoint, in [0.5,1].
	confidences := make([]float64, len(scores))
	var total float64
	for i, s := range scores {
		confidences[i] = math.Abs(s-0.5) + 0.5
		total += confidences[i]
	}

	var soft float64
	var votes int
	for i, s := range scores {
		soft += s * confidences[i] / total
		if s > v.threshold {
			votes++
		}
	}
	hard := float64(votes) / float64(len(scores))

	softWeight := defaultSoftWeight
	if stddev(confidences) > spreadThreshold {
		softWeight = spreadSoftWeight
	}
	final := soft*softWeight + hard*(1-softWeight)
	return math.Max(0, math.Min(1, final)), nil
}

// stddev is the population standard deviation.
func stddev(xs []float64) float64 {
	var mean float64
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	var ss float64
	for _, x := range xs {
		ss += (x - mean) * (x - mean)
	}
	return math.Sqrt(ss / float64(len(xs)))
}
