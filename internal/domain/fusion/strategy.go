// Package fusion combines the text, face and behavior channel scores into
// final stress and depression scores.
package fusion

import (
	"fmt"
	"strings"

	"github.com/okian/mindscan/internal/domain/model"
)

// Strategy names accepted by New.
const (
	StrategyWeighted = "weighted"
	StrategyVoting   = "voting"
)

// Input carries the fused channels. Text is the adjusted text score.
type Input struct {
	Text     float64
	Face     float64
	Behavior model.BehaviorScore
}

// Output holds the two fused scores and, for the weighted strategy, the
// weights that produced them.
type Output struct {
	Stress     float64
	Depression float64
	Weights    Weights
	Regime     Regime
}

// Strategy fuses one request's channels.
type Strategy interface {
	Name() string
	Fuse(in Input) (Output, error)
}

// Option configures a strategy built by New.
type Option func(*options)

type options struct {
	votingThreshold float64
}

// WithVotingThreshold sets the hard-vote threshold for the voting strategy.
func WithVotingThreshold(t float64) Option {
	return func(o *options) {
		if t >= 0 && t <= 1 {
			o.votingThreshold = t
		}
	}
}

// New returns the strategy registered under name.
func New(name string, opts ...Option) (Strategy, error) {
	o := options{votingThreshold: DefaultVotingThreshold}
	for _, opt := range opts {
		opt(&o)
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", StrategyWeighted:
		return Weighted{}, nil
	case StrategyVoting:
		return NewVoting(o.votingThreshold), nil
	default:
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownStrategy)
	}
}

// Weighted is the primary strategy: a linear blend whose weights depend on
// how extreme the behavior scores are. One weight triple serves both targets.
type Weighted struct{}

// Name implements Strategy.
func (Weighted) Name() string { return StrategyWeighted }

// Fuse implements Strategy.
func (Weighted) Fuse(in Input) (Output, error) {
	w, regime := SelectWeights(in.Behavior)
	return Output{
		Stress:     w.Combine(in.Text, in.Face, in.Behavior.Stress),
		Depression: w.Combine(in.Text, in.Face, in.Behavior.Depression),
		Weights:    w,
		Regime:     regime,
	}, nil
}
