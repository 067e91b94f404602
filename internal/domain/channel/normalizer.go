// Package channel wraps the external text and face scorers behind a uniform
// (score, label) contract and substitutes neutral defaults whenever a channel
// is absent or fails, so fusion always receives three scores.
package channel

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/okian/mindscan/internal/domain/model"
	"github.com/okian/mindscan/pkg/logger"
	"github.com/okian/mindscan/pkg/metrics"
)

// Neutral defaults.
const (
	NeutralScore   = 0.5
	AmbiguousScore = 0.6
)

// Channel names used in logs and metrics.
const (
	NameText = "text"
	NameFace = "face"
)

// Fallback reasons used in logs and metrics.
const (
	ReasonAbsent       = "absent"
	ReasonUnconfigured = "unconfigured"
	ReasonUndecodable  = "undecodable"
	ReasonNoFace       = "no_face"
	ReasonFailure      = "failure"
	ReasonOutOfRange   = "out_of_range"
)

// TextScorer scores free text for distress.
type TextScorer interface {
	ScoreText(ctx context.Context, text string) (model.ChannelScore, error)
}

// FaceScorer scores an encoded image by facial emotion.
type FaceScorer interface {
	ScoreFace(ctx context.Context, image []byte) (model.ChannelScore, error)
}

// Normalizer produces a ChannelScore for every channel, never an error.
type Normalizer struct {
	text   TextScorer
	face   FaceScorer
	logger logger.Logger
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithTextScorer sets the text channel backend.
func WithTextScorer(s TextScorer) Option {
	return func(n *Normalizer) { n.text = s }
}

// WithFaceScorer sets the face channel backend.
func WithFaceScorer(s FaceScorer) Option {
	return func(n *Normalizer) { n.face = s }
}

// WithLogger sets the logger used for fallback warnings.
func WithLogger(l logger.Logger) Option {
	return func(n *Normalizer) {
		if l != nil {
			n.logger = l
		}
	}
}

// NewNormalizer builds a Normalizer. Nil scorers make their channel unavailable.
func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{}
	for _, opt := range opts {
		opt(n)
	}
	if n.logger == nil {
		n.logger = logger.Named("channel")
	}
	return n
}

// Text scores text, defaulting to (0.5, Neutral).
func (n *Normalizer) Text(ctx context.Context, text string) model.ChannelScore {
	fallback := model.ChannelScore{Value: NeutralScore, Label: string(model.SentimentNeutral)}
	if text == "" {
		metrics.RecordChannelFallback(NameText, ReasonAbsent)
		return fallback
	}
	if n.text == nil {
		metrics.RecordChannelFallback(NameText, ReasonUnconfigured)
		return fallback
	}
	s, err := n.text.ScoreText(ctx, text)
	if err == nil {
		err = validate(s)
	}
	if err != nil {
		reason := ReasonFailure
		if errors.Is(err, ErrOutOfRange) {
			reason = ReasonOutOfRange
		}
		n.logger.Warn(ctx, "text channel failed; using neutral default",
			logger.String("reason", reason), logger.Error(err))
		metrics.RecordChannelFallback(NameText, reason)
		return fallback
	}
	return s
}

// Face scores an image. No image or an undecodable one yields (0.5, Unknown);
// no detected face or a detector failure yields (0.6, Unknown).
func (n *Normalizer) Face(ctx context.Context, image []byte) model.ChannelScore {
	neutral := model.ChannelScore{Value: NeutralScore, Label: model.EmotionUnknown}
	if len(image) == 0 {
		metrics.RecordChannelFallback(NameFace, ReasonAbsent)
		return neutral
	}
	if n.face == nil {
		metrics.RecordChannelFallback(NameFace, ReasonUnconfigured)
		return neutral
	}
	s, err := n.face.ScoreFace(ctx, image)
	if err == nil {
		err = validate(s)
	}
	if err == nil {
		return s
	}

	ambiguous := model.ChannelScore{Value: AmbiguousScore, Label: model.EmotionUnknown}
	var reason string
	out := ambiguous
	switch {
	case errors.Is(err, ErrUndecodable):
		reason, out = ReasonUndecodable, neutral
	case errors.Is(err, ErrNoFace):
		reason = ReasonNoFace
	case errors.Is(err, ErrOutOfRange):
		reason = ReasonOutOfRange
	default:
		reason = ReasonFailure
	}
	n.logger.Warn(ctx, "face channel unavailable; using default",
		logger.String("reason", reason),
		logger.Float64("default", out.Value),
		logger.Error(err))
	metrics.RecordChannelFallback(NameFace, reason)
	return out
}

func validate(s model.ChannelScore) error {
	if math.IsNaN(s.Value) || s.Value < 0 || s.Value > 1 {
		return fmt.Errorf("score %v: %w", s.Value, ErrOutOfRange)
	}
	return nil
}
