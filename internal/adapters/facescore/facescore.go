// Package facescore scores an uploaded image by the emotions of its first
// detected face.
package facescore

import (
	"context"
	"fmt"

	"github.com/okian/mindscan/internal/domain/channel"
	"github.com/okian/mindscan/internal/domain/model"
)

const (
	// DefaultMaxDimension is the longest side an image may have before it is downscaled.
	DefaultMaxDimension = 1000
	// DefaultMaxPixels bounds the decoded size of an upload (about 160MB as RGBA).
	DefaultMaxPixels = 40_000_000
)

// Scorer prepares images and maps detector output to channel scores.
type Scorer struct {
	detector  Detector
	maxDim    int
	maxPixels int
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithMaxDimension sets the downscale threshold. Non-positive disables resizing.
func WithMaxDimension(n int) Option {
	return func(s *Scorer) { s.maxDim = n }
}

// WithMaxPixels sets the largest width*height accepted for decoding.
// Non-positive disables the limit.
func WithMaxPixels(n int) Option {
	return func(s *Scorer) { s.maxPixels = n }
}

// NewScorer creates a Scorer backed by detector.
func NewScorer(detector Detector, opts ...Option) *Scorer {
	s := &Scorer{detector: detector, maxDim: DefaultMaxDimension, maxPixels: DefaultMaxPixels}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScoreFace decodes, resizes and scores the image. Errors wrap
// channel.ErrUndecodable, channel.ErrNoFace or ErrDetector.
func (s *Scorer) ScoreFace(ctx context.Context, raw []byte) (model.ChannelScore, error) {
	img, err := prepare(raw, s.maxDim, s.maxPixels)
	if err != nil {
		return model.ChannelScore{}, err
	}
	faces, err := s.detector.Detect(ctx, img)
	if err != nil {
		return model.ChannelScore{}, err
	}
	if len(faces) == 0 {
		return model.ChannelScore{}, fmt.Errorf("detector returned no faces: %w", channel.ErrNoFace)
	}
	return faces[0].Score(), nil
}
