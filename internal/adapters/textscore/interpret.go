package textscore

import (
	"math"
	"strings"

	"github.com/okian/mindscan/internal/domain/model"
)

// Probability bands for sentiment labels.
const (
	positiveBelow  = 0.6
	neutralAtMost  = 0.8
	scoreAmplifier = 1.2
)

// Interpret maps a distress probability to a channel score.
// NaN is treated as the neutral midpoint.
func Interpret(p float64) model.ChannelScore {
	if math.IsNaN(p) {
		p = 0.5
	}
	label := model.SentimentNegative
	switch {
	case p < positiveBelow:
		label = model.SentimentPositive
	case p <= neutralAtMost:
		label = model.SentimentNeutral
	}
	return model.ChannelScore{
		Value: math.Max(0, math.Min(1, p*scoreAmplifier)),
		Label: string(label),
	}
}

// Neutral is the score for empty text.
func Neutral() model.ChannelScore {
	return model.ChannelScore{Value: 0.5, Label: string(model.SentimentNeutral)}
}

// normalize lower-cases text before classification. Whitespace is kept so
// that blank text still reaches the classifier.
func normalize(text string) string {
	return strings.ToLower(text)
}
