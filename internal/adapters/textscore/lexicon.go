package textscore

import (
	"context"
	"strings"
	"unicode"

	"github.com/okian/mindscan/internal/domain/model"
)

var negativeCues = map[string]struct{}{ //nolint:gochecknoglobals // static word list
	"stressed": {}, "stress": {}, "anxious": {}, "anxiety": {}, "overwhelmed": {},
	"tired": {}, "exhausted": {}, "sad": {}, "depressed": {}, "hopeless": {},
	"worried": {}, "panic": {}, "fail": {}, "failing": {}, "failed": {},
	"lonely": {}, "alone": {}, "cry": {}, "crying": {}, "can't": {},
	"cannot": {}, "afraid": {}, "scared": {}, "pressure": {}, "deadline": {},
	"burnout": {}, "worthless": {}, "awful": {}, "terrible": {}, "miserable": {},
	"insomnia": {}, "sleepless": {}, "angry": {}, "frustrated": {}, "hate": {},
}

var positiveCues = map[string]struct{}{ //nolint:gochecknoglobals // static word list
	"happy": {}, "calm": {}, "relaxed": {}, "confident": {}, "great": {},
	"good": {}, "fine": {}, "excited": {}, "motivated": {}, "rested": {},
	"enjoy": {}, "enjoying": {}, "love": {}, "proud": {}, "ready": {},
	"hopeful": {}, "grateful": {}, "peaceful": {}, "energized": {}, "okay": {},
}

// Lexicon is an offline scorer that counts distress and wellbeing cue words.
type Lexicon struct{}

// NewLexicon returns the lexicon scorer.
func NewLexicon() *Lexicon {
	return &Lexicon{}
}

// Probability returns the distress probability for normalized text.
func (l *Lexicon) Probability(text string) float64 {
	var pos, neg float64
	for _, w := range strings.FieldsFunc(normalize(text), splitWord) {
		if _, ok := negativeCues[w]; ok {
			neg++
		}
		if _, ok := positiveCues[w]; ok {
			pos++
		}
	}
	return 0.5 + 0.5*(neg-pos)/(neg+pos+1)
}

// ScoreText scores text by cue-word balance.
func (l *Lexicon) ScoreText(_ context.Context, text string) (model.ChannelScore, error) {
	if text == "" {
		return Neutral(), nil
	}
	return Interpret(l.Probability(text)), nil
}

func splitWord(r rune) bool {
	return !unicode.IsLetter(r) && r != '\''
}
