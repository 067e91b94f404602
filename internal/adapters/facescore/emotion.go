package facescore

import (
	"math"

	"github.com/okian/mindscan/internal/domain/model"
)

// Emotions is one face's probability distribution over FER classes.
type Emotions struct {
	Angry    float64 `json:"angry"`
	Disgust  float64 `json:"disgust"`
	Fear     float64 `json:"fear"`
	Happy    float64 `json:"happy"`
	Sad      float64 `json:"sad"`
	Surprise float64 `json:"surprise"`
	Neutral  float64 `json:"neutral"`
}

// Stress weights per emotion. Disgust carries none.
const (
	weightAngry    = 0.9
	weightFear     = 0.8
	weightSad      = 0.7
	weightNeutral  = 0.5
	weightSurprise = 0.4
	weightHappy    = 0.2
)

// Stress is the weighted emotion sum clipped to [0,1].
func (e Emotions) Stress() float64 {
	s := e.Angry*weightAngry +
		e.Fear*weightFear +
		e.Sad*weightSad +
		e.Neutral*weightNeutral +
		e.Surprise*weightSurprise +
		e.Happy*weightHappy
	if math.IsNaN(s) {
		return 0
	}
	return math.Max(0, math.Min(1, s))
}

// Dominant returns the most probable emotion. Ties go to the earlier class
// in detector order.
func (e Emotions) Dominant() string {
	ranked := []struct {
		name string
		p    float64
	}{
		{"angry", e.Angry},
		{"disgust", e.Disgust},
		{"fear", e.Fear},
		{"happy", e.Happy},
		{"sad", e.Sad},
		{"surprise", e.Surprise},
		{"neutral", e.Neutral},
	}
	best := ranked[0]
	for _, r := range ranked[1:] {
		if r.p > best.p {
			best = r
		}
	}
	return best.name
}

// Score converts the distribution to a channel score.
func (e Emotions) Score() model.ChannelScore {
	return model.ChannelScore{Value: e.Stress(), Label: e.Dominant()}
}
