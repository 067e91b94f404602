package textscore

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/mindscan/internal/domain/model"
)

func TestInterpret(t *testing.T) {
	Convey("Given distress probabilities", t, func() {
		Convey("Then bands map to labels and scores are amplified", func() {
			low := Interpret(0.3)
			So(low.Label, ShouldEqual, string(model.SentimentPositive))
			So(low.Value, ShouldAlmostEqual, 0.36, 1e-9)

			edge := Interpret(0.6)
			So(edge.Label, ShouldEqual, string(model.SentimentNeutral))

			mid := Interpret(0.8)
			So(mid.Label, ShouldEqual, string(model.SentimentNeutral))
			So(mid.Value, ShouldAlmostEqual, 0.96, 1e-9)

			high := Interpret(0.95)
			So(high.Label, ShouldEqual, string(model.SentimentNegative))
			So(high.Value, ShouldEqual, 1)
		})

		Convey("Then NaN becomes the midpoint", func() {
			s := Interpret(nanValue())
			So(s.Value, ShouldAlmostEqual, 0.6, 1e-9)
			So(s.Label, ShouldEqual, string(model.SentimentPositive))
		})
	})
}

func TestLexicon(t *testing.T) {
	Convey("Given the lexicon scorer", t, func() {
		l := NewLexicon()
		ctx := context.Background()

		Convey("When text is empty", func() {
			s, err := l.ScoreText(ctx, "")
			Convey("Then the neutral score is returned", func() {
				So(err, ShouldBeNil)
				So(s, ShouldResemble, Neutral())
			})
		})

		Convey("When text is only whitespace", func() {
			s, err := l.ScoreText(ctx, "   ")
			Convey("Then it is scored as cue-free text", func() {
				So(err, ShouldBeNil)
				So(s.Value, ShouldAlmostEqual, 0.6, 1e-9)
				So(s.Label, ShouldEqual, string(model.SentimentPositive))
			})
		})

		Convey("When text carries distress cues", func() {
			s, err := l.ScoreText(ctx, "I am so STRESSED and exhausted, can't sleep")
			Convey("Then probability rises and case is ignored", func() {
				So(err, ShouldBeNil)
				// neg=3, pos=0
				So(l.Probability("I am so STRESSED and exhausted, can't sleep"), ShouldAlmostEqual, 0.875, 1e-9)
				So(s.Label, ShouldEqual, string(model.SentimentNegative))
				So(s.Value, ShouldEqual, 1)
			})
		})

		Convey("When text carries wellbeing cues", func() {
			s, err := l.ScoreText(ctx, "Feeling happy and calm today")
			Convey("Then the label is positive", func() {
				So(err, ShouldBeNil)
				So(s.Label, ShouldEqual, string(model.SentimentPositive))
				So(s.Value, ShouldAlmostEqual, 0.2, 1e-9)
			})
		})
	})
}

func TestClient(t *testing.T) {
	Convey("Given a classifier server", t, func() {
		var gotText string
		probability := 0.9
		status := http.StatusOK
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req inferenceRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			gotText = req.Text
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(map[string]float64{"probability": probability})
		}))
		defer srv.Close()
		c := NewClient(srv.URL, WithTimeout(time.Second))

		Convey("When text is scored", func() {
			s, err := c.ScoreText(context.Background(), "  Exams Tomorrow  ")
			Convey("Then lower-cased text is sent and the probability interpreted", func() {
				So(err, ShouldBeNil)
				So(gotText, ShouldEqual, "  exams tomorrow  ")
				So(s.Label, ShouldEqual, string(model.SentimentNegative))
				So(s.Value, ShouldEqual, 1)
			})
		})

		Convey("When the server fails", func() {
			status = http.StatusInternalServerError
			_, err := c.ScoreText(context.Background(), "hello")
			Convey("Then ErrInference is returned", func() {
				So(errors.Is(err, ErrInference), ShouldBeTrue)
			})
		})

		Convey("When the probability is out of range", func() {
			probability = 1.5
			_, err := c.ScoreText(context.Background(), "hello")
			Convey("Then ErrInference is returned", func() {
				So(errors.Is(err, ErrInference), ShouldBeTrue)
			})
		})

		Convey("When text is empty", func() {
			gotText = "untouched"
			s, err := c.ScoreText(context.Background(), "")
			Convey("Then no request is made", func() {
				So(err, ShouldBeNil)
				So(s, ShouldResemble, Neutral())
				So(gotText, ShouldEqual, "untouched")
			})
		})
	})
}

type countingScorer struct {
	calls int
	err   error
}

func (c *countingScorer) ScoreText(_ context.Context, _ string) (model.ChannelScore, error) {
	c.calls++
	if c.err != nil {
		return model.ChannelScore{}, c.err
	}
	return model.ChannelScore{Value: 0.7, Label: string(model.SentimentNeutral)}, nil
}

func TestCached(t *testing.T) {
	Convey("Given a cached scorer", t, func() {
		inner := &countingScorer{}
		scorer := NewCached(inner, 8)

		Convey("When the same text is scored twice with different casing", func() {
			a, _ := scorer.ScoreText(context.Background(), "Tired")
			b, _ := scorer.ScoreText(context.Background(), "TIRED")
			Convey("Then the delegate runs once", func() {
				So(inner.calls, ShouldEqual, 1)
				So(a, ShouldResemble, b)
				So(scorer.(*Cached).Len(), ShouldEqual, 1)
			})
		})

		Convey("When the delegate errors", func() {
			inner.err = ErrInference
			_, err1 := scorer.ScoreText(context.Background(), "x")
			_, err2 := scorer.ScoreText(context.Background(), "x")
			Convey("Then errors are not cached", func() {
				So(err1, ShouldNotBeNil)
				So(err2, ShouldNotBeNil)
				So(inner.calls, ShouldEqual, 2)
			})
		})

		Convey("When size is zero", func() {
			Convey("Then the delegate is returned unchanged", func() {
				So(NewCached(inner, 0), ShouldEqual, inner)
			})
		})
	})
}

func TestNew(t *testing.T) {
	Convey("Given backend settings", t, func() {
		Convey("Then lexicon is the default", func() {
			s, err := New(Settings{})
			So(err, ShouldBeNil)
			_, ok := s.(*Lexicon)
			So(ok, ShouldBeTrue)
		})

		Convey("Then a cache wraps the backend when sized", func() {
			s, err := New(Settings{Backend: BackendLexicon, CacheSize: 4})
			So(err, ShouldBeNil)
			_, ok := s.(*Cached)
			So(ok, ShouldBeTrue)
		})

		Convey("Then http without endpoint and unknown names fail", func() {
			_, err := New(Settings{Backend: BackendHTTP})
			So(errors.Is(err, ErrUnknownBackend), ShouldBeTrue)
			_, err = New(Settings{Backend: "bert"})
			So(errors.Is(err, ErrUnknownBackend), ShouldBeTrue)
		})

		Convey("Then http with endpoint builds a client", func() {
			s, err := New(Settings{Backend: BackendHTTP, Endpoint: "http://localhost:1"})
			So(err, ShouldBeNil)
			_, ok := s.(*Client)
			So(ok, ShouldBeTrue)
		})
	})
}
