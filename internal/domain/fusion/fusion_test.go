package fusion_test

import (
	"errors"
	"math"
	"testing"

	"github.com/okian/mindscan/internal/domain/fusion"
	"github.com/okian/mindscan/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAdjustText(t *testing.T) {
	Convey("Given a positive text score", t, func() {
		text := model.ChannelScore{Value: 0.8, Label: "Positive"}

		Convey("When behavior stress is low", func() {
			Convey("Then the text score is halved", func() {
				So(fusion.AdjustText(text, 0.3), ShouldAlmostEqual, 0.4)
			})

			Convey("And a small score is floored at 0.2", func() {
				small := model.ChannelScore{Value: 0.3, Label: "Positive"}
				So(fusion.AdjustText(small, 0.3), ShouldEqual, 0.2)
			})
		})

		Convey("When behavior stress is exactly 0.5", func() {
			Convey("Then the text score is kept", func() {
				So(fusion.AdjustText(text, 0.5), ShouldEqual, 0.8)
			})
		})
	})

	Convey("Given a negative or neutral text score", t, func() {
		Convey("When behavior stress is low", func() {
			Convey("Then the text score is kept", func() {
				So(fusion.AdjustText(model.ChannelScore{Value: 0.9, Label: "Negative"}, 0.1), ShouldEqual, 0.9)
				So(fusion.AdjustText(model.ChannelScore{Value: 0.7, Label: "Neutral"}, 0.1), ShouldEqual, 0.7)
			})
		})
	})
}

func TestSelectWeights(t *testing.T) {
	Convey("Given behavior scores", t, func() {
		Convey("When stress is above 0.9", func() {
			w, r := fusion.SelectWeights(model.BehaviorScore{Stress: 0.95, Depression: 0.1})

			Convey("Then the extreme weights are selected", func() {
				So(w, ShouldResemble, fusion.Weights{Text: 0.25, Face: 0.25, Behavior: 0.5})
				So(r, ShouldEqual, fusion.RegimeExtreme)
			})
		})

		Convey("When depression is above 0.9", func() {
			w, _ := fusion.SelectWeights(model.BehaviorScore{Stress: 0.2, Depression: 0.95})

			Convey("Then the extreme weights are selected", func() {
				So(w, ShouldResemble, fusion.ExtremeWeights)
			})
		})

		Convey("When both are moderate", func() {
			w, r := fusion.SelectWeights(model.BehaviorScore{Stress: 0.5, Depression: 0.5})

			Convey("Then the normal weights are selected", func() {
				So(w, ShouldResemble, fusion.Weights{Text: 0.3, Face: 0.3, Behavior: 0.4})
				So(r, ShouldEqual, fusion.RegimeNormal)
			})
		})

		Convey("When a score is exactly 0.9", func() {
			w, _ := fusion.SelectWeights(model.BehaviorScore{Stress: 0.9, Depression: 0.9})

			Convey("Then the comparison is strict", func() {
				So(w, ShouldResemble, fusion.NormalWeights)
			})
		})
	})
}

func TestWeighted(t *testing.T) {
	Convey("Given the weighted strategy", t, func() {
		s, err := fusion.New("weighted")
		So(err, ShouldBeNil)
		So(s.Name(), ShouldEqual, "weighted")

		Convey("When behavior is moderate", func() {
			out, err := s.Fuse(fusion.Input{Text: 0.5, Face: 0.5, Behavior: model.BehaviorScore{Stress: 0.2, Depression: 0.36}})

			Convey("Then both targets share the normal weights", func() {
				So(err, ShouldBeNil)
				So(out.Stress, ShouldAlmostEqual, 0.15+0.15+0.08)
				So(out.Depression, ShouldAlmostEqual, 0.15+0.15+0.144)
				So(out.Regime, ShouldEqual, fusion.RegimeNormal)
			})
		})

		Convey("When behavior depression is extreme", func() {
			out, _ := s.Fuse(fusion.Input{Text: 1, Face: 0.5, Behavior: model.BehaviorScore{Stress: 0.4, Depression: 1}})

			Convey("Then the stress target also uses the extreme weights", func() {
				So(out.Stress, ShouldAlmostEqual, 0.25+0.125+0.2)
				So(out.Depression, ShouldAlmostEqual, 0.25+0.125+0.5)
				So(out.Weights, ShouldResemble, fusion.ExtremeWeights)
			})
		})
	})
}

func TestVoting(t *testing.T) {
	Convey("Given the voting strategy with the default threshold", t, func() {
		v := fusion.NewVoting(fusion.DefaultVotingThreshold)

		Convey("When confidences are close together", func() {
			got, err := v.Vote(0.9, 0.5, 0.8)

			Convey("Then soft voting carries 0.7 of the result", func() {
				So(err, ShouldBeNil)
				soft := (0.9*0.9 + 0.5*0.5 + 0.8*0.8) / 2.2
				So(got, ShouldAlmostEqual, soft*0.7+(2.0/3.0)*0.3)
			})
		})

		Convey("When confidences are spread out", func() {
			got, err := v.Vote(1.0, 0.5, 0.0)

			Convey("Then soft voting carries 0.8 of the result", func() {
				So(err, ShouldBeNil)
				So(got, ShouldAlmostEqual, 0.5*0.8+(1.0/3.0)*0.2)
			})
		})

		Convey("When every channel is uninformative", func() {
			got, _ := v.Vote(0.5, 0.5, 0.5)

			Convey("Then no hard votes are cast", func() {
				So(got, ShouldAlmostEqual, 0.35)
			})
		})

		Convey("When a score is exactly the threshold", func() {
			got, _ := v.Vote(0.6, 0.6, 0.6)

			Convey("Then it does not count as a vote", func() {
				So(got, ShouldAlmostEqual, 0.6*0.7)
			})
		})

		Convey("When a score is outside [0,1]", func() {
			_, errLow := v.Vote(-0.1, 0.5, 0.5)
			_, errHigh := v.Vote(0.5, 1.1, 0.5)
			_, errNaN := v.Vote(0.5, 0.5, math.NaN())

			Convey("Then the vote fails with an invalid-score error", func() {
				So(errors.Is(errLow, fusion.ErrInvalidScore), ShouldBeTrue)
				So(errors.Is(errHigh, fusion.ErrInvalidScore), ShouldBeTrue)
				So(errors.Is(errNaN, fusion.ErrInvalidScore), ShouldBeTrue)
			})
		})

		Convey("When used as a strategy", func() {
			s, err := fusion.New("voting", fusion.WithVotingThreshold(0.6))
			So(err, ShouldBeNil)
			out, err := s.Fuse(fusion.Input{Text: 0.9, Face: 0.5, Behavior: model.BehaviorScore{Stress: 0.8, Depression: 0.0}})

			Convey("Then each target votes with its own behavior score", func() {
				So(err, ShouldBeNil)
				stress, _ := v.Vote(0.9, 0.5, 0.8)
				depression, _ := v.Vote(0.9, 0.5, 0.0)
				So(out.Stress, ShouldEqual, stress)
				So(out.Depression, ShouldEqual, depression)
				So(s.Name(), ShouldEqual, "voting")
			})
		})

		Convey("When a strategy input is invalid", func() {
			_, err := v.Fuse(fusion.Input{Text: 0.5, Face: 2, Behavior: model.BehaviorScore{}})

			Convey("Then the error propagates", func() {
				So(errors.Is(err, fusion.ErrInvalidScore), ShouldBeTrue)
			})
		})
	})
}

func TestNew(t *testing.T) {
	Convey("Given strategy names", t, func() {
		Convey("When the name is unknown", func() {
			_, err := fusion.New("median")

			Convey("Then construction fails", func() {
				So(errors.Is(err, fusion.ErrUnknownStrategy), ShouldBeTrue)
			})
		})

		Convey("When the name is empty", func() {
			s, err := fusion.New("")

			Convey("Then the weighted strategy is the default", func() {
				So(err, ShouldBeNil)
				So(s.Name(), ShouldEqual, fusion.StrategyWeighted)
			})
		})
	})
}
