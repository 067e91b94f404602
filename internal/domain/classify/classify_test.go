package classify_test

import (
	"testing"

	"github.com/okian/mindscan/internal/domain/classify"
	"github.com/okian/mindscan/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLevels(t *testing.T) {
	Convey("Given stress scores at the level boundaries", t, func() {
		cases := map[float64]model.Level{
			1.0:     model.LevelSevere,
			0.76:    model.LevelSevere,
			0.75999: model.LevelHigh,
			0.51:    model.LevelHigh,
			0.5099:  model.LevelModerate,
			0.26:    model.LevelModerate,
			0.25:    model.LevelNormal,
			0.24:    model.LevelNormal,
			0:       model.LevelNormal,
		}
		for score, want := range cases {
			So(classify.StressLevel(score), ShouldEqual, want)
		}
	})

	Convey("Given depression scores at the level boundaries", t, func() {
		cases := map[float64]model.Level{
			0.76:   model.LevelSevere,
			0.7599: model.LevelHigh,
			0.51:   model.LevelHigh,
			0.25:   model.LevelModerate,
			0.24:   model.LevelModerate,
			0.2399: model.LevelNormal,
		}
		for score, want := range cases {
			So(classify.DepressionLevel(score), ShouldEqual, want)
		}
	})
}

func TestRecommendations(t *testing.T) {
	Convey("Given fused scores", t, func() {
		Convey("When neither score is above 0.5", func() {
			recs := classify.Recommendations(0.5, 0.5)

			Convey("Then the healthy routine list is returned", func() {
				So(recs, ShouldResemble, []string{
					"Keep maintaining your current healthy routine",
					"Stay connected with friends and family",
					"Regular exercise helps maintain mental health",
				})
			})
		})

		Convey("When stress is urgent and depression elevated", func() {
			recs := classify.Recommendations(0.8, 0.6)

			Convey("Then the stress list comes first", func() {
				So(len(recs), ShouldEqual, 6)
				So(recs[0], ShouldEqual, "Consider speaking with a counselor immediately")
				So(recs[3], ShouldEqual, "Consider joining student support groups")
			})
		})

		Convey("When only depression is urgent", func() {
			recs := classify.Recommendations(0.1, 0.9)

			Convey("Then only the depression list is returned", func() {
				So(recs, ShouldResemble, []string{
					"Please seek professional help",
					"Connect with friends and family",
					"Maintain a regular daily routine",
				})
			})
		})

		Convey("When stress is exactly 0.75", func() {
			recs := classify.Recommendations(0.75, 0)

			Convey("Then the elevated band applies, not the urgent one", func() {
				So(recs[0], ShouldEqual, "Try to maintain a balanced study schedule")
			})
		})

		Convey("When the result is mutated", func() {
			recs := classify.Recommendations(0, 0)
			recs[0] = "changed"

			Convey("Then later calls are unaffected", func() {
				So(classify.Recommendations(0, 0)[0], ShouldEqual, "Keep maintaining your current healthy routine")
			})
		})
	})
}

func TestAlerts(t *testing.T) {
	Convey("Given fused scores", t, func() {
		Convey("When stress is exactly 0.75", func() {
			counselor, proctor := classify.Alerts(0.75, 0)

			Convey("Then only the proctor is alerted", func() {
				So(counselor, ShouldBeFalse)
				So(proctor, ShouldBeTrue)
			})
		})

		Convey("When depression is just above 0.75", func() {
			counselor, proctor := classify.Alerts(0, 0.7501)

			Convey("Then both are alerted", func() {
				So(counselor, ShouldBeTrue)
				So(proctor, ShouldBeTrue)
			})
		})

		Convey("When both scores are exactly 0.6", func() {
			counselor, proctor := classify.Alerts(0.6, 0.6)

			Convey("Then nobody is alerted", func() {
				So(counselor, ShouldBeFalse)
				So(proctor, ShouldBeFalse)
			})
		})
	})
}

func TestClassify(t *testing.T) {
	Convey("Given a severe stress and moderate depression pair", t, func() {
		r := classify.Classify(0.875, 0.3)

		Convey("Then the result carries every decision", func() {
			So(r.StressScore, ShouldEqual, 0.875)
			So(r.DepressionScore, ShouldEqual, 0.3)
			So(r.StressLevel, ShouldEqual, model.LevelSevere)
			So(r.DepressionLevel, ShouldEqual, model.LevelModerate)
			So(r.AlertCounselor, ShouldBeTrue)
			So(r.AlertProctor, ShouldBeTrue)
			So(len(r.Recommendations), ShouldEqual, 3)
		})
	})
}
