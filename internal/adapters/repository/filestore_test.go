package repository

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/mindscan/internal/domain/model"
)

func sampleAssessment(id string) model.Assessment {
	return model.Assessment{
		ID:        id,
		StudentID: "s-1",
		CreatedAt: time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC),
		Behavior:  model.BehaviorInput{StudyTime: 9, SocialMediaHours: 7, SleepHours: 4, DeadlinePressure: 8},
		Strategy:  "weighted",
		Result:    model.Result{StressScore: 0.875, StressLevel: model.LevelSevere, AlertCounselor: true},
	}
}

func readLines(path string) []model.Assessment {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer func() { _ = f.Close() }()
	var out []model.Assessment
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var a model.Assessment
		if json.Unmarshal(sc.Bytes(), &a) == nil {
			out = append(out, a)
		}
	}
	return out
}

func TestFileStore(t *testing.T) {
	Convey("Given a file store in a temp dir", t, func() {
		path := filepath.Join(t.TempDir(), "stress_logs.jsonl")
		s, err := OpenFileStore(path)
		So(err, ShouldBeNil)
		ctx := context.Background()

		Convey("When records are written", func() {
			So(s.Write(ctx, sampleAssessment("a")), ShouldBeNil)
			So(s.Write(ctx, sampleAssessment("b")), ShouldBeNil)

			Convey("Then each is one JSON line", func() {
				lines := readLines(path)
				So(lines, ShouldHaveLength, 2)
				So(lines[0].ID, ShouldEqual, "a")
				So(lines[1].Result.StressLevel, ShouldEqual, model.LevelSevere)
				So(s.Count(), ShouldEqual, 2)
			})

			Convey("Then reopening appends", func() {
				So(s.Close(), ShouldBeNil)
				s2, err := OpenFileStore(path)
				So(err, ShouldBeNil)
				So(s2.Write(ctx, sampleAssessment("c")), ShouldBeNil)
				So(s2.Close(), ShouldBeNil)
				So(readLines(path), ShouldHaveLength, 3)
			})
		})

		Convey("When the store is closed", func() {
			So(s.Close(), ShouldBeNil)
			So(s.Close(), ShouldBeNil)

			Convey("Then writes fail with ErrClosed", func() {
				So(errors.Is(s.Write(ctx, sampleAssessment("x")), ErrClosed), ShouldBeTrue)
			})
		})

		Convey("When written concurrently", func() {
			var wg sync.WaitGroup
			for i := 0; i < 20; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_ = s.Write(ctx, sampleAssessment("c"))
				}()
			}
			wg.Wait()

			Convey("Then no line is interleaved", func() {
				So(readLines(path), ShouldHaveLength, 20)
			})
		})

		Reset(func() { _ = s.Close() })
	})

	Convey("Given an empty path", t, func() {
		_, err := OpenFileStore("")
		So(errors.Is(err, ErrEmptyPath), ShouldBeTrue)
	})
}
