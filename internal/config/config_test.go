package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/mindscan/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with defaults", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.FusionStrategy, convey.ShouldEqual, config.StrategyWeighted)
			convey.So(cfg.VotingThreshold, convey.ShouldEqual, 0.6)
			convey.So(cfg.ParallelChannels, convey.ShouldBeTrue)
			convey.So(cfg.TextBackend, convey.ShouldEqual, config.TextBackendLexicon)
			convey.So(cfg.TextCacheSize, convey.ShouldEqual, 1024)
			convey.So(cfg.FaceEndpoint, convey.ShouldBeEmpty)
			convey.So(cfg.FaceMaxDimension, convey.ShouldEqual, 1000)
			convey.So(cfg.FaceMaxPixels, convey.ShouldEqual, 40_000_000)
			convey.So(cfg.AuditPath, convey.ShouldEqual, "stress_logs.jsonl")
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then derived durations and sizes match", func() {
			convey.So(cfg.TextTimeout(), convey.ShouldEqual, 2*time.Second)
			convey.So(cfg.FaceTimeout(), convey.ShouldEqual, 5*time.Second)
			convey.So(cfg.MaxUploadBytes(), convey.ShouldEqual, int64(10<<20))
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with one invalid setting", t, func() {
		cases := []struct {
			name   string
			mutate func(*config.Config)
		}{
			{"empty addr", func(c *config.Config) { c.Addr = "" }},
			{"unknown strategy", func(c *config.Config) { c.FusionStrategy = "stacking" }},
			{"threshold above 1", func(c *config.Config) { c.VotingThreshold = 1.5 }},
			{"unknown backend", func(c *config.Config) { c.TextBackend = "bert" }},
			{"http without endpoint", func(c *config.Config) { c.TextBackend = config.TextBackendHTTP }},
			{"zero upload size", func(c *config.Config) { c.MaxUploadMB = 0 }},
			{"no audit workers", func(c *config.Config) { c.AuditWorkers = 0 }},
		}
		for _, tc := range cases {
			convey.Convey("Then "+tc.name+" is rejected", func() {
				cfg := config.New()
				tc.mutate(cfg)
				err := cfg.Validate()
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}

		convey.Convey("Then a disabled audit log ignores worker settings", func() {
			cfg := config.New()
			cfg.AuditPath = ""
			cfg.AuditWorkers = 0
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
