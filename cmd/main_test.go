package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/mindscan/internal/config"
	"github.com/okian/mindscan/pkg/logger"
	"github.com/okian/mindscan/pkg/metrics"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.New()
	cfg.AuditPath = filepath.Join(t.TempDir(), "stress_logs.jsonl")
	return cfg
}

func TestBuildService(t *testing.T) {
	convey.Convey("Given a default configuration", t, func() {
		cfg := testConfig(t)

		convey.Convey("When the service is built", func() {
			svc, err := buildService(cfg, logger.Get())
			convey.So(err, convey.ShouldBeNil)
			convey.So(svc, convey.ShouldNotBeNil)

			stats := svc.GetStats()
			convey.So(stats["strategy"], convey.ShouldEqual, "weighted")
			convey.So(stats["text_channel"], convey.ShouldBeTrue)
			convey.So(stats["face_channel"], convey.ShouldBeFalse)
			convey.So(stats["audit_enabled"], convey.ShouldBeTrue)
		})

		convey.Convey("When a face endpoint and voting strategy are configured", func() {
			cfg.FaceEndpoint = "http://127.0.0.1:1/detect"
			cfg.FusionStrategy = config.StrategyVoting
			svc, err := buildService(cfg, logger.Get())
			convey.So(err, convey.ShouldBeNil)

			stats := svc.GetStats()
			convey.So(stats["strategy"], convey.ShouldEqual, "voting")
			convey.So(stats["face_channel"], convey.ShouldBeTrue)
		})

		convey.Convey("When the stress log is disabled", func() {
			cfg.AuditPath = ""
			svc, err := buildService(cfg, logger.Get())
			convey.So(err, convey.ShouldBeNil)
			convey.So(svc.GetStats()["audit_enabled"], convey.ShouldBeFalse)
		})

		convey.Convey("When the strategy is unknown", func() {
			cfg.FusionStrategy = "median"
			_, err := buildService(cfg, logger.Get())
			convey.So(err, convey.ShouldNotBeNil)
		})

		convey.Convey("When the stress log path is a directory", func() {
			cfg.AuditPath = t.TempDir()
			_, err := buildService(cfg, logger.Get())
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestHandlerWiring(t *testing.T) {
	convey.Convey("Given a started service behind the composed handler", t, func() {
		cfg := testConfig(t)
		ctx := context.Background()

		svc, err := buildService(cfg, logger.Get())
		convey.So(err, convey.ShouldBeNil)
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		srv := httptest.NewServer(newHandler(ctx, svc, cfg, logger.Get()))
		defer srv.Close()

		convey.Convey("Then every route is mounted", func() {
			for _, path := range []string{"/", "/healthz", "/readyz", "/stats", "/api-docs", "/openapi.yaml"} {
				resp, err := http.Get(srv.URL + path)
				convey.So(err, convey.ShouldBeNil)
				_ = resp.Body.Close()
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
			}
		})

		convey.Convey("Then /predict assesses a form submission", func() {
			form := url.Values{
				"text":           {"I feel terrible and overwhelmed"},
				"study_behavior": {"[9,7,4,8]"},
				"student_id":     {"s-42"},
			}
			resp, err := http.Post(srv.URL+"/predict", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
			convey.So(err, convey.ShouldBeNil)
			defer resp.Body.Close()
			convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
			convey.So(resp.Header.Get("Access-Control-Allow-Origin"), convey.ShouldEqual, "*")

			var body map[string]any
			convey.So(json.NewDecoder(resp.Body).Decode(&body), convey.ShouldBeNil)
			convey.So(body["stress_level"], convey.ShouldEqual, "Severe")
		})
	})
}

func TestMetricsUpdaters(t *testing.T) {
	convey.Convey("Given the metric updaters", t, func() {
		cfg := testConfig(t)
		svc, err := buildService(cfg, logger.Get())
		convey.So(err, convey.ShouldBeNil)
		convey.So(svc.Start(context.Background()), convey.ShouldBeNil)
		defer svc.Stop()

		convey.Convey("Then a single update does not panic", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
			convey.So(func() { updateServiceMetrics(svc) }, convey.ShouldNotPanic)
		})

		convey.Convey("Then the updater loops stop with their context", func() {
			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan struct{}, 2)
			go func() { startSystemMetricsUpdater(ctx); done <- struct{}{} }()
			go func() { startServiceMetricsUpdater(ctx, svc); done <- struct{}{} }()
			cancel()
			<-done
			<-done
		})

		convey.Convey("Then runtime collectors can be registered", func() {
			convey.So(metrics.RegisterRuntimeCollectors, convey.ShouldNotPanic)
		})
	})
}

func TestRunConfigError(t *testing.T) {
	convey.Convey("Given an invalid configuration in the environment", t, func() {
		_ = os.Setenv("MINDSCAN_FUSION_STRATEGY", "median")
		defer func() { _ = os.Unsetenv("MINDSCAN_FUSION_STRATEGY") }()

		convey.Convey("When run is called", func() {
			err := run(context.Background())

			convey.Convey("Then it fails before serving", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}
