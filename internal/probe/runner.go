// Package probe replays known assessments against a running mindscan server
// and checks the returned levels and alerts.
package probe

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/mindscan/pkg/logger"
)

// Run executes every scenario cfg.Rounds times with cfg.Workers concurrent
// workers. It returns ErrMismatch when any response differs from its
// scenario; transport failures are counted and reported the same way.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Named("probe")

	log.Info(ctx, "starting mindscan probe",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("rounds", cfg.Rounds),
		logger.Int("workers", cfg.Workers),
		logger.Duration("timeout", cfg.Timeout))

	client := newHTTPClient(cfg.Timeout)

	if err := checkReady(ctx, client, cfg.BaseURL); err != nil {
		return stats, err
	}

	scenarios := Scenarios()
	jobs := make(chan Scenario, cfg.Workers*WorkerChannelMultiplier)

	var (
		submitted, passed, mismatched, failed atomic.Int64
		errMu                                 sync.Mutex
		errs                                  []error
	)
	record := func(err error) {
		errMu.Lock()
		errs = append(errs, err)
		errMu.Unlock()
	}

	workers := max(cfg.Workers, 1)
	target := cfg.BaseURL + "/predict"

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range jobs {
				submitted.Add(1)
				status, resp, err := submit(ctx, client, target, s)
				if err != nil {
					failed.Add(1)
					record(fmt.Errorf("%s: %w", s.Name, err))
					continue
				}
				if err := verify(s, status, resp); err != nil {
					mismatched.Add(1)
					record(err)
					continue
				}
				passed.Add(1)
				if cfg.Verbose && resp != nil {
					log.Info(ctx, "scenario passed",
						logger.String("scenario", s.Name),
						logger.Float64("stress_score", resp.StressScore),
						logger.Float64("depression_score", resp.DepressionScore))
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for range max(cfg.Rounds, 1) {
			for _, s := range scenarios {
				select {
				case <-ctx.Done():
					return
				case jobs <- s:
				}
			}
		}
	}()

	wg.Wait()

	stats.Submitted = int(submitted.Load())
	stats.Passed = int(passed.Load())
	stats.Mismatched = int(mismatched.Load())
	stats.Failed = int(failed.Load())
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(ctx, log, stats)

	if len(errs) > 0 {
		for _, err := range errs {
			log.Warn(ctx, "scenario failed", logger.Error(err))
		}
		return stats, fmt.Errorf("%d of %d submissions: %w", len(errs), stats.Submitted, errors.Join(append([]error{ErrMismatch}, errs...)...))
	}
	if err := ctx.Err(); err != nil {
		return stats, err
	}
	return stats, nil
}

func checkReady(ctx context.Context, client *HTTPClient, baseURL string) error {
	resp, err := client.Get(ctx, baseURL+"/readyz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("%w: readyz status %d", ErrNotReady, resp.StatusCode)
	}
	return nil
}

func displayFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	var passRate float64
	if stats.Submitted > 0 {
		passRate = float64(stats.Passed) / float64(stats.Submitted) * PercentageMultiplier
	}

	log.Info(ctx, "final statistics",
		logger.Int("submitted", stats.Submitted),
		logger.Int("passed", stats.Passed),
		logger.Int("mismatched", stats.Mismatched),
		logger.Int("failed", stats.Failed),
		logger.Duration("duration", stats.Duration),
		logger.Float64("passRate", passRate))
}
