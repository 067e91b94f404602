// Package service runs one assessment end to end: it scores each channel,
// fuses the scores, classifies the result and hands it to the stress log.
package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	auditqueue "github.com/okian/mindscan/internal/adapters/mq/queue"
	auditpool "github.com/okian/mindscan/internal/adapters/mq/worker"
	"github.com/okian/mindscan/internal/adapters/repository"
	"github.com/okian/mindscan/internal/domain/behavior"
	"github.com/okian/mindscan/internal/domain/channel"
	"github.com/okian/mindscan/internal/domain/classify"
	"github.com/okian/mindscan/internal/domain/fusion"
	"github.com/okian/mindscan/internal/domain/model"
	"github.com/okian/mindscan/pkg/logger"
	"github.com/okian/mindscan/pkg/metrics"
)

const (
	defaultAuditQueueSize = 1024
	auditShutdownTimeout  = 10 * time.Second
)

// Service implements the assessment pipeline used by the HTTP API.
type Service struct {
	mu sync.RWMutex

	// Collaborators
	textScorer channel.TextScorer
	faceScorer channel.FaceScorer
	strategy   fusion.Strategy
	model      *behavior.LazyModel
	normalizer *channel.Normalizer

	// Stress log
	auditStore     repository.Store
	auditQueue     *auditqueue.InMemoryQueue
	auditPool      *auditpool.Pool
	auditQueueSize int
	auditWorkers   int
	auditDropped   atomic.Int64

	// Configuration
	parallel  bool
	eagerInit bool
	now       func() time.Time
	newID     func() string

	// State
	started     bool
	stopped     bool
	assessments atomic.Int64
	failures    atomic.Int64

	logger logger.Logger
}

// New constructs a Service with default collaborators: the weighted
// strategy and a behavior model trained on the seed dataset.
func New(opts ...Option) *Service {
	s := &Service{
		strategy:       fusion.Weighted{},
		model:          behavior.NewLazyModel(behavior.SeedDataset()),
		auditQueueSize: defaultAuditQueueSize,
		auditWorkers:   1,
		parallel:       true,
		eagerInit:      true,
		now:            time.Now,
		newID:          uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start prepares the pipeline. With eager init the behavior model is
// trained here and a training failure aborts startup; otherwise training
// starts in the background and the first assessment waits for it.
// A Service is single use: Start after Stop returns ErrStopped.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return ErrStopped
	}
	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Named("service")
	}
	s.logger.Info(ctx, "starting assessment service...")

	if s.eagerInit {
		if err := s.model.Init(); err != nil {
			metrics.SetModelReady(false)
			return fmt.Errorf("train behavior model: %w", err)
		}
		metrics.SetModelReady(true)
	} else {
		go s.warmModel(context.WithoutCancel(ctx))
	}

	s.normalizer = channel.NewNormalizer(
		channel.WithTextScorer(s.textScorer),
		channel.WithFaceScorer(s.faceScorer),
		channel.WithLogger(s.logger.Named("channel")),
	)

	if s.auditStore != nil {
		s.auditQueue = auditqueue.NewInMemoryQueue(auditqueue.WithCapacity(s.auditQueueSize))
		s.auditPool = auditpool.NewPool(s.auditWorkers, s.auditQueue, s.auditStore)
		// Audit workers outlive the start context; Stop ends them.
		s.auditPool.Start(context.WithoutCancel(ctx))
	}

	s.started = true
	s.logger.Info(ctx, "assessment service started",
		logger.String("strategy", s.strategy.Name()),
		logger.String("model_state", s.model.State().String()),
		logger.Bool("parallel_channels", s.parallel),
		logger.Bool("text_channel", s.textScorer != nil),
		logger.Bool("face_channel", s.faceScorer != nil),
		logger.Bool("audit", s.auditStore != nil),
	)
	return nil
}

// Stop drains the stress log and releases resources.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx := context.Background()
	s.logger.Info(ctx, "stopping assessment service...")

	if s.auditPool != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, auditShutdownTimeout)
		if err := s.auditPool.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn(ctx, "stress log did not drain", logger.Error(err))
		}
		cancel()
	}
	if s.auditStore != nil {
		if err := s.auditStore.Close(); err != nil {
			s.logger.Error(ctx, "closing stress log", logger.Error(err))
		}
	}

	s.started = false
	s.stopped = true
	s.logger.Info(ctx, "assessment service stopped")
}

// warmModel trains the lazy behavior model so readiness does not wait for
// the first assessment.
func (s *Service) warmModel(ctx context.Context) {
	if err := s.model.Init(); err != nil {
		metrics.SetModelReady(false)
		s.logger.Warn(ctx, "behavior model training failed", logger.Error(err))
		return
	}
	metrics.SetModelReady(true)
	s.logger.Info(ctx, "behavior model trained in background")
}

// Assess scores a request. Channel problems degrade to neutral defaults;
// only invalid behavior input or an unusable behavior model return errors.
func (s *Service) Assess(ctx context.Context, req model.Request) (model.Assessment, error) { //nolint:gocritic // hugeParam: request carries the image by value
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()
	if !started {
		return model.Assessment{}, ErrNotStarted
	}

	start := time.Now()
	a, err := s.assess(ctx, req)
	metrics.RecordAssessmentLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		s.failures.Add(1)
		return model.Assessment{}, err
	}
	s.assessments.Add(1)

	metrics.RecordAssessment(string(a.Result.StressLevel), string(a.Result.DepressionLevel), a.Strategy)
	if a.Result.AlertCounselor {
		metrics.RecordAlert("counselor")
	}
	if a.Result.AlertProctor {
		metrics.RecordAlert("proctor")
	}
	s.logger.Info(ctx, "assessment complete",
		logger.String("assessment_id", a.ID),
		logger.String("student_id", a.StudentID),
		logger.Float64("stress", a.Result.StressScore),
		logger.String("stress_level", string(a.Result.StressLevel)),
		logger.Float64("depression", a.Result.DepressionScore),
		logger.String("depression_level", string(a.Result.DepressionLevel)),
		logger.Bool("alert_counselor", a.Result.AlertCounselor),
		logger.Bool("alert_proctor", a.Result.AlertProctor),
	)

	s.audit(ctx, a)
	return a, nil
}

func (s *Service) assess(ctx context.Context, req model.Request) (model.Assessment, error) { //nolint:gocritic // hugeParam
	v := req.Behavior.Vector()
	in, err := behavior.ParseInput(v[:])
	if err != nil {
		metrics.RecordAssessmentFailure("invalid_input")
		return model.Assessment{}, err
	}

	var ch model.Channels
	text := func(ctx context.Context) error {
		defer observe(channel.NameText, time.Now())
		ch.Text = s.normalizer.Text(ctx, req.Text)
		return nil
	}
	face := func(ctx context.Context) error {
		defer observe(channel.NameFace, time.Now())
		ch.Face = s.normalizer.Face(ctx, req.Image)
		return nil
	}
	behave := func(context.Context) error {
		defer observe("behavior", time.Now())
		m, err := s.model.Get()
		if err != nil {
			metrics.SetModelReady(false)
			return fmt.Errorf("%w: %w", behavior.ErrModelNotReady, err)
		}
		metrics.SetModelReady(true)
		ch.Behavior = behavior.NewScorer(m).Analyze(in)
		return nil
	}

	if err := s.run(ctx, text, face, behave); err != nil {
		metrics.RecordAssessmentFailure("model_unavailable")
		return model.Assessment{}, err
	}

	s.logger.Info(ctx, "channel scores",
		logger.Float64("text", ch.Text.Value),
		logger.String("sentiment", ch.Text.Label),
		logger.Float64("face", ch.Face.Value),
		logger.String("emotion", ch.Face.Label),
		logger.Float64("behavior_stress", ch.Behavior.Stress),
		logger.Float64("behavior_depression", ch.Behavior.Depression),
	)

	ch.AdjustedText = fusion.AdjustText(ch.Text, ch.Behavior.Stress)
	out, err := s.strategy.Fuse(fusion.Input{
		Text:     ch.AdjustedText,
		Face:     ch.Face.Value,
		Behavior: ch.Behavior,
	})
	if err != nil {
		metrics.RecordAssessmentFailure("fusion")
		return model.Assessment{}, fmt.Errorf("fuse scores: %w", err)
	}
	if out.Regime != "" {
		metrics.RecordFusionRegime(string(out.Regime))
	}

	return model.Assessment{
		ID:        s.newID(),
		StudentID: req.StudentID,
		CreatedAt: s.now().UTC(),
		Behavior:  in,
		Channels:  ch,
		Strategy:  s.strategy.Name(),
		Result:    classify.Classify(out.Stress, out.Depression),
	}, nil
}

// run evaluates the channel funcs concurrently or in order. Each func
// writes a distinct field, so no further locking is needed.
func (s *Service) run(ctx context.Context, fns ...func(context.Context) error) error {
	if !s.parallel {
		for _, fn := range fns {
			if err := fn(ctx); err != nil {
				return err
			}
		}
		return nil
	}
	g, gctx := errgroup.WithContext(ctx)
	for _, fn := range fns {
		g.Go(func() error { return fn(gctx) })
	}
	return g.Wait()
}

func (s *Service) audit(ctx context.Context, a model.Assessment) { //nolint:gocritic // hugeParam
	if s.auditQueue == nil {
		return
	}
	if !s.auditQueue.Enqueue(ctx, a) {
		s.auditDropped.Add(1)
		metrics.RecordAuditDropped()
		s.logger.Warn(ctx, "stress log queue full; record dropped",
			logger.String("assessment_id", a.ID))
	}
}

func observe(name string, start time.Time) {
	metrics.RecordChannelLatency(name, float64(time.Since(start).Milliseconds()))
}

// ModelState reports the behavior model lifecycle.
func (s *Service) ModelState() behavior.ModelState {
	return s.model.State()
}

// Strategy returns the active fusion strategy name.
func (s *Service) Strategy() string {
	return s.strategy.Name()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":           s.started,
		"strategy":          s.strategy.Name(),
		"model_state":       s.model.State().String(),
		"parallel_channels": s.parallel,
		"text_channel":      s.textScorer != nil,
		"face_channel":      s.faceScorer != nil,
		"assessments":       s.assessments.Load(),
		"failures":          s.failures.Load(),
		"audit_enabled":     s.auditStore != nil,
	}
	if s.auditQueue != nil {
		written, failed := s.auditPool.Stats()
		stats["audit_queue_length"] = s.auditQueue.Len()
		stats["audit_written"] = written
		stats["audit_failed"] = failed
		stats["audit_dropped"] = s.auditDropped.Load()
		metrics.UpdateQueueSize(s.auditQueue.Len())
	}
	return stats
}
