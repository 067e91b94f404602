package service

import (
	"time"

	"github.com/okian/mindscan/internal/adapters/repository"
	"github.com/okian/mindscan/internal/domain/behavior"
	"github.com/okian/mindscan/internal/domain/channel"
	"github.com/okian/mindscan/internal/domain/fusion"
	"github.com/okian/mindscan/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTextScorer sets the text channel backend. Nil leaves text unavailable.
func WithTextScorer(t channel.TextScorer) Option {
	return func(s *Service) { s.textScorer = t }
}

// WithFaceScorer sets the face channel backend. Nil leaves face unavailable.
func WithFaceScorer(f channel.FaceScorer) Option {
	return func(s *Service) { s.faceScorer = f }
}

// WithStrategy sets the fusion strategy.
func WithStrategy(st fusion.Strategy) Option {
	return func(s *Service) {
		if st != nil {
			s.strategy = st
		}
	}
}

// WithBehaviorModel replaces the lazily trained behavior regressor.
func WithBehaviorModel(m *behavior.LazyModel) Option {
	return func(s *Service) {
		if m != nil {
			s.model = m
		}
	}
}

// WithParallelChannels toggles concurrent channel evaluation.
func WithParallelChannels(on bool) Option {
	return func(s *Service) { s.parallel = on }
}

// WithEagerModelInit trains the behavior model during Start.
func WithEagerModelInit(on bool) Option {
	return func(s *Service) { s.eagerInit = on }
}

// WithAuditStore enables the stress log. Nil disables it.
func WithAuditStore(st repository.Store) Option {
	return func(s *Service) { s.auditStore = st }
}

// WithAuditQueueSize bounds the audit backlog.
func WithAuditQueueSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.auditQueueSize = n
		}
	}
}

// WithAuditWorkers sets the number of audit writers.
func WithAuditWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.auditWorkers = n
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides assessment ID generation.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}
