// Package config defines service configuration and its layered loader.
package config

import (
	"fmt"
	"time"
)

// Known strategy and backend names. Kept here so validation does not
// import domain packages.
const (
	StrategyWeighted = "weighted"
	StrategyVoting   = "voting"

	TextBackendLexicon = "lexicon"
	TextBackendHTTP    = "http"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// MaxUploadMB bounds the multipart body of /predict.
	MaxUploadMB int `koanf:"max_upload_mb"`

	// FusionStrategy selects "weighted" or "voting".
	FusionStrategy  string  `koanf:"fusion_strategy"`
	VotingThreshold float64 `koanf:"voting_threshold"`

	// ParallelChannels evaluates text, face and behavior concurrently.
	ParallelChannels bool `koanf:"parallel_channels"`

	// EagerModelInit trains the behavior model at startup instead of on first request.
	EagerModelInit bool `koanf:"eager_model_init"`

	TextBackend   string `koanf:"text_backend"`
	TextEndpoint  string `koanf:"text_endpoint"`
	TextTimeoutMS int    `koanf:"text_timeout_ms"`
	// TextCacheSize is the LRU size for text scores; 0 disables caching.
	TextCacheSize int `koanf:"text_cache_size"`

	// FaceEndpoint is the emotion detector URL; empty disables face scoring.
	FaceEndpoint     string `koanf:"face_endpoint"`
	FaceTimeoutMS    int    `koanf:"face_timeout_ms"`
	FaceMaxDimension int    `koanf:"face_max_dimension"`
	// FaceMaxPixels rejects images whose declared width*height is larger.
	FaceMaxPixels int `koanf:"face_max_pixels"`

	// AuditPath is the JSONL stress log; empty disables it.
	AuditPath      string `koanf:"audit_path"`
	AuditQueueSize int    `koanf:"audit_queue_size"`
	AuditWorkers   int    `koanf:"audit_workers"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":9080",
		MaxUploadMB:      10,
		FusionStrategy:   StrategyWeighted,
		VotingThreshold:  0.6,
		ParallelChannels: true,
		EagerModelInit:   true,
		TextBackend:      TextBackendLexicon,
		TextTimeoutMS:    2000,
		TextCacheSize:    1024,
		FaceTimeoutMS:    5000,
		FaceMaxDimension: 1000,
		FaceMaxPixels:    40_000_000,
		AuditPath:        "stress_logs.jsonl",
		AuditQueueSize:   1024,
		AuditWorkers:     1,
	}
}

// Validate reports the first invalid setting, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("addr must not be empty: %w", ErrInvalidConfig)
	case c.FusionStrategy != StrategyWeighted && c.FusionStrategy != StrategyVoting:
		return fmt.Errorf("fusion_strategy %q: %w", c.FusionStrategy, ErrInvalidConfig)
	case c.VotingThreshold < 0 || c.VotingThreshold > 1:
		return fmt.Errorf("voting_threshold %v outside [0,1]: %w", c.VotingThreshold, ErrInvalidConfig)
	case c.TextBackend != TextBackendLexicon && c.TextBackend != TextBackendHTTP:
		return fmt.Errorf("text_backend %q: %w", c.TextBackend, ErrInvalidConfig)
	case c.TextBackend == TextBackendHTTP && c.TextEndpoint == "":
		return fmt.Errorf("text_endpoint required for http backend: %w", ErrInvalidConfig)
	case c.MaxUploadMB <= 0:
		return fmt.Errorf("max_upload_mb must be positive: %w", ErrInvalidConfig)
	case c.AuditPath != "" && (c.AuditQueueSize <= 0 || c.AuditWorkers <= 0):
		return fmt.Errorf("audit_queue_size and audit_workers must be positive: %w", ErrInvalidConfig)
	}
	return nil
}

// TextTimeout returns TextTimeoutMS as a duration.
func (c *Config) TextTimeout() time.Duration {
	return time.Duration(c.TextTimeoutMS) * time.Millisecond
}

// FaceTimeout returns FaceTimeoutMS as a duration.
func (c *Config) FaceTimeout() time.Duration {
	return time.Duration(c.FaceTimeoutMS) * time.Millisecond
}

// MaxUploadBytes returns MaxUploadMB in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}
