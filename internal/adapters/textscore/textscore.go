// Package textscore provides text channel backends: an offline lexicon, an
// HTTP classifier client and an LRU caching decorator.
package textscore

import (
	"fmt"
	"time"

	"github.com/okian/mindscan/internal/domain/channel"
)

// Backend names.
const (
	BackendLexicon = "lexicon"
	BackendHTTP    = "http"
)

// Settings selects and configures a backend.
type Settings struct {
	Backend   string
	Endpoint  string
	Timeout   time.Duration
	CacheSize int
}

// New builds the configured text scorer, wrapped in a cache when CacheSize > 0.
func New(s Settings) (channel.TextScorer, error) {
	var scorer channel.TextScorer
	switch s.Backend {
	case "", BackendLexicon:
		scorer = NewLexicon()
	case BackendHTTP:
		if s.Endpoint == "" {
			return nil, fmt.Errorf("http backend requires an endpoint: %w", ErrUnknownBackend)
		}
		scorer = NewClient(s.Endpoint, WithTimeout(s.Timeout))
	default:
		return nil, fmt.Errorf("%q: %w", s.Backend, ErrUnknownBackend)
	}
	return NewCached(scorer, s.CacheSize), nil
}
