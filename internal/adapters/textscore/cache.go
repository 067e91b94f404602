package textscore

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/okian/mindscan/internal/domain/channel"
	"github.com/okian/mindscan/internal/domain/model"
	"github.com/okian/mindscan/pkg/metrics"
)

// Cached memoizes a scorer by normalized text. Errors are never cached.
type Cached struct {
	delegate channel.TextScorer
	cache    *lru.Cache[string, model.ChannelScore]
}

// NewCached wraps delegate with an LRU cache of size entries.
// A non-positive size returns delegate unchanged.
func NewCached(delegate channel.TextScorer, size int) channel.TextScorer {
	if delegate == nil || size <= 0 {
		return delegate
	}
	cache, err := lru.New[string, model.ChannelScore](size)
	if err != nil {
		return delegate
	}
	return &Cached{delegate: delegate, cache: cache}
}

// ScoreText returns a cached score or computes and stores a new one.
func (c *Cached) ScoreText(ctx context.Context, text string) (model.ChannelScore, error) {
	key := normalize(text)
	if s, ok := c.cache.Get(key); ok {
		metrics.RecordTextCacheHit()
		return s, nil
	}
	metrics.RecordTextCacheMiss()
	s, err := c.delegate.ScoreText(ctx, text)
	if err != nil {
		return s, err
	}
	c.cache.Add(key, s)
	return s, nil
}

// Len reports cached entries.
func (c *Cached) Len() int {
	return c.cache.Len()
}
