// Package queue provides the bounded in-memory queue that carries completed
// assessments to the audit workers.
package queue

import (
	"context"
	"sync"

	"github.com/okian/mindscan/internal/domain/model"
	"github.com/okian/mindscan/pkg/metrics"
)

const defaultQueueCapacity = 1024

// Record is the payload flowing through the queue.
type Record = model.Assessment

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a record. Returns false if the queue is full or closed.
	Enqueue(ctx context.Context, r Record) bool

	// Dequeue returns a channel that receives records until the queue is
	// closed and drained, or ctx is done.
	Dequeue(ctx context.Context) <-chan Record

	// Len returns the current backlog.
	Len() int

	// Close stops accepting records. Queued records remain readable.
	Close() error

	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	records  chan Record
	capacity int
	mu       sync.RWMutex
	closed   bool
}

// NewInMemoryQueue creates a queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultQueueCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.records = make(chan Record, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	return q
}

// Enqueue adds a record without blocking.
func (q *InMemoryQueue) Enqueue(ctx context.Context, r Record) bool { //nolint:gocritic // hugeParam: records are passed by value through the channel
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed || ctx.Err() != nil {
		return false
	}
	select {
	case q.records <- r:
		metrics.UpdateQueueSize(len(q.records))
		return true
	default:
		return false
	}
}

// Dequeue returns a channel fed from the queue. The channel closes once the
// queue is closed and drained, or as soon as ctx is done, even while idle.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Record {
	out := make(chan Record)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case r, ok := <-q.records:
				if !ok {
					return
				}
				select {
				case out <- r:
					metrics.UpdateQueueSize(len(q.records))
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// Len returns the current backlog.
func (q *InMemoryQueue) Len() int {
	return len(q.records)
}

// Close stops accepting records.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.records)
	q.closed = true
	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
