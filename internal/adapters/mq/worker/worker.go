// Package worker drains the audit queue into a record sink.
package worker

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/okian/mindscan/internal/domain/model"
	"github.com/okian/mindscan/pkg/logger"
	"github.com/okian/mindscan/pkg/metrics"
)

const poolShutdownTimeout = 30 * time.Second

// Record is what workers read off the queue.
type Record = model.Assessment

// Sink persists one record.
type Sink interface {
	Write(ctx context.Context, r Record) error
}

// Queue defines how workers receive records.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Record
}

// InMemoryWorker moves records from a queue to a sink.
type InMemoryWorker struct {
	queue Queue
	sink  Sink
	name  string

	written atomic.Int64
	failed  atomic.Int64

	done chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a worker with configuration options.
func NewInMemoryWorker(queue Queue, sink Sink, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue: queue,
		sink:  sink,
		name:  "worker",
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Named(w.name)
	}
	return w
}

// Run processes records until the queue is drained and closed or ctx is done.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	for r := range w.queue.Dequeue(ctx) {
		if err := w.sink.Write(ctx, r); err != nil {
			w.failed.Add(1)
			metrics.RecordAuditFailed()
			w.logger.Error(ctx, "audit write failed",
				logger.String("assessment_id", r.ID),
				logger.Error(err),
			)
			continue
		}
		w.written.Add(1)
		metrics.RecordAuditWritten()
	}
}

// Done is closed once Run returns.
func (w *InMemoryWorker) Done() <-chan struct{} {
	return w.done
}

// Stats returns written and failed counts.
func (w *InMemoryWorker) Stats() (written, failed int64) {
	return w.written.Load(), w.failed.Load()
}

// Pool manages multiple workers over one queue.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue
	cancel  context.CancelFunc
	logger  logger.Logger
}

// NewPool creates a pool of workerCount workers (at least one).
func NewPool(workerCount int, queue Queue, sink Sink) *Pool {
	if workerCount < 1 {
		workerCount = 1
	}
	p := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   queue,
		logger:  logger.Named("audit-pool"),
	}
	for i := range p.workers {
		p.workers[i] = NewInMemoryWorker(queue, sink, WithName("audit-worker-"+strconv.Itoa(i)))
	}
	return p
}

// Start launches every worker. Workers stop when the queue closes or ctx ends.
func (p *Pool) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	for _, w := range p.workers {
		go w.Run(ctx)
	}
	metrics.UpdateWorkerCount(len(p.workers))
}

// Stats sums worker counters.
func (p *Pool) Stats() (written, failed int64) {
	for _, w := range p.workers {
		ws, wf := w.Stats()
		written += ws
		failed += wf
	}
	return written, failed
}

// Shutdown closes the queue and waits for workers to drain it. When ctx
// expires first, workers are cancelled and the remaining backlog is lost.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	waitCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	var err error
	for i, w := range p.workers {
		select {
		case <-w.Done():
		case <-waitCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
			err = fmt.Errorf("shutdown timed out: %w", waitCtx.Err())
		}
		if err != nil {
			break
		}
	}
	if p.cancel != nil {
		p.cancel()
	}
	metrics.UpdateWorkerCount(0)
	return err
}
