package behavior

import (
	"sync"
	"sync/atomic"
)

// ModelState reports the lifecycle of a LazyModel.
type ModelState int32

// Model lifecycle states.
const (
	StateUninitialized ModelState = iota
	StateReady
	StateFailed
)

func (s ModelState) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "uninitialized"
	}
}

// LazyModel trains a Model exactly once, on the first Get or Init call.
// It is safe for concurrent use.
type LazyModel struct {
	once    sync.Once
	train   func() (*Model, error)
	state   atomic.Int32
	model   *Model
	initErr error
}

// NewLazyModel returns a holder that trains on samples when first needed.
func NewLazyModel(samples []Sample, opts ...TrainOption) *LazyModel {
	return &LazyModel{
		train: func() (*Model, error) { return Train(samples, opts...) },
	}
}

// Init forces training. Repeated calls return the first outcome.
func (l *LazyModel) Init() error {
	_, err := l.Get()
	return err
}

// Get returns the trained model, training it on first use.
func (l *LazyModel) Get() (*Model, error) {
	l.once.Do(func() {
		l.model, l.initErr = l.train()
		if l.initErr != nil {
			l.state.Store(int32(StateFailed))
			return
		}
		l.state.Store(int32(StateReady))
	})
	if l.initErr != nil {
		return nil, l.initErr
	}
	return l.model, nil
}

// State reports whether the model has been trained.
func (l *LazyModel) State() ModelState {
	return ModelState(l.state.Load())
}
