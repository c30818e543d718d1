// File: internal/concurrency/pool.go
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Pool is a fixed set of worker goroutines that repeatedly call a step
// function until shutdown. The step pops and processes one unit of work from
// a shared container; when it finds nothing the worker backs off. Close
// raises the shutdown flag once and joins every worker.

package concurrency

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/momentics/parsort/api"
)

// StepFunc processes at most one unit of work and reports whether it did.
type StepFunc func() bool

// PoolOption configures a Pool.
type PoolOption func(*poolOptions)

type poolOptions struct {
	logger   *zap.Logger
	backoff  BackoffConfig
	affinity api.Affinity
}

// WithLogger sets the pool logger.
func WithLogger(l *zap.Logger) PoolOption {
	return func(o *poolOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithBackoff sets the idle strategy of the workers.
func WithBackoff(cfg BackoffConfig) PoolOption {
	return func(o *poolOptions) { o.backoff = cfg }
}

// WithPinning pins worker i to the (i%NumCPUs)-th allowed CPU using OSAffinity.
func WithPinning(enabled bool) PoolOption {
	return func(o *poolOptions) {
		if enabled {
			o.affinity = OSAffinity{}
		} else {
			o.affinity = nil
		}
	}
}

// WithAffinity pins workers through a custom implementation.
func WithAffinity(a api.Affinity) PoolOption {
	return func(o *poolOptions) { o.affinity = a }
}

// Pool manages a fixed set of worker goroutines.
type Pool struct {
	numWorkers int
	step       StepFunc
	opts       poolOptions
	shutdown   atomic.Bool
	closeOnce  sync.Once
	wg         sync.WaitGroup

	processed   atomic.Int64
	pinFailures atomic.Int64
}

// NewPool starts n workers running step. n <= 0 starts none; callers
// then make progress on their own through the same step function.
func NewPool(n int, step StepFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers: max(n, 0),
		step:       step,
		opts: poolOptions{
			logger:  zap.NewNop(),
			backoff: DefaultBackoffConfig(),
		},
	}
	for _, opt := range opts {
		opt(&p.opts)
	}

	p.wg.Add(p.numWorkers)
	for i := range p.numWorkers {
		go p.worker(i)
	}
	p.opts.logger.Debug("worker pool started", zap.Int("workers", p.numWorkers))
	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	if p.opts.affinity != nil {
		cpuID := id % NumCPUs()
		unpin, err := p.opts.affinity.Pin(cpuID)
		if err != nil {
			p.pinFailures.Add(1)
			p.opts.logger.Warn("worker pinning failed, running unpinned",
				zap.Int("worker", id), zap.Int("cpu", cpuID), zap.Error(err))
		} else {
			defer func() {
				if err := unpin(); err != nil {
					p.opts.logger.Warn("worker unpin failed, thread retired", zap.Int("worker", id), zap.Error(err))
				}
			}()
		}
	}

	backoff := NewBackoff(p.opts.backoff)
	for !p.shutdown.Load() {
		if p.step() {
			p.processed.Add(1)
			backoff.Reset()
			continue
		}
		backoff.Wait()
	}
}

// NumWorkers returns the number of workers started.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Processed returns how many steps did work on pool goroutines.
func (p *Pool) Processed() int64 {
	return p.processed.Load()
}

// PinFailures returns how many workers could not be pinned.
func (p *Pool) PinFailures() int64 {
	return p.pinFailures.Load()
}

// Close raises the shutdown flag and waits for every worker to exit.
// Work still in the container is left there. Calling Close multiple
// times is safe.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.shutdown.Store(true)
		p.wg.Wait()
		p.opts.logger.Debug("worker pool stopped",
			zap.Int("workers", p.numWorkers), zap.Int64("processed", p.processed.Load()))
	})
}
