// File: facade/parsort.go
// Unified entry point of the parsort library.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// A Sorter turns a validated configuration into one engine plus one worker
// pool per call. Nothing outlives the call: the pool is closed on every
// return path, including failures, before Sort returns.

package facade

import (
	"cmp"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/momentics/parsort/adapters"
	"github.com/momentics/parsort/api"
	"github.com/momentics/parsort/control"
	"github.com/momentics/parsort/internal/concurrency"
	"github.com/momentics/parsort/internal/engine"
	"github.com/momentics/parsort/partition"
)

// Sorter sorts sequences in parallel. It is safe for concurrent use; every
// call gets its own work container and pool.
type Sorter struct {
	cfg       *control.Config
	pivot     partition.PivotSelector
	logger    *zap.Logger
	observers control.MultiObserver
	affinity  api.Affinity

	mu   sync.Mutex
	last control.StatsSnapshot
}

// New constructs a Sorter from cfg (nil means control.DefaultConfig) and
// validates the result of applying opts.
func New(cfg *control.Config, opts ...Option) (*Sorter, error) {
	if cfg == nil {
		cfg = control.DefaultConfig()
	}
	s := &Sorter{
		cfg:    cfg.Clone(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}
	pivot, err := partition.PivotByName(s.cfg.Pivot)
	if err != nil {
		return nil, err
	}
	s.pivot = pivot
	return s, nil
}

// ParallelSort sorts seq with a one-off Sorter.
func ParallelSort(seq api.Sequence, opts ...Option) error {
	s, err := New(nil, opts...)
	if err != nil {
		return err
	}
	return s.Sort(seq)
}

// ParallelSortFunc sorts data by less, which must be a strict weak order.
func ParallelSortFunc[T any](data []T, less func(a, b T) bool, opts ...Option) error {
	return ParallelSort(adapters.NewFuncSlice(data, less), opts...)
}

// ParallelSortOrdered sorts data ascending.
func ParallelSortOrdered[T cmp.Ordered](data []T, opts ...Option) error {
	return ParallelSort(adapters.OrderedSlice[T](data), opts...)
}

// Sort sorts seq in place and returns once every element is in position or
// the call failed. A panic raised by seq on any goroutine is returned as an
// error wrapping api.ErrComparatorFailed; seq is then left as some
// permutation of its input.
func (s *Sorter) Sort(seq api.Sequence) (err error) {
	n := seq.Len()
	if n < 2 {
		return nil
	}

	stats := &control.Stats{}
	eng, err := engine.New(seq, engine.Options{
		Grain:     s.cfg.Grain,
		Pivot:     s.pivot,
		Backoff:   s.cfg.Backoff,
		Container: s.cfg.Container,
		Stats:     stats,
	})
	if err != nil {
		return err
	}

	workers := s.cfg.ResolveWorkers()
	poolOpts := []concurrency.PoolOption{
		concurrency.WithLogger(s.logger),
		concurrency.WithBackoff(s.cfg.Backoff),
		concurrency.WithPinning(s.cfg.PinWorkers),
	}
	if s.affinity != nil {
		poolOpts = append(poolOpts, concurrency.WithAffinity(s.affinity))
	}

	start := time.Now()
	p := concurrency.NewPool(workers, eng.TryProcessOne, poolOpts...)
	defer func() {
		p.Close()
		snap := stats.Snapshot()
		snap.Elements = n
		snap.Workers = workers
		snap.PinFailures = p.PinFailures()
		snap.Duration = time.Since(start)
		s.record(snap, err)
	}()

	return eng.Run(api.Range{Lo: 0, Hi: n})
}

// Stats returns the snapshot of the most recent completed call.
func (s *Sorter) Stats() control.StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Config returns a copy of the effective configuration.
func (s *Sorter) Config() *control.Config {
	return s.cfg.Clone()
}

func (s *Sorter) record(snap control.StatsSnapshot, err error) {
	s.mu.Lock()
	s.last = snap
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("parallel sort failed",
			zap.Int("elements", snap.Elements), zap.Int("workers", snap.Workers), zap.Error(err))
	} else {
		s.logger.Debug("parallel sort done",
			zap.Int("elements", snap.Elements),
			zap.Int("workers", snap.Workers),
			zap.Int64("partitions", snap.Partitions),
			zap.Int64("pushed", snap.Pushed),
			zap.Int64("popped_by_workers", snap.PoppedByWorkers),
			zap.Int64("popped_by_helpers", snap.PoppedByHelpers),
			zap.Duration("duration", snap.Duration))
	}
	s.observers.ObserveSort(snap, err)
}
