// File: internal/engine/engine.go
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Engine is the recursive driver of the parallel quicksort. Each split
// pushes the left half onto the shared container, sorts the right half on
// the current goroutine and then, instead of blocking, keeps popping and
// processing queued ranges until its own left half reports completion. The
// calling goroutine is therefore always a fungible worker, and recursion
// depth can never exhaust a fixed pool.

package engine

import (
	"fmt"
	"sync/atomic"

	"github.com/momentics/parsort/api"
	"github.com/momentics/parsort/control"
	"github.com/momentics/parsort/internal/concurrency"
	"github.com/momentics/parsort/partition"
	"github.com/momentics/parsort/pool"
)

// Options tune one Engine.
type Options struct {
	// Grain is the smallest range that is split in parallel. Shorter ranges
	// are sorted inline. Values below 2 offload every split.
	Grain int
	// Pivot selects the partition pivot. nil means partition.PivotLast.
	Pivot partition.PivotSelector
	// Backoff is the idle strategy of the helping wait.
	Backoff concurrency.BackoffConfig
	// Container names the shared work container, see control.Container*.
	Container string
	// Stats receives counters; nil allocates a private set.
	Stats *control.Stats
}

// failure records the first panic raised by any goroutine of the call.
type failure struct {
	value any
	rng   api.Range
}

// Engine sorts one sequence. It is bound to a single top-level call.
type Engine struct {
	seq   api.Sequence
	stack api.WorkStack[*workItem]
	items *pool.SyncPool[*workItem]
	opts  Options
	stats *control.Stats

	failed atomic.Pointer[failure]
}

// New binds an engine to seq with a fresh shared container.
func New(seq api.Sequence, opts Options) (*Engine, error) {
	stack, err := newStack(opts.Container)
	if err != nil {
		return nil, err
	}
	if opts.Stats == nil {
		opts.Stats = &control.Stats{}
	}
	return &Engine{
		seq:   seq,
		stack: stack,
		items: newItemPool(),
		opts:  opts,
		stats: opts.Stats,
	}, nil
}

func newStack(kind string) (api.WorkStack[*workItem], error) {
	switch kind {
	case "", control.ContainerLockFree:
		return concurrency.NewLockFreeStack[*workItem](), nil
	case control.ContainerMutex:
		return concurrency.NewLockedStack[*workItem](64), nil
	case control.ContainerFIFO:
		return concurrency.NewFIFOQueue[*workItem](), nil
	}
	return nil, fmt.Errorf("container %q: %w", kind, api.ErrUnknownContainer)
}

// Run sorts r on the calling goroutine, helping with queued work while it
// waits. It returns once r is fully sorted or the call failed; a failure
// raised on any goroutine is returned as an *api.Error.
func (e *Engine) Run(r api.Range) error {
	if !r.Within(e.seq.Len()) {
		return api.NewError(api.ErrCodeInvalidArgument, "run: invalid range").
			Wrap(api.ErrInvalidArgument).
			WithContext("range", r.String()).
			WithContext("len", e.seq.Len())
	}
	func() {
		defer e.recoverInto(r)
		e.sort(r)
	}()
	return e.Err()
}

// Err returns the recorded failure, if any.
func (e *Engine) Err() error {
	f := e.failed.Load()
	if f == nil {
		return nil
	}
	if ae, ok := f.value.(*api.Error); ok {
		return ae
	}
	cause := api.ErrComparatorFailed
	if err, ok := f.value.(error); ok {
		cause = fmt.Errorf("%w: %w", api.ErrComparatorFailed, err)
	}
	return api.NewError(api.ErrCodeComparator, "sort aborted").
		Wrap(cause).
		WithContext("range", f.rng.String()).
		WithContext("panic", fmt.Sprint(f.value))
}

// TryProcessOne pops one queued range and sorts it. Pool workers call it
// in their loop; it reports whether anything was processed.
func (e *Engine) TryProcessOne() bool {
	item, ok := e.stack.TryPop()
	if !ok {
		return false
	}
	e.stats.PoppedByWorkers.Add(1)
	e.process(item)
	return true
}

// Pending returns the approximate number of queued ranges.
func (e *Engine) Pending() int {
	return e.stack.Len()
}

// Stats exposes the live counters.
func (e *Engine) Stats() *control.Stats {
	return e.stats
}

func (e *Engine) sort(r api.Range) {
	for e.failed.Load() == nil && r.Len() >= 2 {
		if r.Len() < e.opts.Grain {
			e.stats.InlineRanges.Add(1)
			partition.Sequential(e.seq, r, e.opts.Pivot)
			return
		}

		p := partition.Lomuto(e.seq, r, e.opts.Pivot)
		e.stats.Partitions.Add(1)
		left, right := r.Split(p)

		// Nothing worth offloading: continue on the right side in place.
		if left.Len() < 2 {
			r = right
			continue
		}

		item := e.items.Get()
		item.rng = left
		e.stack.Push(item)
		e.stats.Pushed.Add(1)

		e.sort(right)
		e.helpUntilDone(item.done)
		e.items.Put(item)
		return
	}
}

// helpUntilDone processes queued work until sig is done.
func (e *Engine) helpUntilDone(sig *concurrency.Signal) {
	backoff := concurrency.NewBackoff(e.opts.Backoff)
	for !sig.IsDone() {
		if item, ok := e.stack.TryPop(); ok {
			e.stats.PoppedByHelpers.Add(1)
			e.process(item)
			backoff.Reset()
			continue
		}
		backoff.Wait()
	}
}

// process sorts one work item and marks it done, also when sorting panics.
// MarkDone is the last access to item by the consumer.
func (e *Engine) process(item *workItem) {
	defer item.done.MarkDone()
	defer e.recoverInto(item.rng)
	e.sort(item.rng)
}

func (e *Engine) recoverInto(r api.Range) {
	if v := recover(); v != nil {
		e.failed.CompareAndSwap(nil, &failure{value: v, rng: r})
	}
}
