// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package pool

import "sync"

// ObjectPool is a generic object pool.
type ObjectPool[T any] interface {
	Get() T
	Put(T)
}

// SyncPool wraps sync.Pool for generic usage. Objects handed back through
// Put are passed to the reset hook before they become visible to Get.
type SyncPool[T any] struct {
	pool  *sync.Pool
	reset func(T)
}

// NewSyncPool creates a new SyncPool with a creator function.
func NewSyncPool[T any](creator func() T) *SyncPool[T] {
	return NewResettingPool(creator, nil)
}

// NewResettingPool creates a SyncPool that calls reset on every Put.
func NewResettingPool[T any](creator func() T, reset func(T)) *SyncPool[T] {
	return &SyncPool[T]{
		pool:  &sync.Pool{New: func() any { return creator() }},
		reset: reset,
	}
}

func (sp *SyncPool[T]) Get() T {
	return sp.pool.Get().(T)
}

func (sp *SyncPool[T]) Put(obj T) {
	if sp.reset != nil {
		sp.reset(obj)
	}
	sp.pool.Put(obj)
}
