// File: internal/concurrency/stack_locked.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Mutex-protected LIFO over a slice.

package concurrency

import (
	"sync"

	"github.com/momentics/parsort/api"
)

var _ api.WorkStack[int] = (*LockedStack[int])(nil)

// LockedStack is a LIFO guarded by a single mutex.
type LockedStack[T any] struct {
	mu    sync.Mutex
	items []T
}

// NewLockedStack returns an empty stack with room for capacity items.
func NewLockedStack[T any](capacity int) *LockedStack[T] {
	return &LockedStack[T]{items: make([]T, 0, max(capacity, 0))}
}

func (s *LockedStack[T]) Push(item T) {
	s.mu.Lock()
	s.items = append(s.items, item)
	s.mu.Unlock()
}

func (s *LockedStack[T]) TryPop() (item T, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.items)
	if n == 0 {
		return item, false
	}
	item = s.items[n-1]
	var zero T
	s.items[n-1] = zero
	s.items = s.items[:n-1]
	return item, true
}

func (s *LockedStack[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
