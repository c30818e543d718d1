// File: internal/concurrency/stack_lockfree.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Treiber stack: unbounded LIFO with a single CAS-guarded head pointer,
// padded to keep the hot head off neighbouring cache lines.

package concurrency

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/momentics/parsort/api"
)

// Ensure compile-time interface compliance.
var _ api.WorkStack[int] = (*LockFreeStack[int])(nil)

type stackNode[T any] struct {
	val  T
	next *stackNode[T]
}

// LockFreeStack is a lock-free MPMC LIFO container.
// Nodes are never reused, so the garbage collector rules out ABA on head.
type LockFreeStack[T any] struct {
	_    cpu.CacheLinePad
	head atomic.Pointer[stackNode[T]]
	_    cpu.CacheLinePad
	size atomic.Int64
}

// NewLockFreeStack returns an empty stack.
func NewLockFreeStack[T any]() *LockFreeStack[T] {
	return &LockFreeStack[T]{}
}

// Push adds val on top of the stack.
func (s *LockFreeStack[T]) Push(val T) {
	n := &stackNode[T]{val: val}
	for {
		old := s.head.Load()
		n.next = old
		if s.head.CompareAndSwap(old, n) {
			s.size.Add(1)
			return
		}
	}
}

// TryPop removes and returns the top item; ok false if empty.
func (s *LockFreeStack[T]) TryPop() (item T, ok bool) {
	for {
		old := s.head.Load()
		if old == nil {
			return item, false
		}
		if s.head.CompareAndSwap(old, old.next) {
			s.size.Add(-1)
			return old.val, true
		}
	}
}

// Len returns the approximate number of items.
func (s *LockFreeStack[T]) Len() int {
	// Pop may decrement before the matching push increments.
	return int(max(s.size.Load(), 0))
}
