// File: internal/concurrency/queue_fifo.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// FIFOQueue adapts eapache/queue (a growable ring buffer) to the WorkStack
// contract. Items come out oldest first, so large ranges pushed near the
// root are handed out before the small ones pushed deeper in the recursion.

package concurrency

import (
	"sync"

	"github.com/eapache/queue"

	"github.com/momentics/parsort/api"
)

var _ api.WorkStack[int] = (*FIFOQueue[int])(nil)

// FIFOQueue is a mutex-guarded FIFO container. It is a comparison variant
// outside the LIFO discipline of the shared work stack: it satisfies
// api.WorkStack (non-blocking push and try-pop) but hands out the oldest
// item first. Select it explicitly with the "fifo" container name; the
// default containers are LIFO.
type FIFOQueue[T any] struct {
	mu sync.Mutex
	q  *queue.Queue
}

// NewFIFOQueue returns an empty queue.
func NewFIFOQueue[T any]() *FIFOQueue[T] {
	return &FIFOQueue[T]{q: queue.New()}
}

func (f *FIFOQueue[T]) Push(item T) {
	f.mu.Lock()
	f.q.Add(item)
	f.mu.Unlock()
}

func (f *FIFOQueue[T]) TryPop() (item T, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.q.Length() == 0 {
		return item, false
	}
	return f.q.Remove().(T), true
}

func (f *FIFOQueue[T]) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.q.Length()
}
