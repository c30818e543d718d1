// Package api
// Author: momentics
//
// Work container and completion contracts for the parallel sort scheduler.

package api

// WorkStack is a concurrent container of pending work shared by all
// goroutines of one sort call. Neither operation blocks.
type WorkStack[T any] interface {
	// Push adds an item.
	Push(item T)

	// TryPop removes and returns an item, or reports false when empty.
	TryPop() (T, bool)

	// Len returns an approximate count of pending items.
	Len() int
}

// Completion is a one-shot signal written by the goroutine that finished a
// unit of work and read by the goroutine that offloaded it.
type Completion interface {
	// MarkDone transitions the signal to done. Calling it twice is a bug.
	MarkDone()

	// IsDone polls the signal without blocking.
	IsDone() bool

	// Wait blocks until MarkDone has been called.
	Wait()
}
