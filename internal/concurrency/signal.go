// File: internal/concurrency/signal.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// One-shot completion signal. The polling path is a single atomic load; the
// channel backing Wait is only allocated when somebody actually blocks.

package concurrency

import (
	"sync"
	"sync/atomic"

	"github.com/momentics/parsort/api"
)

var _ api.Completion = (*Signal)(nil)

// Signal is a single-writer, write-once completion cell.
type Signal struct {
	done atomic.Bool
	mu   sync.Mutex
	ch   chan struct{}
}

// NewSignal returns a pending signal.
func NewSignal() *Signal {
	return &Signal{}
}

// MarkDone transitions the signal to done. It panics with
// api.ErrSignalAlreadyDone when called twice.
func (s *Signal) MarkDone() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done.Load() {
		panic(api.ErrSignalAlreadyDone)
	}
	// Stored under mu so Reset cannot run while the writer is still inside.
	s.done.Store(true)
	if s.ch != nil {
		close(s.ch)
	}
}

// IsDone reports whether MarkDone has been called.
func (s *Signal) IsDone() bool {
	return s.done.Load()
}

// Wait blocks until MarkDone has been called.
func (s *Signal) Wait() {
	if s.done.Load() {
		return
	}
	s.mu.Lock()
	if s.done.Load() {
		s.mu.Unlock()
		return
	}
	if s.ch == nil {
		s.ch = make(chan struct{})
	}
	ch := s.ch
	s.mu.Unlock()
	<-ch
}

// Reset returns the signal to pending. Only valid once no goroutine holds
// a reference other than the caller's.
func (s *Signal) Reset() {
	s.mu.Lock()
	s.ch = nil
	s.done.Store(false)
	s.mu.Unlock()
}
