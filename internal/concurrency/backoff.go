// File: internal/concurrency/backoff.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Bounded spin for idle loops: yield the processor for a number of rounds,
// then sleep with exponential growth up to a cap.

package concurrency

import (
	"runtime"
	"time"
)

// BackoffConfig tunes the idle behaviour of workers and helping waiters.
type BackoffConfig struct {
	// Spins is the number of runtime.Gosched rounds before sleeping.
	Spins int `yaml:"spins"`
	// MaxSleep caps the exponential sleep. Zero means yield forever.
	MaxSleep time.Duration `yaml:"max_sleep"`
}

// DefaultBackoffConfig returns the settings used when none are given.
func DefaultBackoffConfig() BackoffConfig {
	return BackoffConfig{
		Spins:    64,
		MaxSleep: 100 * time.Microsecond,
	}
}

// Backoff is a per-goroutine idle strategy. Not safe for concurrent use.
type Backoff struct {
	cfg   BackoffConfig
	spins int
	sleep time.Duration
}

// NewBackoff creates a Backoff with cfg.
func NewBackoff(cfg BackoffConfig) Backoff {
	return Backoff{cfg: cfg}
}

// Wait idles once.
func (b *Backoff) Wait() {
	if b.cfg.MaxSleep <= 0 || b.spins < b.cfg.Spins {
		b.spins++
		runtime.Gosched()
		return
	}
	if b.sleep == 0 {
		b.sleep = time.Microsecond
	} else {
		b.sleep *= 2
	}
	if b.sleep > b.cfg.MaxSleep {
		b.sleep = b.cfg.MaxSleep
	}
	time.Sleep(b.sleep)
}

// Reset is called after useful work was found.
func (b *Backoff) Reset() {
	b.spins = 0
	b.sleep = 0
}
