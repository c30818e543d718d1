// File: facade/options.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Functional options applied on top of the Sorter configuration.

package facade

import (
	"go.uber.org/zap"

	"github.com/momentics/parsort/api"
	"github.com/momentics/parsort/control"
)

// Option customizes a Sorter. Options run after the base configuration
// has been copied, so they never modify the caller's Config.
type Option func(*Sorter)

// WithConfig replaces the base configuration.
func WithConfig(cfg *control.Config) Option {
	return func(s *Sorter) {
		if cfg != nil {
			s.cfg = cfg.Clone()
		}
	}
}

// WithLogger sets the logger used by the sorter and its worker pools.
func WithLogger(l *zap.Logger) Option {
	return func(s *Sorter) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithWorkers sets the pool size. control.AutoWorkers restores the default.
func WithWorkers(n int) Option {
	return func(s *Sorter) { s.cfg.Workers = n }
}

// WithGrain sets the smallest range that is split in parallel.
func WithGrain(n int) Option {
	return func(s *Sorter) { s.cfg.Grain = n }
}

// WithPivot selects the pivot strategy by name.
func WithPivot(name string) Option {
	return func(s *Sorter) { s.cfg.Pivot = name }
}

// WithContainer selects the shared work container by name.
func WithContainer(name string) Option {
	return func(s *Sorter) { s.cfg.Container = name }
}

// WithObserver adds an observer notified after every call.
func WithObserver(o control.Observer) Option {
	return func(s *Sorter) {
		if o != nil {
			s.observers = append(s.observers, o)
		}
	}
}

// WithAffinity pins workers through a instead of the OS implementation.
// It implies pinning.
func WithAffinity(a api.Affinity) Option {
	return func(s *Sorter) {
		s.affinity = a
		s.cfg.PinWorkers = a != nil
	}
}
