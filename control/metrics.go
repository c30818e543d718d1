// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Per-call scheduler counters. Every field is updated with atomics from any
// goroutine of the call and read once at the end through Snapshot.

package control

import (
	"sync/atomic"
	"time"
)

// Stats holds the live counters of one sort call.
type Stats struct {
	Partitions      atomic.Int64
	Pushed          atomic.Int64
	PoppedByWorkers atomic.Int64
	PoppedByHelpers atomic.Int64
	InlineRanges    atomic.Int64
}

// StatsSnapshot is an immutable copy of Stats plus call-level facts.
type StatsSnapshot struct {
	Elements        int           `yaml:"elements"`
	Workers         int           `yaml:"workers"`
	Partitions      int64         `yaml:"partitions"`
	Pushed          int64         `yaml:"pushed"`
	PoppedByWorkers int64         `yaml:"popped_by_workers"`
	PoppedByHelpers int64         `yaml:"popped_by_helpers"`
	InlineRanges    int64         `yaml:"inline_ranges"`
	PinFailures     int64         `yaml:"pin_failures"`
	Duration        time.Duration `yaml:"duration"`
}

// Snapshot copies the counters.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Partitions:      s.Partitions.Load(),
		Pushed:          s.Pushed.Load(),
		PoppedByWorkers: s.PoppedByWorkers.Load(),
		PoppedByHelpers: s.PoppedByHelpers.Load(),
		InlineRanges:    s.InlineRanges.Load(),
	}
}

// Popped returns the number of work items consumed by anyone.
func (s StatsSnapshot) Popped() int64 {
	return s.PoppedByWorkers + s.PoppedByHelpers
}
