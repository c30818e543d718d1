//go:build linux

// File: internal/concurrency/thread_affinity_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux thread pinning via sched_setaffinity. Pure Go, no cgo.

package concurrency

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// platformPinThread binds the calling thread (pid 0) to the n-th CPU of its
// current mask and returns a function restoring that mask.
func platformPinThread(n int) (func() error, error) {
	var orig unix.CPUSet
	if err := unix.SchedGetaffinity(0, &orig); err != nil {
		return nil, fmt.Errorf("sched_getaffinity: %w", err)
	}
	cpu, ok := nthCPU(&orig, n)
	if !ok {
		return nil, fmt.Errorf("%w: index %d, %d allowed", ErrInvalidCPU, n, orig.Count())
	}

	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return nil, fmt.Errorf("sched_setaffinity cpu %d: %w", cpu, err)
	}
	return func() error { return unix.SchedSetaffinity(0, &orig) }, nil
}

// nthCPU returns the number of the n-th CPU set in mask.
func nthCPU(mask *unix.CPUSet, n int) (int, bool) {
	count := mask.Count()
	if n < 0 || n >= count {
		return 0, false
	}
	for cpu, seen := 0, 0; seen < count; cpu++ {
		if !mask.IsSet(cpu) {
			continue
		}
		if seen == n {
			return cpu, true
		}
		seen++
	}
	return 0, false
}
