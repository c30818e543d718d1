// File: internal/concurrency/thread_affinity.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Cross-platform CPU affinity for the calling OS thread.

package concurrency

import (
	"fmt"
	"runtime"

	"github.com/momentics/parsort/api"
)

var _ api.Affinity = OSAffinity{}

// OSAffinity pins the calling goroutine's OS thread through the platform API.
// cpuID indexes the CPUs set in the thread's current mask, so CPU 0 under a
// {4-7} cpuset is CPU 4.
type OSAffinity struct{}

// Pin locks the goroutine to its OS thread and binds the thread to one CPU.
// On failure the thread lock is released again.
//
// The returned unpin restores the mask saved by Pin. If that fails the
// thread stays locked, so the runtime retires it when the goroutine exits
// instead of reusing a thread with the wrong mask.
func (OSAffinity) Pin(cpuID int) (func() error, error) {
	if cpuID < 0 {
		return nil, fmt.Errorf("pin cpu %d: %w", cpuID, ErrInvalidCPU)
	}
	runtime.LockOSThread()
	restore, err := platformPinThread(cpuID)
	if err != nil {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("pin cpu %d: %w", cpuID, err)
	}
	return func() error {
		if err := restore(); err != nil {
			return fmt.Errorf("restore affinity: %w", err)
		}
		runtime.UnlockOSThread()
		return nil
	}, nil
}

// NumCPUs returns the number of logical CPUs usable by the process.
func NumCPUs() int {
	return runtime.NumCPU()
}
