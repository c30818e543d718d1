// Package api
// Author: momentics@gmail.com
//
// CPU affinity and thread pinning contract.

package api

// Affinity controls execution of the calling OS thread on a particular CPU.
type Affinity interface {
	// Pin locks the calling goroutine to its OS thread and binds that
	// thread to the cpuID-th CPU the process is allowed to run on. The
	// returned unpin must be called on the same goroutine; it restores the
	// thread's previous affinity and releases the thread lock.
	Pin(cpuID int) (unpin func() error, err error)
}
