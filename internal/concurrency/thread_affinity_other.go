//go:build !linux && !windows

// File: internal/concurrency/thread_affinity_other.go
// Author: momentics <momentics@gmail.com>
//
// Fallback for platforms without a thread affinity API.

package concurrency

func platformPinThread(int) (func() error, error) { return nil, ErrAffinityNotSupported }
