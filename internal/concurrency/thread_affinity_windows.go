//go:build windows

// File: internal/concurrency/thread_affinity_windows.go
// Author: momentics <momentics@gmail.com>
//
// Windows thread pinning via SetThreadAffinityMask on the current thread
// pseudo-handle. Limited to the processors of one group (64).

package concurrency

import (
	"fmt"
	"math/bits"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modkernel32                = windows.NewLazySystemDLL("kernel32.dll")
	procSetThreadAffinityMask  = modkernel32.NewProc("SetThreadAffinityMask")
	procGetProcessAffinityMask = modkernel32.NewProc("GetProcessAffinityMask")
)

// platformPinThread binds the calling thread to the n-th CPU of the process
// mask. SetThreadAffinityMask hands back the previous thread mask, which the
// returned function restores.
func platformPinThread(n int) (func() error, error) {
	var procMask, sysMask uintptr
	ok, _, err := procGetProcessAffinityMask.Call(
		uintptr(windows.CurrentProcess()),
		uintptr(unsafe.Pointer(&procMask)),
		uintptr(unsafe.Pointer(&sysMask)))
	if ok == 0 {
		return nil, fmt.Errorf("GetProcessAffinityMask failed: %v", err)
	}
	cpu, found := nthBit(procMask, n)
	if !found {
		return nil, fmt.Errorf("%w: index %d, %d allowed", ErrInvalidCPU, n, bits.OnesCount64(uint64(procMask)))
	}
	old, err := setThreadAffinityMask(uintptr(1) << uint(cpu))
	if err != nil {
		return nil, err
	}
	return func() error {
		_, err := setThreadAffinityMask(old)
		return err
	}, nil
}

func nthBit(mask uintptr, n int) (int, bool) {
	for bit, seen := 0, 0; mask != 0; bit++ {
		if mask&1 == 1 {
			if seen == n {
				return bit, true
			}
			seen++
		}
		mask >>= 1
	}
	return 0, false
}

func setThreadAffinityMask(mask uintptr) (uintptr, error) {
	old, _, err := procSetThreadAffinityMask.Call(uintptr(windows.CurrentThread()), mask)
	if old == 0 {
		return 0, fmt.Errorf("SetThreadAffinityMask failed: %v", err)
	}
	return old, nil
}
