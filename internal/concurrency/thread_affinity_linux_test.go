//go:build linux

package concurrency

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func cpuSet(cpus ...int) *unix.CPUSet {
	var set unix.CPUSet
	set.Zero()
	for _, c := range cpus {
		set.Set(c)
	}
	return &set
}

func TestNthCPU_SparseMask(t *testing.T) {
	shifted := cpuSet(4, 5, 6, 7)
	cpu, ok := nthCPU(shifted, 0)
	require.True(t, ok)
	assert.Equal(t, 4, cpu)

	holes := cpuSet(0, 2, 4, 6)
	for n, want := range []int{0, 2, 4, 6} {
		cpu, ok := nthCPU(holes, n)
		require.True(t, ok)
		assert.Equal(t, want, cpu)
	}
	_, ok = nthCPU(holes, 4)
	assert.False(t, ok)
	_, ok = nthCPU(holes, -1)
	assert.False(t, ok)
}

func TestOSAffinity_PinRestoresMask(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	var orig unix.CPUSet
	require.NoError(t, unix.SchedGetaffinity(0, &orig))

	last := orig.Count() - 1
	unpin, err := OSAffinity{}.Pin(last)
	require.NoError(t, err)

	var pinned unix.CPUSet
	require.NoError(t, unix.SchedGetaffinity(0, &pinned))
	assert.Equal(t, 1, pinned.Count())
	want, _ := nthCPU(&orig, last)
	assert.True(t, pinned.IsSet(want))

	require.NoError(t, unpin())

	var after unix.CPUSet
	require.NoError(t, unix.SchedGetaffinity(0, &after))
	assert.Equal(t, orig, after)
}

func TestOSAffinity_PinOutOfRange(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	var orig unix.CPUSet
	require.NoError(t, unix.SchedGetaffinity(0, &orig))

	_, err := OSAffinity{}.Pin(orig.Count())
	assert.ErrorIs(t, err, ErrInvalidCPU)
	_, err = OSAffinity{}.Pin(-1)
	assert.ErrorIs(t, err, ErrInvalidCPU)

	var after unix.CPUSet
	require.NoError(t, unix.SchedGetaffinity(0, &after))
	assert.Equal(t, orig, after)
}
