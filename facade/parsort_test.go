package facade

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/momentics/parsort/adapters"
	"github.com/momentics/parsort/api"
	"github.com/momentics/parsort/control"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func randomInts(seed uint64, n, limit int) []int {
	rng := rand.New(rand.NewPCG(seed, 99))
	out := make([]int, n)
	for i := range out {
		out[i] = rng.IntN(limit)
	}
	return out
}

func TestParallelSortOrdered_Examples(t *testing.T) {
	cases := []struct {
		name string
		in   []int
		want []int
	}{
		{"mixed", []int{5, 3, 8, 1, 9, 2}, []int{1, 2, 3, 5, 8, 9}},
		{"empty", []int{}, []int{}},
		{"single", []int{7}, []int{7}},
		{"equal", []int{2, 2, 2}, []int{2, 2, 2}},
	}
	for _, tc := range cases {
		for _, workers := range []int{0, 1, 4} {
			t.Run(fmt.Sprintf("%s/workers=%d", tc.name, workers), func(t *testing.T) {
				data := slices.Clone(tc.in)
				require.NoError(t, ParallelSortOrdered(data, WithWorkers(workers), WithGrain(1)))
				assert.Equal(t, tc.want, data)
			})
		}
	}
}

func TestParallelSortOrdered_NilSlice(t *testing.T) {
	var data []int
	require.NoError(t, ParallelSortOrdered(data))
	assert.Nil(t, data)
}

func TestParallelSort_SameResultForAnyWorkerCount(t *testing.T) {
	input := randomInts(1, 10000, 1000)
	want := slices.Clone(input)
	slices.Sort(want)

	for _, workers := range []int{0, 1, 2, 8, control.AutoWorkers} {
		data := slices.Clone(input)
		require.NoError(t, ParallelSortOrdered(data, WithWorkers(workers), WithGrain(16)))
		assert.Equal(t, want, data, "workers=%d", workers)
	}
}

func TestParallelSort_AllPivotsAndContainers(t *testing.T) {
	pivots := []string{"last", "median3", "random", "ninther"}
	containers := []string{control.ContainerLockFree, control.ContainerMutex, control.ContainerFIFO}
	for _, pivot := range pivots {
		for _, container := range containers {
			t.Run(pivot+"/"+container, func(t *testing.T) {
				data := randomInts(3, 4000, 200)
				require.NoError(t, ParallelSortOrdered(data,
					WithWorkers(3), WithGrain(8), WithPivot(pivot), WithContainer(container)))
				assert.True(t, slices.IsSorted(data))
			})
		}
	}
}

func TestParallelSort_AdversarialInputs(t *testing.T) {
	n := 3000
	sorted := make([]int, n)
	reversed := make([]int, n)
	for i := range sorted {
		sorted[i] = i
		reversed[i] = n - i
	}
	inputs := map[string][]int{
		"sorted":   sorted,
		"reversed": reversed,
		"equal":    slices.Repeat([]int{5}, n),
		"organ":    append(slices.Clone(sorted[:n/2]), reversed[n/2:]...),
	}
	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			data := slices.Clone(in)
			require.NoError(t, ParallelSortOrdered(data, WithWorkers(4), WithGrain(32)))
			assert.True(t, slices.IsSorted(data))
		})
	}
}

func TestParallelSort_Idempotent(t *testing.T) {
	data := randomInts(8, 5000, 100)
	require.NoError(t, ParallelSortOrdered(data, WithWorkers(2)))
	first := slices.Clone(data)
	require.NoError(t, ParallelSortOrdered(data, WithWorkers(2)))
	assert.Equal(t, first, data)
}

func TestParallelSortFunc_Descending(t *testing.T) {
	words := strings.Fields("pear apple fig banana kiwi cherry date")
	require.NoError(t, ParallelSortFunc(words, func(a, b string) bool { return a > b }, WithGrain(1)))
	assert.Equal(t, []string{"pear", "kiwi", "fig", "date", "cherry", "banana", "apple"}, words)
}

func TestParallelSort_ReverseAdapter(t *testing.T) {
	data := []int{4, 1, 3, 2}
	require.NoError(t, ParallelSort(adapters.Reverse(adapters.OrderedSlice[int](data)), WithGrain(1)))
	assert.Equal(t, []int{4, 3, 2, 1}, data)
}

// Deep offload chains must complete even when waiters outnumber workers.
func TestParallelSort_NoDeadlockWithTinyGrain(t *testing.T) {
	for _, workers := range []int{0, 1, 2} {
		data := randomInts(uint64(workers), 50000, 1<<20)
		done := make(chan error, 1)
		go func() { done <- ParallelSortOrdered(data, WithWorkers(workers), WithGrain(1)) }()
		select {
		case err := <-done:
			require.NoError(t, err)
			assert.True(t, slices.IsSorted(data))
		case <-time.After(60 * time.Second):
			t.Fatalf("workers=%d: sort did not complete", workers)
		}
	}
}

func TestSorter_ConcurrentCalls(t *testing.T) {
	s, err := New(nil, WithWorkers(2), WithGrain(64))
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]int, 4)
	for i := range results {
		results[i] = randomInts(uint64(i+10), 8000, 500)
		wg.Add(1)
		go func(data []int) {
			defer wg.Done()
			assert.NoError(t, s.Sort(adapters.OrderedSlice[int](data)))
		}(results[i])
	}
	wg.Wait()
	for _, data := range results {
		assert.True(t, slices.IsSorted(data))
	}
}

type cmpPanic struct {
	adapters.OrderedSlice[int]
	mu    sync.Mutex
	calls int
}

func (c *cmpPanic) Less(i, j int) bool {
	c.mu.Lock()
	c.calls++
	n := c.calls
	c.mu.Unlock()
	if n == 5000 {
		panic(errors.New("incomparable"))
	}
	return c.OrderedSlice.Less(i, j)
}

func TestSorter_ComparatorFailure(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	var observed error
	s, err := New(nil,
		WithWorkers(3),
		WithGrain(16),
		WithLogger(zap.New(core)),
		WithObserver(control.ObserverFunc(func(_ control.StatsSnapshot, err error) { observed = err })),
	)
	require.NoError(t, err)

	data := randomInts(4, 20000, 1000)
	orig := slices.Clone(data)
	err = s.Sort(&cmpPanic{OrderedSlice: data})

	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrComparatorFailed)
	assert.Equal(t, api.ErrCodeComparator, api.CodeOf(err))
	slices.Sort(orig)
	assert.Equal(t, orig, slices.Sorted(slices.Values(data)))
	assert.Equal(t, err, observed)
	assert.Equal(t, 1, logs.FilterMessage("parallel sort failed").Len())
}

func TestSorter_StatsAndObserver(t *testing.T) {
	var snaps []control.StatsSnapshot
	s, err := New(nil,
		WithWorkers(2),
		WithGrain(32),
		WithLogger(zaptest.NewLogger(t)),
		WithObserver(control.ObserverFunc(func(snap control.StatsSnapshot, err error) {
			assert.NoError(t, err)
			snaps = append(snaps, snap)
		})),
	)
	require.NoError(t, err)

	data := randomInts(6, 6000, 1<<16)
	require.NoError(t, s.Sort(adapters.OrderedSlice[int](data)))

	require.Len(t, snaps, 1)
	snap := s.Stats()
	assert.Equal(t, snaps[0], snap)
	assert.Equal(t, 6000, snap.Elements)
	assert.Equal(t, 2, snap.Workers)
	assert.Equal(t, snap.Pushed, snap.Popped())
	assert.Positive(t, snap.Partitions)
	assert.Positive(t, snap.Duration)

	// Short inputs return before any pool is created.
	require.NoError(t, s.Sort(adapters.OrderedSlice[int]{1}))
	assert.Len(t, snaps, 1)
}

type refusingAffinity struct{}

func (refusingAffinity) Pin(int) (func() error, error) { return nil, errors.New("no affinity here") }

func TestSorter_PinFailureStillSorts(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s, err := New(nil, WithWorkers(2), WithGrain(8), WithAffinity(refusingAffinity{}), WithLogger(zap.New(core)))
	require.NoError(t, err)
	assert.True(t, s.Config().PinWorkers)

	data := randomInts(2, 3000, 100)
	require.NoError(t, s.Sort(adapters.OrderedSlice[int](data)))
	assert.True(t, slices.IsSorted(data))
	assert.Equal(t, int64(2), s.Stats().PinFailures)
	assert.Equal(t, 2, logs.FilterMessage("worker pinning failed, running unpinned").Len())
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(nil, WithWorkers(-5))
	assert.ErrorIs(t, err, api.ErrInvalidWorkerCount)

	_, err = New(nil, WithPivot("median9"))
	assert.ErrorIs(t, err, api.ErrUnknownPivot)

	err = ParallelSortOrdered([]int{2, 1}, WithContainer("heap"))
	assert.ErrorIs(t, err, api.ErrUnknownContainer)
	assert.Equal(t, api.ErrCodeInvalidConfig, api.CodeOf(err))
}

func TestNew_DoesNotModifyCallerConfig(t *testing.T) {
	cfg := control.DefaultConfig()
	s, err := New(cfg, WithGrain(3), WithWorkers(1))
	require.NoError(t, err)
	assert.Equal(t, 256, cfg.Grain)
	assert.Equal(t, 3, s.Config().Grain)
	assert.Equal(t, 1, s.Config().Workers)
}
