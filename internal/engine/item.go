// File: internal/engine/item.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package engine

import (
	"github.com/momentics/parsort/api"
	"github.com/momentics/parsort/internal/concurrency"
	"github.com/momentics/parsort/pool"
)

// workItem is a range waiting to be sorted plus the signal its creator
// polls. The creator owns the item again once done is observed.
type workItem struct {
	rng  api.Range
	done *concurrency.Signal
}

func newItemPool() *pool.SyncPool[*workItem] {
	return pool.NewResettingPool(
		func() *workItem {
			return &workItem{done: concurrency.NewSignal()}
		},
		func(it *workItem) {
			it.rng = api.Range{}
			it.done.Reset()
		},
	)
}
