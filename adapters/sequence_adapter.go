// File: adapters/sequence_adapter.go
// Package adapters provides glue between plain Go slices and api.Sequence.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The engine only ever compares and swaps by index, so a slice plus a less
// function is all it needs. Both adapters are views: they never copy the
// caller's elements.

package adapters

import (
	"cmp"

	"github.com/momentics/parsort/api"
)

// Ensure compile-time interface compliance.
var (
	_ api.Sequence = (*FuncSlice[int])(nil)
	_ api.Sequence = OrderedSlice[int](nil)
)

// FuncSlice orders a slice with a caller-supplied strict weak order.
type FuncSlice[T any] struct {
	data []T
	less func(a, b T) bool
}

// NewFuncSlice wraps data with less.
func NewFuncSlice[T any](data []T, less func(a, b T) bool) *FuncSlice[T] {
	return &FuncSlice[T]{data: data, less: less}
}

func (s *FuncSlice[T]) Len() int           { return len(s.data) }
func (s *FuncSlice[T]) Less(i, j int) bool { return s.less(s.data[i], s.data[j]) }
func (s *FuncSlice[T]) Swap(i, j int)      { s.data[i], s.data[j] = s.data[j], s.data[i] }

// OrderedSlice sorts any cmp.Ordered slice ascending. NaNs order first,
// matching cmp.Less.
type OrderedSlice[T cmp.Ordered] []T

func (s OrderedSlice[T]) Len() int           { return len(s) }
func (s OrderedSlice[T]) Less(i, j int) bool { return cmp.Less(s[i], s[j]) }
func (s OrderedSlice[T]) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

// Reverse inverts the order of seq.
func Reverse(seq api.Sequence) api.Sequence {
	return reverse{seq}
}

type reverse struct {
	api.Sequence
}

func (r reverse) Less(i, j int) bool { return r.Sequence.Less(j, i) }
