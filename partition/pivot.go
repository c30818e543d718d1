// File: partition/pivot.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Pivot selection strategies. The fixed last-element choice degrades to
// quadratic time and linear recursion depth on sorted input; the sampling
// strategies keep the expected depth logarithmic.

package partition

import (
	"fmt"
	"math/rand/v2"

	"github.com/momentics/parsort/api"
)

// PivotSelector returns the index of the pivot inside r, which holds at
// least two elements. Selectors must be safe for concurrent use.
type PivotSelector func(seq api.Sequence, r api.Range) int

// Selector names accepted by PivotByName.
const (
	PivotNameLast          = "last"
	PivotNameMedianOfThree = "median3"
	PivotNameRandom        = "random"
	PivotNameNinther       = "ninther"
)

// nintherThreshold is the smallest range sampled with nine elements.
const nintherThreshold = 128

// PivotLast selects the last element of the range.
func PivotLast(_ api.Sequence, r api.Range) int {
	return r.Hi - 1
}

// PivotMedianOfThree selects the median of the first, middle and last
// elements.
func PivotMedianOfThree(seq api.Sequence, r api.Range) int {
	return medianOfThree(seq, r.Lo, r.Lo+(r.Hi-r.Lo)/2, r.Hi-1)
}

// PivotRandom selects a uniformly random element.
func PivotRandom(_ api.Sequence, r api.Range) int {
	return r.Lo + rand.IntN(r.Len())
}

// PivotNinther selects Tukey's pseudo-median of nine for large ranges and
// falls back to median of three below nintherThreshold.
func PivotNinther(seq api.Sequence, r api.Range) int {
	n := r.Len()
	if n < nintherThreshold {
		return PivotMedianOfThree(seq, r)
	}
	step := n / 8
	lo := r.Lo
	return medianOfThree(seq,
		medianOfThree(seq, lo, lo+step, lo+step*2),
		medianOfThree(seq, lo+step*3, lo+step*4, lo+step*5),
		medianOfThree(seq, lo+step*6, lo+step*7, r.Hi-1),
	)
}

// PivotByName maps a configuration name to a selector.
func PivotByName(name string) (PivotSelector, error) {
	switch name {
	case PivotNameLast:
		return PivotLast, nil
	case "", PivotNameMedianOfThree:
		return PivotMedianOfThree, nil
	case PivotNameRandom:
		return PivotRandom, nil
	case PivotNameNinther:
		return PivotNinther, nil
	}
	return nil, fmt.Errorf("pivot %q: %w", name, api.ErrUnknownPivot)
}

func medianOfThree(seq api.Sequence, a, b, c int) int {
	if seq.Less(a, b) {
		if seq.Less(b, c) {
			return b
		} else if seq.Less(a, c) {
			return c
		}
		return a
	}
	if seq.Less(c, b) {
		return b
	} else if seq.Less(c, a) {
		return c
	}
	return a
}
