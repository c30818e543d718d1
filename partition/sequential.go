// File: partition/sequential.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package partition

import "github.com/momentics/parsort/api"

// insertionThreshold: use insertion sort for ranges this size or smaller.
const insertionThreshold = 12

// Sequential sorts r in place on the calling goroutine. It recurses into
// the smaller side and loops on the larger one, so stack depth stays
// logarithmic whatever the pivot quality.
func Sequential(seq api.Sequence, r api.Range, pick PivotSelector) {
	for r.Len() > insertionThreshold {
		p := Lomuto(seq, r, pick)
		left, right := r.Split(p)
		if left.Len() < right.Len() {
			Sequential(seq, left, pick)
			r = right
		} else {
			Sequential(seq, right, pick)
			r = left
		}
	}
	InsertionSort(seq, r)
}

// InsertionSort sorts r in place.
func InsertionSort(seq api.Sequence, r api.Range) {
	for i := r.Lo + 1; i < r.Hi; i++ {
		for j := i; j > r.Lo && seq.Less(j, j-1); j-- {
			seq.Swap(j, j-1)
		}
	}
}

// IsSorted reports whether seq is in non-decreasing order.
func IsSorted(seq api.Sequence) bool {
	for i := seq.Len() - 1; i > 0; i-- {
		if seq.Less(i, i-1) {
			return false
		}
	}
	return true
}
