// File: partition/lomuto.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package partition

import "github.com/momentics/parsort/api"

// Lomuto rearranges r around a pivot chosen by pick and returns the pivot's
// final position p. Afterwards every element in [r.Lo, p) compares <= the
// pivot and every element in (p, r.Hi) compares >= it.
//
// r must hold at least one element and lie inside seq; anything else is a
// caller bug and panics with an *api.Error. A nil pick means PivotLast.
func Lomuto(seq api.Sequence, r api.Range, pick PivotSelector) int {
	if r.Len() < 1 || !r.Within(seq.Len()) {
		panic(invalidRange("partition: invalid range", seq, r))
	}
	last := r.Hi - 1
	if last == r.Lo {
		return r.Lo
	}

	if pick != nil {
		p := pick(seq, r)
		if p < r.Lo || p > last {
			panic(invalidRange("partition: pivot outside range", seq, r).WithContext("pivot", p))
		}
		if p != last {
			seq.Swap(p, last)
		}
	}

	// Pivot sits at last for the whole scan; i never passes j < last.
	i := r.Lo
	for j := r.Lo; j < last; j++ {
		if !seq.Less(last, j) {
			if i != j {
				seq.Swap(i, j)
			}
			i++
		}
	}
	if i != last {
		seq.Swap(i, last)
	}
	return i
}

func invalidRange(msg string, seq api.Sequence, r api.Range) *api.Error {
	return api.NewError(api.ErrCodeInvalidArgument, msg).
		Wrap(api.ErrInvalidArgument).
		WithContext("range", r.String()).
		WithContext("len", seq.Len())
}
