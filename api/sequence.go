// File: api/sequence.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Sequence and Range contracts shared by the partitioner and the engine.

package api

import "fmt"

// Sequence is a random-access collection ordered by a strict weak order.
// Any sort.Interface satisfies it.
type Sequence interface {
	// Len returns the number of elements.
	Len() int
	// Less reports whether element i must sort before element j.
	Less(i, j int) bool
	// Swap exchanges elements i and j.
	Swap(i, j int)
}

// Range is the half-open span [Lo, Hi) of positions in a Sequence.
type Range struct {
	Lo int
	Hi int
}

// Len returns the number of positions covered by r.
func (r Range) Len() int {
	if r.Hi <= r.Lo {
		return 0
	}
	return r.Hi - r.Lo
}

// Within reports whether r lies inside a sequence of length n.
func (r Range) Within(n int) bool {
	return 0 <= r.Lo && r.Lo <= r.Hi && r.Hi <= n
}

// Split returns the two disjoint ranges on either side of pivot.
func (r Range) Split(pivot int) (left, right Range) {
	return Range{Lo: r.Lo, Hi: pivot}, Range{Lo: pivot + 1, Hi: r.Hi}
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Lo, r.Hi)
}
