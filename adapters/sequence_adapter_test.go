package adapters

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderedSlice(t *testing.T) {
	s := OrderedSlice[float64]{2.5, math.NaN(), -1}
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Less(2, 0))
	assert.True(t, s.Less(1, 2), "NaN orders first")
	s.Swap(0, 2)
	assert.Equal(t, -1.0, s[0])
}

func TestFuncSlice_IsView(t *testing.T) {
	type user struct {
		name string
		age  int
	}
	users := []user{{"ann", 40}, {"bob", 20}, {"cid", 30}}
	s := NewFuncSlice(users, func(a, b user) bool { return a.age < b.age })

	sort.Sort(s)
	assert.Equal(t, []string{"bob", "cid", "ann"}, []string{users[0].name, users[1].name, users[2].name})
}

func TestReverse(t *testing.T) {
	data := OrderedSlice[int]{1, 3, 2}
	sort.Sort(Reverse(data))
	assert.Equal(t, OrderedSlice[int]{3, 2, 1}, data)
}
