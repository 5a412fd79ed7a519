package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFIFOQueue_OrderPreserved(t *testing.T) {
	q := NewFIFOQueue[int]()
	q.Push(1)
	q.Push(2)
	q.Push(3)

	require.Equal(t, 3, q.Len())
	for _, want := range []int{1, 2, 3} {
		got, ok := q.Pop()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
	_, ok := q.Pop()
	assert.False(t, ok)
}

func TestPriorityQueue_OrdersByKeyThenInsertion(t *testing.T) {
	q := NewPriorityQueue[int, int](func(v int) int { return v })
	q.Push(4)
	q.Push(3)
	q.Push(2)
	q.Push(1)
	q.Push(100)

	var out []int
	for q.Len() > 0 {
		v, _ := q.Pop()
		out = append(out, v)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 100}, out)
}

func TestPriorityQueue_FIFOTieBreak(t *testing.T) {
	type item struct {
		key int
		tag string
	}
	q := NewPriorityQueue[item, int](func(v item) int { return v.key })
	q.Push(item{key: 1, tag: "a"})
	q.Push(item{key: 1, tag: "b"})
	q.Push(item{key: 1, tag: "c"})

	var tags []string
	for q.Len() > 0 {
		v, _ := q.Pop()
		tags = append(tags, v.tag)
	}
	assert.Equal(t, []string{"a", "b", "c"}, tags)
}

func TestDynamicPriorityQueue_RecomputesKeysAtPop(t *testing.T) {
	now := 0
	q := NewDynamicPriorityQueue[int, int](func(v int) int {
		// Key depends on mutable external state, not just the value.
		return v - now
	})
	q.Push(10)
	q.Push(5)
	q.Push(20)

	// At now=0, smallest key is 5.
	v, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, 5, v)

	// Advance external state; keys are recomputed against the new "now"
	// rather than using the stale keys computed at push time.
	now = 100
	v, ok = q.Pop()
	require.True(t, ok)
	assert.Equal(t, 10, v) // 10-100=-90 < 20-100=-80
}

func TestDynamicPriorityQueue_Empty(t *testing.T) {
	q := NewDynamicPriorityQueue[int, int](func(v int) int { return v })
	_, ok := q.Pop()
	assert.False(t, ok)
	assert.Equal(t, 0, q.Len())
}
