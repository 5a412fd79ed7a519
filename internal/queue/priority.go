package queue

import "container/heap"

// PriorityQueue is a static-key binary heap: each value's key is computed
// once at push time. Ties are broken by insertion order (FIFO), matching
// the event queue's (time, insertion_counter) discipline described in the
// spec.
type PriorityQueue[T any, K Ordered] struct {
	impl   priorityHeap[T, K]
	keyFn  func(T) K
	nextID int
}

// Ordered constrains the key type to anything with a total order via <.
type Ordered interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64 | ~string
}

type priorityItem[T any, K Ordered] struct {
	key   K
	id    int
	value T
}

type priorityHeap[T any, K Ordered] []priorityItem[T, K]

func (h priorityHeap[T, K]) Len() int { return len(h) }
func (h priorityHeap[T, K]) Less(i, j int) bool {
	if h[i].key != h[j].key {
		return h[i].key < h[j].key
	}
	return h[i].id < h[j].id
}
func (h priorityHeap[T, K]) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *priorityHeap[T, K]) Push(x any) {
	*h = append(*h, x.(priorityItem[T, K]))
}
func (h *priorityHeap[T, K]) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// NewPriorityQueue creates an empty priority queue keyed by keyFn.
func NewPriorityQueue[T any, K Ordered](keyFn func(T) K) *PriorityQueue[T, K] {
	return &PriorityQueue[T, K]{keyFn: keyFn}
}

// Push inserts a value, computing its key immediately.
func (q *PriorityQueue[T, K]) Push(value T) {
	q.nextID++
	heap.Push(&q.impl, priorityItem[T, K]{key: q.keyFn(value), id: q.nextID, value: value})
}

// Pop removes and returns the value with the smallest key, breaking ties
// by insertion order.
func (q *PriorityQueue[T, K]) Pop() (T, bool) {
	if q.impl.Len() == 0 {
		var zero T
		return zero, false
	}
	item := heap.Pop(&q.impl).(priorityItem[T, K])
	return item.value, true
}

// Len returns the number of queued values.
func (q *PriorityQueue[T, K]) Len() int {
	return q.impl.Len()
}
