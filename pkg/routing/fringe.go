package routing

// MinHeap is a binary min-heap of values ordered by a float key. Equal keys
// pop in push order, so searches are deterministic.
type MinHeap[T any] struct {
	items []PQItem[T]
	seq   uint64
}

// PQItem is a priority queue entry.
type PQItem[T any] struct {
	Value T
	Key   float64
	seq   uint64
}

func (h *MinHeap[T]) Len() int { return len(h.items) }

func (h *MinHeap[T]) Push(v T, key float64) {
	h.items = append(h.items, PQItem[T]{Value: v, Key: key, seq: h.seq})
	h.seq++
	h.siftUp(len(h.items) - 1)
}

func (h *MinHeap[T]) Pop() PQItem[T] {
	n := len(h.items)
	item := h.items[0]
	h.items[0] = h.items[n-1]
	h.items = h.items[:n-1]
	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return item
}

func (h *MinHeap[T]) less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if a.Key != b.Key {
		return a.Key < b.Key
	}
	return a.seq < b.seq
}

func (h *MinHeap[T]) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(i, parent) {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *MinHeap[T]) siftDown(i int) {
	n := len(h.items)
	for {
		smallest := i
		left := 2*i + 1
		right := 2*i + 2
		if left < n && h.less(left, smallest) {
			smallest = left
		}
		if right < n && h.less(right, smallest) {
			smallest = right
		}
		if smallest == i {
			break
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}

// fringe is the set of partial paths still to be expanded. The discipline
// of pop decides the search.
type fringe[T any] interface {
	push(v T)
	pop() T
	len() int
}

type stack[T any] struct{ items []T }

func (s *stack[T]) push(v T) { s.items = append(s.items, v) }
func (s *stack[T]) len() int { return len(s.items) }

func (s *stack[T]) pop() T {
	v := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return v
}

type queue[T any] struct {
	items []T
	head  int
}

func (q *queue[T]) push(v T) { q.items = append(q.items, v) }
func (q *queue[T]) len() int { return len(q.items) - q.head }

func (q *queue[T]) pop() T {
	v := q.items[q.head]
	var zero T
	q.items[q.head] = zero
	q.head++
	if q.head == len(q.items) {
		q.items, q.head = q.items[:0], 0
	}
	return v
}

// keyed adapts a MinHeap to the fringe interface using key to rank values.
type keyed[T any] struct {
	heap MinHeap[T]
	key  func(T) float64
}

func (k *keyed[T]) push(v T) { k.heap.Push(v, k.key(v)) }
func (k *keyed[T]) pop() T   { return k.heap.Pop().Value }
func (k *keyed[T]) len() int { return k.heap.Len() }

// trail is an immutable singly linked path, newest leg first. Extending a
// trail shares the prefix, so fringe entries do not copy their paths.
type trail[L any] struct {
	leg  L
	prev *trail[L]
	size int
}

func (t *trail[L]) extend(leg L) *trail[L] {
	return &trail[L]{leg: leg, prev: t, size: t.len() + 1}
}

func (t *trail[L]) len() int {
	if t == nil {
		return 0
	}
	return t.size
}

// legs returns the path in travel order, followed by last.
func (t *trail[L]) legs(last L) []L {
	out := make([]L, t.len()+1)
	out[len(out)-1] = last
	i := len(out) - 2
	for cur := t; cur != nil; cur = cur.prev {
		out[i] = cur.leg
		i--
	}
	return out
}

// contains reports whether any leg on the trail satisfies match.
func (t *trail[L]) contains(match func(L) bool) bool {
	for cur := t; cur != nil; cur = cur.prev {
		if match(cur.leg) {
			return true
		}
	}
	return false
}
