package scheduler

import "container/heap"

// fifo is an arrival-ordered ready queue.
type fifo struct {
	items []*slot
}

func (q *fifo) Len() int { return len(q.items) }

func (q *fifo) push(s ...*slot) {
	q.items = append(q.items, s...)
}

func (q *fifo) pop() *slot {
	s := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return s
}

// rankQueue is a ready structure ordered by a Rank predicate.
//
// container/heap pops the element for which Less holds against every other
// element, so Less(i, j) is exactly rank(i, j): "i ranks higher than j".
// Pairs the predicate leaves unordered fall back to arrival sequence, which
// makes the order total and the simulation deterministic.
type rankQueue struct {
	items []*slot
	rank  Rank
}

func (q *rankQueue) Len() int { return len(q.items) }

func (q *rankQueue) Less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	if q.rank(a.Execution, b.Execution) {
		return true
	}
	if q.rank(b.Execution, a.Execution) {
		return false
	}
	return a.seq < b.seq
}

func (q *rankQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *rankQueue) Push(x any) {
	q.items = append(q.items, x.(*slot))
}

func (q *rankQueue) Pop() any {
	old := q.items
	n := len(old)
	s := old[n-1]
	old[n-1] = nil
	q.items = old[:n-1]
	return s
}

func (q *rankQueue) add(s ...*slot) {
	for _, item := range s {
		heap.Push(q, item)
	}
}

func (q *rankQueue) best() *slot {
	return heap.Pop(q).(*slot)
}
