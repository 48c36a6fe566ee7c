package graph

import (
	"github.com/zyedidia/generic/heap"
)

// frontierEntry is one insertion into the frontier. Cost is the node's cost
// at insertion time; seq breaks ties in insertion order.
type frontierEntry struct {
	node int
	cost float64
	seq  uint64
}

// Frontier is a multiset of nodes ordered by ascending cost. A node may be
// inserted several times; entries that no longer describe the node are
// dropped when they reach the top.
type Frontier struct {
	entries *heap.Heap[frontierEntry]
	seq     uint64
}

func newFrontier() *Frontier {
	return &Frontier{entries: heap.New[frontierEntry](lessEntry)}
}

func lessEntry(a, b frontierEntry) bool {
	if a.cost != b.cost {
		return a.cost < b.cost
	}
	return a.seq < b.seq
}

// Push inserts node with its current cost
func (f *Frontier) Push(node int, cost float64) {
	f.seq++
	f.entries.Push(frontierEntry{node: node, cost: cost, seq: f.seq})
}

// Pop removes and returns the cheapest entry for which live returns true,
// discarding stale entries on the way.
func (f *Frontier) Pop(live func(node int, cost float64) bool) (int, bool) {
	for {
		e, ok := f.entries.Pop()
		if !ok {
			return -1, false
		}
		if live(e.node, e.cost) {
			return e.node, true
		}
	}
}

// Prune drops stale entries from the top so Len reflects live work
func (f *Frontier) Prune(live func(node int, cost float64) bool) {
	for {
		e, ok := f.entries.Peek()
		if !ok || live(e.node, e.cost) {
			return
		}
		f.entries.Pop()
	}
}

// Len returns the number of entries, stale ones included
func (f *Frontier) Len() int {
	return f.entries.Size()
}
