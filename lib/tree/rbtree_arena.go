package tree

import (
	"math"
)

// nodeIdx addresses a node slot inside the arena.
// The slot 0 is reserved as the absent (NIL) leaf.
type nodeIdx uint32

const (
	nilIdx       nodeIdx = 0
	maxArenaSize         = math.MaxUint32
)

// rbArena stores the nodes in a slice and links them by index, so
// a removed node never leaves a dangling parent pointer behind.
// Removed slots are zeroed and recycled before the slice grows.
type rbArena[K any, V any] struct {
	nodes    []rbNode[K, V]
	recycled []nodeIdx
}

func (arena *rbArena[K, V]) at(idx nodeIdx) *rbNode[K, V] {
	return &arena.nodes[idx]
}

// objLen returns the number of live nodes.
func (arena *rbArena[K, V]) objLen() int {
	return len(arena.nodes) - 1 - len(arena.recycled)
}

func (arena *rbArena[K, V]) recLen() int {
	return len(arena.recycled)
}

func (arena *rbArena[K, V]) isFull() bool {
	return len(arena.recycled) <= 0 && uint64(len(arena.nodes)) > maxArenaSize
}

// allocate returns a zeroed slot.
// Pointers returned by at() before allocate may be invalidated by growth.
func (arena *rbArena[K, V]) allocate() (nodeIdx, bool) {
	if rl := len(arena.recycled); rl > 0 {
		idx := arena.recycled[rl-1]
		arena.recycled = arena.recycled[:rl-1]
		return idx, true
	}
	if arena.isFull() {
		return nilIdx, false
	}
	arena.nodes = append(arena.nodes, rbNode[K, V]{})
	return nodeIdx(len(arena.nodes) - 1), true
}

func (arena *rbArena[K, V]) recycle(idx nodeIdx) {
	if idx == nilIdx {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] recycle the nil leaf slot")
	}
	arena.nodes[idx] = rbNode[K, V]{}
	arena.recycled = append(arena.recycled, idx)
}

func (arena *rbArena[K, V]) reset() {
	clear(arena.nodes)
	arena.nodes = arena.nodes[:1]
	arena.recycled = arena.recycled[:0]
}

// arenaCap bounds the pre-sized slots, the NIL slot is added on top of it.
func arenaCap(capacity int) int {
	const limit = min(uint64(maxArenaSize), uint64(math.MaxInt-1))
	if capacity <= 0 {
		return 0
	}
	if uint64(capacity) > limit {
		return int(limit)
	}
	return capacity
}

func newRBArena[K any, V any](capacity int) *rbArena[K, V] {
	capacity = arenaCap(capacity)
	nodes := make([]rbNode[K, V], 1, capacity+1)
	return &rbArena[K, V]{
		nodes:    nodes,
		recycled: make([]nodeIdx, 0, capacity>>2),
	}
}
