package hamt

import "github.com/fluxlane/pooledhamt/internal/hamtlog"

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// NodeArena: block-allocated, address-stable Node storage
// ───────────────────────────────────────────────────────────────────────────────────────────────
// Hands out uninitialized Node slots from fixed-size blocks, recycling retired slots through a
// LIFO free-list before ever bumping into a fresh block. Once a pointer is handed out its address
// never moves for the arena's lifetime — blocks are never resized or compacted, only appended to
// a list and released together at destroy(). This is what lets the tree hold raw *Node pointers
// safely: no container in the allocation path may relocate a Node once live.
//
// The arena-plus-freelist idiom here uses a growable list of fixed blocks rather than one fixed
// array, since this arena has no upper bound on block count.
// ═══════════════════════════════════════════════════════════════════════════════════════════════

const defaultArenaBlock = 1024

// NodeArena allocates Node[K, V] records in blocks, recycling retired slots
// via a free-list.
type NodeArena[K comparable, V any] struct {
	blockSize int
	blocks    [][]Node[K, V]
	nextIndex int
	freeList  []*Node[K, V]
}

// newNodeArena constructs an arena with the given block size. A block size
// of 0 falls back to defaultArenaBlock.
func newNodeArena[K comparable, V any](blockSize int) *NodeArena[K, V] {
	if blockSize <= 0 {
		blockSize = defaultArenaBlock
	}
	return &NodeArena[K, V]{blockSize: blockSize}
}

// allocate returns a pointer to a fresh, uninitialized Node slot. It
// prefers the free-list (LIFO, hot in cache), then bumps within the
// current block, then grows a new block.
func (a *NodeArena[K, V]) allocate() *Node[K, V] {
	if n := len(a.freeList); n > 0 {
		ptr := a.freeList[n-1]
		a.freeList = a.freeList[:n-1]
		return ptr
	}
	if len(a.blocks) == 0 || a.nextIndex >= a.blockSize {
		a.blocks = append(a.blocks, make([]Node[K, V], a.blockSize))
		a.nextIndex = 0
		hamtlog.Event("hamt: arena block allocated", nil)
	}
	block := a.blocks[len(a.blocks)-1]
	ptr := &block[a.nextIndex]
	a.nextIndex++
	return ptr
}

// recycle appends ptr to the free-list. The caller must have already
// destroyed the Node's payload (released its children array to the pool,
// if internal).
func (a *NodeArena[K, V]) recycle(ptr *Node[K, V]) {
	a.freeList = append(a.freeList, ptr)
}

// destroy releases every block. Individual Nodes are not destructed here —
// payload teardown belongs to the Map's teardown traversal, which must run
// before this is called.
func (a *NodeArena[K, V]) destroy() {
	a.blocks = nil
	a.freeList = nil
	a.nextIndex = 0
}

// blockCount reports how many blocks have been allocated, for diagnostics.
func (a *NodeArena[K, V]) blockCount() int {
	return len(a.blocks)
}
