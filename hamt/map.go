package hamt

import (
	"fmt"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// Map: the public façade over the pooled HAMT
// ───────────────────────────────────────────────────────────────────────────────────────────────
// Owns the root node, both allocators, the hash hook, and the entry count. Insert and lookup
// share a single traversal: hash the key, walk ten fixed levels extracting a 6-bit chunk per
// level, creating internal nodes for levels [0, MAX_LEVEL-1) and a leaf at the last level,
// terminating the walk at exactly one leaf per key.
// ═══════════════════════════════════════════════════════════════════════════════════════════════

const (
	// maxLevel is the fixed tree depth: ten 6-bit chunks address the low
	// 60 bits of a hash exactly.
	maxLevel  = 10
	chunkBits = 6
	chunkMask = uint(1)<<chunkBits - 1
	hashMask  = uint64(1)<<(chunkBits*maxLevel) - 1
)

// Map is a generic, in-memory associative map backed by a HAMT with
// pooled node and child-array allocators. It is not safe for concurrent
// mutation; callers must serialize access externally.
type Map[K comparable, V any] struct {
	root   *Node[K, V]
	arena  *NodeArena[K, V]
	pool   *ChildrenPool[K, V]
	hashFn HashFunc[K]
	size   int
}

// Option configures a Map at construction time.
type Option[K comparable, V any] func(*mapConfig[K, V])

type mapConfig[K comparable, V any] struct {
	arenaBlock      int
	poolCapacity    int
	maxPoolCapacity int
	hashFn          HashFunc[K]
}

// WithArenaBlock overrides NodeArena's block size (default 1024 nodes).
func WithArenaBlock[K comparable, V any](n int) Option[K, V] {
	return func(c *mapConfig[K, V]) { c.arenaBlock = n }
}

// WithPoolCapacity overrides ChildrenPool's slab capacity in pointer slots
// (default 4,000,000).
func WithPoolCapacity[K comparable, V any](n int) Option[K, V] {
	return func(c *mapConfig[K, V]) { c.poolCapacity = n }
}

// WithMaxPoolCapacity sets a ceiling on the total child-pointer slots the
// ChildrenPool will ever hand out. Unset (the default), the pool always
// falls back to the general allocator rather than refuse. Once set,
// exceeding it makes Insert panic and TryInsert return ErrOutOfMemory.
func WithMaxPoolCapacity[K comparable, V any](n int) Option[K, V] {
	return func(c *mapConfig[K, V]) { c.maxPoolCapacity = n }
}

// WithHashFunc overrides the platform default hash. A custom hash must be
// honored even when adversarial — a constant-valued hash is valid and
// simply forces every key into the same leaf bucket.
func WithHashFunc[K comparable, V any](fn HashFunc[K]) Option[K, V] {
	return func(c *mapConfig[K, V]) { c.hashFn = fn }
}

// New constructs an empty Map.
func New[K comparable, V any](opts ...Option[K, V]) *Map[K, V] {
	cfg := mapConfig[K, V]{hashFn: defaultHash[K]}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Map[K, V]{
		root:   newInternalNode[K, V](),
		arena:  newNodeArena[K, V](cfg.arenaBlock),
		pool:   newChildrenPool[K, V](cfg.poolCapacity, cfg.maxPoolCapacity),
		hashFn: cfg.hashFn,
	}
}

// chunk extracts the 6-bit fragment of h addressing level.
func chunk(h uint64, level int) uint {
	return uint(h>>(chunkBits*level)) & chunkMask
}

// walk descends from the root to the leaf that key's hash addresses,
// creating internal nodes and the terminal leaf along the way when create
// is true. With create false, it returns nil as soon as it hits a missing
// child (a pure lookup miss).
func (m *Map[K, V]) walk(key K, create bool) *Node[K, V] {
	h := m.hashFn(key) & hashMask
	cur := m.root
	for level := 0; level < maxLevel; level++ {
		c := chunk(h, level)
		child := cur.getChild(c)
		if child == nil {
			if !create {
				return nil
			}
			child = cur.addChild(c, m.arena, m.pool, level < maxLevel-1)
		}
		cur = child
	}
	return cur
}

// Insert stores value under key. After Insert returns, Get(key) yields
// (value, true). If key was previously absent, Len() increases by one.
//
// Insert panics if WithMaxPoolCapacity was configured and is exhausted;
// without that option the pool is unbounded and Insert never fails. Use
// TryInsert where the ceiling is expected to be hit in normal operation.
func (m *Map[K, V]) Insert(key K, value V) {
	leaf := m.walk(key, true)
	if leaf.add(key, value) {
		m.size++
	}
}

// TryInsert behaves like Insert but converts an exhausted
// WithMaxPoolCapacity ceiling into a returned ErrOutOfMemory instead of a
// panic.
func (m *Map[K, V]) TryInsert(key K, value V) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if oom, ok := r.(oomPanic); ok {
				err = oom.err
				return
			}
			panic(r)
		}
	}()
	m.Insert(key, value)
	return nil
}

// Get returns the value stored for key, if present.
func (m *Map[K, V]) Get(key K) (V, bool) {
	leaf := m.walk(key, false)
	if leaf == nil {
		var zero V
		return zero, false
	}
	return leaf.get(key)
}

// At returns the value stored for key, or ErrKeyNotFound if absent. It is
// the throwing subscript-style accessor alongside the option-returning Get.
func (m *Map[K, V]) At(key K) (V, error) {
	v, ok := m.Get(key)
	if !ok {
		return v, keyNotFound(key)
	}
	return v, nil
}

// Contains reports whether key is present. Equivalent to Get(key)'s
// second return value.
func (m *Map[K, V]) Contains(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// Len returns the current number of distinct keys held.
func (m *Map[K, V]) Len() int {
	return m.size
}

// Destroy releases the map's backing allocators. The root is walked first
// so every child-pointer array still held by a live internal node is
// returned to the pool before the pool's own slab and fallback arrays are
// dropped; the arena's blocks are released last. Destroy renders the map
// unusable — calling any other method on it afterward is undefined.
func (m *Map[K, V]) Destroy() {
	var release func(n *Node[K, V])
	release = func(n *Node[K, V]) {
		if n.kind != kindInternal {
			return
		}
		for _, child := range n.children {
			release(child)
		}
		if n.children != nil {
			m.pool.release(n.children)
		}
	}
	release(m.root)
	m.pool.destroy()
	m.arena.destroy()
	m.root = nil
	m.size = 0
}

// Pair is one key/value entry, returned by Entries.
type Pair[K comparable, V any] struct {
	Key K
	Val V
}

// Entries collects every (key, value) pair currently stored, exactly
// once each. Order is traversal-dependent (ascending chunk order within
// each internal node, leaf insertion order within a bucket) and stable
// for a fixed tree, but not pinned as part of this map's contract — only
// multiset equality should be relied upon.
func (m *Map[K, V]) Entries() []Pair[K, V] {
	out := make([]Pair[K, V], 0, m.size)
	var walk func(n *Node[K, V])
	walk = func(n *Node[K, V]) {
		if n.kind == kindLeaf {
			for _, e := range n.entries {
				out = append(out, Pair[K, V]{Key: e.key, Val: e.val})
			}
			return
		}
		for _, child := range n.children {
			walk(child)
		}
	}
	walk(m.root)
	return out
}

// String renders the map as "{k1: v1, k2: v2, ...}", or "{}" when empty.
func (m *Map[K, V]) String() string {
	if m.size == 0 {
		return "{}"
	}
	var b strings.Builder
	b.WriteByte('{')
	for i, p := range m.Entries() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v: %v", p.Key, p.Val)
	}
	b.WriteByte('}')
	return b.String()
}
