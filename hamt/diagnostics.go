package hamt

import "github.com/sugawarayuuta/sonnet"

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// Diagnostics: structural and allocator accessors
// ───────────────────────────────────────────────────────────────────────────────────────────────
// Not on the hot insert/lookup path. TreeStats walks the whole tree, so callers should treat it
// as a debugging/testing/observability tool, not something invoked per-operation.
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// TreeStats summarizes the trie's current shape.
type TreeStats struct {
	Entries                int     `json:"entries"`
	MaxObservedDepth       int     `json:"max_observed_depth"`
	InternalCount          int     `json:"internal_count"`
	LeafCount              int     `json:"leaf_count"`
	AvgChildrenPerInternal float64 `json:"avg_children_per_internal"`
	TotalChildPointers     int     `json:"total_child_pointers"`
}

// PoolStats returns the ChildrenPool's allocation counters.
func (m *Map[K, V]) PoolStats() ChildrenPoolStats {
	return m.pool.stats()
}

// TreeStats walks the tree and computes structural counters. Depth is
// counted from the root at 0.
func (m *Map[K, V]) TreeStats() TreeStats {
	var st TreeStats
	var walk func(n *Node[K, V], depth int)
	walk = func(n *Node[K, V], depth int) {
		if depth > st.MaxObservedDepth {
			st.MaxObservedDepth = depth
		}
		if n.kind == kindLeaf {
			st.LeafCount++
			st.Entries += len(n.entries)
			return
		}
		st.InternalCount++
		st.TotalChildPointers += len(n.children)
		for _, child := range n.children {
			walk(child, depth+1)
		}
	}
	walk(m.root, 0)
	if st.InternalCount > 0 {
		st.AvgChildrenPerInternal = float64(st.TotalChildPointers) / float64(st.InternalCount)
	}
	return st
}

// statsSnapshot is the JSON shape produced by MarshalStats.
type statsSnapshot struct {
	Pool ChildrenPoolStats `json:"pool"`
	Tree TreeStats         `json:"tree"`
}

// MarshalStats serializes a PoolStats/TreeStats snapshot to JSON using
// sonnet, a drop-in fast encoding/json replacement. It serializes
// diagnostics only, never map contents.
func (m *Map[K, V]) MarshalStats() ([]byte, error) {
	return sonnet.Marshal(statsSnapshot{
		Pool: m.PoolStats(),
		Tree: m.TreeStats(),
	})
}
