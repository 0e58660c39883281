// ════════════════════════════════════════════════════════════════════════════════════════════════
// Package hamt — Pooled Hash Array Mapped Trie
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: pooledhamt
// Component: Generic in-memory associative map backed by a HAMT
//
// Description:
//   An insert/lookup-only dictionary keyed by any comparable type, implemented as a Hash Array
//   Mapped Trie. Internal nodes carry a 64-bit bitmap plus a dense, bitmap-indexed array of
//   children; leaves hold a small ordered bucket of key/value pairs. Both node records and
//   child-pointer arrays are handed out by dedicated pooled allocators (NodeArena, ChildrenPool)
//   rather than allocated one by one. Lookups do not allocate; leaf buckets are ordinary Go
//   slices grown by append, so inserting a new key still allocates on the heap.
//
// Non-goals:
//   No deletion, no persistence, no structural sharing / copy-on-write snapshots, no concurrent
//   mutation, no ordered iteration. Callers must serialize access externally.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package hamt
