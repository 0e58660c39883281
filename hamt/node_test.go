package hamt

import "testing"

func TestDenseIndex(t *testing.T) {
	// bitmap with bits 0, 2, 5 set
	bm := uint64(1)<<0 | uint64(1)<<2 | uint64(1)<<5
	cases := []struct {
		bit  uint
		want int
	}{
		{0, 0},
		{1, 1}, // bit 1 absent, but dense index counts set bits below it
		{2, 1},
		{3, 2},
		{5, 2},
		{6, 3},
	}
	for _, c := range cases {
		if got := denseIndex(bm, c.bit); got != c.want {
			t.Errorf("denseIndex(%b, %d) = %d, want %d", bm, c.bit, got, c.want)
		}
	}
}

func TestLeafAddGet(t *testing.T) {
	leaf := newLeafNode[int, string]()

	if isNew := leaf.add(1, "one"); !isNew {
		t.Fatal("add(1) on empty leaf should report a new key")
	}
	if isNew := leaf.add(2, "two"); !isNew {
		t.Fatal("add(2) should report a new key")
	}
	if isNew := leaf.add(1, "ONE"); isNew {
		t.Fatal("add(1) again should report an update, not a new key")
	}

	if v, ok := leaf.get(1); !ok || v != "ONE" {
		t.Fatalf("get(1) = %v, %v; want ONE, true", v, ok)
	}
	if v, ok := leaf.get(2); !ok || v != "two" {
		t.Fatalf("get(2) = %v, %v; want two, true", v, ok)
	}
	if _, ok := leaf.get(3); ok {
		t.Fatal("get(3) should miss")
	}
}

func TestInternalGetAddChild(t *testing.T) {
	arena := newNodeArena[int, string](8)
	pool := newChildrenPool[int, string](256, 0)

	root := newInternalNode[int, string]()

	if c := root.getChild(5); c != nil {
		t.Fatal("getChild on empty internal node should return nil")
	}

	child := root.addChild(5, arena, pool, true)
	if child == nil || child.kind != kindInternal {
		t.Fatal("addChild(..., makeInternal=true) should return a fresh internal node")
	}
	if got := root.getChild(5); got != child {
		t.Fatalf("getChild(5) = %v, want %v", got, child)
	}
	if len(root.children) != 1 {
		t.Fatalf("len(children) = %d, want 1", len(root.children))
	}

	leafChild := root.addChild(3, arena, pool, false)
	if leafChild.kind != kindLeaf {
		t.Fatal("addChild(..., makeInternal=false) should return a fresh leaf node")
	}

	// Slot 3 < slot 5: ascending order means the dense array should place
	// slot 3's child before slot 5's.
	if root.children[0] != leafChild || root.children[1] != child {
		t.Fatal("children array not kept in ascending slot order after insert-with-shift")
	}
}

func TestInternalGrowthAcrossAllSlots(t *testing.T) {
	arena := newNodeArena[int, int](64)
	pool := newChildrenPool[int, int](8192, 0)

	root := newInternalNode[int, int]()
	seen := make(map[uint]*Node[int, int])

	for chunkVal := uint(0); chunkVal < 64; chunkVal++ {
		child := root.addChild(chunkVal, arena, pool, false)
		seen[chunkVal] = child
	}

	if len(root.children) != 64 {
		t.Fatalf("len(children) = %d, want 64", len(root.children))
	}
	for chunkVal, want := range seen {
		if got := root.getChild(chunkVal); got != want {
			t.Errorf("getChild(%d) = %v, want %v", chunkVal, got, want)
		}
	}
}

func TestGetChildOnLeafPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("getChild on a leaf node should panic (invariant violation)")
		}
	}()
	leaf := newLeafNode[int, int]()
	leaf.getChild(0)
}

func TestGetOnInternalPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("get on an internal node should panic (invariant violation)")
		}
	}()
	internal := newInternalNode[int, int]()
	internal.get(0)
}
