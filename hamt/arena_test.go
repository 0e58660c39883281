package hamt

import "testing"

func TestArenaAllocateStableAddresses(t *testing.T) {
	a := newNodeArena[int, int](4)

	ptrs := make([]*Node[int, int], 10)
	for i := range ptrs {
		ptrs[i] = a.allocate()
		ptrs[i].reset(kindLeaf)
	}

	// Crossing the block boundary (block size 4) must not invalidate
	// earlier pointers.
	for i, p := range ptrs {
		if p.kind != kindLeaf {
			t.Fatalf("ptr %d: kind = %v, want kindLeaf (address should be stable)", i, p.kind)
		}
	}
	if a.blockCount() != 3 {
		t.Fatalf("blockCount() = %d, want 3 (10 slots / block size 4, rounded up)", a.blockCount())
	}
}

func TestArenaRecycleIsLIFO(t *testing.T) {
	a := newNodeArena[int, int](8)

	p1 := a.allocate()
	p2 := a.allocate()
	a.recycle(p1)
	a.recycle(p2)

	if got := a.allocate(); got != p2 {
		t.Fatalf("allocate() after recycling p1,p2 = %p, want %p (LIFO reuse)", got, p2)
	}
	if got := a.allocate(); got != p1 {
		t.Fatalf("allocate() after reusing p2 = %p, want %p (LIFO reuse)", got, p1)
	}
}

func TestArenaDestroyClearsBlocks(t *testing.T) {
	a := newNodeArena[int, int](4)
	a.allocate()
	a.allocate()
	a.destroy()

	if a.blockCount() != 0 {
		t.Fatalf("blockCount() after destroy = %d, want 0", a.blockCount())
	}
}

func TestArenaDefaultBlockSize(t *testing.T) {
	a := newNodeArena[int, int](0)
	if a.blockSize != defaultArenaBlock {
		t.Fatalf("blockSize = %d, want default %d", a.blockSize, defaultArenaBlock)
	}
}
