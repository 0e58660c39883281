package hamt

import "github.com/fluxlane/pooledhamt/internal/hamtlog"

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// ChildrenPool: bump-allocated storage for child-pointer arrays
// ───────────────────────────────────────────────────────────────────────────────────────────────
// One large pre-allocated slab of pointer slots plus a monotonically increasing bump cursor,
// eliminating general-purpose heap calls on the hot insertion path. Growth retires an
// internal node's old child array; the pool recaptures it on a size-classed free-list instead of
// discarding it, so steady-state workloads amortize toward zero bump consumption.
//
// The free-list is size-classed: one LIFO stack per capacity the growth schedule ever produces
// (4, 8, 16, 32, 64), rather than a single undifferentiated free-list popped blindly. A single
// shared free-list mixes spans retired by nodes at every fanout, so a size-4 span can sit on top
// when a size-64 request arrives even under per-node monotone growth; Go slices make reuse of an
// undersized span an immediate out-of-bounds panic, so size-classing is the only choice that is
// actually correct here.
// ═══════════════════════════════════════════════════════════════════════════════════════════════

const defaultPoolCapacity = 4_000_000

// oomPanic carries ErrOutOfMemory across the addChild/grow call chain. It
// is recovered at the Map.TryInsert boundary and converted back into a
// returned error; Insert lets it propagate as an ordinary panic for
// callers who never configured a ceiling and don't expect one to fire.
type oomPanic struct{ err error }

// sizeClasses are the only capacities Node.grow ever requests: each a
// doubling starting at 4, up to the maximum possible fanout (64 chunk
// values).
var sizeClasses = [...]int{4, 8, 16, 32, 64}

func sizeClassIndex(size int) int {
	for i, c := range sizeClasses {
		if size <= c {
			return i
		}
	}
	return len(sizeClasses) - 1
}

// ChildrenPoolStats reports the pool's allocation counters.
type ChildrenPoolStats struct {
	TotalAllocations    uint64 `json:"total_allocations"`
	FallbackAllocations uint64 `json:"fallback_allocations"`
	BumpSlotsConsumed   uint64 `json:"bump_slots_consumed"`
	ReusedSlotCount     uint64 `json:"reused_slot_count"`
	FreeListLength      int    `json:"free_list_length"`
}

// ChildrenPool allocates []*Node[K, V] spans for internal nodes' child
// arrays.
type ChildrenPool[K comparable, V any] struct {
	slab      []*Node[K, V]
	nextIndex int

	freeLists [len(sizeClasses)][][]*Node[K, V]

	fallbackArrays [][]*Node[K, V]

	// maxCapacity, when positive, bounds the total pointer slots this pool
	// will ever hand out (bump + fallback, not counting reused spans).
	// Zero means unbounded: the pool always falls back to the general
	// allocator rather than refuse.
	maxCapacity int
	consumed    int

	totalAllocations    uint64
	fallbackAllocations uint64
	bumpSlotsConsumed   uint64
	reusedSlotCount     uint64
}

// newChildrenPool constructs a pool with the given slab capacity. A
// capacity of 0 falls back to defaultPoolCapacity. maxCapacity bounds the
// total slots ever handed out; 0 leaves it unbounded.
func newChildrenPool[K comparable, V any](capacity, maxCapacity int) *ChildrenPool[K, V] {
	if capacity <= 0 {
		capacity = defaultPoolCapacity
	}
	return &ChildrenPool[K, V]{slab: make([]*Node[K, V], capacity), maxCapacity: maxCapacity}
}

// allocate returns a span of length 0 and capacity >= size, ready to be
// grown via append or re-sliced up to size. A reused, size-classed span
// never counts against maxCapacity — only genuinely new slots do. If a
// maxCapacity ceiling was configured and a new allocation would exceed
// it, allocate panics with oomPanic wrapping ErrOutOfMemory instead of
// growing past the ceiling.
func (p *ChildrenPool[K, V]) allocate(size int) []*Node[K, V] {
	p.totalAllocations++

	class := sizeClassIndex(size)
	if classSize := sizeClasses[class]; classSize >= size {
		if stack := p.freeLists[class]; len(stack) > 0 {
			span := stack[len(stack)-1]
			p.freeLists[class] = stack[:len(stack)-1]
			p.reusedSlotCount++
			return span[:0]
		}
	}

	if p.maxCapacity > 0 && p.consumed+size > p.maxCapacity {
		panic(oomPanic{err: ErrOutOfMemory})
	}
	p.consumed += size

	if p.nextIndex+size <= len(p.slab) {
		span := p.slab[p.nextIndex : p.nextIndex : p.nextIndex+size]
		p.nextIndex += size
		p.bumpSlotsConsumed += uint64(size)
		return span
	}

	p.fallbackAllocations++
	hamtlog.Event("hamt: children pool fallback allocation", nil)
	span := make([]*Node[K, V], 0, size)
	p.fallbackArrays = append(p.fallbackArrays, span)
	return span
}

// release returns span to the pool's free-list, bucketed by its capacity
// class. The cells are not zeroed — the next allocate() caller is expected
// to overwrite every slot it uses.
func (p *ChildrenPool[K, V]) release(span []*Node[K, V]) {
	if cap(span) == 0 {
		return
	}
	class := sizeClassIndex(cap(span))
	p.freeLists[class] = append(p.freeLists[class], span[:0])
}

// destroy releases the slab and any fallback-allocated arrays.
func (p *ChildrenPool[K, V]) destroy() {
	p.slab = nil
	p.fallbackArrays = nil
	for i := range p.freeLists {
		p.freeLists[i] = nil
	}
}

// stats returns a snapshot of the pool's allocation counters.
func (p *ChildrenPool[K, V]) stats() ChildrenPoolStats {
	freeListLength := 0
	for _, stack := range p.freeLists {
		freeListLength += len(stack)
	}
	return ChildrenPoolStats{
		TotalAllocations:    p.totalAllocations,
		FallbackAllocations: p.fallbackAllocations,
		BumpSlotsConsumed:   p.bumpSlotsConsumed,
		ReusedSlotCount:     p.reusedSlotCount,
		FreeListLength:      freeListLength,
	}
}
