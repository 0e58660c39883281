// map_stress_test.go contains long-running large-N tests: randomized
// inserts checked against a plain Go map used as a reference model, plus
// total-hash-collision and structural-bound checks.
package hamt

import (
	"math/rand"
	"testing"
)

func TestStressInsertAgainstReferenceMap(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in -short mode")
	}

	const ops = 200_000
	rng := rand.New(rand.NewSource(1))

	m := New[int64, int64]()
	reference := make(map[int64]int64, ops)

	for i := 0; i < ops; i++ {
		key := rng.Int63n(ops / 4) // force plenty of updates and collisions
		val := rng.Int63()
		m.Insert(key, val)
		reference[key] = val
	}

	if m.Len() != len(reference) {
		t.Fatalf("Len() = %d, want %d (distinct keys in reference model)", m.Len(), len(reference))
	}

	for key, want := range reference {
		got, ok := m.Get(key)
		if !ok || got != want {
			t.Fatalf("Get(%d) = %d, %v; want %d, true", key, got, ok, want)
		}
	}
}

func TestStressConstantHashCollisionAllRetrievable(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in -short mode")
	}

	const n = 20_000
	m := New[int, int](WithHashFunc[int, int](func(int) uint64 { return 7 }))

	for i := 0; i < n; i++ {
		m.Insert(i, i*2)
	}
	if m.Len() != n {
		t.Fatalf("Len() = %d, want %d under total hash collision", m.Len(), n)
	}
	for i := 0; i < n; i++ {
		v, ok := m.Get(i)
		if !ok || v != i*2 {
			t.Fatalf("Get(%d) = %d, %v; want %d, true", i, v, ok, i*2)
		}
	}

	st := m.TreeStats()
	if st.LeafCount != 1 {
		t.Fatalf("LeafCount = %d, want 1 under total hash collision", st.LeafCount)
	}
}

func TestStressStructuralBounds(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in -short mode")
	}

	const n = 50_000
	rng := rand.New(rand.NewSource(2))

	m := New[int64, struct{}]()
	seen := make(map[int64]struct{}, n)
	for len(seen) < n {
		k := rng.Int63()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		m.Insert(k, struct{}{})
	}

	st := m.TreeStats()
	if st.InternalCount > n*maxLevel {
		t.Fatalf("InternalCount = %d, exceeds N*MAX_LEVEL = %d", st.InternalCount, n*maxLevel)
	}
	if st.LeafCount > n {
		t.Fatalf("LeafCount = %d, exceeds N = %d", st.LeafCount, n)
	}
	if st.Entries != n {
		t.Fatalf("Entries = %d, want %d", st.Entries, n)
	}
}
