// ════════════════════════════════════════════════════════════════════════════════════════════════
// hamtbench — Pooled HAMT Throughput Driver
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: pooledhamt
// Component: External benchmark/diagnostics collaborator
//
// Description:
//   Exercises the hamt.Map public API and diagnostic accessors at a fixed scale, reporting
//   insert/query throughput plus a pool/tree diagnostics snapshot. Optionally records the run's
//   entry count and per-op timings (never map contents) into a local SQLite history database —
//   the concrete, wired home for the CLI/CSV/ASV-style tooling the core package deliberately
//   keeps out of scope.
//
// Architecture:
//   - Phase 1: Insert N sequential keys
//   - Phase 2: Query N keys, measuring throughput
//   - Phase 3: Insert/query N/10 synthetic addresses through a keccak256-hashed map
//   - Phase 4: Report diagnostics, optionally persist run history to SQLite
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package main

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/fluxlane/pooledhamt/hamt"
	"github.com/fluxlane/pooledhamt/internal/hamtlog"

	_ "github.com/mattn/go-sqlite3"
)

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// CONFIGURATION CONSTANTS
// ═══════════════════════════════════════════════════════════════════════════════════════════════

const (
	// entryCount is the number of sequential integer keys inserted and
	// queried each run.
	entryCount = 100_000

	// historyDBPath is where run history is recorded. Empty disables
	// persistence entirely.
	historyDBPath = "hamtbench_history.db"
)

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// MAIN ORCHESTRATION
// ═══════════════════════════════════════════════════════════════════════════════════════════════

func main() {
	hamtlog.Event("hamtbench: starting run", nil)

	m := hamt.New[int64, int64]()

	// PHASE 1: Insert
	insertStart := time.Now()
	for i := int64(0); i < entryCount; i++ {
		m.Insert(i, i*2)
	}
	insertElapsed := time.Since(insertStart)

	// PHASE 2: Query
	queryStart := time.Now()
	hits := 0
	for i := int64(0); i < entryCount; i++ {
		if _, ok := m.Get(i); ok {
			hits++
		}
	}
	queryElapsed := time.Since(queryStart)

	// PHASE 3: Address-keyed map via keccak256 hashing
	addrHits := runAddressPhase()
	fmt.Printf("address_phase entries=%d hits=%d\n", entryCount/10, addrHits)

	// PHASE 4: Report
	report := buildReport(m, hits, insertElapsed, queryElapsed)
	fmt.Println(report)

	statsJSON, err := m.MarshalStats()
	if err != nil {
		hamtlog.Event("hamtbench: MarshalStats failed", err)
	} else {
		fmt.Println(string(statsJSON))
	}

	if historyDBPath != "" {
		if err := recordRun(historyDBPath, entryCount, insertElapsed, queryElapsed); err != nil {
			hamtlog.Event("hamtbench: failed to record run history", err)
		}
	}
}

// runAddressPhase exercises NewAddressMap's keccak256 hashing path against
// a set of synthetic 20-byte addresses derived from the sequential key
// space, returning how many round-trip correctly.
func runAddressPhase() int {
	m := hamt.NewAddressMap[int64]()
	addrs := make([][20]byte, entryCount/10)
	for i := range addrs {
		var a [20]byte
		a[18] = byte(i >> 8)
		a[19] = byte(i)
		addrs[i] = a
		m.Insert(a, int64(i))
	}
	hits := 0
	for i, a := range addrs {
		if v, ok := m.Get(a); ok && v == int64(i) {
			hits++
		}
	}
	return hits
}

func buildReport(m *hamt.Map[int64, int64], hits int, insertElapsed, queryElapsed time.Duration) string {
	insertOpsPerSec := float64(entryCount) / insertElapsed.Seconds()
	queryOpsPerSec := float64(entryCount) / queryElapsed.Seconds()
	return fmt.Sprintf(
		"entries=%d hits=%d len=%d insert_ops_per_sec=%.0f query_ops_per_sec=%.0f",
		entryCount, hits, m.Len(), insertOpsPerSec, queryOpsPerSec,
	)
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// RUN HISTORY PERSISTENCE (SQLite)
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// recordRun appends one row describing this benchmark run to a local
// SQLite history database. This persists benchmark metadata only — never
// the map's own contents, so it does not reintroduce the core package's
// disk-persistence non-goal.
func recordRun(path string, n int, insertElapsed, queryElapsed time.Duration) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return err
	}
	defer db.Close()

	const schema = `
CREATE TABLE IF NOT EXISTS bench_runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	ran_at TIMESTAMP NOT NULL,
	entry_count INTEGER NOT NULL,
	insert_ns_per_op REAL NOT NULL,
	query_ns_per_op REAL NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		return err
	}

	insertNsPerOp := float64(insertElapsed.Nanoseconds()) / float64(n)
	queryNsPerOp := float64(queryElapsed.Nanoseconds()) / float64(n)

	_, err = db.Exec(
		`INSERT INTO bench_runs (ran_at, entry_count, insert_ns_per_op, query_ns_per_op) VALUES (?, ?, ?, ?)`,
		time.Now().UTC(), n, insertNsPerOp, queryNsPerOp,
	)
	return err
}
