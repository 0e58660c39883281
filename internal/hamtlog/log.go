// Package hamtlog provides a lightweight diagnostic logger used on the
// hamt package's rare allocation paths (pool fallback, arena block
// growth). Those paths are reached from Insert only when a new arena block
// or fallback array is needed; lookups never log.
package hamtlog

import "log"

// Event logs a diagnostic event. If err is non-nil it prints
// "<prefix>: <error>"; otherwise it prints "<prefix>" as a cheap trace tag.
func Event(prefix string, err error) {
	if err != nil {
		log.Printf("%s: %v", prefix, err)
	} else {
		log.Print(prefix)
	}
}
