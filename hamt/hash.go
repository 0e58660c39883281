package hamt

import (
	"encoding/binary"
	"hash/maphash"

	"golang.org/x/crypto/sha3"
)

// HashFunc computes a 64-bit hash for a key. Only the low 60 bits are used
// by the trie (chunk extraction clears the top 4); a custom HashFunc may
// return a constant for every input without breaking correctness — keys
// that collide on every chunk simply coexist in the same leaf bucket.
type HashFunc[K comparable] func(K) uint64

// defaultSeed is shared process-wide. maphash documents that a given seed
// produces a consistent hash for the process lifetime but is not stable
// across runs or processes — the platform default hash used whenever no
// custom hash function is supplied.
var defaultSeed = maphash.MakeSeed()

// defaultHash is the platform's default hash, used whenever a Map is
// constructed without WithHashFunc.
func defaultHash[K comparable](k K) uint64 {
	return maphash.Comparable(defaultSeed, k)
}

// HashAddressKeccak256 hashes a 20-byte Ethereum-style address with
// keccak256, truncating the digest to its first 8 bytes. Addresses are
// themselves keccak-derived, so hashing them again with keccak256
// preserves uniform bit distribution across the trie's chunk levels.
// Offered here as a ready-made HashFunc for Map[[20]byte, V] via
// NewAddressMap, not as a replacement for the default hash.
func HashAddressKeccak256(addr [20]byte) uint64 {
	h := sha3.NewLegacyKeccak256()
	h.Write(addr[:])
	sum := h.Sum(nil)
	return binary.BigEndian.Uint64(sum[:8])
}

// NewAddressMap builds a Map keyed by 20-byte addresses and hashed with
// keccak256 instead of the platform default. Any additional Options are
// applied after the hash function, so they may still override it.
func NewAddressMap[V any](opts ...Option[[20]byte, V]) *Map[[20]byte, V] {
	all := append([]Option[[20]byte, V]{WithHashFunc[[20]byte, V](HashAddressKeccak256)}, opts...)
	return New[[20]byte, V](all...)
}
