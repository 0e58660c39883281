package hamt

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the subscript-style accessor At and by
// TryInsert. The option-returning paths (Get, Contains) never raise — absence is signaled
// through their boolean/zero-value return, matching the hash map's
// error-reporting contract.
var (
	// ErrKeyNotFound is returned by At when the requested key is absent.
	ErrKeyNotFound = errors.New("hamt: key not found")

	// ErrOutOfMemory is returned by TryInsert (and panics through Insert)
	// once an explicit capacity ceiling (WithMaxPoolCapacity) has been
	// configured and exceeded. Without a ceiling the pool simply falls
	// back to the general allocator and keeps going.
	ErrOutOfMemory = errors.New("hamt: pool capacity exceeded")
)

// keyNotFound wraps ErrKeyNotFound with the offending key for diagnostics.
func keyNotFound[K any](key K) error {
	return fmt.Errorf("%w: %v", ErrKeyNotFound, key)
}

// invariantViolation panics — asking a leaf for a child, or an internal
// node for a value, is a programmer error, not a user-facing one. This
// should be unreachable in a correct build: the insert/lookup loops only
// ever query the node kind the traversal step expects, so these calls
// should never fire outside of a bug in this package itself.
func invariantViolation(msg string) {
	panic("hamt: invariant violation: " + msg)
}
