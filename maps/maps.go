// Package maps provides an insertion-ordered map for comparable keys.
//
// Unlike a plain Go map, an OrderedMap remembers the order in which keys were first
// added, iterates deterministically in that order, and supports reordering the whole
// map in place (Reverse, SortFunc). Lookups, inserts and updates are O(1); removals
// are O(n) in the number of entries that follow the removed key.
package maps

import "iter"

// KeyValuePair is a single entry of an OrderedMap.
type KeyValuePair[K comparable, V any] struct {
	Key   K
	Value V
}

// OrderedMap is a generic ordered map. Iteration follows insertion order unless the
// map has been explicitly reordered with Reverse or SortFunc.
//
// Thread-safety: implementations are not thread-safe. Concurrent access must be
// synchronized by the caller.
//
//nolint:interfacebloat
type OrderedMap[K comparable, V any] interface {
	// Add inserts or updates a key-value pair.
	// If the key already exists, its value is replaced without changing its position.
	// If the key is new, it's appended to the end of the order.
	Add(key K, value V)

	// Get returns the value stored under key, and whether it was present.
	Get(key K) (V, bool)

	// Remove deletes the key. Removing an absent key is a no-op.
	// Returns true if an entry was deleted.
	Remove(key K) bool

	// RemoveWhere deletes every entry for which predicate returns true, in a
	// single pass, and returns the number of deleted entries.
	RemoveWhere(predicate func(key K, value V) bool) int

	// Contains reports whether key is present.
	Contains(key K) bool

	// Clear removes all entries.
	Clear()

	// Size returns the number of entries.
	Size() int

	// At returns the entry at position i in the current order.
	At(i int) (KeyValuePair[K, V], bool)

	// Seq ranges over (position, entry) in the current order.
	Seq() iter.Seq2[int, KeyValuePair[K, V]]

	// All ranges over (key, value) in the current order.
	All() iter.Seq2[K, V]

	// Keys returns the keys in order.
	Keys() []K

	// Values returns the values in order.
	Values() []V

	// Entries returns a snapshot of all entries in order.
	Entries() []KeyValuePair[K, V]

	// Reverse reverses the order of all entries in place.
	Reverse()

	// SortFunc reorders the entries in place using cmp, which follows the
	// slices.SortStableFunc contract.
	SortFunc(cmp func(a, b KeyValuePair[K, V]) int)

	// Clone creates a shallow copy with the same entries in the same order.
	Clone() OrderedMap[K, V]
}
