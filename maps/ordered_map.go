package maps

import (
	"iter"
	"slices"
)

// NewOrderedMap creates an empty OrderedMap. The capacity hint pre-sizes the
// internal storage; pass 0 when the final size is unknown.
//
// Example:
//
//	m := maps.NewOrderedMap[string, int](0)
//	m.Add("first", 1)
//	m.Add("second", 2)
//	// Iteration will always be in order: first, second
func NewOrderedMap[K comparable, V any](capacity int) OrderedMap[K, V] {
	if capacity < 0 {
		capacity = 0
	}

	return &orderedMap[K, V]{
		entries:  make([]KeyValuePair[K, V], 0, capacity),
		position: make(map[K]int, capacity),
	}
}

// FromEntries builds an OrderedMap from the given entries, in order. Duplicate keys
// keep the position of their first occurrence and the value of their last.
func FromEntries[K comparable, V any](entries ...KeyValuePair[K, V]) OrderedMap[K, V] {
	m := NewOrderedMap[K, V](len(entries))

	for _, entry := range entries {
		m.Add(entry.Key, entry.Value)
	}

	return m
}

// orderedMap keeps the entries in a slice (the order) and an index from key to its
// slice position. Every mutation that shifts positions rebuilds the affected part of
// the index.
type orderedMap[K comparable, V any] struct {
	entries  []KeyValuePair[K, V]
	position map[K]int
}

var _ OrderedMap[string, int] = (*orderedMap[string, int])(nil)

func (o *orderedMap[K, V]) Add(key K, value V) {
	if pos, ok := o.position[key]; ok {
		o.entries[pos].Value = value

		return
	}

	o.position[key] = len(o.entries)
	o.entries = append(o.entries, KeyValuePair[K, V]{Key: key, Value: value})
}

func (o *orderedMap[K, V]) Get(key K) (V, bool) {
	pos, ok := o.position[key]
	if !ok {
		var zero V

		return zero, false
	}

	return o.entries[pos].Value, true
}

func (o *orderedMap[K, V]) Remove(key K) bool {
	pos, ok := o.position[key]
	if !ok {
		return false
	}

	delete(o.position, key)

	// Clear the tail slot so the removed value can be collected.
	o.entries = slices.Delete(o.entries, pos, pos+1)
	o.reindex(pos)

	return true
}

func (o *orderedMap[K, V]) RemoveWhere(predicate func(key K, value V) bool) int {
	before := len(o.entries)

	o.entries = slices.DeleteFunc(o.entries, func(entry KeyValuePair[K, V]) bool {
		if predicate(entry.Key, entry.Value) {
			delete(o.position, entry.Key)

			return true
		}

		return false
	})

	removed := before - len(o.entries)
	if removed > 0 {
		o.reindex(0)
	}

	return removed
}

func (o *orderedMap[K, V]) Contains(key K) bool {
	_, ok := o.position[key]

	return ok
}

func (o *orderedMap[K, V]) Clear() {
	o.entries = nil
	o.position = make(map[K]int)
}

func (o *orderedMap[K, V]) Size() int {
	return len(o.entries)
}

func (o *orderedMap[K, V]) At(i int) (KeyValuePair[K, V], bool) {
	if i < 0 || i >= len(o.entries) {
		return KeyValuePair[K, V]{}, false
	}

	return o.entries[i], true
}

// Seq iterates over a snapshot of the order taken when iteration starts, so the
// callback may mutate the map without disturbing the traversal.
func (o *orderedMap[K, V]) Seq() iter.Seq2[int, KeyValuePair[K, V]] {
	return func(yield func(int, KeyValuePair[K, V]) bool) {
		for i, entry := range o.Entries() {
			if !yield(i, entry) {
				return
			}
		}
	}
}

func (o *orderedMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, entry := range o.Entries() {
			if !yield(entry.Key, entry.Value) {
				return
			}
		}
	}
}

func (o *orderedMap[K, V]) Keys() []K {
	keys := make([]K, len(o.entries))

	for i, entry := range o.entries {
		keys[i] = entry.Key
	}

	return keys
}

func (o *orderedMap[K, V]) Values() []V {
	values := make([]V, len(o.entries))

	for i, entry := range o.entries {
		values[i] = entry.Value
	}

	return values
}

func (o *orderedMap[K, V]) Entries() []KeyValuePair[K, V] {
	return slices.Clone(o.entries)
}

func (o *orderedMap[K, V]) Reverse() {
	slices.Reverse(o.entries)
	o.reindex(0)
}

func (o *orderedMap[K, V]) SortFunc(cmp func(a, b KeyValuePair[K, V]) int) {
	slices.SortStableFunc(o.entries, cmp)
	o.reindex(0)
}

func (o *orderedMap[K, V]) Clone() OrderedMap[K, V] {
	out := &orderedMap[K, V]{
		entries:  slices.Clone(o.entries),
		position: make(map[K]int, len(o.entries)),
	}

	out.reindex(0)

	return out
}

// reindex refreshes the positions of every entry from index start onwards.
func (o *orderedMap[K, V]) reindex(start int) {
	for i := start; i < len(o.entries); i++ {
		o.position[o.entries[i].Key] = i
	}
}
