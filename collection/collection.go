// Package collection provides Collection, an insertion-ordered map whose keys are
// derived from the values it stores.
//
// A collection is built with a KeyFunc (or a field name, see ByField) and then
// grows through Push, which files each value under its own key. On top of the usual
// ordered-map operations it offers find/filter/map/sweep in two flavors:
//
//   - synchronous (Find, Filter, Map, Sweep): entries are visited in order, results
//     keep the source order;
//   - asynchronous (FindAsync, FilterAsync, MapAsync, SweepAsync): one invocation
//     per entry, all started before any is awaited, combined as they settle.
//
// Failing invocations never fail an async operation: FindAsync treats them as "no
// match", the others leave the entry out. By default the results of FilterAsync and
// MapAsync are in settlement order, which depends on timing; WithSourceOrder
// restores the source order.
//
// A Collection is not safe for concurrent mutation. One owner should drive at most
// one async operation on it at a time.
package collection

import (
	"fmt"
	"iter"

	"github.com/amp-labs/amp-collection/maps"
)

// Predicate decides whether an entry matches.
type Predicate[K Key, V any] func(value V, key K, c *Collection[K, V]) bool

// Transform maps an entry to a new value.
type Transform[K Key, V, W any] func(value V, key K, c *Collection[K, V]) W

// Collection is an ordered map from keys to values where the key of a pushed value
// is computed by the collection's KeyFunc.
type Collection[K Key, V any] struct {
	keyOf   KeyFunc[K, V]
	entries maps.OrderedMap[K, V]
	opts    options
}

// New creates a collection keyed by keyOf and pushes values into it, in order.
// New panics with ErrNoKeyFunc when keyOf is nil.
//
// Example:
//
//	users := collection.New(func(u User) string { return u.ID }, alice, bob)
func New[K Key, V any](keyOf KeyFunc[K, V], values ...V) *Collection[K, V] {
	c := newEmpty[K, V](keyOf, defaultOptions(), len(values))

	return c.Push(values...)
}

// FromEntries creates a collection from explicit key/value pairs, in order. The
// keys are taken as given: they aren't checked against keyOf. Later duplicates
// overwrite the value but keep the first position. FromEntries panics with
// ErrNoKeyFunc when keyOf is nil.
func FromEntries[K Key, V any](keyOf KeyFunc[K, V], entries ...maps.KeyValuePair[K, V]) *Collection[K, V] {
	c := newEmpty[K, V](keyOf, defaultOptions(), len(entries))

	for _, entry := range entries {
		c.entries.Add(entry.Key, entry.Value)
	}

	return c
}

// NewByField creates a collection keyed by the named field of the values (see
// ByField). An empty field means DefaultKeyField.
func NewByField[K Key, V any](field string, values ...V) (*Collection[K, V], error) {
	keyOf, err := ByField[K, V](field)
	if err != nil {
		return nil, err
	}

	return New(keyOf, values...), nil
}

// Empty creates a collection with no entries that is ready for UnmarshalJSON or
// UnmarshalYAML.
func Empty[K Key, V any](keyOf KeyFunc[K, V], opts ...Option) *Collection[K, V] {
	return newEmpty[K, V](keyOf, defaultOptions(), 0).WithOptions(opts...)
}

func newEmpty[K Key, V any](keyOf KeyFunc[K, V], opts options, capacity int) *Collection[K, V] {
	if keyOf == nil {
		panic(ErrNoKeyFunc)
	}

	return &Collection[K, V]{
		keyOf:   keyOf,
		entries: maps.NewOrderedMap[K, V](capacity),
		opts:    opts,
	}
}

// derive creates an empty collection that shares the options of c, keyed by keyOf.
func derive[K Key, V, W any](c *Collection[K, V], keyOf KeyFunc[K, W], capacity int) *Collection[K, W] {
	return newEmpty[K, W](keyOf, c.opts, capacity)
}

// WithOptions applies opts to c and returns c.
func (c *Collection[K, V]) WithOptions(opts ...Option) *Collection[K, V] {
	for _, opt := range opts {
		if opt != nil {
			opt(&c.opts)
		}
	}

	return c
}

// Name returns the label set with WithName.
func (c *Collection[K, V]) Name() string {
	return c.opts.name
}

// KeyOf returns the key value would be stored under.
func (c *Collection[K, V]) KeyOf(value V) K {
	return c.mustKeyOf()(value)
}

func (c *Collection[K, V]) mustKeyOf() KeyFunc[K, V] {
	if c.keyOf == nil {
		panic(ErrNoKeyFunc)
	}

	return c.keyOf
}

// storage returns the entries, creating them for a zero Collection.
func (c *Collection[K, V]) storage() maps.OrderedMap[K, V] {
	if c.entries == nil {
		c.entries = maps.NewOrderedMap[K, V](0)

		if c.opts.name == "" {
			c.opts = defaultOptions()
		}
	}

	return c.entries
}

// Push files each item under its derived key. An existing key keeps its position
// and takes the new value; a new key is appended. Returns c for chaining.
func (c *Collection[K, V]) Push(items ...V) *Collection[K, V] {
	keyOf := c.mustKeyOf()
	entries := c.storage()

	for _, item := range items {
		entries.Add(keyOf(item), item)
	}

	return c
}

// Remove deletes the key derived from each item. Absent keys are ignored.
// Returns c for chaining.
func (c *Collection[K, V]) Remove(items ...V) *Collection[K, V] {
	keyOf := c.mustKeyOf()
	entries := c.storage()

	for _, item := range items {
		entries.Remove(keyOf(item))
	}

	return c
}

// Set stores value under an explicit key, bypassing the key function.
func (c *Collection[K, V]) Set(key K, value V) *Collection[K, V] {
	c.storage().Add(key, value)

	return c
}

// Delete removes key and reports whether it was present.
func (c *Collection[K, V]) Delete(key K) bool {
	return c.storage().Remove(key)
}

// Get returns the value stored under key.
func (c *Collection[K, V]) Get(key K) (V, bool) {
	return c.storage().Get(key)
}

// Has reports whether key is present.
func (c *Collection[K, V]) Has(key K) bool {
	return c.storage().Contains(key)
}

// Size returns the number of entries.
func (c *Collection[K, V]) Size() int {
	return c.storage().Size()
}

// Clear removes every entry.
func (c *Collection[K, V]) Clear() {
	c.storage().Clear()
}

// Keys returns the keys in current order.
func (c *Collection[K, V]) Keys() []K {
	return c.storage().Keys()
}

// Values returns the values in current order.
func (c *Collection[K, V]) Values() []V {
	return c.storage().Values()
}

// Entries returns a snapshot of the entries in current order.
func (c *Collection[K, V]) Entries() []maps.KeyValuePair[K, V] {
	return c.storage().Entries()
}

// All ranges over the entries in current order. The traversal works on a
// snapshot, so the loop body may mutate c.
func (c *Collection[K, V]) All() iter.Seq2[K, V] {
	return c.storage().All()
}

// First returns the first value in current order.
func (c *Collection[K, V]) First() (V, bool) {
	entry, ok := c.storage().At(0)

	return entry.Value, ok
}

// Last returns the last value in current order.
func (c *Collection[K, V]) Last() (V, bool) {
	entry, ok := c.storage().At(c.Size() - 1)

	return entry.Value, ok
}

// Clone returns an independent copy with the same key function, options and
// entries in the same order.
func (c *Collection[K, V]) Clone() *Collection[K, V] {
	return &Collection[K, V]{
		keyOf:   c.keyOf,
		entries: c.storage().Clone(),
		opts:    c.opts,
	}
}

// ToJSON returns the values as a plain slice, in current order.
func (c *Collection[K, V]) ToJSON() []V {
	return c.Values()
}

// String renders the collection as its JSON array of values.
func (c *Collection[K, V]) String() string {
	b, err := c.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("%v", c.Values())
	}

	return string(b)
}
