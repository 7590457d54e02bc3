package collection

import (
	"fmt"
)

func invalidCallable(op string) error {
	return fmt.Errorf("%w: %s", ErrInvalidCallable, op)
}

// Find returns the first value, in current order, for which predicate is true.
func (c *Collection[K, V]) Find(predicate Predicate[K, V]) (V, bool, error) {
	var zero V

	if predicate == nil {
		return zero, false, invalidCallable("Find")
	}

	for key, value := range c.All() {
		if predicate(value, key, c) {
			return value, true, nil
		}
	}

	return zero, false, nil
}

// FindKey is Find returning the key of the first match.
func (c *Collection[K, V]) FindKey(predicate Predicate[K, V]) (K, bool, error) {
	var zero K

	if predicate == nil {
		return zero, false, invalidCallable("FindKey")
	}

	for key, value := range c.All() {
		if predicate(value, key, c) {
			return key, true, nil
		}
	}

	return zero, false, nil
}

// Filter returns a new collection with the entries for which predicate is true,
// in source order. A collection without a key function yields ErrNoKeyFunc, as
// the result would have none either.
func (c *Collection[K, V]) Filter(predicate Predicate[K, V]) (*Collection[K, V], error) {
	if predicate == nil {
		return nil, invalidCallable("Filter")
	}

	if c.keyOf == nil {
		return nil, fmt.Errorf("%w: Filter", ErrNoKeyFunc)
	}

	out := derive(c, c.keyOf, 0)

	for key, value := range c.All() {
		if predicate(value, key, c) {
			out.entries.Add(key, value)
		}
	}

	return out, nil
}

// Map returns a new collection with the same keys in the same order, each value
// replaced by transform's result.
func (c *Collection[K, V]) Map(transform Transform[K, V, V]) (*Collection[K, V], error) {
	if transform == nil {
		return nil, invalidCallable("Map")
	}

	return MapTo(c, c.keyOf, transform)
}

// MapTo is Map for transforms that change the value type. keyOf becomes the key
// function of the result; the keys themselves are carried over unchanged.
func MapTo[K Key, V, W any](
	c *Collection[K, V],
	keyOf KeyFunc[K, W],
	transform Transform[K, V, W],
) (*Collection[K, W], error) {
	if transform == nil {
		return nil, invalidCallable("MapTo")
	}

	if keyOf == nil {
		return nil, fmt.Errorf("%w: MapTo", ErrNoKeyFunc)
	}

	out := derive(c, keyOf, c.Size())

	for key, value := range c.All() {
		out.entries.Add(key, transform(value, key, c))
	}

	return out, nil
}

// Sweep deletes every entry for which predicate is true and returns how many were
// deleted. The predicate sees the collection as it was before the sweep.
func (c *Collection[K, V]) Sweep(predicate Predicate[K, V]) (int, error) {
	if predicate == nil {
		return 0, invalidCallable("Sweep")
	}

	before := c.Size()
	doomed := make(map[K]struct{})

	for key, value := range c.All() {
		if predicate(value, key, c) {
			doomed[key] = struct{}{}
		}
	}

	if len(doomed) > 0 {
		c.entries.RemoveWhere(func(key K, _ V) bool {
			_, ok := doomed[key]

			return ok
		})
	}

	return before - c.Size(), nil
}

// Each calls fn for every entry in current order and returns c.
func (c *Collection[K, V]) Each(fn func(value V, key K, c *Collection[K, V])) (*Collection[K, V], error) {
	if fn == nil {
		return nil, invalidCallable("Each")
	}

	for key, value := range c.All() {
		fn(value, key, c)
	}

	return c, nil
}

// Some reports whether predicate is true for at least one entry.
func (c *Collection[K, V]) Some(predicate Predicate[K, V]) (bool, error) {
	if predicate == nil {
		return false, invalidCallable("Some")
	}

	_, found, err := c.FindKey(predicate)

	return found, err
}

// Every reports whether predicate is true for all entries. It is true for an
// empty collection.
func (c *Collection[K, V]) Every(predicate Predicate[K, V]) (bool, error) {
	if predicate == nil {
		return false, invalidCallable("Every")
	}

	for key, value := range c.All() {
		if !predicate(value, key, c) {
			return false, nil
		}
	}

	return true, nil
}
