package collection

import (
	"fmt"

	"facette.io/natsort"
	"github.com/amp-labs/amp-collection/maps"
)

// Reverse reverses the order of the entries in place and returns c. Every later
// traversal, sync or async, sees the new order.
func (c *Collection[K, V]) Reverse() *Collection[K, V] {
	c.storage().Reverse()

	return c
}

// Sort reorders the entries in place with cmp (slices.SortStableFunc contract)
// and returns c.
func (c *Collection[K, V]) Sort(cmp func(a, b maps.KeyValuePair[K, V]) int) (*Collection[K, V], error) {
	if cmp == nil {
		return nil, invalidCallable("Sort")
	}

	c.storage().SortFunc(cmp)

	return c, nil
}

// SortNatural reorders the entries in place by the natural order of their keys'
// string form ("item2" before "item10") and returns c.
func (c *Collection[K, V]) SortNatural() *Collection[K, V] {
	keys := c.Keys()
	names := make([]string, len(keys))
	byName := make(map[string]K, len(keys))

	for i, key := range keys {
		names[i] = fmt.Sprint(key)
		byName[names[i]] = key
	}

	natsort.Sort(names)

	rank := make(map[K]int, len(names))
	for i, name := range names {
		rank[byName[name]] = i
	}

	c.entries.SortFunc(func(a, b maps.KeyValuePair[K, V]) int {
		return rank[a.Key] - rank[b.Key]
	})

	return c
}
