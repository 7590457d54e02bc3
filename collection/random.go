package collection

import (
	"math/rand/v2"
)

// RandomItem returns a uniformly random value without removing it. The boolean
// is false when the collection is empty.
func (c *Collection[K, V]) RandomItem() (V, bool) {
	size := c.Size()
	if size == 0 {
		var zero V

		return zero, false
	}

	entry, ok := c.entries.At(rand.IntN(size)) //nolint:gosec

	return entry.Value, ok
}

// Random returns up to count distinct values, drawn without replacement, in
// random order. It returns an empty slice for an empty collection or a
// non-positive count. The collection itself is left untouched.
func (c *Collection[K, V]) Random(count int) []V {
	values := c.Values()

	if count <= 0 || len(values) == 0 {
		return []V{}
	}

	count = min(count, len(values))

	// Partial Fisher-Yates over the scratch copy: the first count slots end up
	// holding the sample.
	for i := range count {
		j := i + rand.IntN(len(values)-i) //nolint:gosec
		values[i], values[j] = values[j], values[i]
	}

	return values[:count:count]
}
