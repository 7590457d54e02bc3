package collection_test

import (
	"testing"

	"github.com/amp-labs/amp-collection/collection"
	"github.com/amp-labs/amp-collection/maps"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type user struct {
	ID   string `json:"id"   yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Age  int    `json:"age"  yaml:"age"`
}

func userKey(u user) string { return u.ID }

var (
	alice = user{ID: "a", Name: "Alice", Age: 31}
	bob   = user{ID: "b", Name: "Bob", Age: 25}
	carol = user{ID: "c", Name: "Carol", Age: 47}
)

func newUsers(t *testing.T) *collection.Collection[string, user] {
	t.Helper()

	return collection.New(userKey, alice, bob, carol)
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("derives keys in order", func(t *testing.T) {
		t.Parallel()

		c := newUsers(t)
		assert.Equal(t, 3, c.Size())
		assert.Equal(t, []string{"a", "b", "c"}, c.Keys())
		assert.Equal(t, []user{alice, bob, carol}, c.Values())
	})

	t.Run("duplicate keys keep first position and last value", func(t *testing.T) {
		t.Parallel()

		older := user{ID: "a", Name: "Old Alice"}
		c := collection.New(userKey, older, bob, alice)

		assert.Equal(t, 2, c.Size())
		assert.Equal(t, []string{"a", "b"}, c.Keys())

		got, ok := c.Get("a")
		require.True(t, ok)
		assert.Equal(t, alice, got)
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		c := collection.New(userKey)
		assert.Equal(t, 0, c.Size())
		assert.Empty(t, c.ToJSON())
	})

	t.Run("nil key function panics", func(t *testing.T) {
		t.Parallel()

		assert.PanicsWithValue(t, collection.ErrNoKeyFunc, func() {
			collection.New[string, user](nil, alice)
		})
	})
}

func TestFromEntries(t *testing.T) {
	t.Parallel()

	c := collection.FromEntries(userKey,
		maps.KeyValuePair[string, user]{Key: "x", Value: alice},
		maps.KeyValuePair[string, user]{Key: "y", Value: bob},
		maps.KeyValuePair[string, user]{Key: "x", Value: carol},
	)

	// Explicit keys are used as given, not re-derived.
	assert.Equal(t, 2, c.Size())
	assert.Equal(t, []string{"x", "y"}, c.Keys())

	got, ok := c.Get("x")
	require.True(t, ok)
	assert.Equal(t, carol, got)
	assert.False(t, c.Has("a"))
}

func TestPushRemove(t *testing.T) {
	t.Parallel()

	t.Run("push appends new keys and is chainable", func(t *testing.T) {
		t.Parallel()

		c := collection.New(userKey, alice)
		c.Push(bob).Push(carol)

		assert.Equal(t, []string{"a", "b", "c"}, c.Keys())
	})

	t.Run("push overwrites in place", func(t *testing.T) {
		t.Parallel()

		c := newUsers(t)
		renamed := user{ID: "a", Name: "Alicia"}
		c.Push(renamed)

		assert.Equal(t, []string{"a", "b", "c"}, c.Keys())

		got, _ := c.Get("a")
		assert.Equal(t, "Alicia", got.Name)
	})

	t.Run("push then remove restores size", func(t *testing.T) {
		t.Parallel()

		c := newUsers(t)
		before := c.Size()
		fresh := user{ID: uuid.NewString(), Name: "Dave"}

		c.Push(fresh)
		assert.Equal(t, before+1, c.Size())
		assert.True(t, c.Has(fresh.ID))

		c.Remove(fresh)
		assert.Equal(t, before, c.Size())
		assert.False(t, c.Has(fresh.ID))
		assert.Equal(t, []string{"a", "b", "c"}, c.Keys())
	})

	t.Run("removing an absent item is a no-op", func(t *testing.T) {
		t.Parallel()

		c := newUsers(t)
		c.Remove(user{ID: "nope"})

		assert.Equal(t, 3, c.Size())
	})
}

func TestExplicitKeys(t *testing.T) {
	t.Parallel()

	c := newUsers(t)

	c.Set("z", user{ID: "ignored", Name: "Zed"})
	assert.True(t, c.Has("z"))
	assert.False(t, c.Has("ignored"))

	assert.True(t, c.Delete("z"))
	assert.False(t, c.Delete("z"))
	assert.Equal(t, 3, c.Size())
}

func TestFirstLast(t *testing.T) {
	t.Parallel()

	c := newUsers(t)

	first, ok := c.First()
	require.True(t, ok)
	assert.Equal(t, alice, first)

	last, ok := c.Last()
	require.True(t, ok)
	assert.Equal(t, carol, last)

	c.Clear()

	_, ok = c.First()
	assert.False(t, ok)

	_, ok = c.Last()
	assert.False(t, ok)
}

func TestClone(t *testing.T) {
	t.Parallel()

	c := newUsers(t).WithOptions(collection.WithName("people"))
	cl := c.Clone()

	cl.Remove(alice)
	cl.Push(user{ID: "d"})

	assert.Equal(t, []string{"a", "b", "c"}, c.Keys())
	assert.Equal(t, []string{"b", "c", "d"}, cl.Keys())
	assert.Equal(t, "people", cl.Name())
}

func TestAll(t *testing.T) {
	t.Parallel()

	c := newUsers(t)

	var keys []string

	for key := range c.All() {
		keys = append(keys, key)
		if key == "a" {
			c.Delete("b")
		}
	}

	assert.Equal(t, []string{"a", "b", "c"}, keys)
	assert.Equal(t, []string{"a", "c"}, c.Keys())
}

func TestKeyOf(t *testing.T) {
	t.Parallel()

	c := newUsers(t)
	assert.Equal(t, "b", c.KeyOf(bob))

	var zero collection.Collection[string, user]

	assert.PanicsWithValue(t, collection.ErrNoKeyFunc, func() {
		zero.Push(alice)
	})
	assert.Equal(t, 0, zero.Size())
}

func TestIntegerKeys(t *testing.T) {
	t.Parallel()

	type order struct {
		Number int64
		Total  float64
	}

	c := collection.New(func(o order) int64 { return o.Number },
		order{Number: 10, Total: 1.5},
		order{Number: 2, Total: 3},
	)

	assert.Equal(t, []int64{10, 2}, c.Keys())

	got, ok := c.Get(2)
	require.True(t, ok)
	assert.InDelta(t, 3.0, got.Total, 0)
}
