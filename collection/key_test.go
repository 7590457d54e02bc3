package collection_test

import (
	"encoding/json"
	"testing"

	"github.com/amp-labs/amp-collection/collection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type account struct {
	Handle  string `json:"handle"`
	Number  uint32 `json:"num"`
	private string //nolint:unused
}

type slug string

type inner struct {
	Seq int32
}

type wrapped struct {
	inner
}

func TestByField(t *testing.T) {
	t.Parallel()

	t.Run("default field on a struct", func(t *testing.T) {
		t.Parallel()

		keyOf, err := collection.ByField[string, user]("")
		require.NoError(t, err)
		assert.Equal(t, "b", keyOf(bob))
	})

	t.Run("go name, any case", func(t *testing.T) {
		t.Parallel()

		keyOf, err := collection.ByField[string, account]("HANDLE")
		require.NoError(t, err)
		assert.Equal(t, "joe", keyOf(account{Handle: "joe"}))
	})

	t.Run("json tag", func(t *testing.T) {
		t.Parallel()

		keyOf, err := collection.ByField[int, account]("num")
		require.NoError(t, err)
		assert.Equal(t, 42, keyOf(account{Number: 42}))
	})

	t.Run("named key type", func(t *testing.T) {
		t.Parallel()

		keyOf, err := collection.ByField[slug, account]("handle")
		require.NoError(t, err)
		assert.Equal(t, slug("amy"), keyOf(account{Handle: "amy"}))
	})

	t.Run("pointer to struct", func(t *testing.T) {
		t.Parallel()

		keyOf, err := collection.ByField[string, *user]("id")
		require.NoError(t, err)
		assert.Equal(t, "c", keyOf(&carol))
		assert.Empty(t, keyOf(nil))
	})

	t.Run("generic map", func(t *testing.T) {
		t.Parallel()

		keyOf, err := collection.ByField[int64, map[string]any]("id")
		require.NoError(t, err)

		assert.Equal(t, int64(7), keyOf(map[string]any{"id": 7}))
		assert.Equal(t, int64(8), keyOf(map[string]any{"id": float64(8)}))
		assert.Equal(t, int64(9), keyOf(map[string]any{"id": json.Number("9")}))
		assert.Equal(t, int64(0), keyOf(map[string]any{"id": 9.5}))
		assert.Equal(t, int64(0), keyOf(map[string]any{"id": "ten"}))
		assert.Equal(t, int64(0), keyOf(map[string]any{}))
		assert.Equal(t, int64(0), keyOf(nil))
	})

	t.Run("typed map", func(t *testing.T) {
		t.Parallel()

		keyOf, err := collection.ByField[string, map[string]string]("name")
		require.NoError(t, err)
		assert.Equal(t, "x", keyOf(map[string]string{"name": "x"}))

		_, err = collection.ByField[string, map[string]int]("name")
		require.ErrorIs(t, err, collection.ErrInvalidKeyField)
	})

	t.Run("invalid shapes", func(t *testing.T) {
		t.Parallel()

		_, err := collection.ByField[string, account]("missing")
		require.ErrorIs(t, err, collection.ErrInvalidKeyField)

		_, err = collection.ByField[string, account]("private")
		require.ErrorIs(t, err, collection.ErrInvalidKeyField)

		// An integer is never silently turned into a string.
		_, err = collection.ByField[string, account]("num")
		require.ErrorIs(t, err, collection.ErrInvalidKeyField)

		_, err = collection.ByField[string, int]("id")
		require.ErrorIs(t, err, collection.ErrInvalidKeyField)

		_, err = collection.ByField[string, []user]("id")
		require.ErrorIs(t, err, collection.ErrInvalidKeyField)
	})

	t.Run("integer fields must fit the key", func(t *testing.T) {
		t.Parallel()

		type reading struct {
			Small  int8
			Wide   int64
			Signed int16
			Byte   uint8
			Word   uint32
		}

		_, err := collection.ByField[int16, reading]("Small")
		require.NoError(t, err)

		_, err = collection.ByField[int32, reading]("Byte")
		require.NoError(t, err)

		_, err = collection.ByField[uint8, reading]("Byte")
		require.NoError(t, err)

		_, err = collection.ByField[int32, reading]("Wide")
		require.ErrorIs(t, err, collection.ErrInvalidKeyField)

		_, err = collection.ByField[uint8, reading]("Signed")
		require.ErrorIs(t, err, collection.ErrInvalidKeyField)

		_, err = collection.ByField[uint64, reading]("Small")
		require.ErrorIs(t, err, collection.ErrInvalidKeyField)

		_, err = collection.ByField[int32, reading]("Word")
		require.ErrorIs(t, err, collection.ErrInvalidKeyField)

		_, err = collection.ByField[uint8, map[string]int]("id")
		require.ErrorIs(t, err, collection.ErrInvalidKeyField)
	})

	t.Run("distinct fields never collide", func(t *testing.T) {
		t.Parallel()

		type item struct {
			ID int
		}

		_, err := collection.NewByField[uint8]("ID", item{ID: 300}, item{ID: 44}, item{ID: -1})
		require.ErrorIs(t, err, collection.ErrInvalidKeyField)

		c, err := collection.NewByField[int]("ID", item{ID: 300}, item{ID: 44}, item{ID: -1})
		require.NoError(t, err)
		assert.Equal(t, []int{300, 44, -1}, c.Keys())
	})

	t.Run("untyped values are range-checked", func(t *testing.T) {
		t.Parallel()

		keyOf, err := collection.ByField[uint8, map[string]any]("id")
		require.NoError(t, err)

		assert.Equal(t, uint8(200), keyOf(map[string]any{"id": 200}))
		assert.Equal(t, uint8(255), keyOf(map[string]any{"id": float64(255)}))
		assert.Equal(t, uint8(0), keyOf(map[string]any{"id": 300}))
		assert.Equal(t, uint8(0), keyOf(map[string]any{"id": -1}))
		assert.Equal(t, uint8(0), keyOf(map[string]any{"id": json.Number("256")}))
		assert.Equal(t, uint8(0), keyOf(map[string]any{"id": uint64(1 << 40)}))
		assert.Equal(t, uint8(0), keyOf(map[string]any{"id": 1e300}))

		signed, err := collection.ByField[int8, map[string]any]("id")
		require.NoError(t, err)

		assert.Equal(t, int8(-128), signed(map[string]any{"id": -128}))
		assert.Equal(t, int8(0), signed(map[string]any{"id": uint(128)}))
		assert.Equal(t, int8(127), signed(map[string]any{"id": uint(127)}))
	})

	t.Run("promoted through embedded structs", func(t *testing.T) {
		t.Parallel()

		type Base struct {
			Ref string
		}

		type byValue struct {
			Base
		}

		type byPointer struct {
			*Base
		}

		keyOf, err := collection.ByField[string, byValue]("Ref")
		require.NoError(t, err)
		assert.Equal(t, "v", keyOf(byValue{Base{Ref: "v"}}))

		viaPointer, err := collection.ByField[string, byPointer]("Ref")
		require.NoError(t, err)
		assert.Equal(t, "p", viaPointer(byPointer{&Base{Ref: "p"}}))

		assert.NotPanics(t, func() {
			assert.Empty(t, viaPointer(byPointer{}))
		})

		viaBoth, err := collection.ByField[string, *byPointer]("Ref")
		require.NoError(t, err)
		assert.Empty(t, viaBoth(&byPointer{}))
	})

	t.Run("promoted through unexported embedded structs", func(t *testing.T) {
		t.Parallel()

		keyOf, err := collection.ByField[int64, wrapped]("Seq")
		require.NoError(t, err)
		assert.Equal(t, int64(5), keyOf(wrapped{inner{Seq: 5}}))
	})

	t.Run("must", func(t *testing.T) {
		t.Parallel()

		assert.NotPanics(t, func() { collection.MustByField[string, user]("id") })
		assert.Panics(t, func() { collection.MustByField[string, user]("nope") })
	})
}

func TestNewByField(t *testing.T) {
	t.Parallel()

	c, err := collection.NewByField[string]("", alice, bob)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, c.Keys())

	records := []map[string]any{
		{"id": "r1", "v": 1},
		{"id": "r2", "v": 2},
	}

	r, err := collection.NewByField[string]("id", records...)
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r2"}, r.Keys())

	_, err = collection.NewByField[string, account]("nope")
	require.ErrorIs(t, err, collection.ErrInvalidKeyField)
}
