package future

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func delayed[T any](d time.Duration, value T, err error) *Future[T] {
	return Go(func() (T, error) {
		time.Sleep(d)

		return value, err
	})
}

func settledFuture[T any](value T, err error) *Future[T] {
	fut, promise := New[T]()
	promise.Complete(value, err)

	return fut
}

func TestSettlements(t *testing.T) {
	t.Parallel()

	t.Run("empty input closes immediately", func(t *testing.T) {
		t.Parallel()

		_, open := <-Settlements[int]()
		assert.False(t, open)
	})

	t.Run("already settled futures come in submission order", func(t *testing.T) {
		t.Parallel()

		futs := []*Future[int]{
			settledFuture(10, nil),
			settledFuture(0, errTest),
			settledFuture(30, nil),
		}

		var indexes []int
		for settled := range Settlements(futs...) {
			indexes = append(indexes, settled.Index)
		}

		assert.Equal(t, []int{0, 1, 2}, indexes)
	})

	t.Run("pending futures come in completion order", func(t *testing.T) {
		t.Parallel()

		futs := []*Future[string]{
			delayed(60*time.Millisecond, "slow", nil),
			delayed(1*time.Millisecond, "fast", nil),
		}

		var values []string
		for settled := range Settlements(futs...) {
			values = append(values, settled.Value)
		}

		assert.Equal(t, []string{"fast", "slow"}, values)
	})
}

func TestAwaitAll(t *testing.T) {
	t.Parallel()

	t.Run("collects successes and failures", func(t *testing.T) {
		t.Parallel()

		results, err := AwaitAll(t.Context(),
			delayed(5*time.Millisecond, 1, nil),
			delayed(1*time.Millisecond, 0, errTest),
			Go(func() (int, error) { panic("boom") }),
		)

		require.NoError(t, err)
		require.Len(t, results, 3)

		failures := 0

		for _, r := range results {
			if !r.IsSuccess() {
				failures++
			}
		}

		assert.Equal(t, 2, failures)
	})

	t.Run("context ends first", func(t *testing.T) {
		t.Parallel()

		pending, promise := New[int]()
		defer promise.Success(0)

		ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
		defer cancel()

		results, err := AwaitAll(ctx, settledFuture(1, nil), pending)

		require.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Len(t, results, 1)
	})
}

func TestAwaitFirst(t *testing.T) {
	t.Parallel()

	truthy := func(s Settled[bool]) bool { return s.IsSuccess() && s.Value }

	t.Run("first accepted in completion order wins", func(t *testing.T) {
		t.Parallel()

		settled, found, err := AwaitFirst(t.Context(), truthy,
			delayed(80*time.Millisecond, true, nil),
			delayed(1*time.Millisecond, false, nil),
			delayed(10*time.Millisecond, true, nil),
		)

		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, 2, settled.Index)
	})

	t.Run("failures never win", func(t *testing.T) {
		t.Parallel()

		_, found, err := AwaitFirst(t.Context(), truthy,
			delayed(1*time.Millisecond, true, errTest),
			delayed(2*time.Millisecond, false, nil),
		)

		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("ties break by submission order", func(t *testing.T) {
		t.Parallel()

		settled, found, err := AwaitFirst(t.Context(), truthy,
			settledFuture(false, nil),
			settledFuture(true, nil),
			settledFuture(true, nil),
		)

		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, 1, settled.Index)
	})

	t.Run("no futures", func(t *testing.T) {
		t.Parallel()

		_, found, err := AwaitFirst(t.Context(), truthy)

		require.NoError(t, err)
		assert.False(t, found)
	})
}
