package future

import (
	"context"

	"go.uber.org/atomic"
)

// Settled is the outcome of one future together with its position in the slice of
// futures handed to a combinator.
type Settled[T any] struct {
	Outcome[T]

	Index int
}

// Settlements returns a channel that receives one Settled per future, in the order
// the futures settle, and is closed after the last one.
//
// Futures that have already settled when Settlements is called are delivered first,
// in submission order, so ties between work that finished "at the same time" are
// broken by position. The channel is buffered for every future: nobody has to keep
// reading it for the producers to finish.
func Settlements[T any](futures ...*Future[T]) <-chan Settled[T] {
	out := make(chan Settled[T], len(futures))

	if len(futures) == 0 {
		close(out)

		return out
	}

	remaining := atomic.NewInt64(int64(len(futures)))

	deliver := func(settled Settled[T]) {
		out <- settled

		if remaining.Dec() == 0 {
			close(out)
		}
	}

	pending := make([]int, 0, len(futures))

	for i, fut := range futures {
		if result, done := fut.Outcome(); done {
			deliver(Settled[T]{Outcome: result, Index: i})
		} else {
			pending = append(pending, i)
		}
	}

	for _, i := range pending {
		idx := i

		futures[idx].observe(func(result Outcome[T]) {
			deliver(Settled[T]{Outcome: result, Index: idx})
		})
	}

	return out
}

// AwaitAll waits until every future has settled and returns the outcomes in
// settlement order. Failures are returned as outcomes, never as the error: the only
// error is ctx's, when it ends first, along with whatever settled until then.
func AwaitAll[T any](ctx context.Context, futures ...*Future[T]) ([]Settled[T], error) {
	if ctx == nil {
		ctx = context.Background()
	}

	results := make([]Settled[T], 0, len(futures))
	stream := Settlements(futures...)

	for range futures {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		case settled := <-stream:
			results = append(results, settled)
		}
	}

	return results, nil
}

// AwaitFirst waits for the first future, in settlement order, whose outcome is
// accepted by accept. The remaining futures are left running and their outcomes are
// discarded. When no outcome is accepted the boolean is false. The error is ctx's
// when it ends before a decision is reached.
func AwaitFirst[T any](
	ctx context.Context,
	accept func(Settled[T]) bool,
	futures ...*Future[T],
) (Settled[T], bool, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	stream := Settlements(futures...)

	for range futures {
		select {
		case <-ctx.Done():
			return Settled[T]{}, false, ctx.Err()
		case settled := <-stream:
			if accept(settled) {
				return settled, true, nil
			}
		}
	}

	return Settled[T]{}, false, nil
}
