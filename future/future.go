// Package future provides a small Future/Promise implementation for running work
// concurrently and combining the outcomes.
//
// A Future is the read side of an asynchronous computation and a Promise is the write
// side. Work is started with Go, GoContext or Submit (the latter through a pluggable
// Runner such as a worker pool), and one or many futures are combined with the settle
// combinators AwaitAll, AwaitFirst and Settlements.
package future

import (
	"context"
	"sync"
)

// Outcome is the settled result of a Future: either a value or an error.
type Outcome[T any] struct {
	Value T
	Error error
}

// IsSuccess reports whether the outcome carries no error.
func (o Outcome[T]) IsSuccess() bool {
	return o.Error == nil
}

// Get returns the outcome as a (value, error) pair. The value is the zero value
// when the outcome is a failure.
func (o Outcome[T]) Get() (T, error) { //nolint:ireturn
	if o.Error != nil {
		var zero T

		return zero, o.Error
	}

	return o.Value, nil
}

// Future is the read-only side of an asynchronous computation. It settles exactly
// once; every waiter and callback observes the same outcome.
type Future[T any] struct {
	once        sync.Once
	mu          sync.Mutex
	resultReady chan struct{}
	result      Outcome[T]
	settled     bool

	// observers are invoked inline by the goroutine that fulfills the promise.
	// They must not block.
	observers []func(Outcome[T])
}

// New creates an unsettled future together with the promise that settles it.
//
// Example:
//
//	fut, promise := future.New[string]()
//	go func() {
//	    promise.Success("done")
//	}()
//	value, err := fut.Await()
func New[T any]() (*Future[T], *Promise[T]) {
	fut := &Future[T]{
		resultReady: make(chan struct{}),
	}

	return fut, &Promise[T]{future: fut}
}

// Await blocks until the future settles and returns its value and error.
func (f *Future[T]) Await() (T, error) { //nolint:ireturn
	<-f.resultReady

	return f.result.Get()
}

// AwaitContext blocks until the future settles or ctx is done, whichever comes
// first. When ctx ends first the context's error is returned and the future keeps
// running.
func (f *Future[T]) AwaitContext(ctx context.Context) (T, error) { //nolint:ireturn
	if ctx == nil {
		return f.Await()
	}

	select {
	case <-f.resultReady:
		return f.result.Get()
	case <-ctx.Done():
		var zero T

		return zero, ctx.Err()
	}
}

// Done returns a channel that is closed once the future settles.
func (f *Future[T]) Done() <-chan struct{} {
	return f.resultReady
}

// Outcome returns the settled outcome without blocking. The boolean is false while
// the future is still pending.
func (f *Future[T]) Outcome() (Outcome[T], bool) {
	select {
	case <-f.resultReady:
		return f.result, true
	default:
		return Outcome[T]{}, false
	}
}

// OnResult registers a callback invoked with the outcome once the future settles.
// If the future has already settled the callback is scheduled right away.
// Callbacks run in their own goroutine; panics are recovered and logged.
func (f *Future[T]) OnResult(callback func(Outcome[T])) {
	if callback == nil {
		return
	}

	f.observe(func(result Outcome[T]) {
		invokeCallback("OnResult", callback, result)
	})
}

// OnSuccess registers a callback invoked with the value if the future succeeds.
func (f *Future[T]) OnSuccess(callback func(T)) {
	if callback == nil {
		return
	}

	f.observe(func(result Outcome[T]) {
		if result.Error == nil {
			invokeCallback("OnSuccess", callback, result.Value)
		}
	})
}

// OnError registers a callback invoked with the error if the future fails.
func (f *Future[T]) OnError(callback func(error)) {
	if callback == nil {
		return
	}

	f.observe(func(result Outcome[T]) {
		if result.Error != nil {
			invokeCallback("OnError", callback, result.Error)
		}
	})
}

// observe runs fn inline with the outcome, either immediately (already settled) or
// from the fulfilling goroutine later.
func (f *Future[T]) observe(fn func(Outcome[T])) {
	f.mu.Lock()

	if f.settled {
		result := f.result
		f.mu.Unlock()

		fn(result)

		return
	}

	f.observers = append(f.observers, fn)
	f.mu.Unlock()
}

// Map derives a future by applying fn to the value of fut once it succeeds.
// A failure of fut is propagated untouched and fn is not called.
func Map[A, B any](fut *Future[A], fn func(A) (B, error)) *Future[B] {
	out, promise := New[B]()

	fut.observe(func(result Outcome[A]) {
		if result.Error != nil {
			promise.Failure(result.Error)

			return
		}

		go func() {
			defer promise.recoverInto()

			promise.Complete(fn(result.Value))
		}()
	})

	return out
}
