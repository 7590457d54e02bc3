package future

import (
	"runtime/debug"
)

// Promise is the write-only side of an asynchronous computation.
//
// A promise settles its future once. Later calls to Success, Failure or Complete
// are ignored, and fulfillment is safe from any goroutine.
type Promise[T any] struct {
	future *Future[T]
}

// fulfill stores the result, wakes every waiter and runs the registered observers.
func (p *Promise[T]) fulfill(result Outcome[T]) {
	p.future.once.Do(func() {
		p.future.mu.Lock()

		p.future.result = result
		p.future.settled = true

		// Closing while holding the lock keeps observe() from registering an
		// observer that would never be called.
		close(p.future.resultReady)

		observers := p.future.observers
		p.future.observers = nil

		p.future.mu.Unlock()

		for _, fn := range observers {
			fn(result)
		}
	})
}

// Success fulfills the promise with a value.
func (p *Promise[T]) Success(value T) {
	p.fulfill(Outcome[T]{Value: value})
}

// Failure fulfills the promise with an error. The value is left as the zero value.
func (p *Promise[T]) Failure(err error) {
	p.fulfill(Outcome[T]{Error: err})
}

// Complete fulfills the promise from a (value, error) pair, following Go's usual
// return convention: a non-nil err wins and the value is discarded.
func (p *Promise[T]) Complete(value T, err error) {
	if err != nil {
		p.Failure(err)
	} else {
		p.Success(value)
	}
}

// recoverInto turns a panic in the producing goroutine into a failure of the
// promise. Must be deferred directly.
func (p *Promise[T]) recoverInto() {
	if r := recover(); r != nil {
		p.Failure(RecoveredError(r, debug.Stack()))
	}
}
