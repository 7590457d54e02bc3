package future

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotSubmitted is wrapped around the error of a Runner that refused a task.
var ErrNotSubmitted = errors.New("task not submitted")

// Runner starts tasks. A pond.Pool satisfies it, which lets callers bound the
// number of tasks running at once.
type Runner interface {
	Go(task func()) error
}

// RunnerFunc adapts a plain function to the Runner interface.
type RunnerFunc func(task func()) error

// Go calls f(task).
func (f RunnerFunc) Go(task func()) error {
	return f(task)
}

// Goroutines is the default Runner: one new goroutine per task, no limit.
var Goroutines Runner = RunnerFunc(func(task func()) error { //nolint:gochecknoglobals
	go task()

	return nil
})

// Go runs fn in a new goroutine and returns a future for its result.
// Panics inside fn are recovered and settle the future with an error
// wrapping ErrPanicRecovered.
func Go[T any](fn func() (T, error)) *Future[T] {
	return Submit(context.Background(), Goroutines, func(context.Context) (T, error) {
		return fn()
	})
}

// GoContext is Go with a context handed to fn. The context is not watched by the
// future itself; fn decides whether to honor cancellation.
func GoContext[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Future[T] {
	return Submit(ctx, Goroutines, fn)
}

// Submit starts fn through runner and returns a future for its result. A nil
// runner means Goroutines. If the runner refuses the task, the future fails with
// an error wrapping ErrNotSubmitted.
func Submit[T any](ctx context.Context, runner Runner, fn func(ctx context.Context) (T, error)) *Future[T] {
	if ctx == nil {
		ctx = context.Background()
	}

	if runner == nil {
		runner = Goroutines
	}

	fut, promise := New[T]()

	err := runner.Go(func() {
		defer promise.recoverInto()

		promise.Complete(fn(ctx))
	})
	if err != nil {
		promise.Failure(fmt.Errorf("%w: %w", ErrNotSubmitted, err))
	}

	return fut
}
