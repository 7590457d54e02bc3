package collection

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/amp-labs/amp-collection/future"
	"github.com/amp-labs/amp-collection/logger"
	"github.com/amp-labs/amp-collection/maps"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// AsyncPredicate decides whether an entry matches. A non-nil error, or a panic,
// counts as "no match".
type AsyncPredicate[K Key, V any] func(ctx context.Context, value V, key K, c *Collection[K, V]) (bool, error)

// AsyncTransform maps an entry to a new value. A non-nil error, or a panic, drops
// the entry from the result.
type AsyncTransform[K Key, V, W any] func(ctx context.Context, value V, key K, c *Collection[K, V]) (W, error)

const (
	opFindAsync   = "FindAsync"
	opFilterAsync = "FilterAsync"
	opMapAsync    = "MapAsync"
	opSweepAsync  = "SweepAsync"
)

// asyncRun is the bookkeeping of one async operation: the snapshot it started
// from, one future per snapshot entry, and its span.
type asyncRun[K Key, V, W any] struct {
	c        *Collection[K, V]
	op       string
	ctx      context.Context //nolint:containedctx
	span     trace.Span
	started  time.Time
	snapshot []maps.KeyValuePair[K, V]
	futures  []*future.Future[W]
	failures int
}

// startAsync submits fn once per entry of a snapshot of c, in order, before
// anything is awaited. Every invocation therefore sees the collection as it was
// when the operation started.
func startAsync[K Key, V, W any](
	ctx context.Context,
	c *Collection[K, V],
	op string,
	fn AsyncTransform[K, V, W],
) *asyncRun[K, V, W] {
	if ctx == nil {
		ctx = context.Background()
	}

	snapshot := c.Entries()

	ctx, span := c.opts.getTracer().Start(ctx, "collection."+op,
		trace.WithAttributes(
			attribute.String("collection.name", c.opts.name),
			attribute.Int("collection.size", len(snapshot)),
		))

	asyncOperations.WithLabelValues(c.opts.name, op).Inc()
	asyncInvocations.WithLabelValues(c.opts.name, op).Add(float64(len(snapshot)))

	run := &asyncRun[K, V, W]{
		c:        c,
		op:       op,
		ctx:      ctx,
		span:     span,
		started:  time.Now(),
		snapshot: snapshot,
		futures:  make([]*future.Future[W], len(snapshot)),
	}

	for i, entry := range snapshot {
		run.futures[i] = future.Submit(ctx, c.opts.runner, func(ctx context.Context) (W, error) {
			return fn(ctx, entry.Value, entry.Key, c)
		})
	}

	return run
}

func (r *asyncRun[K, V, W]) log() *slog.Logger {
	return logger.From(r.c.opts.logger, logger.With(r.ctx, "collection", r.c.opts.name, "operation", r.op))
}

// succeeded reports whether the invocation succeeded, recording it otherwise.
func (r *asyncRun[K, V, W]) succeeded(settled future.Settled[W]) bool {
	if settled.Error == nil {
		return true
	}

	r.failures++
	asyncInvocationFailures.WithLabelValues(r.c.opts.name, r.op).Inc()

	r.log().Debug("collection: invocation failed",
		"key", r.snapshot[settled.Index].Key,
		"error", settled.Error)

	return false
}

// ordered returns results in source order when the collection asks for it, and
// in settlement order otherwise.
func (r *asyncRun[K, V, W]) ordered(results []future.Settled[W]) []future.Settled[W] {
	if r.c.opts.sourceOrder {
		slices.SortFunc(results, func(a, b future.Settled[W]) int {
			return a.Index - b.Index
		})
	}

	return results
}

// finish ends the span and records metrics. Invocations still running are left
// alone; their failures are logged at debug level and otherwise dropped.
func (r *asyncRun[K, V, W]) finish(err error) {
	abandoned := 0

	for i, fut := range r.futures {
		if _, done := fut.Outcome(); done {
			continue
		}

		abandoned++

		key := r.snapshot[i].Key
		log := r.log()

		fut.OnError(func(err error) {
			log.Debug("collection: abandoned invocation failed", "key", key, "error", err)
		})
	}

	if abandoned > 0 {
		asyncAbandoned.WithLabelValues(r.c.opts.name, r.op).Add(float64(abandoned))
	}

	r.span.SetAttributes(
		attribute.Int("collection.failures", r.failures),
		attribute.Int("collection.abandoned", abandoned),
	)

	if err != nil {
		r.span.RecordError(err)
		r.span.SetStatus(codes.Error, err.Error())
	}

	r.span.End()

	asyncDuration.WithLabelValues(r.c.opts.name, r.op).Observe(time.Since(r.started).Seconds())
}

// FindAsync runs predicate for every entry at once and returns the value of the
// first invocation, in completion order, to succeed with true. Invocations that
// have already settled when FindAsync looks at them are considered in source
// order. The losers keep running in the background and their results are ignored.
//
// Failing invocations are treated as "no match"; if nothing matches the boolean
// is false and the error is nil. The error is only non-nil for a nil predicate
// (ErrInvalidCallable) or when ctx ends before a match is found.
func (c *Collection[K, V]) FindAsync(ctx context.Context, predicate AsyncPredicate[K, V]) (value V, found bool, err error) {
	if predicate == nil {
		return value, false, invalidCallable(opFindAsync)
	}

	run := startAsync(ctx, c, opFindAsync, AsyncTransform[K, V, bool](predicate))
	defer func() { run.finish(err) }()

	var winner future.Settled[bool]

	winner, found, err = future.AwaitFirst(run.ctx, func(settled future.Settled[bool]) bool {
		return run.succeeded(settled) && settled.Value
	}, run.futures...)
	if err != nil || !found {
		return value, false, err
	}

	return run.snapshot[winner.Index].Value, true, nil
}

// FilterAsync runs predicate for every entry at once, waits for all of them to
// settle, and returns a new collection with the entries whose invocation succeeded
// with true. Failing invocations leave their entry out.
//
// The result is in settlement order unless the collection was configured with
// WithSourceOrder. Like Filter, it yields ErrNoKeyFunc for a collection without a
// key function, before starting any invocation.
func (c *Collection[K, V]) FilterAsync(
	ctx context.Context,
	predicate AsyncPredicate[K, V],
) (out *Collection[K, V], err error) {
	if predicate == nil {
		return nil, invalidCallable(opFilterAsync)
	}

	if c.keyOf == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoKeyFunc, opFilterAsync)
	}

	run := startAsync(ctx, c, opFilterAsync, AsyncTransform[K, V, bool](predicate))
	defer func() { run.finish(err) }()

	results, err := future.AwaitAll(run.ctx, run.futures...)
	if err != nil {
		return nil, err
	}

	out = derive(c, c.keyOf, len(results))

	for _, settled := range run.ordered(results) {
		if run.succeeded(settled) && settled.Value {
			entry := run.snapshot[settled.Index]
			out.entries.Add(entry.Key, entry.Value)
		}
	}

	return out, nil
}

// MapAsync runs transform for every entry at once, waits for all of them to
// settle, and returns a new collection holding each successful result under its
// original key. Failing invocations leave their key out.
//
// The result is in settlement order unless the collection was configured with
// WithSourceOrder.
func (c *Collection[K, V]) MapAsync(ctx context.Context, transform AsyncTransform[K, V, V]) (*Collection[K, V], error) {
	if transform == nil {
		return nil, invalidCallable(opMapAsync)
	}

	return MapToAsync(ctx, c, c.keyOf, transform)
}

// MapToAsync is MapAsync for transforms that change the value type. keyOf becomes
// the key function of the result.
func MapToAsync[K Key, V, W any](
	ctx context.Context,
	c *Collection[K, V],
	keyOf KeyFunc[K, W],
	transform AsyncTransform[K, V, W],
) (out *Collection[K, W], err error) {
	if transform == nil {
		return nil, invalidCallable(opMapAsync)
	}

	if keyOf == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoKeyFunc, opMapAsync)
	}

	run := startAsync(ctx, c, opMapAsync, transform)
	defer func() { run.finish(err) }()

	results, err := future.AwaitAll(run.ctx, run.futures...)
	if err != nil {
		return nil, err
	}

	out = derive(c, keyOf, len(results))

	for _, settled := range run.ordered(results) {
		if run.succeeded(settled) {
			out.entries.Add(run.snapshot[settled.Index].Key, settled.Value)
		}
	}

	return out, nil
}

// SweepAsync runs predicate for every entry at once, waits for all of them to
// settle, then deletes from c, in one pass, every entry whose invocation
// succeeded with true. It returns how many entries were deleted. Because the
// deletions happen after the last invocation settled, every invocation sees the
// collection unmodified.
func (c *Collection[K, V]) SweepAsync(ctx context.Context, predicate AsyncPredicate[K, V]) (removed int, err error) {
	if predicate == nil {
		return 0, invalidCallable(opSweepAsync)
	}

	run := startAsync(ctx, c, opSweepAsync, AsyncTransform[K, V, bool](predicate))
	defer func() { run.finish(err) }()

	results, err := future.AwaitAll(run.ctx, run.futures...)
	if err != nil {
		return 0, err
	}

	before := c.Size()
	doomed := make(map[K]struct{})

	for _, settled := range results {
		if run.succeeded(settled) && settled.Value {
			doomed[run.snapshot[settled.Index].Key] = struct{}{}
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
