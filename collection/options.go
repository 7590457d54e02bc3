package collection

import (
	"log/slog"

	"github.com/alitto/pond/v2"
	"github.com/amp-labs/amp-collection/future"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultName = "collection"

	instrumentationName = "github.com/amp-labs/amp-collection/collection"
)

// Option configures a collection. Derived collections (Filter, Map, Clone and
// their async variants) inherit the options of their source.
type Option func(*options)

type options struct {
	name        string
	logger      *slog.Logger
	runner      future.Runner
	tracer      trace.Tracer
	sourceOrder bool
}

func defaultOptions() options {
	return options{
		name:   defaultName,
		runner: future.Goroutines,
	}
}

// WithName labels the collection in logs, metrics and spans.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithLogger sets the base logger. By default slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRunner sets how async invocations are started. A nil runner restores the
// default of one goroutine per invocation.
func WithRunner(runner future.Runner) Option {
	return func(o *options) {
		if runner == nil {
			runner = future.Goroutines
		}

		o.runner = runner
	}
}

// WithPool runs async invocations on a pond worker pool, bounding how many run at
// once. Every invocation is still submitted before any is awaited. The pool is
// owned by the caller; invocations refused by a stopped pool count as failures.
func WithPool(pool pond.Pool) Option {
	return func(o *options) {
		if pool == nil {
			o.runner = future.Goroutines

			return
		}

		o.runner = pool
	}
}

// WithTracer sets the tracer used for async operation spans. By default the
// global OpenTelemetry tracer provider is used.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) {
		o.tracer = tracer
	}
}

// WithSourceOrder makes FilterAsync and MapAsync emit their results in the
// source collection's order instead of the order in which invocations settled.
func WithSourceOrder(enabled bool) Option {
	return func(o *options) {
		o.sourceOrder = enabled
	}
}

func (o *options) getTracer() trace.Tracer { //nolint:ireturn
	if o.tracer != nil {
		return o.tracer
	}

	return otel.Tracer(instrumentationName)
}
