// Package logger gives library code a context-aware *slog.Logger.
//
// Callers decorate a context with WithSubsystem, With and WithMuted; Get turns that
// context into a logger built on slog.Default(). ConfigureLoggingWithOptions sets the
// process-wide default handler.
package logger

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
)

// DefaultSubsystem is reported when neither the context nor the configuration
// names a subsystem.
const DefaultSubsystem = "amp-collection"

// subsystem holds the configured default subsystem name.
var subsystem atomic.Value //nolint:gochecknoglobals

// configMutex serializes ConfigureLoggingWithOptions, which swaps global state.
var configMutex sync.Mutex //nolint:gochecknoglobals

type contextKey string

const (
	muteKey      contextKey = "mute"
	subsystemKey contextKey = "subsystem"
	valuesKey    contextKey = "loggerValues"
)

// Options is used to configure logging.
type Options struct {
	Subsystem   string
	JSON        bool
	MinLevel    slog.Level
	LegacyLevel slog.Level
	Output      io.Writer
}

// ConfigureLoggingWithOptions installs a text or JSON handler as the slog default,
// redirects the legacy log package into it and returns the new default logger.
func ConfigureLoggingWithOptions(opts Options) *slog.Logger {
	configMutex.Lock()
	defer configMutex.Unlock()

	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	handlerOpts := &slog.HandlerOptions{Level: opts.MinLevel}

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(opts.Output, handlerOpts)
	} else {
		handler = slog.NewTextHandler(opts.Output, handlerOpts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	def := log.Default()
	*def = *slog.NewLogLogger(handler, opts.LegacyLevel)

	subsystem.Store(opts.Subsystem)

	return logger
}

// WithMuted marks the context so that Get returns a logger that drops everything.
func WithMuted(ctx context.Context, muted bool) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	return context.WithValue(ctx, muteKey, muted)
}

func isMuted(ctx context.Context) bool {
	muted, ok := ctx.Value(muteKey).(bool)

	return ok && muted
}

// WithSubsystem overrides the subsystem reported by loggers derived from ctx.
func WithSubsystem(ctx context.Context, name string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	return context.WithValue(ctx, subsystemKey, name)
}

// GetSubsystem returns the subsystem for ctx: the context override, else the
// configured default, else DefaultSubsystem.
func GetSubsystem(ctx context.Context) string { //nolint:contextcheck
	if ctx == nil {
		ctx = context.Background()
	}

	if name, ok := ctx.Value(subsystemKey).(string); ok && name != "" {
		return name
	}

	if name, ok := subsystem.Load().(string); ok && name != "" {
		return name
	}

	return DefaultSubsystem
}

// With returns a context carrying extra key-value pairs that every logger derived
// from it will include.
func With(ctx context.Context, values ...any) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	if len(values) == 0 {
		return ctx
	}

	existing := getValues(ctx)
	vals := make([]any, 0, len(existing)+len(values))
	vals = append(vals, existing...)
	vals = append(vals, values...)

	return context.WithValue(ctx, valuesKey, vals)
}

func getValues(ctx context.Context) []any {
	vals, _ := ctx.Value(valuesKey).([]any)

	return vals
}

// nullHandler discards every record. It backs the muted logger.
type nullHandler struct{}

func (n *nullHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (n *nullHandler) Handle(context.Context, slog.Record) error { return nil }
func (n *nullHandler) WithAttrs([]slog.Attr) slog.Handler        { return n }
func (n *nullHandler) WithGroup(string) slog.Handler             { return n }

var nullLogger = slog.New(&nullHandler{}) //nolint:gochecknoglobals

// Get returns a logger for the first non-nil context given (or none). The logger is
// slog.Default() decorated with the subsystem and any values added with With.
//
//nolint:contextcheck
func Get(ctx ...context.Context) *slog.Logger {
	return From(slog.Default(), ctx...)
}

// From is Get with an explicit base logger instead of slog.Default(). A nil base
// falls back to slog.Default().
//
//nolint:contextcheck
func From(base *slog.Logger, ctx ...context.Context) *slog.Logger {
	realCtx := context.Background()

	for _, c := range ctx {
		if c != nil {
			realCtx = c

			break
		}
	}

	if isMuted(realCtx) {
		return nullLogger
	}

	if base == nil {
		base = slog.Default()
	}

	logger := base.With("subsystem", GetSubsystem(realCtx))

	if vals := getValues(realCtx); len(vals) > 0 {
		logger = logger.With(vals...)
	}

	return logger
}
