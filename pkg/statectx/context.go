package statectx

import (
	"log/slog"

	"github.com/vango-dev/statectx/pkg/reactive"
)

// Context is the handle returned by Create. Two calls to Create never
// share state, whatever their schemas.
type Context[S, A any] struct {
	schema   Schema[S, A]
	handle   *reactive.Context[*providerState[S, A]]
	fallback *Snapshot[S, A]

	observer Observer
	logger   *slog.Logger
}

// Option configures a Context.
type Option func(*options)

type options struct {
	observer Observer
	logger   *slog.Logger
}

// WithObserver reports provider lifecycle events to o.
func WithObserver(o Observer) Option {
	return func(opts *options) {
		opts.observer = o
	}
}

// WithLogger sets the logger for debug lines. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(opts *options) {
		opts.logger = l
	}
}

// Create builds a Context for schema. The default snapshot is computed
// here, once, with a setter that ignores writes.
func Create[S, A any](schema Schema[S, A], opts ...Option) *Context[S, A] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.observer == nil {
		o.observer = NopObserver{}
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	return &Context[S, A]{
		schema: schema,
		handle: reactive.CreateContext[*providerState[S, A]](nil),
		fallback: &Snapshot[S, A]{
			State:   schema.Initial,
			Actions: schema.Actions(schema.Initial, noopSetter[S]{}),
		},
		observer: o.observer,
		logger:   o.logger.With("context", schema.Name),
	}
}

// Name returns the schema name.
func (c *Context[S, A]) Name() string {
	return c.schema.Name
}

// Default returns the snapshot published where no provider is mounted.
func (c *Context[S, A]) Default() *Snapshot[S, A] {
	return c.fallback
}

// Use returns the snapshot of the nearest enclosing provider and
// subscribes the rendering component to its commits. Without a provider,
// or outside a render, it returns Default.
func (c *Context[S, A]) Use() *Snapshot[S, A] {
	p, ok := c.handle.Lookup()
	if !ok || p == nil {
		return c.fallback
	}
	return p.snapshot.Get()
}

// Provided reports whether a provider for c encloses the current render.
func (c *Context[S, A]) Provided() bool {
	p, ok := c.handle.Lookup()
	return ok && p != nil
}
