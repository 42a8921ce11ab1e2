package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/statectx/pkg/statectx"
)

// Default tracer name.
const defaultTracerName = "statectx"

// Attribute keys set on statectx spans.
const (
	AttrContext  = attribute.Key("statectx.context")
	AttrRevision = attribute.Key("statectx.revision")
	AttrAction   = attribute.Key("statectx.action")
)

// TracingConfig configures the OpenTelemetry observer.
type TracingConfig struct {
	// TracerName is the name of the tracer (default: "statectx").
	TracerName string

	// Provider supplies the tracer. Default: the global provider.
	Provider trace.TracerProvider
}

// TracingOption configures the OpenTelemetry observer.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) TracingOption {
	return func(c *TracingConfig) {
		c.Provider = tp
	}
}

// Tracer is a statectx.Observer that records each provider event as a
// short span. It also starts spans for actions that do outbound work.
type Tracer struct {
	tracer trace.Tracer
}

var _ statectx.Observer = (*Tracer)(nil)

// Tracing creates an OpenTelemetry observer.
//
// The tracer comes from the global provider unless WithTracerProvider is
// given. Configure the global provider in main() before mounting:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
func Tracing(opts ...TracingOption) *Tracer {
	config := TracingConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	if config.Provider == nil {
		config.Provider = otel.GetTracerProvider()
	}
	return &Tracer{tracer: config.Provider.Tracer(config.TracerName)}
}

func (t *Tracer) event(span, contextName string, attrs ...attribute.KeyValue) {
	attrs = append(attrs, AttrContext.String(contextName))
	_, s := t.tracer.Start(context.Background(), span, trace.WithAttributes(attrs...))
	s.End()
}

// ProviderMounted implements statectx.Observer.
func (t *Tracer) ProviderMounted(name string) {
	t.event("statectx.mount", name)
}

// StateCommitted implements statectx.Observer.
func (t *Tracer) StateCommitted(name string, revision uint64) {
	t.event("statectx.commit", name, AttrRevision.Int64(int64(revision)))
}

// ProviderUnmounted implements statectx.Observer.
func (t *Tracer) ProviderUnmounted(name string) {
	t.event("statectx.unmount", name)
}

// WriteDropped implements statectx.Observer.
func (t *Tracer) WriteDropped(name string) {
	t.event("statectx.write_dropped", name)
}

// StartAction starts a span for an action doing work outside the render
// loop. End it with EndAction.
//
//	ctx, span := tr.StartAction(ctx, "quotes", "fetch")
//	defer func() { telemetry.EndAction(span, err) }()
func (t *Tracer) StartAction(ctx context.Context, contextName, action string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "statectx.action "+action,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(AttrContext.String(contextName), AttrAction.String(action)),
	)
}

// EndAction records err, if any, and ends span.
func EndAction(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
