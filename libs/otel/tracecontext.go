package otelx

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// TraceContext is a detached copy of the W3C headers of a span, for work that
// outlives the request that started it.
type TraceContext struct {
	Parent string
	State  string
}

// CaptureTraceContext serialises the span in ctx with the global propagator.
func CaptureTraceContext(ctx context.Context) TraceContext {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	return TraceContext{Parent: carrier["traceparent"], State: carrier["tracestate"]}
}

func (tc TraceContext) IsZero() bool {
	return tc.Parent == "" && tc.State == ""
}

// Attach returns ctx carrying the captured span as its remote parent.
func (tc TraceContext) Attach(ctx context.Context) context.Context {
	if tc.IsZero() {
		return ctx
	}
	carrier := propagation.MapCarrier{"traceparent": tc.Parent}
	if tc.State != "" {
		carrier["tracestate"] = tc.State
	}
	return otel.GetTextMapPropagator().Extract(ctx, carrier)
}

// Tracer returns a named tracer from the global provider.
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}
