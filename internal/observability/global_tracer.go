package observability

import (
	"context"
	"fmt"

	"hinglishgen/internal/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var globalTracer trace.Tracer

// InitGlobalTracer initializes the global tracer for the application.
func InitGlobalTracer() {
	globalTracer = otel.Tracer(config.DefaultServiceName)
}

// GetGlobalTracer returns the global tracer instance for the application.
func GetGlobalTracer() trace.Tracer {
	if globalTracer == nil {
		globalTracer = otel.Tracer(config.DefaultServiceName)
	}
	return globalTracer
}

// TraceFunction starts a new span named "<component>.<function>".
func TraceFunction(ctx context.Context, component, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	spanName := fmt.Sprintf("%s.%s", component, functionName)
	return GetGlobalTracer().Start(ctx, spanName, trace.WithAttributes(attributes...))
}

// TraceGeneratorFunction starts a new span for a sample generator function.
func TraceGeneratorFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "generator", functionName, attributes...)
}

// TraceBatchFunction starts a new span for a batch writer function.
func TraceBatchFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "batch", functionName, attributes...)
}

// FinishSpan ends span, recording the error errPtr points at.
// Use with a named error return: `defer observability.FinishSpan(span, &err)`
func FinishSpan(span trace.Span, errPtr *error) {
	if span == nil {
		return
	}
	if errPtr != nil && *errPtr != nil {
		err := *errPtr
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.Bool("error", true))
	}
	span.End()
}

// AttributeIntent returns a tracing attribute for a frame intent.
func AttributeIntent(intent string) attribute.KeyValue {
	return attribute.String("intent", intent)
}

// AttributeRealizationType returns a tracing attribute for a realization type.
func AttributeRealizationType(typ string) attribute.KeyValue {
	return attribute.String("realization.type", typ)
}

// AttributeCount returns a tracing attribute for a requested sample count.
func AttributeCount(n int) attribute.KeyValue {
	return attribute.Int("count", n)
}

// AttributeSeed returns a tracing attribute for the run seed.
func AttributeSeed(seed int64) attribute.KeyValue {
	return attribute.Int64("seed", seed)
}

// AttributeOutputPath returns a tracing attribute for the destination file.
func AttributeOutputPath(path string) attribute.KeyValue {
	return attribute.String("output.path", path)
}
