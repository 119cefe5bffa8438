package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Init installs a tracer provider for the service and wires the package
// tracer. The returned shutdown func flushes pending spans.
func Init(serviceName string) (func(ctx context.Context) error, error) {
	res := sdkresource.NewSchemaless(
		attribute.String("service.name", serviceName),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	SetTracer(tp.Tracer(serviceName))

	return tp.Shutdown, nil
}
