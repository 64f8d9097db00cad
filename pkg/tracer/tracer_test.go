package tracer

import (
	"context"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestInitDisabledIsNoop(t *testing.T) {
	shutdown, err := Init(context.Background(), Config{Enabled: false})
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	ctx, span := Start(context.Background(), "noop")
	span.End()
	if TraceID(ctx) != "" {
		t.Fatalf("no-op provider should not produce trace ids")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestStartUsesInstalledTracer(t *testing.T) {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSampler(sdktrace.AlwaysSample()))
	defer tp.Shutdown(context.Background())
	setTracer(tp.Tracer("test"))
	defer setTracer(nil)

	ctx, span := Start(context.Background(), "sampled")
	defer span.End()
	if TraceID(ctx) == "" {
		t.Fatalf("expected a trace id from the sdk tracer")
	}
}

func TestSampler(t *testing.T) {
	if got := sampler(1).Description(); got != sdktrace.AlwaysSample().Description() {
		t.Fatalf("rate 1 => %s", got)
	}
	if got := sampler(0).Description(); got != sdktrace.NeverSample().Description() {
		t.Fatalf("rate 0 => %s", got)
	}
}
