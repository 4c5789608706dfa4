// Package otel wires opt-in OTLP tracing for the API host. Engines never
// trace; spans cover the HTTP surface only.
package otel

import (
	"context"
	"os"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Setup initialises tracing for the given service and returns a shutdown
// function that flushes pending spans; the caller should defer it.
//
// Tracing is opt-in: without PROFORMA_OTEL_ENDPOINT, or with
// PROFORMA_OTEL_ENABLED=false, no global provider is registered and the
// returned shutdown is a no-op. PROFORMA_OTEL_SAMPLE (0..1, default 1)
// sets the trace sample ratio; PROFORMA_ENV tags spans with the
// deployment environment.
func Setup(ctx context.Context, serviceName string) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }

	endpoint := os.Getenv("PROFORMA_OTEL_ENDPOINT")
	if endpoint == "" || strings.EqualFold(os.Getenv("PROFORMA_OTEL_ENABLED"), "false") {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
	if err != nil {
		return noop, err
	}

	attrs := []sdktrace.TracerProviderOption{
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(hostResource(ctx, serviceName)),
		sdktrace.WithSampler(sampler()),
	}
	tp := sdktrace.NewTracerProvider(attrs...)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

func hostResource(ctx context.Context, serviceName string) *resource.Resource {
	opts := []resource.Option{
		resource.WithAttributes(semconv.ServiceName(serviceName)),
	}
	if env := os.Getenv("PROFORMA_ENV"); env != "" {
		opts = append(opts, resource.WithAttributes(semconv.DeploymentEnvironment(env)))
	}
	res, err := resource.New(ctx, opts...)
	if err != nil {
		return resource.Default()
	}
	return res
}

func sampler() sdktrace.Sampler {
	raw := os.Getenv("PROFORMA_OTEL_SAMPLE")
	if raw == "" {
		return sdktrace.AlwaysSample()
	}
	ratio, err := strconv.ParseFloat(raw, 64)
	if err != nil || ratio >= 1 {
		return sdktrace.AlwaysSample()
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
}
