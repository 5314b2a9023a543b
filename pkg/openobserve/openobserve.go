package openobserve

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

type OpenObserveConfig struct {
	Endpoint    string
	Credential  string
	ServiceName string
	Env         string
}

var tracerProvider *sdktrace.TracerProvider

// Init wires the global tracer provider to an OTLP/HTTP collector.
// With no endpoint configured it is a no-op and the default provider
// stays in place.
func Init(cfg OpenObserveConfig) func(context.Context) error {
	if cfg.Endpoint == "" {
		return func(context.Context) error { return nil }
	}

	exporter, err := otlptracehttp.New(context.Background(),
		otlptracehttp.WithEndpoint(cfg.Endpoint),
		otlptracehttp.WithHeaders(map[string]string{
			"Authorization": fmt.Sprintf("Basic %s", cfg.Credential),
		}),
	)
	if err != nil {
		log.Error().Err(err).Msg("[OpenObserve] [Init] failed to create trace exporter")
		return func(context.Context) error { return nil }
	}

	resource, err := sdkresource.Merge(sdkresource.Default(), sdkresource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		attribute.String("deployment.environment", cfg.Env),
	))
	if err != nil {
		log.Error().Err(err).Msg("[OpenObserve] [Init] failed to build resource")
		return func(context.Context) error { return nil }
	}

	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource),
	)
	otel.SetTracerProvider(tracerProvider)

	log.Info().Str("endpoint", cfg.Endpoint).Msg("[OpenObserve] [Init] tracing enabled")
	return tracerProvider.Shutdown
}

// Tracer returns the named tracer from whichever provider Init left in
// place.
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}
