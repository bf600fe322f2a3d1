package otelx

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

type Config struct {
	Enabled        bool
	ServiceName    string
	ServiceVersion string
	Environment    string
	OTLPEndpoint   string // host:port of an OTLP/gRPC collector
	SampleRatio    float64
}

// ConfigFromEnv reads OTEL_* settings. Export is on only when OTEL_ENABLED is truthy
// or an endpoint is given, so local runs do not dial a missing collector.
func ConfigFromEnv(serviceName string) Config {
	endpoint := strings.TrimSpace(getenv("OTEL_EXPORTER_OTLP_ENDPOINT", ""))

	enabled := endpoint != ""
	if v, err := strconv.ParseBool(strings.TrimSpace(getenv("OTEL_ENABLED", ""))); err == nil {
		enabled = v
	}
	if endpoint == "" {
		endpoint = "localhost:4317"
	}

	sampleRatio := 1.0
	if f, err := strconv.ParseFloat(strings.TrimSpace(getenv("OTEL_SAMPLING_RATIO", "1")), 64); err == nil && f >= 0 && f <= 1 {
		sampleRatio = f
	}

	return Config{
		Enabled:        enabled,
		ServiceName:    serviceName,
		ServiceVersion: strings.TrimSpace(getenv("OTEL_SERVICE_VERSION", "")),
		Environment:    strings.TrimSpace(getenv("DEPLOYMENT_ENVIRONMENT", "")),
		OTLPEndpoint:   endpoint,
		SampleRatio:    sampleRatio,
	}
}

// Setup installs the W3C propagators and, when enabled, a batching OTLP tracer provider.
// The returned func flushes and stops the provider.
func Setup(ctx context.Context, cfg Config) (func(context.Context) error, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	exp, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint),
		otlptracegrpc.WithInsecure(),
		otlptracegrpc.WithTimeout(3*time.Second),
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx, resource.WithAttributes(resourceAttributes(cfg)...))
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

func resourceAttributes(cfg Config) []attribute.KeyValue {
	attrs := []attribute.KeyValue{semconv.ServiceName(cfg.ServiceName)}
	if cfg.ServiceVersion != "" {
		attrs = append(attrs, semconv.ServiceVersion(cfg.ServiceVersion))
	}
	if cfg.Environment != "" {
		attrs = append(attrs, semconv.DeploymentEnvironment(cfg.Environment))
	}
	return attrs
}

func getenv(key, fallback string) string {
	if v, ok := lookupEnv(key); ok {
		return v
	}
	return fallback
}
