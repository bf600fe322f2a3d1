package otelx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "false")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4317")
	t.Setenv("OTEL_SAMPLING_RATIO", "0.25")

	cfg := ConfigFromEnv("mentorship-service")
	assert.False(t, cfg.Enabled)
	assert.Equal(t, "collector:4317", cfg.OTLPEndpoint)
	assert.InDelta(t, 0.25, cfg.SampleRatio, 1e-9)
	assert.Equal(t, "mentorship-service", cfg.ServiceName)
}

func TestConfigFromEnvEnablesWithEndpoint(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	cfg := ConfigFromEnv("svc")
	assert.False(t, cfg.Enabled)
	assert.Equal(t, "localhost:4317", cfg.OTLPEndpoint)

	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4317")
	assert.True(t, ConfigFromEnv("svc").Enabled)
}

func TestResourceAttributes(t *testing.T) {
	attrs := resourceAttributes(Config{ServiceName: "svc", ServiceVersion: "1.2.0", Environment: "staging"})
	got := map[string]string{}
	for _, kv := range attrs {
		got[string(kv.Key)] = kv.Value.AsString()
	}
	assert.Equal(t, "svc", got["service.name"])
	assert.Equal(t, "1.2.0", got["service.version"])
	assert.Equal(t, "staging", got["deployment.environment"])

	assert.Len(t, resourceAttributes(Config{ServiceName: "svc"}), 1)
}

func TestConfigFromEnvIgnoresOutOfRangeRatio(t *testing.T) {
	t.Setenv("OTEL_SAMPLING_RATIO", "3")
	cfg := ConfigFromEnv("svc")
	assert.InDelta(t, 1.0, cfg.SampleRatio, 1e-9)
}

func TestSetupDisabledIsNoop(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{Enabled: false, ServiceName: "svc"})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))

	// Without an active span there is nothing to inject.
	tc := CaptureTraceContext(context.Background())
	assert.True(t, tc.IsZero())
	assert.Equal(t, context.Background(), tc.Attach(context.Background()))
}

func TestTraceContextRoundTrip(t *testing.T) {
	_, err := Setup(context.Background(), Config{Enabled: false, ServiceName: "svc"})
	require.NoError(t, err)

	tc := TraceContext{Parent: "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"}
	sc := trace.SpanContextFromContext(tc.Attach(context.Background()))
	require.True(t, sc.IsValid())
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", sc.TraceID().String())
	assert.True(t, sc.IsRemote())

	assert.Equal(t, tc, CaptureTraceContext(tc.Attach(context.Background())))
}
