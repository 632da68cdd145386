package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDisabledInstallsNothing(t *testing.T) {
	provider, err := Init(context.Background(), DefaultConfig("camus-test"))
	require.NoError(t, err)

	assert.NotNil(t, provider.Tracer)
	assert.NotNil(t, provider.Meter)
	assert.NotNil(t, provider.Sanitizer)
	assert.Nil(t, provider.TracerProvider)
	assert.Nil(t, provider.MeterProvider)
	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestCollectorEndpoint(t *testing.T) {
	tests := []struct {
		endpoint     string
		wantEndpoint string
		wantInsecure bool
	}{
		{"localhost:4318", "localhost:4318", true},
		{"http://otel-collector:4318/", "otel-collector:4318", true},
		{"https://otlp.example.com", "otlp.example.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			cfg := DefaultConfig("camus-test")
			cfg.OTLPEndpoint = tt.endpoint
			endpoint, insecure := cfg.collector()
			assert.Equal(t, tt.wantEndpoint, endpoint)
			assert.Equal(t, tt.wantInsecure, insecure)
		})
	}
}

func TestSamplerByRate(t *testing.T) {
	assert.Contains(t, sampler(1).Description(), "AlwaysOnSampler")
	assert.Contains(t, sampler(0.25).Description(), "TraceIDRatioBased{0.25}")
}

func TestInitTracingUsesSDKProvider(t *testing.T) {
	cfg := DefaultConfig("camus-test")
	cfg.TracingEnabled = true
	provider, err := Init(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = provider.Shutdown(ctx)
	})

	assert.NotNil(t, provider.TracerProvider)
	assert.Nil(t, provider.MeterProvider)
}
