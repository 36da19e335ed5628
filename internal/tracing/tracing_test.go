package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledProviderIsNoOp(t *testing.T) {
	p, err := NewProvider(Config{Enabled: false})

	require.NoError(t, err)
	assert.False(t, p.IsEnabled())

	tracer := p.GetTracer("test")
	_, span := tracer.Start(context.Background(), "noop")
	span.End()

	assert.NoError(t, p.Start(context.Background()))
	assert.NoError(t, p.Stop(context.Background()))
}

func TestEnabledWithoutEndpointFails(t *testing.T) {
	_, err := NewProvider(Config{Enabled: true})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "endpoint not configured")
}

func TestMissingCACertificateFails(t *testing.T) {
	_, err := NewProvider(Config{
		Enabled:   true,
		Endpoint:  "localhost:4317",
		TLSCAPath: "/nonexistent/ca.pem",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "CA certificate")
}
