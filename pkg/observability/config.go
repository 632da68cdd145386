package observability

import (
	"strings"
	"time"
)

// Config selects which signals the conversation service exports over OTLP/HTTP.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string

	TracingEnabled bool
	MetricsEnabled bool
	// OTLPEndpoint is host:port, or a URL whose https scheme turns on TLS.
	OTLPEndpoint string
	// SamplingRate applies to root spans; children follow their parent.
	SamplingRate float64
	// PIILevel decides how message content reaches logs and span attributes.
	PIILevel string

	TraceBatchTimeout time.Duration
	MetricInterval    time.Duration
}

// DefaultConfig leaves both signals off and hashes content.
func DefaultConfig(serviceName string) Config {
	return Config{
		ServiceName:       serviceName,
		ServiceVersion:    "dev",
		Environment:       "development",
		OTLPEndpoint:      "localhost:4318",
		SamplingRate:      1.0,
		PIILevel:          "hashed",
		TraceBatchTimeout: 5 * time.Second,
		MetricInterval:    15 * time.Second,
	}
}

func (c Config) exporting() bool {
	return c.TracingEnabled || c.MetricsEnabled
}

// collector splits OTLPEndpoint into the host:port the exporters dial and whether
// the connection is plaintext.
func (c Config) collector() (endpoint string, insecure bool) {
	switch {
	case strings.HasPrefix(c.OTLPEndpoint, "https://"):
		return strings.TrimSuffix(strings.TrimPrefix(c.OTLPEndpoint, "https://"), "/"), false
	case strings.HasPrefix(c.OTLPEndpoint, "http://"):
		return strings.TrimSuffix(strings.TrimPrefix(c.OTLPEndpoint, "http://"), "/"), true
	default:
		return c.OTLPEndpoint, true
	}
}
