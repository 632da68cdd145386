package observability

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/janhq/camus/pkg/telemetry"
)

// Provider is what the service reads its tracer, meter and content sanitizer from.
// With export off, Tracer and Meter are the global no-ops and the SDK providers are nil.
type Provider struct {
	Tracer         trace.Tracer
	Meter          metric.Meter
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Sanitizer      *telemetry.Sanitizer

	stops []func(context.Context) error
}

// Init builds the provider and, for each enabled signal, registers its SDK provider
// as the process global.
func Init(ctx context.Context, cfg Config) (*Provider, error) {
	p := &Provider{
		Tracer:    otel.Tracer(cfg.ServiceName),
		Meter:     otel.Meter(cfg.ServiceName),
		Sanitizer: telemetry.NewSanitizer(telemetry.ParsePIILevel(cfg.PIILevel), cfg.ServiceName),
	}
	if !cfg.exporting() {
		return p, nil
	}

	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironment(cfg.Environment),
	))
	if err != nil {
		return nil, fmt.Errorf("otel resource: %w", err)
	}

	if cfg.TracingEnabled {
		if err := p.exportTraces(ctx, cfg, res); err != nil {
			return nil, err
		}
	}
	if cfg.MetricsEnabled {
		if err := p.exportMetrics(ctx, cfg, res); err != nil {
			_ = p.Shutdown(ctx)
			return nil, err
		}
	}
	return p, nil
}

// Shutdown flushes pending spans and metrics. Every provider is stopped even when
// an earlier one fails.
func (p *Provider) Shutdown(ctx context.Context) error {
	var errs []error
	for _, stop := range p.stops {
		errs = append(errs, stop(ctx))
	}
	return errors.Join(errs...)
}

func (p *Provider) exportTraces(ctx context.Context, cfg Config, res *resource.Resource) error {
	endpoint, insecure := cfg.collector()
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(endpoint)}
	if insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return fmt.Errorf("otlp trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(cfg.TraceBatchTimeout)),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler(cfg.SamplingRate)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	p.TracerProvider = tp
	p.Tracer = tp.Tracer(cfg.ServiceName)
	p.stops = append(p.stops, tp.Shutdown)
	return nil
}

func (p *Provider) exportMetrics(ctx context.Context, cfg Config, res *resource.Resource) error {
	endpoint, insecure := cfg.collector()
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	if insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return fmt.Errorf("otlp metric exporter: %w", err)
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(cfg.MetricInterval))
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader), sdkmetric.WithResource(res))
	otel.SetMeterProvider(mp)

	p.MeterProvider = mp
	p.Meter = mp.Meter(cfg.ServiceName)
	p.stops = append(p.stops, mp.Shutdown)
	return nil
}

// sampler keeps every root span at rate 1 and a trace-id ratio below it.
func sampler(rate float64) sdktrace.Sampler {
	if rate >= 1 {
		return sdktrace.ParentBased(sdktrace.AlwaysSample())
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(rate))
}
