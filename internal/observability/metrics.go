package observability

import (
	"context"

	"hinglishgen/internal/config"
	contextutils "hinglishgen/internal/utils"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Noise positions reported on the noise counter
const (
	NoisePositionPrefix = "prefix"
	NoisePositionSuffix = "suffix"
)

// InitMetrics initializes OpenTelemetry metrics
func InitMetrics(cfg *config.OpenTelemetryConfig) (*metric.MeterProvider, error) {
	ctx := context.Background()

	res, err := newResource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var exporter metric.Exporter
	switch cfg.Protocol {
	case "grpc":
		opts := []otlpmetricgrpc.Option{
			otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
			otlpmetricgrpc.WithHeaders(cfg.Headers),
		}
		if cfg.Insecure {
			opts = append(opts, otlpmetricgrpc.WithInsecure())
		}
		exp, err := otlpmetricgrpc.New(ctx, opts...)
		if err != nil {
			return nil, contextutils.WrapErrorf(contextutils.ErrInternalError, "failed to create otlp grpc metric exporter: %w", err)
		}
		exporter = exp
	case "http":
		opts := []otlpmetrichttp.Option{
			otlpmetrichttp.WithEndpoint(cfg.Endpoint),
			otlpmetrichttp.WithHeaders(cfg.Headers),
		}
		if cfg.Insecure {
			opts = append(opts, otlpmetrichttp.WithInsecure())
		}
		exp, err := otlpmetrichttp.New(ctx, opts...)
		if err != nil {
			return nil, contextutils.WrapErrorf(contextutils.ErrInternalError, "failed to create otlp http metric exporter: %w", err)
		}
		exporter = exp
	default:
		return nil, contextutils.WrapErrorf(contextutils.ErrInvalidConfig, "unsupported otel protocol: %s", cfg.Protocol)
	}

	mp := metric.NewMeterProvider(
		metric.WithReader(metric.NewPeriodicReader(exporter)),
		metric.WithResource(res),
	)
	return mp, nil
}

// GeneratorMetrics holds the counters recorded while generating samples.
// A nil *GeneratorMetrics records nothing.
type GeneratorMetrics struct {
	samples otelmetric.Int64Counter
	noise   otelmetric.Int64Counter
}

// NewGeneratorMetrics creates the generator counters on the global meter provider
func NewGeneratorMetrics() (*GeneratorMetrics, error) {
	return NewGeneratorMetricsWithMeter(otel.Meter(config.DefaultServiceName))
}

// NewGeneratorMetricsWithMeter creates the generator counters on meter
func NewGeneratorMetricsWithMeter(meter otelmetric.Meter) (*GeneratorMetrics, error) {
	samples, err := meter.Int64Counter("hinglishgen.samples.generated",
		otelmetric.WithDescription("Number of samples generated"),
		otelmetric.WithUnit("{sample}"),
	)
	if err != nil {
		return nil, contextutils.WrapErrorf(contextutils.ErrInternalError, "failed to create samples counter: %w", err)
	}
	noise, err := meter.Int64Counter("hinglishgen.noise.applied",
		otelmetric.WithDescription("Number of noise affixes applied to inputs"),
		otelmetric.WithUnit("{affix}"),
	)
	if err != nil {
		return nil, contextutils.WrapErrorf(contextutils.ErrInternalError, "failed to create noise counter: %w", err)
	}
	return &GeneratorMetrics{samples: samples, noise: noise}, nil
}

// RecordSample counts one generated sample for intent
func (m *GeneratorMetrics) RecordSample(ctx context.Context, intent string) {
	if m == nil {
		return
	}
	m.samples.Add(ctx, 1, otelmetric.WithAttributes(attribute.String("intent", intent)))
}

// RecordNoise counts one applied affix at position
func (m *GeneratorMetrics) RecordNoise(ctx context.Context, position string) {
	if m == nil {
		return
	}
	m.noise.Add(ctx, 1, otelmetric.WithAttributes(attribute.String("position", position)))
}
