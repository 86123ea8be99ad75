package observability

import (
	"context"
	"errors"
	"os"

	"hinglishgen/internal/config"
	contextutils "hinglishgen/internal/utils"

	autosdk "go.opentelemetry.io/auto/sdk"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap/zapcore"
)

// SetupObservability initializes tracing, metrics, and logging for a generator run.
// A nil TracerProvider or MeterProvider means that signal is disabled.
func SetupObservability(cfg *config.OpenTelemetryConfig, serviceName string, level zapcore.Level) (trace.TracerProvider, *metric.MeterProvider, *Logger, error) {
	if serviceName != "" {
		cfg.ServiceName = serviceName
	}

	var tp trace.TracerProvider
	var mp *metric.MeterProvider

	if err := os.Setenv("OTEL_SERVICE_NAME", cfg.ServiceName); err != nil {
		return nil, nil, nil, err
	}
	if err := os.Setenv("OTEL_SERVICE_VERSION", cfg.ServiceVersion); err != nil {
		return nil, nil, nil, err
	}

	logger := NewLoggerWithLevel(cfg, level)

	if cfg.EnableTracing {
		if cfg.UseAutoSDK {
			tp = autosdk.TracerProvider()
			logger.Debug(context.Background(), "Tracing enabled with Auto SDK", map[string]interface{}{"service_name": cfg.ServiceName})
		} else {
			var err error
			tp, err = InitStandardTracing(cfg)
			if err != nil {
				return nil, nil, logger, err
			}
			logger.Debug(context.Background(), "Tracing enabled with standard SDK", map[string]interface{}{
				"service_name": cfg.ServiceName,
				"endpoint":     cfg.Endpoint,
				"protocol":     cfg.Protocol,
				"headers":      contextutils.MaskHeaders(cfg.Headers),
			})
		}
		otel.SetTracerProvider(tp)
		InitTracing(cfg)
		InitGlobalTracer()
	}

	if cfg.EnableMetrics {
		var err error
		mp, err = InitMetrics(cfg)
		if err != nil {
			_ = Shutdown(context.Background(), tp, nil)
			return nil, nil, logger, err
		}
		otel.SetMeterProvider(mp)
		logger.Debug(context.Background(), "Metrics enabled", map[string]interface{}{
			"endpoint": cfg.Endpoint,
			"headers":  contextutils.MaskHeaders(cfg.Headers),
		})
	}

	return tp, mp, logger, nil
}

// Shutdown flushes and stops whichever providers were started. Providers that
// have no Shutdown method (the Auto SDK) are skipped.
func Shutdown(ctx context.Context, tp trace.TracerProvider, mp *metric.MeterProvider) error {
	var errs []error
	if s, ok := tp.(interface{ Shutdown(context.Context) error }); ok {
		errs = append(errs, s.Shutdown(ctx))
	}
	if mp != nil {
		errs = append(errs, mp.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
