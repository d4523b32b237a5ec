package telemetry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"userhub/internal/config"
	"userhub/internal/logging"
)

const (
	defaultCollector = "localhost:4317"
	metricInterval   = 10 * time.Second
)

type ShutdownFunc func(ctx context.Context) error

func noopShutdown(context.Context) error { return nil }

// Setup installs global trace and meter providers exporting over OTLP/gRPC.
// With cfg.Enabled false the otel no-op globals stay in place; otelhttp on the
// server and in the API client then records nothing.
func Setup(
	ctx context.Context,
	cfg config.ObservabilityConfig,
	logger logging.Logger,
) (ShutdownFunc, error) {
	if !cfg.Enabled {
		logger.Info("otel disabled")
		return noopShutdown, nil
	}

	res, err := newResource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	endpoint := otlpEndpoint(cfg)
	dial := otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials()))

	traceExp, err := otlptracegrpc.New(ctx, otlptracegrpc.WithEndpoint(endpoint), dial)
	if err != nil {
		return nil, fmt.Errorf("create trace exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExp),
		sdktrace.WithResource(res),
	)

	metricExp, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithEndpoint(endpoint),
		otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
	)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("create metric exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExp, sdkmetric.WithInterval(metricInterval))),
	)

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)

	logger.Info("otel configured",
		"otlp_endpoint", endpoint,
		"service_name", cfg.ServiceName,
		"service_env", cfg.ServiceEnv,
	)

	return func(ctx context.Context) error {
		// flush both even if the first fails
		return errors.Join(
			shutdownProvider(ctx, "tracer", tp.Shutdown, logger),
			shutdownProvider(ctx, "meter", mp.Shutdown, logger),
		)
	}, nil
}

func newResource(ctx context.Context, cfg config.ObservabilityConfig) (*resource.Resource, error) {
	res, err := resource.New(
		ctx,
		resource.WithFromEnv(),
		resource.WithProcess(),
		resource.WithTelemetrySDK(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.ServiceName),
			attribute.String("deployment.environment", cfg.ServiceEnv),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create otel resource: %w", err)
	}
	return res, nil
}

// otlpEndpoint picks OTEL_ENDPOINT, then the standard exporter variable, then a local collector.
func otlpEndpoint(cfg config.ObservabilityConfig) string {
	if cfg.OtelEndpoint != "" {
		return cfg.OtelEndpoint
	}
	if e := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); e != "" {
		return e
	}
	return defaultCollector
}

func shutdownProvider(ctx context.Context, name string, fn func(context.Context) error, logger logging.Logger) error {
	if err := fn(ctx); err != nil {
		logger.Error("failed to shutdown "+name+" provider", "error", err)
		return fmt.Errorf("shutdown %s provider: %w", name, err)
	}
	return nil
}
