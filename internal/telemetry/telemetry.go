package telemetry

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

const (
	serviceName    = "geminichat"
	ServiceVersion = "1.0.0"
)

// TelemetryConfig holds the configuration for telemetry
type TelemetryConfig struct {
	Enabled      bool
	OTLPEndpoint string // Full URL of the OTLP/HTTP traces endpoint; the exporter default is used when empty
}

// Provider manages the tracer provider for the process
type Provider struct {
	tracerProvider trace.TracerProvider
	shutdown       func(context.Context) error
	logger         *zap.Logger
}

// NewProvider creates a new telemetry provider. When telemetry is disabled the provider hands out no-op tracers.
func NewProvider(ctx context.Context, config TelemetryConfig, logger *zap.Logger) (*Provider, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if !config.Enabled {
		logger.Debug("Telemetry disabled")
		return &Provider{
			tracerProvider: noop.NewTracerProvider(),
			shutdown:       func(context.Context) error { return nil },
			logger:         logger,
		}, nil
	}

	opts := []otlptracehttp.Option{}
	if config.OTLPEndpoint != "" {
		opts = append(opts, otlptracehttp.WithEndpointURL(config.OTLPEndpoint))
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
		semconv.ServiceVersion(ServiceVersion),
	)
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	logger.Info("Telemetry enabled", zap.String("endpoint", config.OTLPEndpoint))

	return &Provider{
		tracerProvider: tp,
		shutdown:       tp.Shutdown,
		logger:         logger,
	}, nil
}

// NewProviderFromTracerProvider wraps an existing tracer provider, e.g. one backed by an in-memory span recorder
func NewProviderFromTracerProvider(tp trace.TracerProvider) *Provider {
	return &Provider{
		tracerProvider: tp,
		shutdown:       func(context.Context) error { return nil },
		logger:         zap.NewNop(),
	}
}

// Tracer returns the tracer used for conversation spans
func (p *Provider) Tracer() trace.Tracer {
	return p.tracerProvider.Tracer(serviceName, trace.WithInstrumentationVersion(ServiceVersion))
}

// Shutdown flushes pending spans and shuts down the telemetry provider
func (p *Provider) Shutdown(ctx context.Context) error {
	p.logger.Debug("Shutting down telemetry provider")
	if err := p.shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down tracer provider: %w", err)
	}
	return nil
}

// NewConversationID generates a new conversation UUID
func NewConversationID() string {
	return uuid.New().String()
}
