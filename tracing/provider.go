// Package tracing exports OpenTelemetry spans over OTLP gRPC and
// instruments the HTTP server and judge calls.
package tracing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

type TracerProvider struct {
	provider *sdktrace.TracerProvider
	conn     *grpc.ClientConn
}

// NewTracerProvider exports spans to an OTLP collector at endpoint and
// installs itself as the global provider.
func NewTracerProvider(serviceName string, endpoint string, timeout time.Duration) (*TracerProvider, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	conn, err := grpc.NewClient(endpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection to collector: %w", err)
	}

	exporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(serviceName)),
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(Propagator())

	return &TracerProvider{provider: provider, conn: conn}, nil
}

func (tp *TracerProvider) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := tp.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown provider: %w", err)
	}
	return tp.conn.Close()
}

// InitTracing starts exporting when endpoint is set. Without an endpoint
// spans stay no-ops but trace context is still propagated.
func InitTracing(serviceName string, endpoint string) (*TracerProvider, error) {
	otel.SetTextMapPropagator(Propagator())
	if endpoint == "" {
		slog.Info("tracing disabled, no collector endpoint", "service", serviceName)
		return nil, nil
	}

	tp, err := NewTracerProvider(serviceName, endpoint, 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracer provider: %w", err)
	}
	slog.Info("tracing initialized", "service", serviceName, "endpoint", endpoint)
	return tp, nil
}

func Propagator() propagation.TextMapPropagator {
	return propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	)
}
