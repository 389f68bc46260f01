package tracing

import (
	"context"
	"log/slog"

	"campus-order-service/internal/pkg/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Provider wraps the process tracer provider together with its flush hook.
type Provider struct {
	trace.TracerProvider
	shutdown func(context.Context) error
}

// NewProvider exports to Jaeger when an endpoint is configured and falls back
// to a no-op provider otherwise. Either way the W3C propagator is installed so
// outbound calls carry the incoming trace context.
func NewProvider(cfg config.TracingConfig, logger *slog.Logger) (*Provider, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	if cfg.JaegerEndpoint == "" {
		logger.Info("tracing disabled: no jaeger endpoint configured")
		tp := noop.NewTracerProvider()
		otel.SetTracerProvider(tp)
		return &Provider{TracerProvider: tp, shutdown: func(context.Context) error { return nil }}, nil
	}

	exporter, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(cfg.JaegerEndpoint)))
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(cfg.ServiceName),
		)),
	)
	otel.SetTracerProvider(tp)

	logger.Info("tracing initialized", "service", cfg.ServiceName, "endpoint", cfg.JaegerEndpoint)
	return &Provider{TracerProvider: tp, shutdown: tp.Shutdown}, nil
}

func (p *Provider) Shutdown(ctx context.Context) error {
	return p.shutdown(ctx)
}
