package bootstrap

import (
	"context"
	"log/slog"

	"campus-order-service/internal/infra/tracing"
	"campus-order-service/internal/pkg/config"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
)

var TracingModule = fx.Module("tracing",
	fx.Provide(
		NewTracerProvider,
		func(tp *tracing.Provider) trace.Tracer { return tp.Tracer("campus-order-service") },
	),
)

func NewTracerProvider(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*tracing.Provider, error) {
	tp, err := tracing.NewProvider(cfg.Tracing, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return tp.Shutdown(ctx)
		},
	})
	return tp, nil
}
