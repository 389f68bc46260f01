package bootstrap

import (
	"log/slog"

	"campus-order-service/internal/handler/middleware"
	"campus-order-service/internal/pkg/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		middleware.NewLogger,
		NewLogger,
	),
)

// NewLogger exposes the request logger's handler so every layer writes the same format.
func NewLogger(l *middleware.Logger, cfg config.Config) *slog.Logger {
	return l.GetSlogLogger().With("lock_backend", cfg.Lock.Backend)
}
