package bootstrap

import (
	"context"
	"log/slog"

	"campus-order-service/internal/infra/lock"
	"campus-order-service/internal/pkg/clock"
	"campus-order-service/internal/pkg/config"
	"campus-order-service/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var LockModule = fx.Module("lock",
	fx.Provide(
		NewSlotLocker,
	),
)

// NewSlotLocker only dials Redis when it is the configured backend.
func NewSlotLocker(lc fx.Lifecycle, cfg config.Config, clk clock.Clock, logger *slog.Logger) shared.SlotLocker {
	if cfg.Lock.Backend == config.LockBackendMemory {
		logger.Warn("using in-process slot locks; do not run more than one replica")
		return lock.NewLocalLocker(clk)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				// Bookings fail with 503 until Redis is reachable; reads keep working.
				logger.Error("redis ping failed", "addr", cfg.Redis.Addr, "error", err)
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return lock.NewRedisLocker(client)
}
