package components

import (
	"context"
	"log/slog"
	"time"

	"campus-order-service/internal/pkg/clock"
	"campus-order-service/internal/pkg/config"
	"campus-order-service/internal/usecase"
	"campus-order-service/internal/usecase/commands"
	"campus-order-service/internal/usecase/queries"
	"campus-order-service/internal/usecase/scheduler"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
	usecaseSchedulerModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) commands.BookingOptions {
		return commands.BookingOptions{
			LockTTL:         cfg.Lock.TTL,
			SyncConcurrency: cfg.Booking.SyncConcurrency,
		}
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewOrderQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

var usecaseSchedulerModule = fx.Module("usecase/scheduler",
	fx.Provide(
		func(cmds commands.BookingCommands, cfg config.Config, logger *slog.Logger) *scheduler.CapacitySync {
			return scheduler.NewCapacitySync(cmds, cfg.Booking.SyncInterval, logger)
		},
	),
	fx.Invoke(registerCapacitySync),
)

const startupSyncTimeout = 30 * time.Second

// The startup sync is best effort: a catalog outage must not keep the API down.
func registerCapacitySync(lc fx.Lifecycle, sync *scheduler.CapacitySync, cfg config.Config, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if cfg.Booking.SyncOnStartup {
				runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), startupSyncTimeout)
				defer cancel()
				if err := sync.RunOnce(runCtx); err != nil {
					logger.Warn("startup capacity sync failed", "error", err)
				}
			}
			sync.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return sync.Stop(ctx)
		},
	})
}
