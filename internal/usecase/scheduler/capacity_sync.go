package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"campus-order-service/internal/usecase/commands"
)

// CapacitySync runs BookingCommands.SyncCapacity every interval until stopped.
// Runs never overlap: a tick that arrives during a run is dropped.
type CapacitySync struct {
	commands commands.BookingCommands
	interval time.Duration
	logger   *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func NewCapacitySync(cmds commands.BookingCommands, interval time.Duration, logger *slog.Logger) *CapacitySync {
	return &CapacitySync{commands: cmds, interval: interval, logger: logger}
}

// RunOnce performs a single sync and logs the outcome.
func (s *CapacitySync) RunOnce(ctx context.Context) error {
	res, err := s.commands.SyncCapacity(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "capacity sync failed", "error", err)
		return err
	}
	s.logger.InfoContext(ctx, "capacity synced",
		"vendors", res.Vendors, "skipped_vendors", res.SkippedVendors, "slots", res.Slots)
	return nil
}

// Start launches the loop. It is a no-op when the interval is not positive.
func (s *CapacitySync) Start() {
	if s.interval <= 0 {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_ = s.RunOnce(ctx)
			}
		}
	}()
	s.logger.Info("capacity sync scheduled", "interval", s.interval)
}

// Stop cancels the loop and waits for an in-flight run, bounded by ctx.
func (s *CapacitySync) Stop(ctx context.Context) error {
	if s.cancel == nil {
		return nil
	}
	s.once.Do(s.cancel)
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
