//go:build unit

package lock_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"campus-order-service/internal/infra/lock"
	"campus-order-service/internal/pkg/clock"
	"campus-order-service/internal/pkg/errs"
	"campus-order-service/internal/usecase/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("held key is rejected until released", func(t *testing.T) {
		locker := lock.NewLocalLocker(clock.NewMockClock(start))

		lease, err := locker.Acquire(ctx, "slot_lock:a", 30*time.Second)
		require.NoError(t, err)
		assert.Equal(t, "slot_lock:a", lease.Key())

		_, err = locker.Acquire(ctx, "slot_lock:a", 30*time.Second)
		assert.True(t, errs.Is(err, shared.ErrLockNotAcquired), "got %v", err)

		_, err = locker.Acquire(ctx, "slot_lock:b", 30*time.Second)
		assert.NoError(t, err, "other keys are independent")

		released, err := lease.Release(ctx)
		require.NoError(t, err)
		assert.True(t, released)

		_, err = locker.Acquire(ctx, "slot_lock:a", 30*time.Second)
		assert.NoError(t, err)
	})

	t.Run("expired lease can be taken over and the old owner cannot release it", func(t *testing.T) {
		clk := clock.NewMockClock(start)
		locker := lock.NewLocalLocker(clk)

		stale, err := locker.Acquire(ctx, "slot_lock:a", 30*time.Second)
		require.NoError(t, err)

		clk.Add(31 * time.Second)
		fresh, err := locker.Acquire(ctx, "slot_lock:a", 30*time.Second)
		require.NoError(t, err)

		released, err := stale.Release(ctx)
		require.NoError(t, err)
		assert.False(t, released)

		_, err = locker.Acquire(ctx, "slot_lock:a", 30*time.Second)
		assert.True(t, errs.Is(err, shared.ErrLockNotAcquired), "fresh lease must survive the stale release")

		released, err = fresh.Release(ctx)
		require.NoError(t, err)
		assert.True(t, released)
	})

	t.Run("release twice reports false the second time", func(t *testing.T) {
		locker := lock.NewLocalLocker(clock.NewMockClock(start))
		lease, err := locker.Acquire(ctx, "k", time.Second)
		require.NoError(t, err)

		first, _ := lease.Release(ctx)
		second, _ := lease.Release(ctx)
		assert.True(t, first)
		assert.False(t, second)
	})

	t.Run("cancelled context", func(t *testing.T) {
		locker := lock.NewLocalLocker(clock.NewMockClock(start))
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := locker.Acquire(cctx, "k", time.Second)
		require.Error(t, err)
		assert.False(t, errs.Is(err, shared.ErrLockNotAcquired))
	})

	t.Run("only one concurrent caller wins", func(t *testing.T) {
		locker := lock.NewLocalLocker(clock.NewMockClock(start))
		var wins atomic.Int32
		var wg sync.WaitGroup
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := locker.Acquire(ctx, "slot_lock:x", time.Minute); err == nil {
					wins.Add(1)
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), wins.Load())
	})
}
