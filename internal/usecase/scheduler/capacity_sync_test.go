//go:build unit

package scheduler_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"campus-order-service/internal/usecase/commands"
	"campus-order-service/internal/usecase/scheduler"
	commandsmock "campus-order-service/tests/mock/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestCapacitySync_RunOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	cmds := commandsmock.NewMockBookingCommands(ctrl)

	cmds.EXPECT().SyncCapacity(gomock.Any()).Return(&commands.SyncResult{Vendors: 2, Slots: 5}, nil)
	cmds.EXPECT().SyncCapacity(gomock.Any()).Return(nil, errors.New("catalog down"))

	s := scheduler.NewCapacitySync(cmds, 0, discard)
	assert.NoError(t, s.RunOnce(context.Background()))
	assert.Error(t, s.RunOnce(context.Background()))
}

func TestCapacitySync_Loop(t *testing.T) {
	ctrl := gomock.NewController(t)
	cmds := commandsmock.NewMockBookingCommands(ctrl)

	var runs atomic.Int32
	cmds.EXPECT().SyncCapacity(gomock.Any()).DoAndReturn(func(context.Context) (*commands.SyncResult, error) {
		runs.Add(1)
		return &commands.SyncResult{}, nil
	}).MinTimes(2)

	s := scheduler.NewCapacitySync(cmds, 10*time.Millisecond, discard)
	s.Start()
	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	require.NoError(t, s.Stop(ctx), "stop is idempotent")

	stopped := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, runs.Load())
}

func TestCapacitySync_Disabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	cmds := commandsmock.NewMockBookingCommands(ctrl)

	s := scheduler.NewCapacitySync(cmds, 0, discard)
	s.Start()
	assert.NoError(t, s.Stop(context.Background()))
}
