//go:build e2e

package lock_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"campus-order-service/internal/infra/lock"
	"campus-order-service/internal/pkg/errs"
	"campus-order-service/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type RedisLockerSuite struct {
	suite.Suite
	container testcontainers.Container
	client    *redis.Client
	locker    *lock.RedisLocker
}

func TestRedisLockerSuite(t *testing.T) {
	suite.Run(t, new(RedisLockerSuite))
}

func (s *RedisLockerSuite) SetupSuite() {
	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	s.Require().NoError(err)
	s.container = container

	endpoint, err := container.Endpoint(ctx, "")
	s.Require().NoError(err)
	s.client = redis.NewClient(&redis.Options{Addr: endpoint})
	s.Require().NoError(s.client.Ping(ctx).Err())
	s.locker = lock.NewRedisLocker(s.client)
}

func (s *RedisLockerSuite) TearDownSuite() {
	if s.client != nil {
		_ = s.client.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
}

func (s *RedisLockerSuite) SetupTest() {
	s.Require().NoError(s.client.FlushDB(context.Background()).Err())
}

func (s *RedisLockerSuite) TestAcquireAndRelease() {
	ctx := context.Background()

	lease, err := s.locker.Acquire(ctx, "slot_lock:a", 30*time.Second)
	s.Require().NoError(err)

	ttl, err := s.client.PTTL(ctx, "slot_lock:a").Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))

	_, err = s.locker.Acquire(ctx, "slot_lock:a", 30*time.Second)
	s.True(errs.Is(err, shared.ErrLockNotAcquired), "got %v", err)

	released, err := lease.Release(ctx)
	s.Require().NoError(err)
	s.True(released)

	exists, err := s.client.Exists(ctx, "slot_lock:a").Result()
	s.Require().NoError(err)
	s.Zero(exists)
}

func (s *RedisLockerSuite) TestReleaseDoesNotDeleteForeignOwner() {
	ctx := context.Background()

	stale, err := s.locker.Acquire(ctx, "slot_lock:a", 50*time.Millisecond)
	s.Require().NoError(err)

	s.Eventually(func() bool {
		n, _ := s.client.Exists(ctx, "slot_lock:a").Result()
		return n == 0
	}, 2*time.Second, 20*time.Millisecond)

	_, err = s.locker.Acquire(ctx, "slot_lock:a", 30*time.Second)
	s.Require().NoError(err)

	released, err := stale.Release(ctx)
	s.Require().NoError(err)
	s.False(released)

	n, err := s.client.Exists(ctx, "slot_lock:a").Result()
	s.Require().NoError(err)
	s.Equal(int64(1), n)
}

func (s *RedisLockerSuite) TestConcurrentAcquire() {
	ctx := context.Background()
	var wins atomic.Int32
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.locker.Acquire(ctx, "slot_lock:x", time.Minute); err == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(s.T(), int32(1), wins.Load())
}

func TestRedisLocker_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer client.Close()

	_, err := lock.NewRedisLocker(client).Acquire(context.Background(), "k", time.Second)
	require.Error(t, err)
	assert.False(t, errs.Is(err, shared.ErrLockNotAcquired))
}
