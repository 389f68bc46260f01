package lock

import (
	"context"
	"sync"
	"time"

	"campus-order-service/internal/pkg/clock"
	"campus-order-service/internal/pkg/errs"
	"campus-order-service/internal/usecase/shared"

	"github.com/google/uuid"
)

// LocalLocker is an in-process SlotLocker with the same expiry and ownership
// rules as RedisLocker. It only serialises callers inside one process.
type LocalLocker struct {
	mu      sync.Mutex
	clock   clock.Clock
	entries map[string]localEntry
}

type localEntry struct {
	token     string
	expiresAt time.Time
}

func NewLocalLocker(clk clock.Clock) *LocalLocker {
	return &LocalLocker{clock: clk, entries: make(map[string]localEntry)}
}

func (l *LocalLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (shared.Lease, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrapf(err, "acquire %s", key)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	if e, ok := l.entries[key]; ok && now.Before(e.expiresAt) {
		return nil, errs.Mark(errs.Newf("%s is held", key), shared.ErrLockNotAcquired)
	}
	token := uuid.NewString()
	l.entries[key] = localEntry{token: token, expiresAt: now.Add(ttl)}
	return &localLease{locker: l, key: key, token: token}, nil
}

func (l *LocalLocker) release(key, token string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok || e.token != token {
		return false
	}
	delete(l.entries, key)
	return l.clock.Now().Before(e.expiresAt)
}

type localLease struct {
	locker *LocalLocker
	key    string
	token  string
}

func (l *localLease) Key() string { return l.key }

func (l *localLease) Release(context.Context) (bool, error) {
	return l.locker.release(l.key, l.token), nil
}
