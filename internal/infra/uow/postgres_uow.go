package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"campus-order-service/internal/infra/db"
	"campus-order-service/internal/infra/readstore"
	"campus-order-service/internal/infra/repository"
	"campus-order-service/internal/pkg/errs"
	"campus-order-service/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultMaxRetries = 3

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool   *pgxpool.Pool
	ledger *repository.CapacityLedgerRepository
	orders *repository.OrderRepository
}

func NewPostgresUoW(pool *pgxpool.Pool, ledger *repository.CapacityLedgerRepository, orders *repository.OrderRepository) *PostgresUoW {
	return &PostgresUoW{
		pool:   pool,
		ledger: ledger,
		orders: orders,
	}
}

// ReadCommitted is enough: every contended row is taken with SELECT ... FOR UPDATE.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, defaultMaxRetries, fn)
}

// WithinOnce is for callers holding an external lease that must cover exactly
// one transaction; they decide themselves whether to try again.
func (u *PostgresUoW) WithinOnce(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, 0, fn)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return &commandReads{dbtx: u.pool}
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, maxRetries int, fn func(ctx context.Context, tx shared.Tx) error) error {
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{
			dbtx: pgxTx,
			uow:  u,
		}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries && isRetryableError(err) && maxRetries > 0 {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
			}
			return finalError(err, attempt, maxRetries)
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

// finalError marks a conflict that survived every allowed attempt.
func finalError(err error, attempt, maxRetries int) error {
	if attempt < maxRetries || !isRetryableError(err) {
		return err
	}
	err = errs.Mark(err, shared.ErrTxConflict)
	if maxRetries > 0 {
		err = errs.Mark(err, errMaxRetriesExceeded)
	}
	return err
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- masked to the positive int64 range above
	return int64(uval) % n
}

// Deadlocks are expected between a cancel and a create touching the same
// order and slot rows in opposite order; the loser is simply replayed.
func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx db.DBTX
	uow  *PostgresUoW
}

func (t *pgTx) DB() db.DBTX {
	return t.dbtx
}

func (t *pgTx) Ledger() shared.CapacityLedgerRepository {
	return t.uow.ledger
}

func (t *pgTx) Orders() shared.OrderRepository {
	return t.uow.orders
}

type commandReads struct {
	dbtx  db.DBTX
	store *readstore.BookingReadStore
}

func (r *commandReads) bookings() *readstore.BookingReadStore {
	if r.store == nil {
		r.store = readstore.NewBookingReadStore(r.dbtx)
	}
	return r.store
}

func (r *commandReads) HasActiveBooking(ctx context.Context, studentID string, slotID uuid.UUID) (bool, error) {
	return r.bookings().HasActiveBooking(ctx, studentID, slotID)
}

func (r *commandReads) CountConfirmedByVendor(ctx context.Context, vendorID uuid.UUID) (int, error) {
	return r.bookings().CountConfirmedByVendor(ctx, vendorID)
}
