//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// SeedSlotCapacity writes a ledger row directly, bypassing the catalog sync.
func SeedSlotCapacity(t *testing.T, db DBLike, slotID, vendorID uuid.UUID, maxCapacity, available int) {
	t.Helper()

	_, err := db.Exec(context.Background(), `
		INSERT INTO slot_capacities (slot_id, vendor_id, max_capacity, available_capacity, synced_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (slot_id) DO UPDATE
		   SET max_capacity = EXCLUDED.max_capacity,
		       available_capacity = EXCLUDED.available_capacity`,
		slotID, vendorID, maxCapacity, available)
	require.NoError(t, err)
}

// SlotCapacity returns (max, available) for a ledger row.
func SlotCapacity(t *testing.T, db DBLike, slotID uuid.UUID) (int, int) {
	t.Helper()

	var maxCapacity, available int
	err := db.QueryRow(context.Background(),
		"SELECT max_capacity, available_capacity FROM slot_capacities WHERE slot_id = $1", slotID).
		Scan(&maxCapacity, &available)
	require.NoError(t, err)
	return maxCapacity, available
}

// CountOrders counts orders for a slot, optionally restricted to one status.
func CountOrders(t *testing.T, db DBLike, slotID uuid.UUID, status string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM orders WHERE slot_id = $1 AND ($2 = '' OR status = $2)", slotID, status).
		Scan(&n)
	require.NoError(t, err)
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// ResetDB truncates every application table.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
