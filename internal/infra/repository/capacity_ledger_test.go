//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"campus-order-service/internal/domain/slot"
	"campus-order-service/internal/infra"
	"campus-order-service/tests/common/dbtest"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCapacityLedger_GetForUpdate(t *testing.T) {
	ctx := context.Background()
	slotID, vendorID := uuid.New(), uuid.New()
	syncedAt := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		row       dbtest.Row
		wantKind  infra.RepositoryErrorKind
		wantAvail int
		wantMax   int
	}{
		{
			name:      "success",
			row:       dbtest.Row{Values: []any{slotID, vendorID, int32(5), int32(3), syncedAt}},
			wantAvail: 3,
			wantMax:   5,
		},
		{
			name:     "missing row",
			row:      dbtest.Row{Err: pgx.ErrNoRows},
			wantKind: infra.KindNotFound,
		},
		{
			name:     "database error",
			row:      dbtest.Row{Err: assert.AnError},
			wantKind: infra.KindDBFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dbtx := new(dbtest.MockDBTX)
			dbtx.On("QueryRow", mock.Anything, selectCapacityForUpdateSQL, []any{slotID}).Return(tt.row)

			rec, err := NewCapacityLedgerRepository().GetForUpdate(ctx, dbtx, slotID)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tt.wantKind), "got %v", err)
				assert.Nil(t, rec)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantAvail, rec.Available())
				assert.Equal(t, tt.wantMax, rec.Max())
				assert.Equal(t, vendorID, rec.VendorID())
			}
			dbtx.AssertExpectations(t)
		})
	}
}

func TestCapacityLedger_Save(t *testing.T) {
	ctx := context.Background()
	rec := slot.ReconstructCapacityRecord(uuid.New(), uuid.New(), 5, 4, time.Now())

	tests := []struct {
		name     string
		tag      pgconn.CommandTag
		execErr  error
		wantKind infra.RepositoryErrorKind
	}{
		{name: "success", tag: dbtest.Tag("UPDATE", 1)},
		{name: "row vanished", tag: dbtest.Tag("UPDATE", 0), wantKind: infra.KindNotFound},
		{name: "check constraint", tag: pgconn.CommandTag{}, execErr: &pgconn.PgError{Code: "23514"}, wantKind: infra.KindCheckViolated},
		{name: "database error", tag: pgconn.CommandTag{}, execErr: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dbtx := new(dbtest.MockDBTX)
			dbtx.On("Exec", mock.Anything, updateCapacitySQL, []any{rec.SlotID(), 4}).Return(tt.tag, tt.execErr)

			err := NewCapacityLedgerRepository().Save(ctx, dbtx, rec)

			if tt.wantKind != "" {
				assert.True(t, infra.IsKind(err, tt.wantKind), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
			dbtx.AssertExpectations(t)
		})
	}
}

func TestCapacityLedger_Upsert(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	rec, err := slot.NewCapacityRecord(uuid.New(), uuid.New(), 6, now)
	require.NoError(t, err)

	dbtx := new(dbtest.MockDBTX)
	dbtx.On("Exec", mock.Anything, upsertCapacitySQL,
		[]any{rec.SlotID(), rec.VendorID(), 6, 6, now}).Return(dbtest.Tag("INSERT 0", 1), nil)

	require.NoError(t, NewCapacityLedgerRepository().Upsert(ctx, dbtx, rec))
	dbtx.AssertExpectations(t)
}
