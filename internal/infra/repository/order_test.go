//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"campus-order-service/internal/domain/order"
	"campus-order-service/internal/infra"
	"campus-order-service/tests/common/dbtest"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var orderNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	a, err := order.NewLineItem(uuid.New(), 2)
	require.NoError(t, err)
	b, err := order.NewLineItem(uuid.New(), 1)
	require.NoError(t, err)
	o, err := order.NewConfirmedOrder("9876543210", uuid.New(), uuid.New(), []order.LineItem{a, b}, orderNow)
	require.NoError(t, err)
	return o
}

func TestOrderRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts order then items in position order", func(t *testing.T) {
		o := newTestOrder(t)
		dbtx := new(dbtest.MockDBTX)
		dbtx.On("Exec", mock.Anything, insertOrderSQL,
			[]any{o.ID(), "9876543210", o.VendorID(), o.SlotID(), "confirmed", orderNow, orderNow}).
			Return(dbtest.Tag("INSERT 0", 1), nil).Once()
		for i, li := range o.Items() {
			dbtx.On("Exec", mock.Anything, insertOrderItemSQL,
				[]any{li.ID(), o.ID(), li.ItemID(), li.Quantity(), i}).
				Return(dbtest.Tag("INSERT 0", 1), nil).Once()
		}

		require.NoError(t, NewOrderRepository().Create(ctx, dbtx, o))
		dbtx.AssertExpectations(t)
	})

	t.Run("active booking unique index maps to duplicate key", func(t *testing.T) {
		o := newTestOrder(t)
		dbtx := new(dbtest.MockDBTX)
		dbtx.On("Exec", mock.Anything, insertOrderSQL, mock.Anything).
			Return(pgconn.CommandTag{}, &pgconn.PgError{Code: "23505", ConstraintName: "uq_orders_active_booking"})

		err := NewOrderRepository().Create(ctx, dbtx, o)
		assert.True(t, infra.IsKind(err, infra.KindDuplicateKey), "got %v", err)
		dbtx.AssertNotCalled(t, "Exec", mock.Anything, insertOrderItemSQL, mock.Anything)
	})
}

func TestOrderRepository_FindForUpdate(t *testing.T) {
	ctx := context.Background()
	orderID, vendorID, slotID := uuid.New(), uuid.New(), uuid.New()
	itemA, itemB := uuid.New(), uuid.New()

	t.Run("loads order with eta and items", func(t *testing.T) {
		dbtx := new(dbtest.MockDBTX)
		dbtx.On("QueryRow", mock.Anything, selectOrderForUpdateSQL, []any{orderID}).Return(dbtest.Row{Values: []any{
			orderID, "9876543210", vendorID, slotID, "confirmed",
			pgtype.Int4{Int32: 22, Valid: true}, pgtype.Float8{Float64: 0.3, Valid: true},
			orderNow, orderNow,
		}})
		dbtx.On("Query", mock.Anything, selectOrderItemsSQL, []any{orderID}).Return(dbtest.NewRows(
			[]any{uuid.New(), itemA, int32(2)},
			[]any{uuid.New(), itemB, int32(1)},
		), nil)

		o, err := NewOrderRepository().FindForUpdate(ctx, dbtx, orderID)
		require.NoError(t, err)

		assert.Equal(t, order.StatusConfirmed, o.Status())
		assert.True(t, o.OwnedByStudent("9876543210"))
		assert.True(t, o.OwnedByVendor(vendorID))
		require.NotNil(t, o.ETA())
		assert.Equal(t, 22, o.ETA().Minutes())
		require.Len(t, o.Items(), 2)
		assert.Equal(t, itemA, o.Items()[0].ItemID())
		assert.Equal(t, 1, o.Items()[1].Quantity())
	})

	t.Run("order without eta", func(t *testing.T) {
		dbtx := new(dbtest.MockDBTX)
		dbtx.On("QueryRow", mock.Anything, selectOrderForUpdateSQL, []any{orderID}).Return(dbtest.Row{Values: []any{
			orderID, "9876543210", vendorID, slotID, "cancelled",
			pgtype.Int4{}, pgtype.Float8{}, orderNow, orderNow,
		}})
		dbtx.On("Query", mock.Anything, selectOrderItemsSQL, []any{orderID}).Return(dbtest.NewRows(), nil)

		o, err := NewOrderRepository().FindForUpdate(ctx, dbtx, orderID)
		require.NoError(t, err)
		assert.Nil(t, o.ETA())
		assert.Equal(t, order.StatusCancelled, o.Status())
	})

	t.Run("not found", func(t *testing.T) {
		dbtx := new(dbtest.MockDBTX)
		dbtx.On("QueryRow", mock.Anything, selectOrderForUpdateSQL, []any{orderID}).Return(dbtest.Row{Err: pgx.ErrNoRows})

		o, err := NewOrderRepository().FindForUpdate(ctx, dbtx, orderID)
		assert.Nil(t, o)
		assert.True(t, infra.IsKind(err, infra.KindNotFound), "got %v", err)
		dbtx.AssertNotCalled(t, "Query", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	o := newTestOrder(t)
	require.NoError(t, o.Cancel(orderNow.Add(time.Minute)))

	t.Run("success", func(t *testing.T) {
		dbtx := new(dbtest.MockDBTX)
		dbtx.On("Exec", mock.Anything, updateOrderStatusSQL, []any{o.ID(), "cancelled", o.UpdatedAt()}).
			Return(dbtest.Tag("UPDATE", 1), nil)
		assert.NoError(t, NewOrderRepository().UpdateStatus(ctx, dbtx, o))
	})

	t.Run("no row", func(t *testing.T) {
		dbtx := new(dbtest.MockDBTX)
		dbtx.On("Exec", mock.Anything, updateOrderStatusSQL, mock.Anything).Return(dbtest.Tag("UPDATE", 0), nil)
		err := NewOrderRepository().UpdateStatus(ctx, dbtx, o)
		assert.True(t, infra.IsKind(err, infra.KindNotFound), "got %v", err)
	})
}

func TestOrderRepository_UpdateETA(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()
	eta, err := order.NewETA(18, 0.3)
	require.NoError(t, err)

	dbtx := new(dbtest.MockDBTX)
	dbtx.On("Exec", mock.Anything, updateOrderETASQL, []any{
		orderID, pgtype.Int4{Int32: 18, Valid: true}, pgtype.Float8{Float64: 0.3, Valid: true},
	}).Return(dbtest.Tag("UPDATE", 1), nil)

	require.NoError(t, NewOrderRepository().UpdateETA(ctx, dbtx, orderID, eta))
	dbtx.AssertExpectations(t)
}
