//go:build unit

package order_test

import (
	"testing"
	"time"

	"campus-order-service/internal/domain/order"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC)

func mustItems(t *testing.T, quantities ...int) []order.LineItem {
	t.Helper()
	items := make([]order.LineItem, 0, len(quantities))
	for _, q := range quantities {
		li, err := order.NewLineItem(uuid.New(), q)
		require.NoError(t, err)
		items = append(items, li)
	}
	return items
}

func newConfirmed(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewConfirmedOrder("9876543210", uuid.New(), uuid.New(), mustItems(t, 2, 1), now)
	require.NoError(t, err)
	return o
}

func TestNewConfirmedOrder(t *testing.T) {
	t.Run("基本成功ケース", func(t *testing.T) {
		vendorID, slotID := uuid.New(), uuid.New()
		items := mustItems(t, 2)

		o, err := order.NewConfirmedOrder("9876543210", vendorID, slotID, items, now)
		require.NoError(t, err)

		type view struct {
			StudentID string
			VendorID  uuid.UUID
			SlotID    uuid.UUID
			Status    order.Status
			Items     int
			CreatedAt time.Time
		}
		want := view{StudentID: "9876543210", VendorID: vendorID, SlotID: slotID, Status: order.StatusConfirmed, Items: 1, CreatedAt: now}
		got := view{StudentID: o.StudentID(), VendorID: o.VendorID(), SlotID: o.SlotID(), Status: o.Status(), Items: len(o.Items()), CreatedAt: o.CreatedAt()}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("order mismatch (-want +got):\n%s", diff)
		}
		assert.NotEqual(t, uuid.Nil, o.ID())
		assert.Nil(t, o.ETA())
	})

	t.Run("明細なしNG", func(t *testing.T) {
		_, err := order.NewConfirmedOrder("9876543210", uuid.New(), uuid.New(), nil, now)
		assert.ErrorIs(t, err, order.ErrNoLineItems)
	})

	t.Run("学生IDなしNG", func(t *testing.T) {
		_, err := order.NewConfirmedOrder("", uuid.New(), uuid.New(), mustItems(t, 1), now)
		assert.ErrorIs(t, err, order.ErrMissingStudent)
	})
}

func TestNewLineItem(t *testing.T) {
	_, err := order.NewLineItem(uuid.New(), 0)
	assert.ErrorIs(t, err, order.ErrInvalidQuantity)

	_, err = order.NewLineItem(uuid.Nil, 1)
	assert.ErrorIs(t, err, order.ErrInvalidItemID)

	li, err := order.NewLineItem(uuid.New(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, li.Quantity())
}

func TestOrderTransitions(t *testing.T) {
	later := now.Add(10 * time.Minute)

	t.Run("confirmed -> cancelled", func(t *testing.T) {
		o := newConfirmed(t)
		require.NoError(t, o.Cancel(later))
		assert.Equal(t, order.StatusCancelled, o.Status())
		assert.Equal(t, later, o.UpdatedAt())
	})

	t.Run("cancel twice is rejected", func(t *testing.T) {
		o := newConfirmed(t)
		require.NoError(t, o.Cancel(later))
		assert.ErrorIs(t, o.Cancel(later), order.ErrAlreadyCancelled)
	})

	t.Run("confirmed -> completed, then cancel rejected", func(t *testing.T) {
		o := newConfirmed(t)
		require.NoError(t, o.Complete(later))
		assert.Equal(t, order.StatusCompleted, o.Status())
		assert.ErrorIs(t, o.Cancel(later), order.ErrCompletedNotCancel)
		assert.ErrorIs(t, o.Complete(later), order.ErrOnlyConfirmedComplete)
	})

	t.Run("cancelled cannot be completed", func(t *testing.T) {
		o := newConfirmed(t)
		require.NoError(t, o.Cancel(later))
		assert.ErrorIs(t, o.Complete(later), order.ErrOnlyConfirmedComplete)
	})

	t.Run("pending can be cancelled", func(t *testing.T) {
		o := order.ReconstructOrder(uuid.New(), "9876543210", uuid.New(), uuid.New(), order.StatusPending, nil, nil, now, now)
		require.NoError(t, o.Cancel(later))
		assert.Equal(t, order.StatusCancelled, o.Status())
	})
}

func TestStatus(t *testing.T) {
	tests := []struct {
		from, to order.Status
		want     bool
	}{
		{order.StatusPending, order.StatusConfirmed, true},
		{order.StatusPending, order.StatusCancelled, true},
		{order.StatusConfirmed, order.StatusCompleted, true},
		{order.StatusConfirmed, order.StatusCancelled, true},
		{order.StatusConfirmed, order.StatusPending, false},
		{order.StatusCancelled, order.StatusConfirmed, false},
		{order.StatusCompleted, order.StatusCancelled, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}

	_, err := order.NewStatus("refunded")
	assert.ErrorIs(t, err, order.ErrInvalidStatus)
}

func TestETA(t *testing.T) {
	eta, err := order.NewETA(22, 0.87)
	require.NoError(t, err)

	o := newConfirmed(t)
	o.Annotate(eta)
	require.NotNil(t, o.ETA())
	assert.Equal(t, 22, o.ETA().Minutes())

	_, err = order.NewETA(10, 1.5)
	assert.ErrorIs(t, err, order.ErrInvalidConfidence)
	_, err = order.NewETA(-1, 0.5)
	assert.ErrorIs(t, err, order.ErrInvalidMinutes)
}
