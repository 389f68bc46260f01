package readstore

import (
	"context"

	"campus-order-service/internal/infra"
	"campus-order-service/internal/infra/db"

	"github.com/google/uuid"
)

const (
	hasActiveBookingSQL = `
SELECT EXISTS (
    SELECT 1 FROM orders
    WHERE student_id = $1 AND slot_id = $2 AND status <> 'cancelled'
)`

	countConfirmedByVendorSQL = `
SELECT count(*) FROM orders
WHERE vendor_id = $1 AND status = 'confirmed'`
)

// BookingReadStore serves the reads the booking commands make outside the ledger lock.
type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(db db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

func (r *BookingReadStore) HasActiveBooking(ctx context.Context, studentID string, slotID uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, hasActiveBookingSQL, studentID, slotID).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr(infra.KindDBFailure, "failed to check active booking", err)
	}
	return exists, nil
}

func (r *BookingReadStore) CountConfirmedByVendor(ctx context.Context, vendorID uuid.UUID) (int, error) {
	var n int64
	if err := r.db.QueryRow(ctx, countConfirmedByVendorSQL, vendorID).Scan(&n); err != nil {
		return 0, infra.WrapRepoErr(infra.KindDBFailure, "failed to count vendor orders", err)
	}
	return int(n), nil
}
