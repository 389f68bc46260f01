package readstore

import (
	"context"
	"time"

	"campus-order-service/internal/infra"
	"campus-order-service/internal/infra/db"
	"campus-order-service/internal/usecase/queries"

	"github.com/google/uuid"
)

const selectCapacityViewSQL = `
SELECT slot_id, vendor_id, max_capacity, available_capacity, synced_at
FROM slot_capacities
WHERE slot_id = $1`

type CapacityReadStore struct {
	db db.DBTX
}

func NewCapacityReadStore(db db.DBTX) *CapacityReadStore {
	return &CapacityReadStore{db: db}
}

func (r *CapacityReadStore) FindBySlotID(ctx context.Context, slotID uuid.UUID) (*queries.SlotCapacityView, error) {
	var (
		v             queries.SlotCapacityView
		maxCap, avail int32
		syncedAt      time.Time
	)
	err := r.db.QueryRow(ctx, selectCapacityViewSQL, slotID).Scan(&v.SlotID, &v.VendorID, &maxCap, &avail, &syncedAt)
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to get slot capacity", err)
	}
	v.MaxCapacity = int(maxCap)
	v.AvailableCapacity = int(avail)
	v.SyncedAt = syncedAt
	return &v, nil
}
