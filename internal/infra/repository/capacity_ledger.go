package repository

import (
	"context"
	"time"

	"campus-order-service/internal/domain/slot"
	"campus-order-service/internal/infra"
	"campus-order-service/internal/infra/db"

	"github.com/google/uuid"
)

const (
	selectCapacityForUpdateSQL = `
SELECT slot_id, vendor_id, max_capacity, available_capacity, synced_at
FROM slot_capacities
WHERE slot_id = $1
FOR UPDATE`

	updateCapacitySQL = `
UPDATE slot_capacities
SET available_capacity = $2
WHERE slot_id = $1`

	upsertCapacitySQL = `
INSERT INTO slot_capacities (slot_id, vendor_id, max_capacity, available_capacity, synced_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (slot_id) DO UPDATE
SET vendor_id          = EXCLUDED.vendor_id,
    max_capacity       = EXCLUDED.max_capacity,
    available_capacity = EXCLUDED.available_capacity,
    synced_at          = EXCLUDED.synced_at`
)

// CapacityLedgerRepository persists slot capacity. Counting rules live in slot.CapacityRecord;
// the table CHECK constraint is the storage backstop for 0 <= available <= max.
type CapacityLedgerRepository struct{}

func NewCapacityLedgerRepository() *CapacityLedgerRepository {
	return &CapacityLedgerRepository{}
}

func (r *CapacityLedgerRepository) GetForUpdate(ctx context.Context, tx db.DBTX, slotID uuid.UUID) (*slot.CapacityRecord, error) {
	var (
		id, vendorID  uuid.UUID
		maxCap, avail int32
		syncedAt      time.Time
	)
	err := tx.QueryRow(ctx, selectCapacityForUpdateSQL, slotID).Scan(&id, &vendorID, &maxCap, &avail, &syncedAt)
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to lock slot capacity", err)
	}
	return slot.ReconstructCapacityRecord(id, vendorID, int(maxCap), int(avail), syncedAt), nil
}

func (r *CapacityLedgerRepository) Save(ctx context.Context, tx db.DBTX, rec *slot.CapacityRecord) error {
	tag, err := tx.Exec(ctx, updateCapacitySQL, rec.SlotID(), rec.Available())
	if err != nil {
		return infra.ClassifyPgErr("failed to save slot capacity", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "slot capacity not found", nil)
	}
	return nil
}

func (r *CapacityLedgerRepository) Upsert(ctx context.Context, tx db.DBTX, rec *slot.CapacityRecord) error {
	_, err := tx.Exec(ctx, upsertCapacitySQL,
		rec.SlotID(), rec.VendorID(), rec.Max(), rec.Available(), rec.SyncedAt())
	if err != nil {
		return infra.ClassifyPgErr("failed to upsert slot capacity", err)
	}
	return nil
}
