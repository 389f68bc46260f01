package slot

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoCapacity       = errors.New("no capacity left in slot")
	ErrCapacityOverflow = errors.New("release would exceed slot max capacity")
	ErrInvalidCapacity  = errors.New("max capacity must be positive")
)

// CapacityRecord is the authoritative count of remaining bookings for one pickup slot.
// Invariant: 0 <= available <= max.
type CapacityRecord struct {
	slotID    uuid.UUID
	vendorID  uuid.UUID
	max       int
	available int
	syncedAt  time.Time
}

// NewCapacityRecord starts a fully available slot, as a catalog sync does.
func NewCapacityRecord(slotID, vendorID uuid.UUID, maxCapacity int, now time.Time) (*CapacityRecord, error) {
	if maxCapacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &CapacityRecord{
		slotID:    slotID,
		vendorID:  vendorID,
		max:       maxCapacity,
		available: maxCapacity,
		syncedAt:  now,
	}, nil
}

func ReconstructCapacityRecord(slotID, vendorID uuid.UUID, maxCapacity, available int, syncedAt time.Time) *CapacityRecord {
	return &CapacityRecord{
		slotID:    slotID,
		vendorID:  vendorID,
		max:       maxCapacity,
		available: available,
		syncedAt:  syncedAt,
	}
}

// Reserve takes one unit of capacity.
func (r *CapacityRecord) Reserve() error {
	if r.available <= 0 {
		return ErrNoCapacity
	}
	r.available--
	return nil
}

// Release returns one unit. It refuses to go above max, which can only happen
// when a resync lowered max below the number of outstanding bookings.
func (r *CapacityRecord) Release() error {
	if r.available >= r.max {
		return ErrCapacityOverflow
	}
	r.available++
	return nil
}

func (r *CapacityRecord) SlotID() uuid.UUID   { return r.slotID }
func (r *CapacityRecord) VendorID() uuid.UUID { return r.vendorID }
func (r *CapacityRecord) Max() int            { return r.max }
func (r *CapacityRecord) Available() int      { return r.available }
func (r *CapacityRecord) SyncedAt() time.Time { return r.syncedAt }
