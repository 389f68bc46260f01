package shared

import (
	"context"
	"time"

	"campus-order-service/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrLockNotAcquired = errs.New("lock is held by another owner")
	ErrTxConflict      = errs.New("transaction conflicted with a concurrent writer")
	ErrCatalogNotFound = errs.New("catalog entry not found")
	ErrETAUnavailable  = errs.New("eta prediction unavailable")
)

// SlotInfo is the catalog's view of a pickup slot.
type SlotInfo struct {
	ID          uuid.UUID
	VendorID    uuid.UUID
	MaxCapacity int
}

type VendorInfo struct {
	ID    uuid.UUID
	Phone string
}

// SlotCatalog is the vendor service. Any failure of GetSlot is treated as "not found" by callers.
type SlotCatalog interface {
	GetSlot(ctx context.Context, slotID uuid.UUID) (*SlotInfo, error)
	ListVendors(ctx context.Context) ([]VendorInfo, error)
	ListSlotsByVendor(ctx context.Context, vendor VendorInfo) ([]SlotInfo, error)
	VendorIDByPhone(ctx context.Context, phone string) (uuid.UUID, error)
}

type ETARequest struct {
	VendorID      uuid.UUID
	SlotID        uuid.UUID
	CurrentOrders int
	TimeOfDay     string
	DayOfWeek     string
}

type ETAEstimate struct {
	EstimatedMinutes int
	Confidence       float64
}

type ETAAnnotator interface {
	Predict(ctx context.Context, req ETARequest) (*ETAEstimate, error)
}

// Lease is one successful acquisition. Release deletes the key only while this
// lease still owns it and reports whether it did.
type Lease interface {
	Key() string
	Release(ctx context.Context) (bool, error)
}

// SlotLocker is non-blocking: a held key yields ErrLockNotAcquired immediately.
type SlotLocker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (Lease, error)
}

// BookingObserver receives booking outcomes for metrics.
type BookingObserver interface {
	BookingOutcome(op, outcome string)
	LockContended()
	ReservationMissing(op string)
	SyncFinished(vendors, slots, skipped int, err error)
}

type NopObserver struct{}

func (NopObserver) BookingOutcome(string, string)     {}
func (NopObserver) LockContended()                    {}
func (NopObserver) ReservationMissing(string)         {}
func (NopObserver) SyncFinished(int, int, int, error) {}
