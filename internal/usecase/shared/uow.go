package shared

import (
	"context"

	"campus-order-service/internal/domain/order"
	"campus-order-service/internal/domain/slot"
	"campus-order-service/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinOnce: Single attempt; serialization failures and deadlocks come back marked ErrTxConflict
	WithinOnce(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Ledger() CapacityLedgerRepository
	Orders() OrderRepository
	DB() db.DBTX
}

type CommandReads interface {
	// HasActiveBooking reports a non-cancelled order by the student for the slot.
	HasActiveBooking(ctx context.Context, studentID string, slotID uuid.UUID) (bool, error)
	CountConfirmedByVendor(ctx context.Context, vendorID uuid.UUID) (int, error)
}

// CapacityLedgerRepository is the only writer of slot capacity.
type CapacityLedgerRepository interface {
	// GetForUpdate row-locks the record until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, tx db.DBTX, slotID uuid.UUID) (*slot.CapacityRecord, error)
	Save(ctx context.Context, tx db.DBTX, rec *slot.CapacityRecord) error
	// Upsert creates or overwrites the record with available = max.
	Upsert(ctx context.Context, tx db.DBTX, rec *slot.CapacityRecord) error
}

type OrderRepository interface {
	Create(ctx context.Context, tx db.DBTX, o *order.Order) error
	FindForUpdate(ctx context.Context, tx db.DBTX, orderID uuid.UUID) (*order.Order, error)
	UpdateStatus(ctx context.Context, tx db.DBTX, o *order.Order) error
	UpdateETA(ctx context.Context, tx db.DBTX, orderID uuid.UUID, eta order.ETA) error
}
