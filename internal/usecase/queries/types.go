package queries

import (
	"time"

	"github.com/google/uuid"
)

// OrderView is the read model returned by order listings and lookups.
type OrderView struct {
	ID               uuid.UUID       `json:"id"`
	StudentID        string          `json:"student_id"`
	VendorID         uuid.UUID       `json:"vendor_id"`
	SlotID           uuid.UUID       `json:"slot_id"`
	Status           string          `json:"status"`
	EstimatedMinutes *int            `json:"estimated_minutes,omitempty"`
	ETAConfidence    *float64        `json:"eta_confidence,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	Items            []OrderItemView `json:"items"`
}

type OrderItemView struct {
	ItemID   uuid.UUID `json:"item_id"`
	Quantity int       `json:"quantity"`
}

// SlotCapacityView is a ledger snapshot.
type SlotCapacityView struct {
	SlotID            uuid.UUID `json:"slot_id"`
	VendorID          uuid.UUID `json:"vendor_id"`
	MaxCapacity       int       `json:"max_capacity"`
	AvailableCapacity int       `json:"available_capacity"`
	SyncedAt          time.Time `json:"synced_at"`
}

// OrderListParams filters a newest-first keyset page. Exactly one of StudentID
// or VendorID is set by the query usecase.
type OrderListParams struct {
	StudentID      *string
	VendorID       *uuid.UUID
	Status         *string
	AfterCreatedAt *time.Time
	AfterID        uuid.UUID
	Limit          int32
}

// Viewer is who is asking for an order.
type Viewer struct {
	StudentID string
	VendorID  *uuid.UUID
	Admin     bool
}
