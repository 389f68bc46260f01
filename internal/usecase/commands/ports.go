package commands

import (
	"github.com/google/uuid"
)

// Write-side inputs stay free of handler DTOs so the HTTP layer can change shape independently.
type LineItemInput struct {
	ItemID   uuid.UUID
	Quantity int
}

type CreateOrderInput struct {
	StudentID string
	SlotID    uuid.UUID
	Items     []LineItemInput
}

type SyncResult struct {
	Vendors        int
	SkippedVendors int
	Slots          int
}
