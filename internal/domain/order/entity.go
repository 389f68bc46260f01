package order

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus         = errors.New("invalid order status")
	ErrAlreadyCancelled      = errors.New("order is already cancelled")
	ErrCompletedNotCancel    = errors.New("completed orders cannot be cancelled")
	ErrOnlyConfirmedComplete = errors.New("only confirmed orders can be completed")
	ErrMissingStudent        = errors.New("student id is required")
)

type Order struct {
	id        uuid.UUID
	studentID string
	vendorID  uuid.UUID
	slotID    uuid.UUID
	status    Status
	items     []LineItem
	eta       *ETA
	createdAt time.Time
	updatedAt time.Time
}

// NewConfirmedOrder builds the order written once capacity has been reserved.
func NewConfirmedOrder(studentID string, vendorID, slotID uuid.UUID, items []LineItem, now time.Time) (*Order, error) {
	if studentID == "" {
		return nil, ErrMissingStudent
	}
	if len(items) == 0 {
		return nil, ErrNoLineItems
	}
	copied := make([]LineItem, len(items))
	copy(copied, items)
	return &Order{
		id:        uuid.New(),
		studentID: studentID,
		vendorID:  vendorID,
		slotID:    slotID,
		status:    StatusConfirmed,
		items:     copied,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructOrder(
	id uuid.UUID,
	studentID string,
	vendorID, slotID uuid.UUID,
	status Status,
	items []LineItem,
	eta *ETA,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:        id,
		studentID: studentID,
		vendorID:  vendorID,
		slotID:    slotID,
		status:    status,
		items:     items,
		eta:       eta,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Cancel moves a live order to cancelled. The caller must return the slot unit.
func (o *Order) Cancel(now time.Time) error {
	switch o.status {
	case StatusCancelled:
		return ErrAlreadyCancelled
	case StatusCompleted:
		return ErrCompletedNotCancel
	}
	if !o.status.CanTransitionTo(StatusCancelled) {
		return ErrInvalidStatus
	}
	o.status = StatusCancelled
	o.updatedAt = now
	return nil
}

// Complete marks pickup. Capacity is not returned: the slot was consumed.
func (o *Order) Complete(now time.Time) error {
	if o.status != StatusConfirmed {
		return ErrOnlyConfirmedComplete
	}
	o.status = StatusCompleted
	o.updatedAt = now
	return nil
}

func (o *Order) Annotate(eta ETA) {
	o.eta = &eta
}

func (o *Order) OwnedByStudent(studentID string) bool {
	return o.studentID == studentID
}

func (o *Order) OwnedByVendor(vendorID uuid.UUID) bool {
	return o.vendorID == vendorID
}

func (o *Order) ID() uuid.UUID        { return o.id }
func (o *Order) StudentID() string    { return o.studentID }
func (o *Order) VendorID() uuid.UUID  { return o.vendorID }
func (o *Order) SlotID() uuid.UUID    { return o.slotID }
func (o *Order) Status() Status       { return o.status }
func (o *Order) Items() []LineItem    { return o.items }
func (o *Order) ETA() *ETA            { return o.eta }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }
