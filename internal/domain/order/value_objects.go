package order

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNoLineItems       = errors.New("order must contain at least one item")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInvalidItemID     = errors.New("item id is required")
	ErrInvalidConfidence = errors.New("eta confidence must be between 0 and 1")
	ErrInvalidMinutes    = errors.New("eta minutes must not be negative")
)

type LineItem struct {
	id       uuid.UUID
	itemID   uuid.UUID
	quantity int
}

func NewLineItem(itemID uuid.UUID, quantity int) (LineItem, error) {
	if itemID == uuid.Nil {
		return LineItem{}, ErrInvalidItemID
	}
	if quantity < 1 {
		return LineItem{}, ErrInvalidQuantity
	}
	return LineItem{id: uuid.New(), itemID: itemID, quantity: quantity}, nil
}

func ReconstructLineItem(id, itemID uuid.UUID, quantity int) LineItem {
	return LineItem{id: id, itemID: itemID, quantity: quantity}
}

func (li LineItem) ID() uuid.UUID     { return li.id }
func (li LineItem) ItemID() uuid.UUID { return li.itemID }
func (li LineItem) Quantity() int     { return li.quantity }

// ETA is the advisory pickup estimate attached after booking.
type ETA struct {
	minutes    int
	confidence float64
}

func NewETA(minutes int, confidence float64) (ETA, error) {
	if minutes < 0 {
		return ETA{}, ErrInvalidMinutes
	}
	if confidence < 0 || confidence > 1 {
		return ETA{}, ErrInvalidConfidence
	}
	return ETA{minutes: minutes, confidence: confidence}, nil
}

func (e ETA) Minutes() int        { return e.minutes }
func (e ETA) Confidence() float64 { return e.confidence }
