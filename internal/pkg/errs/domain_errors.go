package errs

import "errors"

// Sentinels shared by the booking usecases and the HTTP layer
var (
	// Lookup errors
	ErrSlotNotFound  = errors.New("slot not found")
	ErrOrderNotFound = errors.New("order not found")

	// Booking errors
	ErrDuplicateBooking   = errors.New("slot already booked by student")
	ErrSlotContended      = errors.New("slot is being booked by another request")
	ErrLockUnavailable    = errors.New("slot lock backend unavailable")
	ErrSlotFull           = errors.New("slot is full")
	ErrReservationMissing = errors.New("slot reservation missing")
	ErrInvalidState       = errors.New("order state does not allow this transition")

	// Validation errors
	ErrInvalidLineItems = errors.New("order must contain at least one line item with positive quantity")
	ErrDomainValidation = errors.New("domain validation error")

	// Collaborator errors
	ErrCatalogUnavailable = errors.New("slot catalog unavailable")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
