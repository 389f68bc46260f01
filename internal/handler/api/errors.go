package api

import (
	"net/http"

	"campus-order-service/internal/handler/httperr"
	"campus-order-service/internal/pkg/errs"
	"campus-order-service/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	err    error
	status int
	msg    string
	code   string
}

// First match wins.
var errorMappings = []errorMapping{
	{errs.ErrSlotNotFound, http.StatusNotFound, "Slot not found", "slot_not_found"},
	{errs.ErrOrderNotFound, http.StatusNotFound, "Order not found", "order_not_found"},
	{errs.ErrDuplicateBooking, http.StatusConflict, "You have already booked this slot", "duplicate_booking"},
	{errs.ErrSlotContended, http.StatusConflict, "Slot is currently being booked by another user. Please try again.", "slot_contended"},
	{errs.ErrSlotFull, http.StatusConflict, "Slot is full", "slot_full"},
	{errs.ErrInvalidState, http.StatusBadRequest, "Order cannot transition from its current status", "invalid_state"},
	{errs.ErrInvalidLineItems, http.StatusBadRequest, "Invalid request format", "invalid_request"},
	{queries.ErrInvalidCursor, http.StatusBadRequest, "Invalid cursor", "invalid_request"},
	{queries.ErrInvalidStatusFilter, http.StatusBadRequest, "Invalid status filter", "invalid_request"},
	{errs.ErrReservationMissing, http.StatusInternalServerError, "Slot reservation missing", "reservation_missing"},
	{errs.ErrLockUnavailable, http.StatusServiceUnavailable, "Booking is temporarily unavailable", "lock_unavailable"},
	{errs.ErrCatalogUnavailable, http.StatusBadGateway, "Slot catalog unavailable", "catalog_unavailable"},
}

const retryAfterSeconds = "1"

func abortWithDomainError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if !errs.Is(err, m.err) {
			continue
		}
		if m.err == errs.ErrSlotContended {
			c.Header("Retry-After", retryAfterSeconds)
		}
		httperr.AbortWithError(c, m.status, err, m.msg, httperr.Code(m.code))
		return
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", httperr.Code("internal"))
}

func abortInvalidRequest(c *gin.Context, err error) {
	httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", httperr.Code("invalid_request"))
}
