package api

import (
	"net/http"

	resdto "campus-order-service/internal/handler/dto/response"
	"campus-order-service/internal/handler/httperr"
	"campus-order-service/internal/usecase/commands"
	"campus-order-service/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SlotHandler struct {
	cmds commands.BookingCommands
	q    queries.OrderQueries
}

func NewSlotHandler(cmds commands.BookingCommands, q queries.OrderQueries) *SlotHandler {
	return &SlotHandler{cmds: cmds, q: q}
}

// @Summary Get slot capacity
// @Description Current ledger counters for a slot
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Success 200 {object} resdto.SlotCapacityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /slots/{id}/capacity [get]
func (h *SlotHandler) Capacity(c *gin.Context) {
	slotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid slot id", httperr.Code("invalid_request"))
		return
	}
	view, err := h.q.GetSlotCapacity(c.Request.Context(), slotID)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSlotCapacity(view))
}

// @Summary Resync slot capacities
// @Description Rebuild the capacity ledger from the slot catalog
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.SyncResultResponse
// @Failure 502 {object} httperr.Response
// @Router /admin/slots/sync [post]
func (h *SlotHandler) Sync(c *gin.Context) {
	res, err := h.cmds.SyncCapacity(c.Request.Context())
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSyncResult(res))
}
