package api

import (
	"context"
	"log/slog"
	"net/http"

	"campus-order-service/internal/domain/user"
	reqdto "campus-order-service/internal/handler/dto/request"
	resdto "campus-order-service/internal/handler/dto/response"
	"campus-order-service/internal/handler/httperr"
	"campus-order-service/internal/handler/middleware"
	"campus-order-service/internal/pkg/errs"
	"campus-order-service/internal/usecase/commands"
	"campus-order-service/internal/usecase/queries"
	"campus-order-service/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	errUnauthenticated    = errs.New("principal missing")
	errVendorUnregistered = errs.New("vendor not registered in catalog")
)

// VendorResolver maps an authenticated vendor phone to its catalog id.
type VendorResolver interface {
	VendorIDByPhone(ctx context.Context, phone string) (uuid.UUID, error)
}

type OrderHandler struct {
	cmds    commands.BookingCommands
	q       queries.OrderQueries
	vendors VendorResolver
}

func NewOrderHandler(cmds commands.BookingCommands, q queries.OrderQueries, vendors VendorResolver) *OrderHandler {
	return &OrderHandler{cmds: cmds, q: q, vendors: vendors}
}

// @Summary Create order
// @Description Book a pickup slot and place an order
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateOrderRequest true "Create order request"
// @Success 201 {object} resdto.CreateOrderResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req reqdto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	in, err := req.ToInput(principal.StudentID())
	if err != nil {
		abortInvalidRequest(c, err)
		return
	}

	o, err := h.cmds.CreateOrder(c.Request.Context(), in)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromCreatedOrder(o))
}

// @Summary Cancel order
// @Description Cancel an own confirmed order and release its slot
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderStatusResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	o, err := h.cmds.CancelOrder(c.Request.Context(), id, principal.StudentID())
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrderStatus(o))
}

// @Summary Complete order
// @Description Mark an order for the vendor's slot as picked up
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderStatusResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /orders/{id}/complete [post]
func (h *OrderHandler) Complete(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	vendorID, ok := h.resolveVendor(c, principal)
	if !ok {
		return
	}
	o, err := h.cmds.CompleteOrder(c.Request.Context(), id, vendorID)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrderStatus(o))
}

// @Summary Get order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 404 {object} httperr.Response
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := orderIDParam(c)
	if !ok {
		return
	}

	viewer := queries.Viewer{}
	switch principal.Role() {
	case user.RoleAdmin:
		viewer.Admin = true
	case user.RoleVendor:
		vendorID, ok := h.resolveVendor(c, principal)
		if !ok {
			return
		}
		viewer.VendorID = &vendorID
	default:
		viewer.StudentID = principal.StudentID()
	}

	view, err := h.q.GetOrder(c.Request.Context(), id, viewer)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	res, err := resdto.FromOrderView(view)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary List student orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param limit query int false "Max items (default 50)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.OrderListResponse
// @Failure 400 {object} httperr.Response
// @Router /orders/student [get]
func (h *OrderHandler) ListStudent(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	query, ok := bindListQuery(c)
	if !ok {
		return
	}
	views, next, err := h.q.ListStudentOrders(c.Request.Context(), principal.StudentID(), query.Status, cursorOf(query), query.Limit)
	h.renderList(c, views, next, err)
}

// @Summary List vendor orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param limit query int false "Max items (default 50)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.OrderListResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /orders/vendor [get]
func (h *OrderHandler) ListVendor(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	query, ok := bindListQuery(c)
	if !ok {
		return
	}
	vendorID, ok := h.resolveVendor(c, principal)
	if !ok {
		return
	}
	views, next, err := h.q.ListVendorOrders(c.Request.Context(), vendorID, query.Status, cursorOf(query), query.Limit)
	h.renderList(c, views, next, err)
}

func (h *OrderHandler) renderList(c *gin.Context, views []*queries.OrderView, next *queries.Cursor, err error) {
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	res, err := resdto.FromOrderList(views, next)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *OrderHandler) resolveVendor(c *gin.Context, principal *user.Principal) (uuid.UUID, bool) {
	vendorID, err := h.vendors.VendorIDByPhone(c.Request.Context(), principal.Phone().Value())
	if err == nil {
		return vendorID, true
	}
	if errs.Is(err, shared.ErrCatalogNotFound) {
		httperr.AbortWithError(c, http.StatusForbidden, errs.Mark(err, errVendorUnregistered),
			"Vendor account is not registered", httperr.Code("forbidden"))
		return uuid.Nil, false
	}
	slog.Warn("vendor lookup failed", "error", err)
	abortWithDomainError(c, errs.Mark(err, errs.ErrCatalogUnavailable))
	return uuid.Nil, false
}

func principalOrAbort(c *gin.Context) (*user.Principal, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", httperr.Code("unauthorized"))
		return nil, false
	}
	return p, true
}

func orderIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid order id", httperr.Code("invalid_request"))
		return uuid.Nil, false
	}
	return id, true
}

func bindListQuery(c *gin.Context) (reqdto.ListOrdersQuery, bool) {
	var query reqdto.ListOrdersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortInvalidRequest(c, err)
		return query, false
	}
	return query, true
}

func cursorOf(q reqdto.ListOrdersQuery) *queries.Cursor {
	if q.After == "" {
		return nil
	}
	return &queries.Cursor{After: q.After}
}
