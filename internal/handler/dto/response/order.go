package response

import (
	"time"

	"campus-order-service/internal/domain/order"
	"campus-order-service/internal/usecase/commands"
	"campus-order-service/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type CreateOrderResponse struct {
	OrderID          uuid.UUID `json:"order_id"`
	Status           string    `json:"status"`
	SlotID           uuid.UUID `json:"slot_id"`
	EstimatedMinutes *int      `json:"estimated_minutes,omitempty"`
	ETAConfidence    *float64  `json:"eta_confidence,omitempty"`
}

func FromCreatedOrder(o *order.Order) *CreateOrderResponse {
	res := &CreateOrderResponse{
		OrderID: o.ID(),
		Status:  o.Status().String(),
		SlotID:  o.SlotID(),
	}
	if eta := o.ETA(); eta != nil {
		minutes, confidence := eta.Minutes(), eta.Confidence()
		res.EstimatedMinutes = &minutes
		res.ETAConfidence = &confidence
	}
	return res
}

type OrderStatusResponse struct {
	OrderID uuid.UUID `json:"order_id"`
	Status  string    `json:"status"`
}

func FromOrderStatus(o *order.Order) *OrderStatusResponse {
	return &OrderStatusResponse{OrderID: o.ID(), Status: o.Status().String()}
}

type OrderItemResponse struct {
	ItemID   uuid.UUID `json:"item_id"`
	Quantity int       `json:"quantity"`
}

type OrderResponse struct {
	ID               uuid.UUID           `json:"id"`
	StudentID        string              `json:"student_id"`
	VendorID         uuid.UUID           `json:"vendor_id"`
	SlotID           uuid.UUID           `json:"slot_id"`
	Status           string              `json:"status"`
	EstimatedMinutes *int                `json:"estimated_minutes,omitempty"`
	ETAConfidence    *float64            `json:"eta_confidence,omitempty"`
	Items            []OrderItemResponse `json:"items"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

func FromOrderView(v *queries.OrderView) (*OrderResponse, error) {
	res := &OrderResponse{}
	if err := copier.Copy(res, v); err != nil {
		return nil, err
	}
	if res.Items == nil {
		res.Items = []OrderItemResponse{}
	}
	return res, nil
}

type OrderListResponse struct {
	Orders     []*OrderResponse `json:"orders"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

func FromOrderList(views []*queries.OrderView, next *queries.Cursor) (*OrderListResponse, error) {
	res := &OrderListResponse{Orders: make([]*OrderResponse, 0, len(views))}
	for _, v := range views {
		o, err := FromOrderView(v)
		if err != nil {
			return nil, err
		}
		res.Orders = append(res.Orders, o)
	}
	if next != nil {
		res.NextCursor = next.After
	}
	return res, nil
}

type SlotCapacityResponse struct {
	SlotID            uuid.UUID `json:"slot_id"`
	VendorID          uuid.UUID `json:"vendor_id"`
	MaxCapacity       int       `json:"max_capacity"`
	AvailableCapacity int       `json:"available_capacity"`
	SyncedAt          time.Time `json:"synced_at"`
}

func FromSlotCapacity(v *queries.SlotCapacityView) *SlotCapacityResponse {
	return &SlotCapacityResponse{
		SlotID:            v.SlotID,
		VendorID:          v.VendorID,
		MaxCapacity:       v.MaxCapacity,
		AvailableCapacity: v.AvailableCapacity,
		SyncedAt:          v.SyncedAt,
	}
}

type SyncResultResponse struct {
	Vendors        int `json:"vendors"`
	SkippedVendors int `json:"skipped_vendors"`
	Slots          int `json:"slots"`
}

func FromSyncResult(r *commands.SyncResult) *SyncResultResponse {
	return &SyncResultResponse{Vendors: r.Vendors, SkippedVendors: r.SkippedVendors, Slots: r.Slots}
}
