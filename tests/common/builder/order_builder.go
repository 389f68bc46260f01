//go:build unit || e2e

package builder

import (
	"time"

	"campus-order-service/internal/domain/order"
	reqdto "campus-order-service/internal/handler/dto/request"
	"campus-order-service/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderBuilder struct {
	ID        uuid.UUID
	StudentID string
	VendorID  uuid.UUID
	SlotID    uuid.UUID
	Status    order.Status
	Items     []reqdto.LineItemRequest
	ETA       *order.ETA
	CreatedAt time.Time
}

func NewOrderBuilder() *OrderBuilder {
	return &OrderBuilder{
		ID:        uuid.New(),
		StudentID: "+919800000001",
		VendorID:  uuid.New(),
		SlotID:    uuid.New(),
		Status:    order.StatusConfirmed,
		Items:     []reqdto.LineItemRequest{{ItemID: uuid.New(), Quantity: 2}},
		CreatedAt: time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC),
	}
}

func (b *OrderBuilder) With(mutate func(*OrderBuilder)) *OrderBuilder {
	mutate(b)
	return b
}

func (b *OrderBuilder) BuildRequest() reqdto.CreateOrderRequest {
	return reqdto.CreateOrderRequest{SlotID: b.SlotID, Items: b.Items}
}

func (b *OrderBuilder) BuildDomain() *order.Order {
	items := make([]order.LineItem, len(b.Items))
	for i, it := range b.Items {
		items[i] = order.ReconstructLineItem(uuid.New(), it.ItemID, it.Quantity)
	}
	return order.ReconstructOrder(b.ID, b.StudentID, b.VendorID, b.SlotID, b.Status, items, b.ETA, b.CreatedAt, b.CreatedAt)
}

func (b *OrderBuilder) BuildView() *queries.OrderView {
	v := &queries.OrderView{
		ID:        b.ID,
		StudentID: b.StudentID,
		VendorID:  b.VendorID,
		SlotID:    b.SlotID,
		Status:    b.Status.String(),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.CreatedAt,
	}
	if b.ETA != nil {
		minutes, confidence := b.ETA.Minutes(), b.ETA.Confidence()
		v.EstimatedMinutes = &minutes
		v.ETAConfidence = &confidence
	}
	for _, it := range b.Items {
		v.Items = append(v.Items, queries.OrderItemView{ItemID: it.ItemID, Quantity: it.Quantity})
	}
	return v
}
