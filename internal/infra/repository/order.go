package repository

import (
	"context"
	"time"

	"campus-order-service/internal/domain/order"
	"campus-order-service/internal/infra"
	"campus-order-service/internal/infra/db"
	"campus-order-service/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	insertOrderSQL = `
INSERT INTO orders (id, student_id, vendor_id, slot_id, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	insertOrderItemSQL = `
INSERT INTO order_items (id, order_id, item_id, quantity, position)
VALUES ($1, $2, $3, $4, $5)`

	selectOrderForUpdateSQL = `
SELECT id, student_id, vendor_id, slot_id, status, estimated_minutes, eta_confidence, created_at, updated_at
FROM orders
WHERE id = $1
FOR UPDATE`

	selectOrderItemsSQL = `
SELECT id, item_id, quantity
FROM order_items
WHERE order_id = $1
ORDER BY position`

	updateOrderStatusSQL = `
UPDATE orders
SET status = $2, updated_at = $3
WHERE id = $1`

	updateOrderETASQL = `
UPDATE orders
SET estimated_minutes = $2, eta_confidence = $3
WHERE id = $1`
)

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Create inserts the order and its line items. A second live order for the same
// student and slot fails with KindDuplicateKey via uq_orders_active_booking.
func (r *OrderRepository) Create(ctx context.Context, tx db.DBTX, o *order.Order) error {
	_, err := tx.Exec(ctx, insertOrderSQL,
		o.ID(), o.StudentID(), o.VendorID(), o.SlotID(), o.Status().String(), o.CreatedAt(), o.UpdatedAt())
	if err != nil {
		return infra.ClassifyPgErr("failed to create order", err)
	}

	for i, li := range o.Items() {
		if _, err := tx.Exec(ctx, insertOrderItemSQL, li.ID(), o.ID(), li.ItemID(), li.Quantity(), i); err != nil {
			return infra.ClassifyPgErr("failed to create order item", err)
		}
	}
	return nil
}

func (r *OrderRepository) FindForUpdate(ctx context.Context, tx db.DBTX, orderID uuid.UUID) (*order.Order, error) {
	var (
		id, vendorID, slotID uuid.UUID
		studentID, status    string
		minutes              pgtype.Int4
		confidence           pgtype.Float8
		createdAt, updatedAt time.Time
	)
	err := tx.QueryRow(ctx, selectOrderForUpdateSQL, orderID).
		Scan(&id, &studentID, &vendorID, &slotID, &status, &minutes, &confidence, &createdAt, &updatedAt)
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to lock order", err)
	}

	st, err := order.NewStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "unknown order status "+status, err)
	}

	eta, err := etaFromColumns(minutes, confidence)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "invalid eta columns", err)
	}

	items, err := r.loadItems(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	return order.ReconstructOrder(id, studentID, vendorID, slotID, st, items, eta, createdAt, updatedAt), nil
}

func (r *OrderRepository) loadItems(ctx context.Context, tx db.DBTX, orderID uuid.UUID) ([]order.LineItem, error) {
	rows, err := tx.Query(ctx, selectOrderItemsSQL, orderID)
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to load order items", err)
	}
	defer rows.Close()

	var items []order.LineItem
	for rows.Next() {
		var (
			id, itemID uuid.UUID
			quantity   int32
		)
		if err := rows.Scan(&id, &itemID, &quantity); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan order item", err)
		}
		items = append(items, order.ReconstructLineItem(id, itemID, int(quantity)))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to iterate order items", err)
	}
	return items, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, tx db.DBTX, o *order.Order) error {
	tag, err := tx.Exec(ctx, updateOrderStatusSQL, o.ID(), o.Status().String(), o.UpdatedAt())
	if err != nil {
		return infra.ClassifyPgErr("failed to update order status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "order not found", nil)
	}
	return nil
}

func (r *OrderRepository) UpdateETA(ctx context.Context, tx db.DBTX, orderID uuid.UUID, eta order.ETA) error {
	minutes := eta.Minutes()
	confidence := eta.Confidence()
	_, err := tx.Exec(ctx, updateOrderETASQL, orderID,
		pgconv.IntPtrToPgtype(&minutes), pgconv.Float64PtrToPgtype(&confidence))
	if err != nil {
		return infra.ClassifyPgErr("failed to annotate order eta", err)
	}
	return nil
}

func etaFromColumns(minutes pgtype.Int4, confidence pgtype.Float8) (*order.ETA, error) {
	m := pgconv.IntPtrFromPgtype(minutes)
	if m == nil {
		return nil, nil
	}
	c, err := pgconv.Float64PtrFromPgtype(confidence)
	if err != nil {
		return nil, err
	}
	conf := 0.0
	if c != nil {
		conf = *c
	}
	eta, err := order.NewETA(*m, conf)
	if err != nil {
		return nil, err
	}
	return &eta, nil
}
