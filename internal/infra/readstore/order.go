package readstore

import (
	"context"
	"time"

	"campus-order-service/internal/infra"
	"campus-order-service/internal/infra/db"
	"campus-order-service/internal/pkg/pgconv"
	"campus-order-service/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	orderColumns = `id, student_id, vendor_id, slot_id, status, estimated_minutes, eta_confidence, created_at, updated_at`

	selectOrderViewSQL = `
SELECT ` + orderColumns + `
FROM orders
WHERE id = $1`

	listOrderViewsSQL = `
SELECT ` + orderColumns + `
FROM orders
WHERE ($1::text IS NULL OR student_id = $1)
  AND ($2::uuid IS NULL OR vendor_id = $2)
  AND ($3::text IS NULL OR status = $3)
  AND ($4::timestamptz IS NULL OR (created_at, id) < ($4, $5::uuid))
ORDER BY created_at DESC, id DESC
LIMIT $6`

	selectItemsForOrdersSQL = `
SELECT order_id, item_id, quantity
FROM order_items
WHERE order_id = ANY($1::uuid[])
ORDER BY order_id, position`
)

type OrderReadStore struct {
	db db.DBTX
}

func NewOrderReadStore(db db.DBTX) *OrderReadStore {
	return &OrderReadStore{db: db}
}

func (r *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	rows, err := r.db.Query(ctx, selectOrderViewSQL, id)
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to get order view", err)
	}
	views, err := r.collect(ctx, rows)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "order not found", nil)
	}
	return views[0], nil
}

func (r *OrderReadStore) List(ctx context.Context, p queries.OrderListParams) ([]*queries.OrderView, error) {
	rows, err := r.db.Query(ctx, listOrderViewsSQL,
		p.StudentID, p.VendorID, p.Status, p.AfterCreatedAt, p.AfterID, p.Limit)
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to list orders", err)
	}
	return r.collect(ctx, rows)
}

func (r *OrderReadStore) collect(ctx context.Context, rows pgx.Rows) ([]*queries.OrderView, error) {
	defer rows.Close()

	var views []*queries.OrderView
	for rows.Next() {
		var (
			v          queries.OrderView
			minutes    pgtype.Int4
			confidence pgtype.Float8
			createdAt  time.Time
			updatedAt  time.Time
		)
		if err := rows.Scan(&v.ID, &v.StudentID, &v.VendorID, &v.SlotID, &v.Status,
			&minutes, &confidence, &createdAt, &updatedAt); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan order view", err)
		}
		conf, err := pgconv.Float64PtrFromPgtype(confidence)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "invalid eta confidence", err)
		}
		v.EstimatedMinutes = pgconv.IntPtrFromPgtype(minutes)
		v.ETAConfidence = conf
		v.CreatedAt = createdAt
		v.UpdatedAt = updatedAt
		v.Items = []queries.OrderItemView{}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to iterate orders", err)
	}
	rows.Close()

	if len(views) == 0 {
		return views, nil
	}
	if err := r.attachItems(ctx, views); err != nil {
		return nil, err
	}
	return views, nil
}

func (r *OrderReadStore) attachItems(ctx context.Context, views []*queries.OrderView) error {
	ids := make([]string, len(views))
	byID := make(map[uuid.UUID]*queries.OrderView, len(views))
	for i, v := range views {
		ids[i] = v.ID.String()
		byID[v.ID] = v
	}

	rows, err := r.db.Query(ctx, selectItemsForOrdersSQL, ids)
	if err != nil {
		return infra.ClassifyPgErr("failed to load order items", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID, itemID uuid.UUID
			quantity        int32
		)
		if err := rows.Scan(&orderID, &itemID, &quantity); err != nil {
			return infra.WrapRepoErr(infra.KindDBFailure, "failed to scan order item", err)
		}
		if v, ok := byID[orderID]; ok {
			v.Items = append(v.Items, queries.OrderItemView{ItemID: itemID, Quantity: int(quantity)})
		}
	}
	if err := rows.Err(); err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to iterate order items", err)
	}
	return nil
}
