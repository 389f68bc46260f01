package queries

import (
	"context"

	"campus-order-service/internal/domain/order"
	"campus-order-service/internal/infra"
	"campus-order-service/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound       = errs.ErrOrderNotFound
	ErrSlotNotFound        = errs.ErrSlotNotFound
	ErrInvalidCursor       = errs.New("invalid cursor")
	ErrInvalidStatusFilter = errs.New("invalid status filter")
)

type OrderReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	List(ctx context.Context, params OrderListParams) ([]*OrderView, error)
}

type CapacityReadStore interface {
	FindBySlotID(ctx context.Context, slotID uuid.UUID) (*SlotCapacityView, error)
}

type OrderQueries interface {
	GetOrder(ctx context.Context, orderID uuid.UUID, viewer Viewer) (*OrderView, error)
	ListStudentOrders(ctx context.Context, studentID string, status string, cursor *Cursor, limit int) ([]*OrderView, *Cursor, error)
	ListVendorOrders(ctx context.Context, vendorID uuid.UUID, status string, cursor *Cursor, limit int) ([]*OrderView, *Cursor, error)
	GetSlotCapacity(ctx context.Context, slotID uuid.UUID) (*SlotCapacityView, error)
}

type orderQueriesImpl struct {
	orders   OrderReadStore
	capacity CapacityReadStore
}

func NewOrderQueries(orders OrderReadStore, capacity CapacityReadStore) OrderQueries {
	return &orderQueriesImpl{orders: orders, capacity: capacity}
}

// GetOrder hides orders the viewer does not own behind ErrOrderNotFound.
func (q *orderQueriesImpl) GetOrder(ctx context.Context, orderID uuid.UUID, viewer Viewer) (*OrderView, error) {
	ov, err := q.orders.FindByID(ctx, orderID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	switch {
	case viewer.Admin:
	case viewer.VendorID != nil && ov.VendorID == *viewer.VendorID:
	case viewer.StudentID != "" && ov.StudentID == viewer.StudentID:
	default:
		return nil, ErrOrderNotFound
	}
	return ov, nil
}

func (q *orderQueriesImpl) ListStudentOrders(ctx context.Context, studentID string, status string, cursor *Cursor, limit int) ([]*OrderView, *Cursor, error) {
	params := OrderListParams{StudentID: &studentID}
	return q.list(ctx, params, status, cursor, limit)
}

func (q *orderQueriesImpl) ListVendorOrders(ctx context.Context, vendorID uuid.UUID, status string, cursor *Cursor, limit int) ([]*OrderView, *Cursor, error) {
	params := OrderListParams{VendorID: &vendorID}
	return q.list(ctx, params, status, cursor, limit)
}

func (q *orderQueriesImpl) list(ctx context.Context, params OrderListParams, status string, cursor *Cursor, limit int) ([]*OrderView, *Cursor, error) {
	if status != "" {
		st, err := order.NewStatus(status)
		if err != nil {
			return nil, nil, ErrInvalidStatusFilter
		}
		s := st.String()
		params.Status = &s
	}

	if cursor != nil && cursor.After != "" {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		params.AfterCreatedAt = &lastCreatedAt
		params.AfterID = lastID
	}

	limit = ValidateLimit(limit)
	// #nosec G115 -- bounded by MaxListLimit
	params.Limit = int32(limit + 1)

	rows, err := q.orders.List(ctx, params)
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}

func (q *orderQueriesImpl) GetSlotCapacity(ctx context.Context, slotID uuid.UUID) (*SlotCapacityView, error) {
	v, err := q.capacity.FindBySlotID(ctx, slotID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	return v, nil
}
