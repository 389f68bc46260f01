//go:build unit || e2e

// Package memstore is an in-memory shared.UnitOfWork. Transactions are
// serialised and rolled back on error, which gives the same observable
// behaviour as row locks taken with SELECT ... FOR UPDATE.
package memstore

import (
	"context"
	"errors"
	"sync"
	"time"

	"campus-order-service/internal/domain/order"
	"campus-order-service/internal/domain/slot"
	"campus-order-service/internal/infra"
	"campus-order-service/internal/infra/db"
	"campus-order-service/internal/pkg/errs"
	"campus-order-service/internal/usecase/shared"

	"github.com/google/uuid"
)

type ledgerRow struct {
	vendorID  uuid.UUID
	max       int
	available int
	syncedAt  time.Time
}

type state struct {
	ledger map[uuid.UUID]ledgerRow
	orders map[uuid.UUID]*order.Order
}

func (s state) clone() state {
	c := state{
		ledger: make(map[uuid.UUID]ledgerRow, len(s.ledger)),
		orders: make(map[uuid.UUID]*order.Order, len(s.orders)),
	}
	for k, v := range s.ledger {
		c.ledger[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = cloneOrder(v)
	}
	return c
}

type Store struct {
	txMu sync.Mutex // held for the whole of Within
	mu   sync.Mutex // guards st for reads outside transactions
	st   state

	// FailUpdateETA, when set, is returned by every UpdateETA call.
	FailUpdateETA error
	Commits       int

	// ConflictNextOnce makes the next WithinOnce run its callback, discard the
	// writes and report a write conflict.
	ConflictNextOnce bool
	OnceTxs          int
}

var _ shared.UnitOfWork = (*Store)(nil)

func New() *Store {
	return &Store{st: state{ledger: map[uuid.UUID]ledgerRow{}, orders: map[uuid.UUID]*order.Order{}}}
}

// SeedSlot puts a fully available ledger row in place.
func (s *Store) SeedSlot(slotID, vendorID uuid.UUID, maxCapacity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.ledger[slotID] = ledgerRow{vendorID: vendorID, max: maxCapacity, available: maxCapacity}
}

func (s *Store) DeleteSlot(slotID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.st.ledger, slotID)
}

// Available returns the slot's available capacity and whether the row exists.
func (s *Store) Available(slotID uuid.UUID) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.st.ledger[slotID]
	return row.available, ok
}

func (s *Store) Max(slotID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.ledger[slotID].max
}

func (s *Store) Order(id uuid.UUID) (*order.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.st.orders[id]
	if !ok {
		return nil, false
	}
	return cloneOrder(o), true
}

func (s *Store) CountOrders(status order.Status) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, o := range s.st.orders {
		if o.Status() == status {
			n++
		}
	}
	return n
}

// LedgerSnapshot returns slot id -> (max, available).
func (s *Store) LedgerSnapshot() map[uuid.UUID][2]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[uuid.UUID][2]int, len(s.st.ledger))
	for k, v := range s.st.ledger {
		out[k] = [2]int{v.max, v.available}
	}
	return out
}

func (s *Store) WithinOnce(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	s.OnceTxs++
	conflict := s.ConflictNextOnce
	s.ConflictNextOnce = false
	s.mu.Unlock()

	if !conflict {
		return s.Within(ctx, fn)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.Lock()
	working := s.st.clone()
	s.mu.Unlock()
	if err := fn(ctx, &memTx{store: s, st: &working}); err != nil {
		return err
	}
	return errs.Mark(errors.New("deadlock detected"), shared.ErrTxConflict)
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	working := s.st.clone()
	s.mu.Unlock()

	if err := fn(ctx, &memTx{store: s, st: &working}); err != nil {
		return err
	}

	s.mu.Lock()
	s.st = working
	s.Commits++
	s.mu.Unlock()
	return nil
}

func (s *Store) CommandReads() shared.CommandReads {
	return &reads{store: s}
}

type memTx struct {
	store *Store
	st    *state
}

func (t *memTx) Ledger() shared.CapacityLedgerRepository { return &ledgerRepo{st: t.st} }
func (t *memTx) Orders() shared.OrderRepository          { return &orderRepo{st: t.st, store: t.store} }
func (t *memTx) DB() db.DBTX                             { return nil }

type ledgerRepo struct {
	st *state
}

func (r *ledgerRepo) GetForUpdate(_ context.Context, _ db.DBTX, slotID uuid.UUID) (*slot.CapacityRecord, error) {
	row, ok := r.st.ledger[slotID]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "capacity record not found", nil)
	}
	return slot.ReconstructCapacityRecord(slotID, row.vendorID, row.max, row.available, row.syncedAt), nil
}

func (r *ledgerRepo) Save(_ context.Context, _ db.DBTX, rec *slot.CapacityRecord) error {
	row, ok := r.st.ledger[rec.SlotID()]
	if !ok {
		return infra.WrapRepoErr(infra.KindNotFound, "capacity record not found", nil)
	}
	row.available = rec.Available()
	r.st.ledger[rec.SlotID()] = row
	return nil
}

func (r *ledgerRepo) Upsert(_ context.Context, _ db.DBTX, rec *slot.CapacityRecord) error {
	r.st.ledger[rec.SlotID()] = ledgerRow{
		vendorID:  rec.VendorID(),
		max:       rec.Max(),
		available: rec.Available(),
		syncedAt:  rec.SyncedAt(),
	}
	return nil
}

type orderRepo struct {
	st    *state
	store *Store
}

func (r *orderRepo) Create(_ context.Context, _ db.DBTX, o *order.Order) error {
	for _, existing := range r.st.orders {
		if existing.StudentID() == o.StudentID() && existing.SlotID() == o.SlotID() &&
			existing.Status() != order.StatusCancelled {
			return infra.WrapRepoErr(infra.KindDuplicateKey, "active booking exists", nil)
		}
	}
	r.st.orders[o.ID()] = cloneOrder(o)
	return nil
}

func (r *orderRepo) FindForUpdate(_ context.Context, _ db.DBTX, orderID uuid.UUID) (*order.Order, error) {
	o, ok := r.st.orders[orderID]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "order not found", nil)
	}
	return cloneOrder(o), nil
}

func (r *orderRepo) UpdateStatus(_ context.Context, _ db.DBTX, o *order.Order) error {
	if _, ok := r.st.orders[o.ID()]; !ok {
		return infra.WrapRepoErr(infra.KindNotFound, "order not found", nil)
	}
	r.st.orders[o.ID()] = cloneOrder(o)
	return nil
}

func (r *orderRepo) UpdateETA(_ context.Context, _ db.DBTX, orderID uuid.UUID, eta order.ETA) error {
	if r.store.FailUpdateETA != nil {
		return r.store.FailUpdateETA
	}
	o, ok := r.st.orders[orderID]
	if !ok {
		return infra.WrapRepoErr(infra.KindNotFound, "order not found", nil)
	}
	o.Annotate(eta)
	return nil
}

type reads struct {
	store *Store
}

func (r *reads) view(fn func(st *state)) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	fn(&r.store.st)
}

func (r *reads) HasActiveBooking(_ context.Context, studentID string, slotID uuid.UUID) (bool, error) {
	var found bool
	r.view(func(st *state) {
		for _, o := range st.orders {
			if o.StudentID() == studentID && o.SlotID() == slotID && o.Status() != order.StatusCancelled {
				found = true
				return
			}
		}
	})
	return found, nil
}

func (r *reads) CountConfirmedByVendor(_ context.Context, vendorID uuid.UUID) (int, error) {
	n := 0
	r.view(func(st *state) {
		for _, o := range st.orders {
			if o.VendorID() == vendorID && o.Status() == order.StatusConfirmed {
				n++
			}
		}
	})
	return n, nil
}

func cloneOrder(o *order.Order) *order.Order {
	items := make([]order.LineItem, len(o.Items()))
	copy(items, o.Items())
	var eta *order.ETA
	if e := o.ETA(); e != nil {
		c := *e
		eta = &c
	}
	return order.ReconstructOrder(o.ID(), o.StudentID(), o.VendorID(), o.SlotID(), o.Status(),
		items, eta, o.CreatedAt(), o.UpdatedAt())
}
