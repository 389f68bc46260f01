package commands

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"campus-order-service/internal/domain/order"
	"campus-order-service/internal/domain/slot"
	"campus-order-service/internal/infra"
	"campus-order-service/internal/pkg/clock"
	"campus-order-service/internal/pkg/errs"
	"campus-order-service/internal/usecase/shared"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const slotLockPrefix = "slot_lock:"

const (
	opCreate   = "create"
	opCancel   = "cancel"
	opComplete = "complete"
)

type BookingCommands interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (*order.Order, error)
	CancelOrder(ctx context.Context, orderID uuid.UUID, studentID string) (*order.Order, error)
	CompleteOrder(ctx context.Context, orderID, vendorID uuid.UUID) (*order.Order, error)
	SyncCapacity(ctx context.Context) (*SyncResult, error)
}

type BookingOptions struct {
	LockTTL         time.Duration
	SyncConcurrency int
}

type bookingCommandsImpl struct {
	catalog  shared.SlotCatalog
	eta      shared.ETAAnnotator
	locker   shared.SlotLocker
	uow      shared.UnitOfWork
	clock    clock.Clock
	observer shared.BookingObserver
	logger   *slog.Logger
	opts     BookingOptions
}

func NewBookingCommands(
	catalog shared.SlotCatalog,
	eta shared.ETAAnnotator,
	locker shared.SlotLocker,
	uow shared.UnitOfWork,
	clock clock.Clock,
	observer shared.BookingObserver,
	logger *slog.Logger,
	opts BookingOptions,
) BookingCommands {
	if observer == nil {
		observer = shared.NopObserver{}
	}
	if opts.SyncConcurrency < 1 {
		opts.SyncConcurrency = 1
	}
	return &bookingCommandsImpl{
		catalog:  catalog,
		eta:      eta,
		locker:   locker,
		uow:      uow,
		clock:    clock,
		observer: observer,
		logger:   logger,
		opts:     opts,
	}
}

func (b *bookingCommandsImpl) CreateOrder(ctx context.Context, in CreateOrderInput) (*order.Order, error) {
	created, err := b.createOrder(ctx, in)
	b.observer.BookingOutcome(opCreate, outcomeOf(err))
	return created, err
}

func (b *bookingCommandsImpl) createOrder(ctx context.Context, in CreateOrderInput) (*order.Order, error) {
	items, err := toLineItems(in.Items)
	if err != nil {
		return nil, err
	}

	slotInfo, err := b.catalog.GetSlot(ctx, in.SlotID)
	if err != nil {
		b.logger.InfoContext(ctx, "slot lookup failed", "slot_id", in.SlotID, "error", err)
		return nil, errs.Mark(err, errs.ErrSlotNotFound)
	}

	booked, err := b.uow.CommandReads().HasActiveBooking(ctx, in.StudentID, in.SlotID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if booked {
		return nil, errs.ErrDuplicateBooking
	}

	lease, err := b.locker.Acquire(ctx, slotLockPrefix+in.SlotID.String(), b.opts.LockTTL)
	if err != nil {
		if errs.Is(err, shared.ErrLockNotAcquired) {
			b.observer.LockContended()
			return nil, errs.Mark(err, errs.ErrSlotContended)
		}
		b.logger.ErrorContext(ctx, "slot lock unavailable", "slot_id", in.SlotID, "error", err)
		return nil, errs.Mark(err, errs.ErrLockUnavailable)
	}
	release := b.releaser(lease)
	defer release(ctx)

	var created *order.Order
	err = b.uow.WithinOnce(ctx, func(ctx context.Context, tx shared.Tx) error {
		rec, err := tx.Ledger().GetForUpdate(ctx, tx.DB(), in.SlotID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				b.reportMissingReservation(ctx, opCreate, in.SlotID, uuid.Nil)
				return errs.Mark(err, errs.ErrReservationMissing)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := rec.Reserve(); err != nil {
			return errs.Mark(err, errs.ErrSlotFull)
		}
		if err := tx.Ledger().Save(ctx, tx.DB(), rec); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		o, err := order.NewConfirmedOrder(in.StudentID, slotInfo.VendorID, in.SlotID, items, b.clock.Now())
		if err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}
		if err := tx.Orders().Create(ctx, tx.DB(), o); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, errs.ErrDuplicateBooking)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		created = o
		return nil
	})
	release(ctx)
	if errs.Is(err, shared.ErrTxConflict) {
		return nil, errs.Mark(err, errs.ErrSlotContended)
	}
	if err != nil {
		return nil, err
	}

	b.logger.InfoContext(ctx, "order confirmed",
		"order_id", created.ID(), "slot_id", created.SlotID(), "vendor_id", created.VendorID())

	b.annotateETA(ctx, created)
	return created, nil
}

// releaser returns an idempotent release so the lease can be dropped as soon as
// the ledger transaction ends while a deferred call still covers early returns.
func (b *bookingCommandsImpl) releaser(lease shared.Lease) func(context.Context) {
	var once sync.Once
	return func(ctx context.Context) {
		once.Do(func() {
			released, err := lease.Release(context.WithoutCancel(ctx))
			if err != nil {
				b.logger.WarnContext(ctx, "failed to release slot lock", "key", lease.Key(), "error", err)
				return
			}
			if !released {
				b.logger.WarnContext(ctx, "slot lock expired before release", "key", lease.Key())
			}
		})
	}
}

func (b *bookingCommandsImpl) annotateETA(ctx context.Context, o *order.Order) {
	load, err := b.uow.CommandReads().CountConfirmedByVendor(ctx, o.VendorID())
	if err != nil {
		b.logger.WarnContext(ctx, "eta skipped: vendor load unavailable", "order_id", o.ID(), "error", err)
		return
	}

	now := b.clock.Now().UTC()
	est, err := b.eta.Predict(ctx, shared.ETARequest{
		VendorID:      o.VendorID(),
		SlotID:        o.SlotID(),
		CurrentOrders: load,
		TimeOfDay:     timeOfDay(now),
		DayOfWeek:     strings.ToLower(now.Weekday().String()),
	})
	if err != nil {
		b.logger.WarnContext(ctx, "eta prediction failed", "order_id", o.ID(), "error", err)
		return
	}

	eta, err := order.NewETA(est.EstimatedMinutes, est.Confidence)
	if err != nil {
		b.logger.WarnContext(ctx, "eta prediction rejected", "order_id", o.ID(), "error", err)
		return
	}
	err = b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Orders().UpdateETA(ctx, tx.DB(), o.ID(), eta)
	})
	if err != nil {
		b.logger.WarnContext(ctx, "failed to save eta", "order_id", o.ID(), "error", err)
		return
	}
	o.Annotate(eta)
}

func (b *bookingCommandsImpl) CancelOrder(ctx context.Context, orderID uuid.UUID, studentID string) (*order.Order, error) {
	var cancelled *order.Order
	err := b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := b.findOrderForUpdate(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if !o.OwnedByStudent(studentID) {
			return errs.Mark(errs.Newf("order %s is not owned by caller", orderID), errs.ErrOrderNotFound)
		}
		if err := o.Cancel(b.clock.Now()); err != nil {
			return errs.Mark(err, errs.ErrInvalidState)
		}

		rec, err := tx.Ledger().GetForUpdate(ctx, tx.DB(), o.SlotID())
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				b.reportMissingReservation(ctx, opCancel, o.SlotID(), o.ID())
				return errs.Mark(err, errs.ErrReservationMissing)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := rec.Release(); err != nil {
			// Capacity is already at max, typically after a resync refilled the slot.
			b.logger.WarnContext(ctx, "capacity release skipped", "slot_id", o.SlotID(), "order_id", o.ID(), "error", err)
		} else if err := tx.Ledger().Save(ctx, tx.DB(), rec); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if err := tx.Orders().UpdateStatus(ctx, tx.DB(), o); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		cancelled = o
		return nil
	})
	b.observer.BookingOutcome(opCancel, outcomeOf(err))
	if err != nil {
		return nil, err
	}
	b.logger.InfoContext(ctx, "order cancelled", "order_id", orderID, "slot_id", cancelled.SlotID())
	return cancelled, nil
}

func (b *bookingCommandsImpl) CompleteOrder(ctx context.Context, orderID, vendorID uuid.UUID) (*order.Order, error) {
	var completed *order.Order
	err := b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := b.findOrderForUpdate(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if !o.OwnedByVendor(vendorID) {
			return errs.Mark(errs.Newf("order %s does not belong to vendor", orderID), errs.ErrOrderNotFound)
		}
		if err := o.Complete(b.clock.Now()); err != nil {
			return errs.Mark(err, errs.ErrInvalidState)
		}
		if err := tx.Orders().UpdateStatus(ctx, tx.DB(), o); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		completed = o
		return nil
	})
	b.observer.BookingOutcome(opComplete, outcomeOf(err))
	if err != nil {
		return nil, err
	}
	b.logger.InfoContext(ctx, "order completed", "order_id", orderID, "vendor_id", vendorID)
	return completed, nil
}

func (b *bookingCommandsImpl) findOrderForUpdate(ctx context.Context, tx shared.Tx, orderID uuid.UUID) (*order.Order, error) {
	o, err := tx.Orders().FindForUpdate(ctx, tx.DB(), orderID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrOrderNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return o, nil
}

func (b *bookingCommandsImpl) reportMissingReservation(ctx context.Context, op string, slotID, orderID uuid.UUID) {
	b.observer.ReservationMissing(op)
	b.logger.ErrorContext(ctx, "capacity ledger row missing",
		"alert", true, "op", op, "slot_id", slotID, "order_id", orderID)
}

// SyncCapacity mirrors every catalog slot into the ledger. Existing rows are
// refilled to the catalog's max, so reservations held at sync time are not
// subtracted. A vendor whose slots cannot be listed is skipped.
func (b *bookingCommandsImpl) SyncCapacity(ctx context.Context) (*SyncResult, error) {
	result, err := b.syncCapacity(ctx)
	if result == nil {
		b.observer.SyncFinished(0, 0, 0, err)
	} else {
		b.observer.SyncFinished(result.Vendors, result.Slots, result.SkippedVendors, err)
	}
	return result, err
}

func (b *bookingCommandsImpl) syncCapacity(ctx context.Context) (*SyncResult, error) {
	vendors, err := b.catalog.ListVendors(ctx)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrCatalogUnavailable)
	}

	var (
		mu      sync.Mutex
		slots   = make(map[uuid.UUID]shared.SlotInfo)
		skipped int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.opts.SyncConcurrency)
	for _, v := range vendors {
		g.Go(func() error {
			listed, err := b.catalog.ListSlotsByVendor(gctx, v)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				skipped++
				b.logger.WarnContext(gctx, "skipping vendor in capacity sync", "vendor_id", v.ID, "error", err)
				return nil
			}
			for _, s := range listed {
				slots[s.ID] = s
			}
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "capacity sync interrupted")
	}

	now := b.clock.Now()
	records := make([]*slot.CapacityRecord, 0, len(slots))
	for _, s := range slots {
		rec, err := slot.NewCapacityRecord(s.ID, s.VendorID, s.MaxCapacity, now)
		if err != nil {
			b.logger.WarnContext(ctx, "skipping slot with invalid capacity",
				"slot_id", s.ID, "max_capacity", s.MaxCapacity)
			continue
		}
		records = append(records, rec)
	}

	err = b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		for _, rec := range records {
			if err := tx.Ledger().Upsert(ctx, tx.DB(), rec); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &SyncResult{Vendors: len(vendors), SkippedVendors: skipped, Slots: len(records)}
	b.logger.InfoContext(ctx, "capacity sync finished",
		"vendors", result.Vendors, "skipped_vendors", result.SkippedVendors, "slots", result.Slots)
	return result, nil
}

func toLineItems(in []LineItemInput) ([]order.LineItem, error) {
	if len(in) == 0 {
		return nil, errs.Mark(order.ErrNoLineItems, errs.ErrInvalidLineItems)
	}
	items := make([]order.LineItem, 0, len(in))
	for _, li := range in {
		item, err := order.NewLineItem(li.ItemID, li.Quantity)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrInvalidLineItems)
		}
		items = append(items, item)
	}
	return items, nil
}

// timeOfDay buckets a UTC time the way the ETA model was trained.
func timeOfDay(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 6 && h < 12:
		return "morning"
	case h >= 12 && h < 17:
		return "afternoon"
	default:
		return "evening"
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case errs.Is(err, errs.ErrSlotFull):
		return "slot_full"
	case errs.Is(err, errs.ErrSlotContended):
		return "contended"
	case errs.Is(err, errs.ErrDuplicateBooking):
		return "duplicate"
	case errs.Is(err, errs.ErrSlotNotFound), errs.Is(err, errs.ErrOrderNotFound):
		return "not_found"
	case errs.Is(err, errs.ErrInvalidState):
		return "invalid_state"
	case errs.Is(err, errs.ErrInvalidLineItems):
		return "invalid_request"
	case errs.Is(err, errs.ErrReservationMissing):
		return "reservation_missing"
	default:
		return "error"
	}
}
