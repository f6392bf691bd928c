package commands

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"slotbooker/internal/domain/booking"
	"slotbooker/internal/domain/slot"
	"slotbooker/internal/infra"
	"slotbooker/internal/pkg/clock"
	"slotbooker/internal/pkg/config"
	"slotbooker/internal/pkg/errs"

	"github.com/google/uuid"
)

type BookingUseCase interface {
	CreateHold(ctx context.Context, actor, idempotencyKey string, in CreateHoldInput) (CreateHoldResult, error)
	ConfirmBooking(ctx context.Context, id uuid.UUID) (ConfirmResult, error)
	CancelBooking(ctx context.Context, id uuid.UUID) error
	RescheduleBooking(ctx context.Context, in RescheduleInput) error
}

type BookingCommands struct {
	tx       TxRunner
	slots    SlotRepository
	bookings BookingRepository
	idem     IdempotencyRepository
	notifier Notifier
	clock    clock.Clock
	cfg      config.BookingConfig
}

var _ BookingUseCase = (*BookingCommands)(nil)

func NewBookingCommands(
	tx TxRunner,
	slots SlotRepository,
	bookings BookingRepository,
	idem IdempotencyRepository,
	notifier Notifier,
	clk clock.Clock,
	cfg config.BookingConfig,
) *BookingCommands {
	return &BookingCommands{
		tx:       tx,
		slots:    slots,
		bookings: bookings,
		idem:     idem,
		notifier: notifier,
		clock:    clk,
		cfg:      cfg,
	}
}

// CreateHold places a hold on one unit of slot capacity. The idempotency
// record and the ledger mutation commit in the same transaction, so a
// recorded key always points at a booking that exists.
func (s *BookingCommands) CreateHold(ctx context.Context, actor, idempotencyKey string, in CreateHoldInput) (CreateHoldResult, error) {
	if strings.TrimSpace(idempotencyKey) == "" {
		return CreateHoldResult{}, errs.ErrIdempotencyKeyRequired
	}
	customer, err := booking.NewCustomer(in.CustomerName, in.CustomerPhone, in.CustomerEmail)
	if err != nil {
		return CreateHoldResult{}, errs.Mark(err, errs.ErrDomainValidation)
	}
	hash, err := fingerprint(endpointCreateHold, in)
	if err != nil {
		return CreateHoldResult{}, errs.Mark(err, errs.ErrIdempotencyCheckFailed)
	}

	now := s.clock.Now().UTC()
	var (
		result        CreateHoldResult
		events        []Event
		invariantSlot *uuid.UUID
	)
	err = s.tx.Within(ctx, func(ctx context.Context, db infra.DBTX) error {
		rec := IdempotencyRecord{
			Key:         idempotencyKey,
			Actor:       actor,
			Endpoint:    endpointCreateHold,
			RequestHash: hash,
			Status:      IdempotencyProcessing,
			ExpiresAt:   now.Add(s.cfg.IdempotencyRetention),
		}
		claimed, err := s.idem.TryInsert(ctx, db, rec)
		if err != nil {
			return errs.Mark(err, errs.ErrIdempotencyCheckFailed)
		}
		if !claimed {
			existing, err := s.idem.Get(ctx, db, idempotencyKey, actor)
			if err != nil {
				return errs.Mark(err, errs.ErrIdempotencyCheckFailed)
			}
			switch {
			case !existing.ExpiresAt.After(now):
				// Past retention: the old outcome is gone, reclaim the key.
				if err := s.idem.Reset(ctx, db, rec); err != nil {
					return errs.Mark(err, errs.ErrIdempotencyCheckFailed)
				}
			case existing.RequestHash != hash:
				return errs.ErrIdempotencyKeyReused
			case existing.Status == IdempotencyCompleted:
				if existing.ResultBookingID == nil {
					return errs.ErrIdempotencyCheckFailed
				}
				prior, err := s.bookings.GetForUpdate(ctx, db, *existing.ResultBookingID)
				if err != nil {
					return errs.Mark(err, errs.ErrIdempotencyCheckFailed)
				}
				result = CreateHoldResult{
					BookingID:     prior.ID(),
					Status:        prior.Status().String(),
					HoldExpiresAt: prior.HoldExpiresAt(),
					Replayed:      true,
				}
				return nil
			default:
				return errs.ErrIdempotencyInProgress
			}
		}

		sl, err := s.slots.GetForUpdate(ctx, db, in.SlotID)
		if err != nil {
			return s.mapSlotLoadErr(err, in.SlotID, &invariantSlot)
		}
		if err := s.expireOverdueForSlot(ctx, db, sl, now, &events); err != nil {
			return err
		}
		if err := sl.AcquireHold(); err != nil {
			return mapLedgerErr(err)
		}

		b := booking.NewHold(in.SlotID, actor, customer, in.Notes, in.Source, now, s.cfg.HoldTTL)
		if err := s.bookings.Create(ctx, db, b); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := s.slots.UpdateCounters(ctx, db, sl); err != nil {
			return s.mapCounterErr(err, sl.ID(), &invariantSlot)
		}
		if err := s.idem.MarkCompleted(ctx, db, idempotencyKey, actor, b.ID()); err != nil {
			return errs.Mark(err, errs.ErrIdempotencyCheckFailed)
		}

		result = CreateHoldResult{
			BookingID:     b.ID(),
			Status:        b.Status().String(),
			HoldExpiresAt: b.HoldExpiresAt(),
		}
		events = append(events, Event{Kind: EventBookingCreated, BookingID: b.ID(), SlotID: sl.ID(), Actor: actor, At: now})
		return nil
	})
	if err != nil {
		s.blockAfterInvariant(ctx, invariantSlot)
		return CreateHoldResult{}, err
	}

	s.emit(ctx, events)
	return result, nil
}

// ConfirmBooking promotes a held unit to booked. Confirming an already
// confirmed booking replays the success. A hold found past its deadline
// is released as expired; that release commits even though the call
// fails with ErrHoldExpired.
func (s *BookingCommands) ConfirmBooking(ctx context.Context, id uuid.UUID) (ConfirmResult, error) {
	now := s.clock.Now().UTC()
	var (
		result        ConfirmResult
		confirmErr    error
		events        []Event
		invariantSlot *uuid.UUID
	)
	err := s.tx.Within(ctx, func(ctx context.Context, db infra.DBTX) error {
		b, err := s.bookings.GetForUpdate(ctx, db, id)
		if err != nil {
			return mapBookingLoadErr(err)
		}
		if b.Status() == booking.StatusConfirmed {
			result = ConfirmResult{BookingID: b.ID(), Status: b.Status().String()}
			return nil
		}

		sl, err := s.slots.GetForUpdate(ctx, db, b.SlotID())
		if err != nil {
			return s.mapSlotLoadErr(err, b.SlotID(), &invariantSlot)
		}

		if b.HoldExpiredAt(now) {
			if err := s.releaseExpired(ctx, db, b, sl, now, &events); err != nil {
				return err
			}
			if err := s.slots.UpdateCounters(ctx, db, sl); err != nil {
				return s.mapCounterErr(err, sl.ID(), &invariantSlot)
			}
			confirmErr = errs.ErrHoldExpired
			return nil
		}

		if err := b.Confirm(now); err != nil {
			return mapTransitionErr(err)
		}
		if err := sl.PromoteHold(); err != nil {
			return mapLedgerErr(err)
		}
		if err := s.bookings.UpdateStatus(ctx, db, b); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := s.slots.UpdateCounters(ctx, db, sl); err != nil {
			return s.mapCounterErr(err, sl.ID(), &invariantSlot)
		}

		result = ConfirmResult{BookingID: b.ID(), Status: b.Status().String()}
		events = append(events, Event{Kind: EventBookingConfirmed, BookingID: b.ID(), SlotID: sl.ID(), Actor: b.Actor(), At: now})
		return nil
	})
	if err != nil {
		s.blockAfterInvariant(ctx, invariantSlot)
		return ConfirmResult{}, err
	}

	s.emit(ctx, events)
	if confirmErr != nil {
		return ConfirmResult{}, confirmErr
	}
	return result, nil
}

// CancelBooking releases a held or confirmed unit back to the slot.
func (s *BookingCommands) CancelBooking(ctx context.Context, id uuid.UUID) error {
	now := s.clock.Now().UTC()
	var (
		events        []Event
		invariantSlot *uuid.UUID
	)
	err := s.tx.Within(ctx, func(ctx context.Context, db infra.DBTX) error {
		b, err := s.bookings.GetForUpdate(ctx, db, id)
		if err != nil {
			return mapBookingLoadErr(err)
		}
		wasHeld := b.Status() == booking.StatusHeld
		if err := b.Cancel(now); err != nil {
			return mapTransitionErr(err)
		}

		sl, err := s.slots.GetForUpdate(ctx, db, b.SlotID())
		if err != nil {
			return s.mapSlotLoadErr(err, b.SlotID(), &invariantSlot)
		}
		if wasHeld {
			err = sl.ReleaseHold()
		} else {
			err = sl.ReleaseBooked()
		}
		if err != nil {
			return mapLedgerErr(err)
		}

		if err := s.bookings.UpdateStatus(ctx, db, b); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := s.slots.UpdateCounters(ctx, db, sl); err != nil {
			return s.mapCounterErr(err, sl.ID(), &invariantSlot)
		}

		events = append(events, Event{Kind: EventBookingCancelled, BookingID: b.ID(), SlotID: sl.ID(), Actor: b.Actor(), At: now})
		return nil
	})
	if err != nil {
		s.blockAfterInvariant(ctx, invariantSlot)
		return err
	}

	s.emit(ctx, events)
	return nil
}

// RescheduleBooking moves a booking to another slot in one transaction.
// Both slot rows are locked in id order so two opposing reschedules
// cannot deadlock. Any failure leaves the original booking untouched.
func (s *BookingCommands) RescheduleBooking(ctx context.Context, in RescheduleInput) error {
	now := s.clock.Now().UTC()
	var (
		events        []Event
		invariantSlot *uuid.UUID
	)
	err := s.tx.Within(ctx, func(ctx context.Context, db infra.DBTX) error {
		b, err := s.bookings.GetForUpdate(ctx, db, in.BookingID)
		if err != nil {
			return mapBookingLoadErr(err)
		}
		oldSlotID := b.SlotID()
		if oldSlotID == in.NewSlotID {
			return nil
		}
		wasHeld := b.Status() == booking.StatusHeld

		oldSlot, newSlot, err := s.lockSlotPair(ctx, db, oldSlotID, in.NewSlotID, &invariantSlot)
		if err != nil {
			return err
		}

		if err := b.Reschedule(in.NewSlotID, now, s.cfg.HoldTTL); err != nil {
			return mapTransitionErr(err)
		}

		if wasHeld {
			err = oldSlot.ReleaseHold()
		} else {
			err = oldSlot.ReleaseBooked()
		}
		if err != nil {
			return mapLedgerErr(err)
		}
		if wasHeld {
			err = newSlot.AcquireHold()
		} else {
			err = newSlot.AcquireBooked()
		}
		if err != nil {
			return mapLedgerErr(err)
		}

		if err := s.bookings.UpdateStatus(ctx, db, b); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := s.slots.UpdateCounters(ctx, db, oldSlot); err != nil {
			return s.mapCounterErr(err, oldSlot.ID(), &invariantSlot)
		}
		if err := s.slots.UpdateCounters(ctx, db, newSlot); err != nil {
			return s.mapCounterErr(err, newSlot.ID(), &invariantSlot)
		}

		events = append(events, Event{Kind: EventBookingRescheduled, BookingID: b.ID(), SlotID: in.NewSlotID, Actor: b.Actor(), At: now})
		return nil
	})
	if err != nil {
		s.blockAfterInvariant(ctx, invariantSlot)
		return err
	}

	s.emit(ctx, events)
	return nil
}

func (s *BookingCommands) lockSlotPair(ctx context.Context, db infra.DBTX, a, b uuid.UUID, invariantSlot **uuid.UUID) (slotA, slotB *slot.Slot, err error) {
	first, second := a, b
	if bytes.Compare(b[:], a[:]) < 0 {
		first, second = b, a
	}

	locked := map[uuid.UUID]*slot.Slot{}
	for _, id := range []uuid.UUID{first, second} {
		sl, err := s.slots.GetForUpdate(ctx, db, id)
		if err != nil {
			return nil, nil, s.mapSlotLoadErr(err, id, invariantSlot)
		}
		locked[id] = sl
	}
	return locked[a], locked[b], nil
}

// expireOverdueForSlot releases this slot's stale holds inside the
// current transaction. Without this a fully-held slot whose holds have
// lapsed could never accept a new hold between sweeper runs.
func (s *BookingCommands) expireOverdueForSlot(ctx context.Context, db infra.DBTX, sl *slot.Slot, now time.Time, events *[]Event) error {
	overdue, err := s.bookings.ListOverdueHeldBySlotForUpdate(ctx, db, sl.ID(), now)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	for _, b := range overdue {
		if err := s.releaseExpired(ctx, db, b, sl, now, events); err != nil {
			return err
		}
	}
	return nil
}

func (s *BookingCommands) releaseExpired(ctx context.Context, db infra.DBTX, b *booking.Booking, sl *slot.Slot, now time.Time, events *[]Event) error {
	if err := b.Expire(now); err != nil {
		return mapTransitionErr(err)
	}
	if err := s.bookings.UpdateStatus(ctx, db, b); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if err := sl.ReleaseHold(); err != nil {
		// Counters already understate holds; expire the booking anyway.
		slog.Warn("hold counter mismatch while expiring",
			"slot_id", sl.ID().String(), "booking_id", b.ID().String())
	}
	*events = append(*events, Event{Kind: EventBookingExpired, BookingID: b.ID(), SlotID: sl.ID(), Actor: b.Actor(), At: now})
	return nil
}

func (s *BookingCommands) emit(ctx context.Context, events []Event) {
	for _, ev := range events {
		s.notifier.Notify(ctx, ev)
	}
}

func (s *BookingCommands) mapSlotLoadErr(err error, slotID uuid.UUID, invariantSlot **uuid.UUID) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, errs.ErrSlotNotFound)
	case infra.IsKind(err, infra.KindInvariant):
		id := slotID
		*invariantSlot = &id
		return errs.Mark(err, errs.ErrInvariantViolation)
	default:
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
}

func (s *BookingCommands) mapCounterErr(err error, slotID uuid.UUID, invariantSlot **uuid.UUID) error {
	if infra.IsKind(err, infra.KindInvariant) {
		id := slotID
		*invariantSlot = &id
		return errs.Mark(err, errs.ErrInvariantViolation)
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}

// blockAfterInvariant runs outside the failed transaction: the rollback
// has already happened, and the slot must stop taking mutations until an
// operator looks at it.
func (s *BookingCommands) blockAfterInvariant(ctx context.Context, slotID *uuid.UUID) {
	if slotID == nil {
		return
	}
	id := *slotID
	err := s.tx.WithDB(ctx, func(ctx context.Context, db infra.DBTX) error {
		return s.slots.MarkBlocked(ctx, db, id)
	})
	if err != nil {
		slog.Error("failed to block slot after invariant violation",
			"slot_id", id.String(), "error", err.Error())
		return
	}
	slog.Error("slot blocked after invariant violation", "slot_id", id.String())
}

func mapBookingLoadErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, errs.ErrBookingNotFound)
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}

func mapTransitionErr(err error) error {
	switch {
	case errors.Is(err, booking.ErrHoldExpired):
		return errs.Mark(err, errs.ErrHoldExpired)
	case errors.Is(err, booking.ErrNotHeld), errors.Is(err, booking.ErrAlreadyTerminal):
		return errs.Mark(err, errs.ErrBookingNotHeld)
	default:
		return errs.Mark(err, errs.ErrDomainValidation)
	}
}

func mapLedgerErr(err error) error {
	switch {
	case errors.Is(err, slot.ErrBlocked):
		return errs.Mark(err, errs.ErrSlotBlocked)
	case errors.Is(err, slot.ErrNoCapacity):
		return errs.Mark(err, errs.ErrSlotFull)
	default:
		return errs.Mark(err, errs.ErrInvariantViolation)
	}
}
