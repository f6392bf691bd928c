package commands

import (
	"context"
	"log/slog"

	"slotbooker/internal/domain/slot"
	"slotbooker/internal/infra"
	"slotbooker/internal/pkg/clock"
	"slotbooker/internal/pkg/errs"

	"github.com/google/uuid"
)

const sweepBatchSize = 100

type SweepUseCase interface {
	SweepExpiredHolds(ctx context.Context) (SweepResult, error)
}

type SweepCommands struct {
	tx       TxRunner
	slots    SlotRepository
	bookings BookingRepository
	idem     IdempotencyRepository
	notifier Notifier
	clock    clock.Clock
}

var _ SweepUseCase = (*SweepCommands)(nil)

func NewSweepCommands(
	tx TxRunner,
	slots SlotRepository,
	bookings BookingRepository,
	idem IdempotencyRepository,
	notifier Notifier,
	clk clock.Clock,
) *SweepCommands {
	return &SweepCommands{
		tx:       tx,
		slots:    slots,
		bookings: bookings,
		idem:     idem,
		notifier: notifier,
		clock:    clk,
	}
}

// SweepExpiredHolds releases overdue holds in batches and purges lapsed
// idempotency records. SKIP LOCKED on the overdue query makes concurrent
// sweeps and in-request expiry safe: each row is resolved exactly once.
func (s *SweepCommands) SweepExpiredHolds(ctx context.Context) (SweepResult, error) {
	now := s.clock.Now().UTC()
	var result SweepResult

	for {
		var (
			events  []Event
			batched int
		)
		err := s.tx.Within(ctx, func(ctx context.Context, db infra.DBTX) error {
			overdue, err := s.bookings.ListOverdueHeldForUpdate(ctx, db, now, sweepBatchSize)
			if err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			batched = len(overdue)
			if batched == 0 {
				return nil
			}

			lockedSlots := map[uuid.UUID]*slot.Slot{}
			for _, b := range overdue {
				// Re-check under the lock; another path may have resolved it.
				if !b.HoldExpiredAt(now) {
					continue
				}
				sl, ok := lockedSlots[b.SlotID()]
				if !ok {
					sl, err = s.slots.GetForUpdate(ctx, db, b.SlotID())
					if err != nil {
						return errs.Mark(err, errs.ErrDatabaseOperationFailed)
					}
					lockedSlots[b.SlotID()] = sl
				}

				if err := b.Expire(now); err != nil {
					continue
				}
				if err := s.bookings.UpdateStatus(ctx, db, b); err != nil {
					return errs.Mark(err, errs.ErrDatabaseOperationFailed)
				}
				if err := sl.ReleaseHold(); err != nil {
					slog.Warn("hold counter mismatch during sweep",
						"slot_id", sl.ID().String(), "booking_id", b.ID().String())
				}
				events = append(events, Event{Kind: EventBookingExpired, BookingID: b.ID(), SlotID: sl.ID(), Actor: b.Actor(), At: now})
			}

			for _, sl := range lockedSlots {
				if err := s.slots.UpdateCounters(ctx, db, sl); err != nil {
					return errs.Mark(err, errs.ErrDatabaseOperationFailed)
				}
			}
			return nil
		})
		if err != nil {
			return result, err
		}

		for _, ev := range events {
			s.notifier.Notify(ctx, ev)
		}
		result.ExpiredHolds += len(events)

		if batched < sweepBatchSize {
			break
		}
	}

	err := s.tx.WithDB(ctx, func(ctx context.Context, db infra.DBTX) error {
		purged, err := s.idem.DeleteExpired(ctx, db, now)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		result.PurgedKeys = purged
		return nil
	})
	if err != nil {
		return result, err
	}

	return result, nil
}
