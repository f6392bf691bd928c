//go:build unit

package commands_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"slotbooker/internal/domain/booking"
	"slotbooker/internal/domain/slot"
	"slotbooker/internal/infra"
	"slotbooker/internal/pkg/clock"
	"slotbooker/internal/pkg/config"
	"slotbooker/internal/pkg/errs"
	"slotbooker/internal/usecase/commands"
	"slotbooker/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ----------------------------------------------------------------------------
// In-memory fakes. They clone entities on read and persist them on write,
// mirroring how a row-locking repository behaves across a transaction.
// ----------------------------------------------------------------------------

type fakeTxRunner struct{}

func (fakeTxRunner) Within(ctx context.Context, fn func(ctx context.Context, db infra.DBTX) error) error {
	return fn(ctx, nil)
}

func (fakeTxRunner) WithDB(ctx context.Context, fn func(ctx context.Context, db infra.DBTX) error) error {
	return fn(ctx, nil)
}

type fakeSlotRepo struct {
	slots   map[uuid.UUID]*slot.Slot
	corrupt map[uuid.UUID]bool
	blocked map[uuid.UUID]bool
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{
		slots:   map[uuid.UUID]*slot.Slot{},
		corrupt: map[uuid.UUID]bool{},
		blocked: map[uuid.UUID]bool{},
	}
}

func (r *fakeSlotRepo) add(s *slot.Slot) { r.slots[s.ID()] = s }

func (r *fakeSlotRepo) Create(_ context.Context, _ infra.DBTX, s *slot.Slot) error {
	for _, existing := range r.slots {
		if existing.LocationID() == s.LocationID() &&
			equalPersonID(existing.PersonID(), s.PersonID()) &&
			existing.StartAt().Equal(s.StartAt()) {
			return infra.WrapRepoErr("slot already exists", errs.New("duplicate key"), infra.KindConflict)
		}
	}
	r.slots[s.ID()] = s
	return nil
}

func equalPersonID(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (r *fakeSlotRepo) GetForUpdate(_ context.Context, _ infra.DBTX, id uuid.UUID) (*slot.Slot, error) {
	if r.corrupt[id] {
		return nil, infra.WrapRepoErr("slot counters violate invariant", slot.ErrInvariantViolation, infra.KindInvariant)
	}
	s, ok := r.slots[id]
	if !ok {
		return nil, infra.WrapRepoErr("slot not found", errs.New("no rows"), infra.KindNotFound)
	}
	return cloneSlot(s)
}

func (r *fakeSlotRepo) UpdateCounters(_ context.Context, _ infra.DBTX, s *slot.Slot) error {
	r.slots[s.ID()] = s
	return nil
}

func (r *fakeSlotRepo) MarkBlocked(_ context.Context, _ infra.DBTX, id uuid.UUID) error {
	r.blocked[id] = true
	return nil
}

func cloneSlot(s *slot.Slot) (*slot.Slot, error) {
	return slot.Reconstruct(s.ID(), s.LocationID(), s.PersonID(), s.Date(), s.StartAt(), s.EndAt(),
		s.Capacity(), s.Booked(), s.Hold(), s.Status())
}

type fakeBookingRepo struct {
	bookings map[uuid.UUID]*booking.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[uuid.UUID]*booking.Booking{}}
}

func (r *fakeBookingRepo) add(b *booking.Booking) { r.bookings[b.ID()] = b }

func (r *fakeBookingRepo) Create(_ context.Context, _ infra.DBTX, b *booking.Booking) error {
	r.bookings[b.ID()] = cloneBooking(b)
	return nil
}

func (r *fakeBookingRepo) GetForUpdate(_ context.Context, _ infra.DBTX, id uuid.UUID) (*booking.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", errs.New("no rows"), infra.KindNotFound)
	}
	return cloneBooking(b), nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, _ infra.DBTX, b *booking.Booking) error {
	r.bookings[b.ID()] = cloneBooking(b)
	return nil
}

func (r *fakeBookingRepo) ListOverdueHeldForUpdate(_ context.Context, _ infra.DBTX, now time.Time, limit int) ([]*booking.Booking, error) {
	var out []*booking.Booking
	for _, b := range r.bookings {
		if b.HoldExpiredAt(now) {
			out = append(out, cloneBooking(b))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].HoldExpiresAt().Before(*out[j].HoldExpiresAt())
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeBookingRepo) ListOverdueHeldBySlotForUpdate(_ context.Context, _ infra.DBTX, slotID uuid.UUID, now time.Time) ([]*booking.Booking, error) {
	var out []*booking.Booking
	for _, b := range r.bookings {
		if b.SlotID() == slotID && b.HoldExpiredAt(now) {
			out = append(out, cloneBooking(b))
		}
	}
	return out, nil
}

func cloneBooking(b *booking.Booking) *booking.Booking {
	return booking.Reconstruct(b.ID(), b.SlotID(), b.Actor(), b.Customer(), b.Notes(), b.Source(),
		b.Status(), b.HoldExpiresAt(), b.CreatedAt(), b.ConfirmedAt(), b.CancelledAt(), b.ExpiredAt())
}

type fakeIdemRepo struct {
	records map[string]commands.IdempotencyRecord
}

func newFakeIdemRepo() *fakeIdemRepo {
	return &fakeIdemRepo{records: map[string]commands.IdempotencyRecord{}}
}

func idemKey(key, actor string) string { return key + "|" + actor }

func (r *fakeIdemRepo) TryInsert(_ context.Context, _ infra.DBTX, rec commands.IdempotencyRecord) (bool, error) {
	k := idemKey(rec.Key, rec.Actor)
	if _, exists := r.records[k]; exists {
		return false, nil
	}
	r.records[k] = rec
	return true, nil
}

func (r *fakeIdemRepo) Get(_ context.Context, _ infra.DBTX, key, actor string) (commands.IdempotencyRecord, error) {
	rec, ok := r.records[idemKey(key, actor)]
	if !ok {
		return commands.IdempotencyRecord{}, infra.WrapRepoErr("idempotency record not found", errs.New("no rows"), infra.KindNotFound)
	}
	return rec, nil
}

func (r *fakeIdemRepo) Reset(_ context.Context, _ infra.DBTX, rec commands.IdempotencyRecord) error {
	r.records[idemKey(rec.Key, rec.Actor)] = rec
	return nil
}

func (r *fakeIdemRepo) MarkCompleted(_ context.Context, _ infra.DBTX, key, actor string, bookingID uuid.UUID) error {
	k := idemKey(key, actor)
	rec := r.records[k]
	rec.Status = commands.IdempotencyCompleted
	rec.ResultBookingID = &bookingID
	r.records[k] = rec
	return nil
}

func (r *fakeIdemRepo) DeleteExpired(_ context.Context, _ infra.DBTX, now time.Time) (int64, error) {
	var n int64
	for k, rec := range r.records {
		if !rec.ExpiresAt.After(now) {
			delete(r.records, k)
			n++
		}
	}
	return n, nil
}

type fakeNotifier struct {
	events []commands.Event
}

func (n *fakeNotifier) Notify(_ context.Context, ev commands.Event) {
	n.events = append(n.events, ev)
}

func (n *fakeNotifier) kinds() []string {
	out := make([]string, 0, len(n.events))
	for _, ev := range n.events {
		out = append(out, ev.Kind)
	}
	return out
}

// ----------------------------------------------------------------------------
// Fixture
// ----------------------------------------------------------------------------

type bookingFixture struct {
	commands *commands.BookingCommands
	slots    *fakeSlotRepo
	bookings *fakeBookingRepo
	idem     *fakeIdemRepo
	notifier *fakeNotifier
	clock    *clock.MockClock
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	slots := newFakeSlotRepo()
	bookings := newFakeBookingRepo()
	idem := newFakeIdemRepo()
	notifier := &fakeNotifier{}
	clk := clock.NewMockClock(time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC))
	cfg := config.BookingConfig{
		HoldTTL:              10 * time.Minute,
		SweepInterval:        time.Minute,
		IdempotencyRetention: 24 * time.Hour,
	}

	return &bookingFixture{
		commands: commands.NewBookingCommands(fakeTxRunner{}, slots, bookings, idem, notifier, clk, cfg),
		slots:    slots,
		bookings: bookings,
		idem:     idem,
		notifier: notifier,
		clock:    clk,
	}
}

func (f *bookingFixture) seedSlot(t *testing.T, capacity, booked, hold int) *slot.Slot {
	t.Helper()
	status := slot.StatusOpen
	if booked+hold >= capacity {
		status = slot.StatusFull
	} else if booked > 0 {
		status = slot.StatusPartial
	}
	s, err := builder.NewSlotBuilder().
		WithCapacity(capacity).
		WithCounters(booked, hold).
		WithStatus(status).
		BuildReconstructed()
	require.NoError(t, err)
	f.slots.add(s)
	return s
}

func (f *bookingFixture) seedHeldBooking(t *testing.T, slotID uuid.UUID, createdAt time.Time) *booking.Booking {
	t.Helper()
	b := builder.NewBookingBuilder().
		WithSlotID(slotID).
		WithCreatedAt(createdAt).
		WithHoldTTL(10 * time.Minute).
		BuildHold()
	f.bookings.add(b)
	return b
}

// ----------------------------------------------------------------------------
// CreateHold
// ----------------------------------------------------------------------------

func TestCreateHold(t *testing.T) {
	ctx := context.Background()

	t.Run("places a hold and records the idempotency outcome", func(t *testing.T) {
		f := newBookingFixture(t)
		sl := f.seedSlot(t, 3, 0, 0)
		now := f.clock.Now().UTC()

		in := builder.NewBookingBuilder().WithSlotID(sl.ID()).BuildCreateHoldInput()
		result, err := f.commands.CreateHold(ctx, "user:alice", "key-1", in)
		require.NoError(t, err)

		assert.Equal(t, "held", result.Status)
		assert.False(t, result.Replayed)
		require.NotNil(t, result.HoldExpiresAt)
		assert.Equal(t, now.Add(10*time.Minute), *result.HoldExpiresAt)

		stored := f.slots.slots[sl.ID()]
		assert.Equal(t, 1, stored.Hold())
		assert.Equal(t, 2, stored.Remaining())

		rec := f.idem.records[idemKey("key-1", "user:alice")]
		assert.Equal(t, commands.IdempotencyCompleted, rec.Status)
		require.NotNil(t, rec.ResultBookingID)
		assert.Equal(t, result.BookingID, *rec.ResultBookingID)

		assert.Equal(t, []string{commands.EventBookingCreated}, f.notifier.kinds())
	})

	t.Run("requires an idempotency key", func(t *testing.T) {
		f := newBookingFixture(t)
		sl := f.seedSlot(t, 3, 0, 0)

		in := builder.NewBookingBuilder().WithSlotID(sl.ID()).BuildCreateHoldInput()
		_, err := f.commands.CreateHold(ctx, "user:alice", "  ", in)
		require.ErrorIs(t, err, errs.ErrIdempotencyKeyRequired)
	})

	t.Run("rejects missing customer contact", func(t *testing.T) {
		f := newBookingFixture(t)
		sl := f.seedSlot(t, 3, 0, 0)

		in := builder.NewBookingBuilder().WithSlotID(sl.ID()).WithCustomer("", "").BuildCreateHoldInput()
		_, err := f.commands.CreateHold(ctx, "user:alice", "key-1", in)
		require.ErrorIs(t, err, errs.ErrDomainValidation)
	})

	t.Run("unknown slot", func(t *testing.T) {
		f := newBookingFixture(t)

		in := builder.NewBookingBuilder().BuildCreateHoldInput()
		_, err := f.commands.CreateHold(ctx, "user:alice", "key-1", in)
		require.ErrorIs(t, err, errs.ErrSlotNotFound)
	})

	t.Run("full slot refuses the hold", func(t *testing.T) {
		f := newBookingFixture(t)
		sl := f.seedSlot(t, 2, 2, 0)

		in := builder.NewBookingBuilder().WithSlotID(sl.ID()).BuildCreateHoldInput()
		_, err := f.commands.CreateHold(ctx, "user:alice", "key-1", in)
		require.ErrorIs(t, err, errs.ErrSlotFull)
		assert.Empty(t, f.notifier.events)
	})

	t.Run("blocked slot refuses the hold", func(t *testing.T) {
		f := newBookingFixture(t)
		sl := f.seedSlot(t, 2, 0, 0)
		blocked, err := cloneSlot(sl)
		require.NoError(t, err)
		blocked.Block()
		f.slots.add(blocked)

		in := builder.NewBookingBuilder().WithSlotID(sl.ID()).BuildCreateHoldInput()
		_, err = f.commands.CreateHold(ctx, "user:alice", "key-1", in)
		require.ErrorIs(t, err, errs.ErrSlotBlocked)
	})

	t.Run("replaying the same request returns the prior hold", func(t *testing.T) {
		f := newBookingFixture(t)
		sl := f.seedSlot(t, 3, 0, 0)
		in := builder.NewBookingBuilder().WithSlotID(sl.ID()).BuildCreateHoldInput()

		first, err := f.commands.CreateHold(ctx, "user:alice", "key-1", in)
		require.NoError(t, err)

		second, err := f.commands.CreateHold(ctx, "user:alice", "key-1", in)
		require.NoError(t, err)

		assert.True(t, second.Replayed)
		assert.Equal(t, first.BookingID, second.BookingID)

		// The replay must not consume more capacity.
		assert.Equal(t, 1, f.slots.slots[sl.ID()].Hold())
		assert.Len(t, f.bookings.bookings, 1)
	})

	t.Run("key reuse with a different payload is rejected", func(t *testing.T) {
		f := newBookingFixture(t)
		sl := f.seedSlot(t, 3, 0, 0)

		in := builder.NewBookingBuilder().WithSlotID(sl.ID()).BuildCreateHoldInput()
		_, err := f.commands.CreateHold(ctx, "user:alice", "key-1", in)
		require.NoError(t, err)

		other := in
		other.CustomerName = "Someone Else"
		_, err = f.commands.CreateHold(ctx, "user:alice", "key-1", other)
		require.ErrorIs(t, err, errs.ErrIdempotencyKeyReused)
	})

	t.Run("same key from a different actor is independent", func(t *testing.T) {
		f := newBookingFixture(t)
		sl := f.seedSlot(t, 3, 0, 0)
		in := builder.NewBookingBuilder().WithSlotID(sl.ID()).BuildCreateHoldInput()

		first, err := f.commands.CreateHold(ctx, "user:alice", "key-1", in)
		require.NoError(t, err)
		second, err := f.commands.CreateHold(ctx, "user:bob", "key-1", in)
		require.NoError(t, err)

		assert.NotEqual(t, first.BookingID, second.BookingID)
		assert.Equal(t, 2, f.slots.slots[sl.ID()].Hold())
	})

	t.Run("in-flight request with the same key", func(t *testing.T) {
		f := newBookingFixture(t)
		sl := f.seedSlot(t, 3, 0, 0)
		in := builder.NewBookingBuilder().WithSlotID(sl.ID()).BuildCreateHoldInput()

		// A processing record exists and has not lapsed: a concurrent
		// request claimed the key but has not finished.
		hash := requestHash(t, f, sl.ID(), in)
		f.idem.records[idemKey("key-1", "user:alice")] = commands.IdempotencyRecord{
			Key:         "key-1",
			Actor:       "user:alice",
			RequestHash: hash,
			Status:      commands.IdempotencyProcessing,
			ExpiresAt:   f.clock.Now().Add(time.Hour),
		}

		_, err := f.commands.CreateHold(ctx, "user:alice", "key-1", in)
		require.ErrorIs(t, err, errs.ErrIdempotencyInProgress)
	})

	t.Run("lapsed idempotency record is reclaimed", func(t *testing.T) {
		f := newBookingFixture(t)
		sl := f.seedSlot(t, 3, 0, 0)
		in := builder.NewBookingBuilder().WithSlotID(sl.ID()).BuildCreateHoldInput()

		_, err := f.commands.CreateHold(ctx, "user:alice", "key-1", in)
		require.NoError(t, err)

		// Move past the retention window; the key may be used afresh.
		f.clock.Add(25 * time.Hour)

		result, err := f.commands.CreateHold(ctx, "user:alice", "key-1", in)
		require.NoError(t, err)
		assert.False(t, result.Replayed)
		assert.Len(t, f.bookings.bookings, 2)
	})

	t.Run("overdue holds on the slot are freed inline", func(t *testing.T) {
		f := newBookingFixture(t)
		sl := f.seedSlot(t, 1, 0, 1)
		stale := f.seedHeldBooking(t, sl.ID(), f.clock.Now().UTC().Add(-20*time.Minute))

		in := builder.NewBookingBuilder().WithSlotID(sl.ID()).BuildCreateHoldInput()
		result, err := f.commands.CreateHold(ctx, "user:alice", "key-1", in)
		require.NoError(t, err)

		assert.Equal(t, booking.StatusExpired, f.bookings.bookings[stale.ID()].Status())
		assert.Equal(t, booking.StatusHeld, f.bookings.bookings[result.BookingID].Status())
		assert.Equal(t, 1, f.slots.slots[sl.ID()].Hold())
		assert.Equal(t, []string{commands.EventBookingExpired, commands.EventBookingCreated}, f.notifier.kinds())
	})

	t.Run("corrupt ledger blocks the slot", func(t *testing.T) {
		f := newBookingFixture(t)
		sl := f.seedSlot(t, 3, 0, 0)
		f.slots.corrupt[sl.ID()] = true

		in := builder.NewBookingBuilder().WithSlotID(sl.ID()).BuildCreateHoldInput()
		_, err := f.commands.CreateHold(ctx, "user:alice", "key-1", in)

		require.ErrorIs(t, err, errs.ErrInvariantViolation)
		assert.True(t, f.slots.blocked[sl.ID()])
	})
}

// requestHash reproduces the fingerprint CreateHold would compute, by
// round-tripping a throwaway request through the real flow.
func requestHash(t *testing.T, f *bookingFixture, slotID uuid.UUID, in commands.CreateHoldInput) string {
	t.Helper()

	probe := newBookingFixture(t)
	probeSlot, err := cloneSlot(f.slots.slots[slotID])
	require.NoError(t, err)
	probe.slots.add(probeSlot)

	_, err = probe.commands.CreateHold(context.Background(), "user:alice", "probe", in)
	require.NoError(t, err)
	return probe.idem.records[idemKey("probe", "user:alice")].RequestHash
}

// ----------------------------------------------------------------------------
// ConfirmBooking
// ----------------------------------------------------------------------------

func TestConfirmBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("promotes the hold to booked", func(t *testing.T) {
		f := newBookingFixture(t)
		sl := f.seedSlot(t, 3, 0, 1)
		b := f.seedHeldBooking(t, sl.ID(), f.clock.Now().UTC())

		result, err := f.commands.ConfirmBooking(ctx, b.ID())
		require.NoError(t, err)

		assert.Equal(t, "confirmed", result.Status)
		assert.Equal(t, booking.StatusConfirmed, f.bookings.bookings[b.ID()].Status())

		stored := f.slots.slots[sl.ID()]
		assert.Equal(t, 1, stored.Booked())
		assert.Equal(t, 0, stored.Hold())
		assert.Equal(t, []string{commands.EventBookingConfirmed}, f.notifier.kinds())
	})

	t.Run("confirming twice replays the success", func(t *testing.T) {
		f := newBookingFixture(t)
		sl := f.seedSlot(t, 3, 0, 1)
		b := f.seedHeldBooking(t, sl.ID(), f.clock.Now().UTC())

		_, err := f.commands.ConfirmBooking(ctx, b.ID())
		require.NoError(t, err)

		result, err := f.commands.ConfirmBooking(ctx, b.ID())
		require.NoError(t, err)
		assert.Equal(t, "confirmed", result.Status)

		// Still exactly one promoted unit.
		assert.Equal(t, 1, f.slots.slots[sl.ID()].Booked())
	})

	t.Run("expired hold is released, and the release sticks", func(t *testing.T) {
		f := newBookingFixture(t)
		sl := f.seedSlot(t, 1, 0, 1)
		b := f.seedHeldBooking(t, sl.ID(), f.clock.Now().UTC())

		f.clock.Add(11 * time.Minute)

		_, err := f.commands.ConfirmBooking(ctx, b.ID())
		require.ErrorIs(t, err, errs.ErrHoldExpired)

		// The expiry committed even though the confirm failed.
		assert.Equal(t, booking.StatusExpired, f.bookings.bookings[b.ID()].Status())
		assert.Equal(t, 1, f.slots.slots[sl.ID()].Remaining())
		assert.Equal(t, []string{commands.EventBookingExpired}, f.notifier.kinds())
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newBookingFixture(t)

		_, err := f.commands.ConfirmBooking(ctx, uuid.New())
		require.ErrorIs(t, err, errs.ErrBookingNotFound)
	})

	t.Run("cancelled booking cannot be confirmed", func(t *testing.T) {
		f := newBookingFixture(t)
		sl := f.seedSlot(t, 3, 0, 0)
		b := builder.NewBookingBuilder().
			WithSlotID(sl.ID()).
			WithStatus(booking.StatusCancelled).
			BuildReconstructed()
		f.bookings.add(b)

		_, err := f.commands.ConfirmBooking(ctx, b.ID())
		require.ErrorIs(t, err, errs.ErrBookingNotHeld)
	})
}

// ----------------------------------------------------------------------------
// CancelBooking
// ----------------------------------------------------------------------------

func TestCancelBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("cancelling a hold releases the held unit", func(t *testing.T) {
		f := newBookingFixture(t)
		sl := f.seedSlot(t, 2, 0, 1)
		b := f.seedHeldBooking(t, sl.ID(), f.clock.Now().UTC())

		require.NoError(t, f.commands.CancelBooking(ctx, b.ID()))

		assert.Equal(t, booking.StatusCancelled, f.bookings.bookings[b.ID()].Status())
		stored := f.slots.slots[sl.ID()]
		assert.Equal(t, 0, stored.Hold())
		assert.Equal(t, 2, stored.Remaining())
		assert.Equal(t, []string{commands.EventBookingCancelled}, f.notifier.kinds())
	})

	t.Run("cancelling a confirmed booking releases the booked unit", func(t *testing.T) {
		f := newBookingFixture(t)
		sl := f.seedSlot(t, 2, 1, 0)
		b := builder.NewBookingBuilder().
			WithSlotID(sl.ID()).
			WithStatus(booking.StatusConfirmed).
			BuildReconstructed()
		f.bookings.add(b)

		require.NoError(t, f.commands.CancelBooking(ctx, b.ID()))

		stored := f.slots.slots[sl.ID()]
		assert.Equal(t, 0, stored.Booked())
		assert.Equal(t, 2, stored.Remaining())
	})

	t.Run("terminal booking cannot be cancelled", func(t *testing.T) {
		f := newBookingFixture(t)
		sl := f.seedSlot(t, 2, 0, 0)
		b := builder.NewBookingBuilder().
			WithSlotID(sl.ID()).
			WithStatus(booking.StatusExpired).
			BuildReconstructed()
		f.bookings.add(b)

		err := f.commands.CancelBooking(ctx, b.ID())
		require.ErrorIs(t, err, errs.ErrBookingNotHeld)
	})
}

// ----------------------------------------------------------------------------
// RescheduleBooking
// ----------------------------------------------------------------------------

func TestRescheduleBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("held booking moves its hold to the new slot", func(t *testing.T) {
		f := newBookingFixture(t)
		oldSlot := f.seedSlot(t, 2, 0, 1)
		newSlot := f.seedSlot(t, 2, 0, 0)
		b := f.seedHeldBooking(t, oldSlot.ID(), f.clock.Now().UTC())

		f.clock.Add(5 * time.Minute)
		now := f.clock.Now().UTC()

		err := f.commands.RescheduleBooking(ctx, commands.RescheduleInput{BookingID: b.ID(), NewSlotID: newSlot.ID()})
		require.NoError(t, err)

		moved := f.bookings.bookings[b.ID()]
		assert.Equal(t, newSlot.ID(), moved.SlotID())
		assert.Equal(t, booking.StatusHeld, moved.Status())
		require.NotNil(t, moved.HoldExpiresAt())
		assert.Equal(t, now.Add(10*time.Minute), *moved.HoldExpiresAt())

		assert.Equal(t, 0, f.slots.slots[oldSlot.ID()].Hold())
		assert.Equal(t, 1, f.slots.slots[newSlot.ID()].Hold())
		assert.Equal(t, []string{commands.EventBookingRescheduled}, f.notifier.kinds())
	})

	t.Run("confirmed booking moves its booked unit", func(t *testing.T) {
		f := newBookingFixture(t)
		oldSlot := f.seedSlot(t, 2, 1, 0)
		newSlot := f.seedSlot(t, 2, 0, 0)
		b := builder.NewBookingBuilder().
			WithSlotID(oldSlot.ID()).
			WithStatus(booking.StatusConfirmed).
			BuildReconstructed()
		f.bookings.add(b)

		err := f.commands.RescheduleBooking(ctx, commands.RescheduleInput{BookingID: b.ID(), NewSlotID: newSlot.ID()})
		require.NoError(t, err)

		moved := f.bookings.bookings[b.ID()]
		assert.Equal(t, booking.StatusConfirmed, moved.Status())
		assert.Equal(t, 0, f.slots.slots[oldSlot.ID()].Booked())
		assert.Equal(t, 1, f.slots.slots[newSlot.ID()].Booked())
	})

	t.Run("same slot is a no-op", func(t *testing.T) {
		f := newBookingFixture(t)
		sl := f.seedSlot(t, 2, 0, 1)
		b := f.seedHeldBooking(t, sl.ID(), f.clock.Now().UTC())

		err := f.commands.RescheduleBooking(ctx, commands.RescheduleInput{BookingID: b.ID(), NewSlotID: sl.ID()})
		require.NoError(t, err)

		assert.Equal(t, 1, f.slots.slots[sl.ID()].Hold())
		assert.Empty(t, f.notifier.events)
	})

	t.Run("full target slot fails and leaves everything in place", func(t *testing.T) {
		f := newBookingFixture(t)
		oldSlot := f.seedSlot(t, 2, 0, 1)
		newSlot := f.seedSlot(t, 1, 1, 0)
		b := f.seedHeldBooking(t, oldSlot.ID(), f.clock.Now().UTC())

		err := f.commands.RescheduleBooking(ctx, commands.RescheduleInput{BookingID: b.ID(), NewSlotID: newSlot.ID()})
		require.ErrorIs(t, err, errs.ErrSlotFull)

		unchanged := f.bookings.bookings[b.ID()]
		assert.Equal(t, oldSlot.ID(), unchanged.SlotID())
		assert.Equal(t, 1, f.slots.slots[oldSlot.ID()].Hold())
		assert.Equal(t, 1, f.slots.slots[newSlot.ID()].Booked())
	})

	t.Run("expired hold cannot be rescheduled", func(t *testing.T) {
		f := newBookingFixture(t)
		oldSlot := f.seedSlot(t, 2, 0, 1)
		newSlot := f.seedSlot(t, 2, 0, 0)
		b := f.seedHeldBooking(t, oldSlot.ID(), f.clock.Now().UTC())

		f.clock.Add(11 * time.Minute)

		err := f.commands.RescheduleBooking(ctx, commands.RescheduleInput{BookingID: b.ID(), NewSlotID: newSlot.ID()})
		require.ErrorIs(t, err, errs.ErrHoldExpired)
	})
}
