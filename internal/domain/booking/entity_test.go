//go:build unit

package booking_test

import (
	"testing"
	"time"

	"slotbooker/internal/domain/booking"
	"slotbooker/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	t.Run("trims name and phone", func(t *testing.T) {
		c, err := booking.NewCustomer("  Taro Yamada  ", " +81-90-1234-5678 ", nil)
		require.NoError(t, err)

		assert.Equal(t, "Taro Yamada", c.Name)
		assert.Equal(t, "+81-90-1234-5678", c.Phone)
	})

	cases := []struct {
		name  string
		cname string
		phone string
		errIs error
	}{
		{name: "empty name", cname: "", phone: "090-0000-0000", errIs: booking.ErrCustomerRequired},
		{name: "empty phone", cname: "Taro", phone: "", errIs: booking.ErrCustomerRequired},
		{name: "whitespace only name", cname: "   ", phone: "090-0000-0000", errIs: booking.ErrCustomerRequired},
		{name: "both present", cname: "Taro", phone: "090-0000-0000"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := booking.NewCustomer(c.cname, c.phone, nil)
			if c.errIs == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}

func TestNewHold(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	b := builder.NewBookingBuilder().
		WithCreatedAt(now).
		WithHoldTTL(10 * time.Minute).
		BuildHold()

	assert.NotEqual(t, uuid.Nil, b.ID())
	assert.Equal(t, booking.StatusHeld, b.Status())
	require.NotNil(t, b.HoldExpiresAt())
	assert.Equal(t, now.Add(10*time.Minute), *b.HoldExpiresAt())
	assert.Equal(t, now, b.CreatedAt())
}

func TestConfirm(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	t.Run("held booking confirms and clears the deadline", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithCreatedAt(now).BuildHold()

		require.NoError(t, b.Confirm(now.Add(time.Minute)))

		assert.Equal(t, booking.StatusConfirmed, b.Status())
		assert.Nil(t, b.HoldExpiresAt())
		require.NotNil(t, b.ConfirmedAt())
		assert.Equal(t, now.Add(time.Minute), *b.ConfirmedAt())
	})

	t.Run("confirming twice is a no-op", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithCreatedAt(now).BuildHold()
		require.NoError(t, b.Confirm(now.Add(time.Minute)))
		first := *b.ConfirmedAt()

		require.NoError(t, b.Confirm(now.Add(2*time.Minute)))
		assert.Equal(t, first, *b.ConfirmedAt())
	})

	t.Run("expired hold cannot be confirmed", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithCreatedAt(now).WithHoldTTL(10 * time.Minute).BuildHold()

		err := b.Confirm(now.Add(11 * time.Minute))
		require.ErrorIs(t, err, booking.ErrHoldExpired)
		assert.Equal(t, booking.StatusHeld, b.Status())
	})

	t.Run("deadline instant itself counts as expired", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithCreatedAt(now).WithHoldTTL(10 * time.Minute).BuildHold()

		err := b.Confirm(now.Add(10 * time.Minute))
		require.ErrorIs(t, err, booking.ErrHoldExpired)
	})

	t.Run("terminal booking cannot be confirmed", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithStatus(booking.StatusCancelled).BuildReconstructed()

		require.ErrorIs(t, b.Confirm(now), booking.ErrNotHeld)
	})
}

func TestCancel(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	t.Run("held booking cancels", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithCreatedAt(now).BuildHold()

		require.NoError(t, b.Cancel(now.Add(time.Minute)))
		assert.Equal(t, booking.StatusCancelled, b.Status())
		assert.Nil(t, b.HoldExpiresAt())
		require.NotNil(t, b.CancelledAt())
	})

	t.Run("confirmed booking cancels", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithStatus(booking.StatusConfirmed).BuildReconstructed()

		require.NoError(t, b.Cancel(now))
		assert.Equal(t, booking.StatusCancelled, b.Status())
	})

	t.Run("terminal states refuse cancellation", func(t *testing.T) {
		for _, status := range []booking.Status{booking.StatusCancelled, booking.StatusExpired} {
			b := builder.NewBookingBuilder().WithStatus(status).BuildReconstructed()
			require.ErrorIs(t, b.Cancel(now), booking.ErrAlreadyTerminal, "status %s", status)
		}
	})
}

func TestExpire(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	t.Run("held booking expires", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithCreatedAt(now).BuildHold()

		require.NoError(t, b.Expire(now.Add(11 * time.Minute)))
		assert.Equal(t, booking.StatusExpired, b.Status())
		require.NotNil(t, b.ExpiredAt())
	})

	t.Run("only held bookings expire", func(t *testing.T) {
		for _, status := range []booking.Status{booking.StatusConfirmed, booking.StatusCancelled, booking.StatusExpired} {
			b := builder.NewBookingBuilder().WithStatus(status).BuildReconstructed()
			require.ErrorIs(t, b.Expire(now), booking.ErrNotHeld, "status %s", status)
		}
	})
}

func TestReschedule(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	newSlot := uuid.New()

	t.Run("held booking moves with a fresh deadline", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithCreatedAt(now).WithHoldTTL(10 * time.Minute).BuildHold()
		later := now.Add(5 * time.Minute)

		require.NoError(t, b.Reschedule(newSlot, later, 10*time.Minute))

		assert.Equal(t, newSlot, b.SlotID())
		assert.Equal(t, booking.StatusHeld, b.Status())
		require.NotNil(t, b.HoldExpiresAt())
		assert.Equal(t, later.Add(10*time.Minute), *b.HoldExpiresAt())
	})

	t.Run("expired hold cannot be rescheduled", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithCreatedAt(now).WithHoldTTL(10 * time.Minute).BuildHold()
		oldSlot := b.SlotID()

		err := b.Reschedule(newSlot, now.Add(11*time.Minute), 10*time.Minute)
		require.ErrorIs(t, err, booking.ErrHoldExpired)
		assert.Equal(t, oldSlot, b.SlotID())
	})

	t.Run("confirmed booking moves and stays confirmed", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithStatus(booking.StatusConfirmed).BuildReconstructed()

		require.NoError(t, b.Reschedule(newSlot, now, 10*time.Minute))
		assert.Equal(t, newSlot, b.SlotID())
		assert.Equal(t, booking.StatusConfirmed, b.Status())
		assert.Nil(t, b.HoldExpiresAt())
	})

	t.Run("terminal booking cannot be rescheduled", func(t *testing.T) {
		for _, status := range []booking.Status{booking.StatusCancelled, booking.StatusExpired} {
			b := builder.NewBookingBuilder().WithStatus(status).BuildReconstructed()
			require.ErrorIs(t, b.Reschedule(newSlot, now, 10*time.Minute), booking.ErrAlreadyTerminal, "status %s", status)
		}
	})
}

func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, booking.StatusHeld.IsTerminal())
	assert.False(t, booking.StatusConfirmed.IsTerminal())
	assert.True(t, booking.StatusCancelled.IsTerminal())
	assert.True(t, booking.StatusExpired.IsTerminal())
}
