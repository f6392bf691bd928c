package booking

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotHeld          = errors.New("booking is not held")
	ErrHoldExpired      = errors.New("hold has expired")
	ErrAlreadyTerminal  = errors.New("booking is in a terminal state")
	ErrCustomerRequired = errors.New("customer name and phone are required")
)

// Customer is the contact captured at hold time.
type Customer struct {
	Name  string
	Phone string
	Email *string
}

func NewCustomer(name, phone string, email *string) (Customer, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" || phone == "" {
		return Customer{}, ErrCustomerRequired
	}
	return Customer{Name: name, Phone: phone, Email: email}, nil
}

// Booking is a reservation against exactly one slot. It is created held
// and moves to exactly one of confirmed, cancelled or expired.
type Booking struct {
	id            uuid.UUID
	slotID        uuid.UUID
	actor         string
	customer      Customer
	notes         *string
	source        *string
	status        Status
	holdExpiresAt *time.Time
	createdAt     time.Time
	confirmedAt   *time.Time
	cancelledAt   *time.Time
	expiredAt     *time.Time
}

// NewHold creates a booking in held state with its expiry deadline set.
func NewHold(slotID uuid.UUID, actor string, customer Customer, notes, source *string, now time.Time, holdTTL time.Duration) *Booking {
	deadline := now.Add(holdTTL)
	return &Booking{
		id:            uuid.New(),
		slotID:        slotID,
		actor:         actor,
		customer:      customer,
		notes:         notes,
		source:        source,
		status:        StatusHeld,
		holdExpiresAt: &deadline,
		createdAt:     now,
	}
}

func Reconstruct(
	id, slotID uuid.UUID,
	actor string,
	customer Customer,
	notes, source *string,
	status Status,
	holdExpiresAt *time.Time,
	createdAt time.Time,
	confirmedAt, cancelledAt, expiredAt *time.Time,
) *Booking {
	return &Booking{
		id:            id,
		slotID:        slotID,
		actor:         actor,
		customer:      customer,
		notes:         notes,
		source:        source,
		status:        status,
		holdExpiresAt: holdExpiresAt,
		createdAt:     createdAt,
		confirmedAt:   confirmedAt,
		cancelledAt:   cancelledAt,
		expiredAt:     expiredAt,
	}
}

// Confirm transitions held -> confirmed. Confirming an already confirmed
// booking is an idempotent no-op.
func (b *Booking) Confirm(now time.Time) error {
	switch b.status {
	case StatusConfirmed:
		return nil
	case StatusHeld:
		if b.HoldExpiredAt(now) {
			return ErrHoldExpired
		}
		b.status = StatusConfirmed
		b.confirmedAt = &now
		b.holdExpiresAt = nil
		return nil
	default:
		return ErrNotHeld
	}
}

// Cancel transitions held or confirmed -> cancelled.
func (b *Booking) Cancel(now time.Time) error {
	if b.status.IsTerminal() {
		return ErrAlreadyTerminal
	}
	b.status = StatusCancelled
	b.cancelledAt = &now
	b.holdExpiresAt = nil
	return nil
}

// Expire transitions held -> expired. Only the sweeper calls this.
func (b *Booking) Expire(now time.Time) error {
	if b.status != StatusHeld {
		return ErrNotHeld
	}
	b.status = StatusExpired
	b.expiredAt = &now
	return nil
}

// Reschedule moves the booking to another slot. A held booking gets a
// fresh deadline; a confirmed one stays confirmed.
func (b *Booking) Reschedule(newSlotID uuid.UUID, now time.Time, holdTTL time.Duration) error {
	switch b.status {
	case StatusHeld:
		if b.HoldExpiredAt(now) {
			return ErrHoldExpired
		}
		deadline := now.Add(holdTTL)
		b.holdExpiresAt = &deadline
	case StatusConfirmed:
	default:
		return ErrAlreadyTerminal
	}
	b.slotID = newSlotID
	return nil
}

func (b *Booking) HoldExpiredAt(now time.Time) bool {
	return b.status == StatusHeld && b.holdExpiresAt != nil && !now.Before(*b.holdExpiresAt)
}

func (b *Booking) ID() uuid.UUID             { return b.id }
func (b *Booking) SlotID() uuid.UUID         { return b.slotID }
func (b *Booking) Actor() string             { return b.actor }
func (b *Booking) Customer() Customer        { return b.customer }
func (b *Booking) Notes() *string            { return b.notes }
func (b *Booking) Source() *string           { return b.source }
func (b *Booking) Status() Status            { return b.status }
func (b *Booking) HoldExpiresAt() *time.Time { return b.holdExpiresAt }
func (b *Booking) CreatedAt() time.Time      { return b.createdAt }
func (b *Booking) ConfirmedAt() *time.Time   { return b.confirmedAt }
func (b *Booking) CancelledAt() *time.Time   { return b.cancelledAt }
func (b *Booking) ExpiredAt() *time.Time     { return b.expiredAt }
