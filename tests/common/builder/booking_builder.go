//go:build unit || e2e

package builder

import (
	"time"

	dombooking "slotbooker/internal/domain/booking"
	reqdto "slotbooker/internal/handler/dto/request"
	"slotbooker/internal/usecase/commands"
	"slotbooker/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID            uuid.UUID
	SlotID        uuid.UUID
	Actor         string
	CustomerName  string
	CustomerPhone string
	CustomerEmail *string
	Notes         *string
	Source        *string
	Status        dombooking.Status
	HoldTTL       time.Duration
	CreatedAt     time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ID:            uuid.New(),
		SlotID:        uuid.New(),
		Actor:         "user:test-user",
		CustomerName:  "Taro Yamada",
		CustomerPhone: "+81-90-1234-5678",
		Status:        dombooking.StatusHeld,
		HoldTTL:       10 * time.Minute,
		CreatedAt:     time.Now().UTC(),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildHold() *dombooking.Booking {
	customer, _ := dombooking.NewCustomer(b.CustomerName, b.CustomerPhone, b.CustomerEmail)
	return dombooking.NewHold(b.SlotID, b.Actor, customer, b.Notes, b.Source, b.CreatedAt, b.HoldTTL)
}

// BuildReconstructed rebuilds a booking in the builder's status with
// timestamps consistent with that status.
func (b *BookingBuilder) BuildReconstructed() *dombooking.Booking {
	customer, _ := dombooking.NewCustomer(b.CustomerName, b.CustomerPhone, b.CustomerEmail)

	var (
		holdExpiresAt *time.Time
		confirmedAt   *time.Time
		cancelledAt   *time.Time
		expiredAt     *time.Time
	)
	later := b.CreatedAt.Add(time.Minute)
	switch b.Status {
	case dombooking.StatusHeld:
		deadline := b.CreatedAt.Add(b.HoldTTL)
		holdExpiresAt = &deadline
	case dombooking.StatusConfirmed:
		confirmedAt = &later
	case dombooking.StatusCancelled:
		cancelledAt = &later
	case dombooking.StatusExpired:
		expiredAt = &later
	}

	return dombooking.Reconstruct(
		b.ID, b.SlotID, b.Actor, customer, b.Notes, b.Source,
		b.Status, holdExpiresAt, b.CreatedAt, confirmedAt, cancelledAt, expiredAt,
	)
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		SlotID:        b.SlotID,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		CustomerEmail: b.CustomerEmail,
		Notes:         b.Notes,
		Source:        b.Source,
	}
}

func (b *BookingBuilder) BuildCreateHoldInput() commands.CreateHoldInput {
	return commands.CreateHoldInput{
		SlotID:        b.SlotID,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		CustomerEmail: b.CustomerEmail,
		Notes:         b.Notes,
		Source:        b.Source,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	view := &queries.BookingView{
		ID:            b.ID,
		SlotID:        b.SlotID,
		SlotStartAt:   b.CreatedAt.Add(24 * time.Hour),
		SlotEndAt:     b.CreatedAt.Add(24*time.Hour + 30*time.Minute),
		LocationID:    uuid.New(),
		Actor:         b.Actor,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		CustomerEmail: b.CustomerEmail,
		Notes:         b.Notes,
		Source:        b.Source,
		Status:        b.Status.String(),
		CreatedAt:     b.CreatedAt,
	}
	if b.Status == dombooking.StatusHeld {
		deadline := b.CreatedAt.Add(b.HoldTTL)
		view.HoldExpiresAt = &deadline
	}
	return view
}

// Fluent builder methods
func (b *BookingBuilder) WithID(id uuid.UUID) *BookingBuilder {
	b.ID = id
	return b
}

func (b *BookingBuilder) WithSlotID(id uuid.UUID) *BookingBuilder {
	b.SlotID = id
	return b
}

func (b *BookingBuilder) WithActor(actor string) *BookingBuilder {
	b.Actor = actor
	return b
}

func (b *BookingBuilder) WithCustomer(name, phone string) *BookingBuilder {
	b.CustomerName = name
	b.CustomerPhone = phone
	return b
}

func (b *BookingBuilder) WithCustomerEmail(email string) *BookingBuilder {
	b.CustomerEmail = &email
	return b
}

func (b *BookingBuilder) WithNotes(notes string) *BookingBuilder {
	b.Notes = &notes
	return b
}

func (b *BookingBuilder) WithSource(source string) *BookingBuilder {
	b.Source = &source
	return b
}

func (b *BookingBuilder) WithStatus(status dombooking.Status) *BookingBuilder {
	b.Status = status
	return b
}

func (b *BookingBuilder) WithHoldTTL(ttl time.Duration) *BookingBuilder {
	b.HoldTTL = ttl
	return b
}

func (b *BookingBuilder) WithCreatedAt(t time.Time) *BookingBuilder {
	b.CreatedAt = t
	return b
}
