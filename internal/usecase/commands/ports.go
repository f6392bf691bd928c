package commands

import (
	"context"
	"time"

	"slotbooker/internal/domain/booking"
	"slotbooker/internal/domain/slot"
	"slotbooker/internal/infra"

	"github.com/google/uuid"
)

// TxRunner runs a function inside a transaction (or directly against the
// pool for WithDB).
type TxRunner interface {
	Within(ctx context.Context, fn func(ctx context.Context, db infra.DBTX) error) error
	WithDB(ctx context.Context, fn func(ctx context.Context, db infra.DBTX) error) error
}

type SlotRepository interface {
	Create(ctx context.Context, db infra.DBTX, s *slot.Slot) error
	GetForUpdate(ctx context.Context, db infra.DBTX, id uuid.UUID) (*slot.Slot, error)
	UpdateCounters(ctx context.Context, db infra.DBTX, s *slot.Slot) error
	MarkBlocked(ctx context.Context, db infra.DBTX, id uuid.UUID) error
}

type BookingRepository interface {
	Create(ctx context.Context, db infra.DBTX, b *booking.Booking) error
	GetForUpdate(ctx context.Context, db infra.DBTX, id uuid.UUID) (*booking.Booking, error)
	UpdateStatus(ctx context.Context, db infra.DBTX, b *booking.Booking) error
	ListOverdueHeldForUpdate(ctx context.Context, db infra.DBTX, now time.Time, limit int) ([]*booking.Booking, error)
	ListOverdueHeldBySlotForUpdate(ctx context.Context, db infra.DBTX, slotID uuid.UUID, now time.Time) ([]*booking.Booking, error)
}

type IdempotencyStatus string

const (
	IdempotencyProcessing IdempotencyStatus = "processing"
	IdempotencyCompleted  IdempotencyStatus = "completed"
)

// IdempotencyRecord pins a mutation to its first observed request. The
// request hash distinguishes a safe replay from key reuse with a
// different payload.
type IdempotencyRecord struct {
	Key             string
	Actor           string
	Endpoint        string
	RequestHash     string
	Status          IdempotencyStatus
	ResultBookingID *uuid.UUID
	ExpiresAt       time.Time
}

type IdempotencyRepository interface {
	// TryInsert claims the (key, actor) pair. Returns false when another
	// request already claimed it.
	TryInsert(ctx context.Context, db infra.DBTX, rec IdempotencyRecord) (bool, error)
	Get(ctx context.Context, db infra.DBTX, key, actor string) (IdempotencyRecord, error)
	// Reset reclaims a record whose retention window has lapsed.
	Reset(ctx context.Context, db infra.DBTX, rec IdempotencyRecord) error
	MarkCompleted(ctx context.Context, db infra.DBTX, key, actor string, bookingID uuid.UUID) error
	DeleteExpired(ctx context.Context, db infra.DBTX, now time.Time) (int64, error)
}

// Event is a lifecycle notification emitted after a booking mutation
// commits.
type Event struct {
	Kind      string
	BookingID uuid.UUID
	SlotID    uuid.UUID
	Actor     string
	At        time.Time
}

const (
	EventBookingCreated     = "booking.created"
	EventBookingConfirmed   = "booking.confirmed"
	EventBookingCancelled   = "booking.cancelled"
	EventBookingExpired     = "booking.expired"
	EventBookingRescheduled = "booking.rescheduled"
)

// Notifier delivers events best-effort. Failures must not affect the
// committed mutation.
type Notifier interface {
	Notify(ctx context.Context, ev Event)
}

// ExposureCacheInvalidator drops cached exposure sets when admin
// mutations change the underlying inventory.
type ExposureCacheInvalidator interface {
	Invalidate(ctx context.Context, scopeKey string)
}
