package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type SlotReadStore interface {
	// ListEligible returns bookable slots for a scope on a date, ordered
	// by start time. Overdue holds count as available capacity.
	ListEligible(ctx context.Context, locationID uuid.UUID, personID *uuid.UUID, date, now time.Time) ([]EligibleSlot, error)
	// ListDateAvailability reports, per date in [from, to], how many
	// bookable slots remain.
	ListDateAvailability(ctx context.Context, locationID uuid.UUID, personID *uuid.UUID, from, to, now time.Time) ([]DateAvailability, error)
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, filter BookingFilter) (BookingPage, error)
}

type LocationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*LocationView, error)
	PersonExists(ctx context.Context, locationID, personID uuid.UUID) (bool, error)
}

// ExposureCache pins a requester's exposed set for the stickiness
// window. Implementations: Redis when configured, in-process otherwise.
type ExposureCache interface {
	Get(ctx context.Context, key string) (ExposureResult, bool, error)
	Set(ctx context.Context, key string, result ExposureResult, ttl time.Duration) error
	InvalidateScope(ctx context.Context, scopeKey string) error
}
