package queries

import (
	"time"

	"github.com/google/uuid"
)

// EligibleSlot is a slot that could be exposed: future start, not
// blocked, with remaining capacity after discounting overdue holds.
type EligibleSlot struct {
	ID        uuid.UUID
	PersonID  *uuid.UUID
	StartAt   time.Time
	EndAt     time.Time
	Capacity  int
	Remaining int
}

// ExposedSlot is what callers see. Remaining is included; the raw
// booked/hold counters are not.
type ExposedSlot struct {
	ID        uuid.UUID  `json:"id"`
	StartAt   time.Time  `json:"start_at"`
	EndAt     time.Time  `json:"end_at"`
	PersonID  *uuid.UUID `json:"person_id,omitempty"`
	Remaining int        `json:"remaining"`
}

type ExposureResult struct {
	Slots          []ExposedSlot `json:"slots"`
	TotalAvailable int           `json:"total_available"`
	HasMore        bool          `json:"has_more"`
	// Timezone is the location's IANA zone, for rendering local times.
	Timezone string `json:"timezone"`
}

type DateAvailability struct {
	Date      time.Time
	Available int
}

type LocationView struct {
	ID       uuid.UUID
	Name     string
	Timezone string
}

type BookingView struct {
	ID            uuid.UUID
	SlotID        uuid.UUID
	SlotStartAt   time.Time
	SlotEndAt     time.Time
	LocationID    uuid.UUID
	Actor         string
	CustomerName  string
	CustomerPhone string
	CustomerEmail *string
	Notes         *string
	Source        *string
	Status        string
	HoldExpiresAt *time.Time
	CreatedAt     time.Time
	ConfirmedAt   *time.Time
	CancelledAt   *time.Time
	ExpiredAt     *time.Time
}

// BookingFilter narrows the admin listing. Nil fields match everything.
type BookingFilter struct {
	LocationID *uuid.UUID
	PersonID   *uuid.UUID
	DateFrom   *time.Time
	DateTo     *time.Time
	Status     *string
	Actor      *string
	// Search matches customer name or phone, case-insensitively.
	Search *string
	Limit  int
	Offset int
}

type BookingPage struct {
	Items []BookingView
	Total int64
}
