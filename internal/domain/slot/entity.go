package slot

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidCapacity    = errors.New("capacity must be positive")
	ErrInvalidTimeRange   = errors.New("start must be before end")
	ErrCounterOutOfRange  = errors.New("counter out of range")
	ErrInvariantViolation = errors.New("booked + hold exceeds capacity")
)

// Slot is one bookable unit of capacity at a fixed start time. The booked
// and hold counters are authoritative: booked + hold <= capacity always.
type Slot struct {
	id         uuid.UUID
	locationID uuid.UUID
	personID   *uuid.UUID
	date       time.Time
	startAt    time.Time
	endAt      time.Time
	capacity   int
	booked     int
	hold       int
	status     Status
}

func NewSlot(
	locationID uuid.UUID,
	personID *uuid.UUID,
	startAt, endAt time.Time,
	capacity int,
) (*Slot, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if !startAt.Before(endAt) {
		return nil, ErrInvalidTimeRange
	}

	start := startAt.UTC()
	return &Slot{
		id:         uuid.New(),
		locationID: locationID,
		personID:   personID,
		date:       time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
		startAt:    start,
		endAt:      endAt.UTC(),
		capacity:   capacity,
		status:     StatusOpen,
	}, nil
}

func Reconstruct(
	id, locationID uuid.UUID,
	personID *uuid.UUID,
	date, startAt, endAt time.Time,
	capacity, booked, hold int,
	status Status,
) (*Slot, error) {
	s := &Slot{
		id:         id,
		locationID: locationID,
		personID:   personID,
		date:       date,
		startAt:    startAt,
		endAt:      endAt,
		capacity:   capacity,
		booked:     booked,
		hold:       hold,
		status:     status,
	}
	if err := s.CheckInvariant(); err != nil {
		return nil, err
	}
	return s, nil
}

// CheckInvariant verifies the ledger counters. A failure here means a
// concurrency-control bug, not a caller error.
func (s *Slot) CheckInvariant() error {
	if s.booked < 0 || s.hold < 0 {
		return ErrCounterOutOfRange
	}
	if s.booked+s.hold > s.capacity {
		return ErrInvariantViolation
	}
	return nil
}

func (s *Slot) Remaining() int {
	return s.capacity - s.booked - s.hold
}

// RefreshStatus derives the cached status from the counters. Blocked is
// administrative and never derived away.
func (s *Slot) RefreshStatus() {
	if s.status == StatusBlocked {
		return
	}
	switch {
	case s.Remaining() <= 0:
		s.status = StatusFull
	case s.booked > 0:
		s.status = StatusPartial
	default:
		s.status = StatusOpen
	}
}

func (s *Slot) ID() uuid.UUID         { return s.id }
func (s *Slot) LocationID() uuid.UUID { return s.locationID }
func (s *Slot) PersonID() *uuid.UUID  { return s.personID }
func (s *Slot) Date() time.Time       { return s.date }
func (s *Slot) StartAt() time.Time    { return s.startAt }
func (s *Slot) EndAt() time.Time      { return s.endAt }
func (s *Slot) Capacity() int         { return s.capacity }
func (s *Slot) Booked() int           { return s.booked }
func (s *Slot) Hold() int             { return s.hold }
func (s *Slot) Status() Status        { return s.status }
