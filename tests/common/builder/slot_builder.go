//go:build unit || e2e

package builder

import (
	"time"

	domslot "slotbooker/internal/domain/slot"
	reqdto "slotbooker/internal/handler/dto/request"
	"slotbooker/internal/usecase/queries"

	"github.com/google/uuid"
)

type SlotBuilder struct {
	ID         uuid.UUID
	LocationID uuid.UUID
	PersonID   *uuid.UUID
	StartAt    time.Time
	EndAt      time.Time
	Capacity   int
	Booked     int
	Hold       int
	Status     domslot.Status
}

func NewSlotBuilder() *SlotBuilder {
	start := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Hour)
	return &SlotBuilder{
		ID:         uuid.New(),
		LocationID: uuid.New(),
		StartAt:    start,
		EndAt:      start.Add(30 * time.Minute),
		Capacity:   3,
		Status:     domslot.StatusOpen,
	}
}

func (b *SlotBuilder) With(mutate func(*SlotBuilder)) *SlotBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *SlotBuilder) BuildDomain() (*domslot.Slot, error) {
	return domslot.NewSlot(b.LocationID, b.PersonID, b.StartAt, b.EndAt, b.Capacity)
}

// BuildReconstructed rebuilds a slot with the counters the builder
// carries, the way a repository load would.
func (b *SlotBuilder) BuildReconstructed() (*domslot.Slot, error) {
	start := b.StartAt.UTC()
	date := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	return domslot.Reconstruct(b.ID, b.LocationID, b.PersonID, date, start, b.EndAt.UTC(), b.Capacity, b.Booked, b.Hold, b.Status)
}

func (b *SlotBuilder) BuildCreateRequestDTO() reqdto.AdminCreateSlotRequest {
	return reqdto.AdminCreateSlotRequest{
		LocationID: b.LocationID,
		PersonID:   b.PersonID,
		StartAt:    b.StartAt,
		EndAt:      b.EndAt,
		Capacity:   b.Capacity,
	}
}

func (b *SlotBuilder) BuildEligible() queries.EligibleSlot {
	return queries.EligibleSlot{
		ID:        b.ID,
		PersonID:  b.PersonID,
		StartAt:   b.StartAt,
		EndAt:     b.EndAt,
		Capacity:  b.Capacity,
		Remaining: b.Capacity - b.Booked - b.Hold,
	}
}

// Fluent builder methods
func (b *SlotBuilder) WithID(id uuid.UUID) *SlotBuilder {
	b.ID = id
	return b
}

func (b *SlotBuilder) WithLocationID(id uuid.UUID) *SlotBuilder {
	b.LocationID = id
	return b
}

func (b *SlotBuilder) WithPersonID(id uuid.UUID) *SlotBuilder {
	b.PersonID = &id
	return b
}

func (b *SlotBuilder) WithStartAt(t time.Time) *SlotBuilder {
	b.StartAt = t
	b.EndAt = t.Add(30 * time.Minute)
	return b
}

func (b *SlotBuilder) WithEndAt(t time.Time) *SlotBuilder {
	b.EndAt = t
	return b
}

func (b *SlotBuilder) WithCapacity(capacity int) *SlotBuilder {
	b.Capacity = capacity
	return b
}

func (b *SlotBuilder) WithCounters(booked, hold int) *SlotBuilder {
	b.Booked = booked
	b.Hold = hold
	return b
}

func (b *SlotBuilder) WithStatus(status domslot.Status) *SlotBuilder {
	b.Status = status
	return b
}

func (b *SlotBuilder) AsFull() *SlotBuilder {
	b.Booked = b.Capacity
	b.Hold = 0
	b.Status = domslot.StatusFull
	return b
}
