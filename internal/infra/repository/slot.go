package repository

import (
	"context"

	"slotbooker/internal/domain/slot"
	"slotbooker/internal/infra"
	"slotbooker/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// SlotRepository is the write side of the capacity ledger. Counter
// mutations go through GetForUpdate + UpdateCounters inside one
// transaction so the pre-condition and the update form a single atomic
// unit per slot.
type SlotRepository struct{}

func NewSlotRepository() *SlotRepository {
	return &SlotRepository{}
}

func (r *SlotRepository) Create(ctx context.Context, db infra.DBTX, s *slot.Slot) error {
	const stmt = `
INSERT INTO slots (id, location_id, person_id, date, start_at, end_at, capacity, booked, hold, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := db.Exec(ctx, stmt,
		s.ID(),
		s.LocationID(),
		pgconv.UUIDPtrToPgtype(s.PersonID()),
		pgconv.DateToPgtype(s.Date()),
		s.StartAt(),
		s.EndAt(),
		s.Capacity(),
		s.Booked(),
		s.Hold(),
		s.Status().String(),
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return infra.WrapRepoErr("slot already exists for this start time", err, infra.KindConflict)
		case isForeignKeyViolation(err):
			return infra.WrapRepoErr("location or person does not exist", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to create slot", err)
	}

	return nil
}

// GetForUpdate locks the slot row for the rest of the transaction. Every
// ledger mutation for a slot funnels through this lock.
func (r *SlotRepository) GetForUpdate(ctx context.Context, db infra.DBTX, id uuid.UUID) (*slot.Slot, error) {
	const query = `
SELECT id, location_id, person_id, date, start_at, end_at, capacity, booked, hold, status
FROM slots
WHERE id = $1
FOR UPDATE`

	return r.scanSlot(db.QueryRow(ctx, query, id))
}

func (r *SlotRepository) UpdateCounters(ctx context.Context, db infra.DBTX, s *slot.Slot) error {
	const stmt = `
UPDATE slots
SET booked = $2, hold = $3, status = $4, updated_at = NOW()
WHERE id = $1`

	tag, err := db.Exec(ctx, stmt, s.ID(), s.Booked(), s.Hold(), s.Status().String())
	if err != nil {
		if isCheckViolation(err) {
			return infra.WrapRepoErr("slot counters violate capacity invariant", err, infra.KindInvariant)
		}
		return infra.WrapRepoErr("failed to update slot counters", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("slot disappeared during update", nil, infra.KindNotFound)
	}

	return nil
}

// MarkBlocked halts further mutation on a slot whose counters were found
// inconsistent. Uses its own statement so it works after a failed update.
func (r *SlotRepository) MarkBlocked(ctx context.Context, db infra.DBTX, id uuid.UUID) error {
	const stmt = `UPDATE slots SET status = 'blocked', updated_at = NOW() WHERE id = $1`

	if _, err := db.Exec(ctx, stmt, id); err != nil {
		return infra.WrapRepoErr("failed to block slot", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SlotRepository) scanSlot(row rowScanner) (*slot.Slot, error) {
	var (
		id, locationID          uuid.UUID
		personID                pgtype.UUID
		date                    pgtype.Date
		startAt, endAt          pgtype.Timestamptz
		capacity, booked, holds int
		status                  string
	)

	err := row.Scan(&id, &locationID, &personID, &date, &startAt, &endAt, &capacity, &booked, &holds, &status)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("slot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get slot", err)
	}

	s, err := slot.Reconstruct(
		id,
		locationID,
		pgconv.UUIDPtrFromPgtype(personID),
		pgconv.DateFromPgtype(date),
		pgconv.TimeFromPgtype(startAt),
		pgconv.TimeFromPgtype(endAt),
		capacity,
		booked,
		holds,
		slot.Status(status),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("slot counters are inconsistent", err, infra.KindInvariant)
	}

	return s, nil
}
