package readstore

import (
	"context"
	"time"

	"slotbooker/internal/infra"
	"slotbooker/internal/pkg/pgconv"
	"slotbooker/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SlotReadStore struct {
	pool *pgxpool.Pool
}

func NewSlotReadStore(pool *pgxpool.Pool) *SlotReadStore {
	return &SlotReadStore{pool: pool}
}

// ListEligible discounts overdue holds when computing remaining
// capacity, so a slot freed by an expired hold shows up immediately even
// if the sweeper has not run yet.
func (s *SlotReadStore) ListEligible(ctx context.Context, locationID uuid.UUID, personID *uuid.UUID, date, now time.Time) ([]queries.EligibleSlot, error) {
	const query = `
SELECT s.id, s.person_id, s.start_at, s.end_at, s.capacity,
       s.capacity - s.booked - s.hold + COALESCE(o.overdue, 0) AS remaining
FROM slots s
LEFT JOIN (
    SELECT slot_id, COUNT(*) AS overdue
    FROM bookings
    WHERE status = 'held' AND hold_expires_at <= $4
    GROUP BY slot_id
) o ON o.slot_id = s.id
WHERE s.location_id = $1
  AND ($2::uuid IS NULL OR s.person_id = $2)
  AND s.date = $3
  AND s.status <> 'blocked'
  AND s.start_at > $4
  AND s.booked + s.hold - COALESCE(o.overdue, 0) < s.capacity
ORDER BY s.start_at`

	rows, err := s.pool.Query(ctx, query,
		locationID, pgconv.UUIDPtrToPgtype(personID), pgconv.DateToPgtype(date), now)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list eligible slots", err)
	}
	defer rows.Close()

	var out []queries.EligibleSlot
	for rows.Next() {
		var (
			es       queries.EligibleSlot
			personPg pgtype.UUID
		)
		if err := rows.Scan(&es.ID, &personPg, &es.StartAt, &es.EndAt, &es.Capacity, &es.Remaining); err != nil {
			return nil, infra.WrapRepoErr("failed to scan eligible slot", err)
		}
		es.PersonID = pgconv.UUIDPtrFromPgtype(personPg)
		out = append(out, es)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read eligible slots", err)
	}
	return out, nil
}

func (s *SlotReadStore) ListDateAvailability(ctx context.Context, locationID uuid.UUID, personID *uuid.UUID, from, to, now time.Time) ([]queries.DateAvailability, error) {
	const query = `
SELECT s.date,
       COUNT(*) FILTER (
           WHERE s.status <> 'blocked'
             AND s.start_at > $5
             AND s.booked + s.hold - COALESCE(o.overdue, 0) < s.capacity
       ) AS available
FROM slots s
LEFT JOIN (
    SELECT slot_id, COUNT(*) AS overdue
    FROM bookings
    WHERE status = 'held' AND hold_expires_at <= $5
    GROUP BY slot_id
) o ON o.slot_id = s.id
WHERE s.location_id = $1
  AND ($2::uuid IS NULL OR s.person_id = $2)
  AND s.date BETWEEN $3 AND $4
GROUP BY s.date
ORDER BY s.date`

	rows, err := s.pool.Query(ctx, query,
		locationID, pgconv.UUIDPtrToPgtype(personID),
		pgconv.DateToPgtype(from), pgconv.DateToPgtype(to), now)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list date availability", err)
	}
	defer rows.Close()

	var out []queries.DateAvailability
	for rows.Next() {
		var (
			da   queries.DateAvailability
			date pgtype.Date
		)
		if err := rows.Scan(&date, &da.Available); err != nil {
			return nil, infra.WrapRepoErr("failed to scan date availability", err)
		}
		da.Date = pgconv.DateFromPgtype(date)
		out = append(out, da)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read date availability", err)
	}
	return out, nil
}
