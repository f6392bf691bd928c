package repository

import (
	"context"
	"time"

	"slotbooker/internal/domain/booking"
	"slotbooker/internal/infra"
	"slotbooker/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const bookingColumns = `
id, slot_id, actor, customer_name, customer_phone, customer_email,
notes, source, status, hold_expires_at, created_at, confirmed_at, cancelled_at, expired_at`

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

func (r *BookingRepository) Create(ctx context.Context, db infra.DBTX, b *booking.Booking) error {
	const stmt = `
INSERT INTO bookings (id, slot_id, actor, customer_name, customer_phone, customer_email,
                      notes, source, status, hold_expires_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := db.Exec(ctx, stmt,
		b.ID(),
		b.SlotID(),
		b.Actor(),
		b.Customer().Name,
		b.Customer().Phone,
		pgconv.StringPtrToPgtype(b.Customer().Email),
		pgconv.StringPtrToPgtype(b.Notes()),
		pgconv.StringPtrToPgtype(b.Source()),
		b.Status().String(),
		pgconv.TimePtrToPgtype(b.HoldExpiresAt()),
		b.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) GetForUpdate(ctx context.Context, db infra.DBTX, id uuid.UUID) (*booking.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`
	return r.scanBooking(db.QueryRow(ctx, query, id))
}

// UpdateStatus persists a state transition made on the entity. The slot
// assignment is written too so reschedules reuse the same statement.
func (r *BookingRepository) UpdateStatus(ctx context.Context, db infra.DBTX, b *booking.Booking) error {
	const stmt = `
UPDATE bookings
SET slot_id = $2, status = $3, hold_expires_at = $4, confirmed_at = $5, cancelled_at = $6, expired_at = $7
WHERE id = $1`

	tag, err := db.Exec(ctx, stmt,
		b.ID(),
		b.SlotID(),
		b.Status().String(),
		pgconv.TimePtrToPgtype(b.HoldExpiresAt()),
		pgconv.TimePtrToPgtype(b.ConfirmedAt()),
		pgconv.TimePtrToPgtype(b.CancelledAt()),
		pgconv.TimePtrToPgtype(b.ExpiredAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking disappeared during update", nil, infra.KindNotFound)
	}
	return nil
}

// ListOverdueHeldForUpdate returns held bookings whose deadline has
// passed, locking them. SKIP LOCKED keeps concurrent sweepers and
// in-request expiry from blocking on each other.
func (r *BookingRepository) ListOverdueHeldForUpdate(ctx context.Context, db infra.DBTX, now time.Time, limit int) ([]*booking.Booking, error) {
	query := `
SELECT ` + bookingColumns + `
FROM bookings
WHERE status = 'held' AND hold_expires_at <= $1
ORDER BY hold_expires_at
LIMIT $2
FOR UPDATE SKIP LOCKED`

	rows, err := db.Query(ctx, query, now, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list overdue holds", err)
	}
	defer rows.Close()

	var out []*booking.Booking
	for rows.Next() {
		b, err := r.scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read overdue holds", err)
	}
	return out, nil
}

// ListOverdueHeldBySlotForUpdate is the in-request variant: the caller
// already holds the slot row lock, so this only races the sweeper.
func (r *BookingRepository) ListOverdueHeldBySlotForUpdate(ctx context.Context, db infra.DBTX, slotID uuid.UUID, now time.Time) ([]*booking.Booking, error) {
	query := `
SELECT ` + bookingColumns + `
FROM bookings
WHERE slot_id = $1 AND status = 'held' AND hold_expires_at <= $2
FOR UPDATE SKIP LOCKED`

	rows, err := db.Query(ctx, query, slotID, now)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list overdue holds for slot", err)
	}
	defer rows.Close()

	var out []*booking.Booking
	for rows.Next() {
		b, err := r.scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read overdue holds for slot", err)
	}
	return out, nil
}

func (r *BookingRepository) scanBooking(row rowScanner) (*booking.Booking, error) {
	var (
		id, slotID                          uuid.UUID
		actor, name, phone                  string
		email, notes, source                pgtype.Text
		status                              string
		holdExpiresAt                       pgtype.Timestamptz
		createdAt                           time.Time
		confirmedAt, cancelledAt, expiredAt pgtype.Timestamptz
	)

	err := row.Scan(&id, &slotID, &actor, &name, &phone, &email,
		&notes, &source, &status, &holdExpiresAt, &createdAt, &confirmedAt, &cancelledAt, &expiredAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get booking", err)
	}

	b := booking.Reconstruct(
		id,
		slotID,
		actor,
		booking.Customer{Name: name, Phone: phone, Email: pgconv.StringPtrFromPgtype(email)},
		pgconv.StringPtrFromPgtype(notes),
		pgconv.StringPtrFromPgtype(source),
		booking.Status(status),
		pgconv.TimePtrFromPgtype(holdExpiresAt),
		createdAt,
		pgconv.TimePtrFromPgtype(confirmedAt),
		pgconv.TimePtrFromPgtype(cancelledAt),
		pgconv.TimePtrFromPgtype(expiredAt),
	)
	return b, nil
}
