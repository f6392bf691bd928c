package readstore

import (
	"context"
	"fmt"
	"strings"

	"slotbooker/internal/infra"
	"slotbooker/internal/pkg/pgconv"
	"slotbooker/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingReadStore struct {
	pool *pgxpool.Pool
}

func NewBookingReadStore(pool *pgxpool.Pool) *BookingReadStore {
	return &BookingReadStore{pool: pool}
}

const bookingViewColumns = `
b.id, b.slot_id, s.start_at, s.end_at, s.location_id,
b.actor, b.customer_name, b.customer_phone, b.customer_email,
b.notes, b.source, b.status, b.hold_expires_at,
b.created_at, b.confirmed_at, b.cancelled_at, b.expired_at`

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	query := `
SELECT ` + bookingViewColumns + `
FROM bookings b
JOIN slots s ON s.id = b.slot_id
WHERE b.id = $1`

	v, err := scanBookingView(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get booking", err)
	}
	return v, nil
}

// List applies optional filters and keyset-free pagination. The admin
// surface is low-volume, so OFFSET is acceptable here.
func (s *BookingReadStore) List(ctx context.Context, filter queries.BookingFilter) (queries.BookingPage, error) {
	conds := []string{"TRUE"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.LocationID != nil {
		conds = append(conds, "s.location_id = "+arg(*filter.LocationID))
	}
	if filter.PersonID != nil {
		conds = append(conds, "s.person_id = "+arg(*filter.PersonID))
	}
	if filter.DateFrom != nil {
		conds = append(conds, "s.date >= "+arg(pgconv.DateToPgtype(*filter.DateFrom)))
	}
	if filter.DateTo != nil {
		conds = append(conds, "s.date <= "+arg(pgconv.DateToPgtype(*filter.DateTo)))
	}
	if filter.Status != nil {
		conds = append(conds, "b.status = "+arg(*filter.Status))
	}
	if filter.Actor != nil {
		conds = append(conds, "b.actor = "+arg(*filter.Actor))
	}
	if filter.Search != nil {
		p := arg("%" + *filter.Search + "%")
		conds = append(conds, "(b.customer_name ILIKE "+p+" OR b.customer_phone ILIKE "+p+")")
	}
	where := strings.Join(conds, " AND ")

	countQuery := `
SELECT COUNT(*)
FROM bookings b
JOIN slots s ON s.id = b.slot_id
WHERE ` + where

	var total int64
	if err := s.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return queries.BookingPage{}, infra.WrapRepoErr("failed to count bookings", err)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	listQuery := `
SELECT ` + bookingViewColumns + `
FROM bookings b
JOIN slots s ON s.id = b.slot_id
WHERE ` + where + `
ORDER BY b.created_at DESC, b.id
LIMIT ` + arg(limit) + ` OFFSET ` + arg(offset)

	rows, err := s.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return queries.BookingPage{}, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	items := []queries.BookingView{}
	for rows.Next() {
		v, err := scanBookingView(rows)
		if err != nil {
			return queries.BookingPage{}, infra.WrapRepoErr("failed to scan booking", err)
		}
		items = append(items, *v)
	}
	if err := rows.Err(); err != nil {
		return queries.BookingPage{}, infra.WrapRepoErr("failed to read bookings", err)
	}

	return queries.BookingPage{Items: items, Total: total}, nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var (
		v                                                  queries.BookingView
		email, notes, source                               pgtype.Text
		holdExpiresAt, confirmedAt, cancelledAt, expiredAt pgtype.Timestamptz
	)
	err := row.Scan(
		&v.ID, &v.SlotID, &v.SlotStartAt, &v.SlotEndAt, &v.LocationID,
		&v.Actor, &v.CustomerName, &v.CustomerPhone, &email,
		&notes, &source, &v.Status, &holdExpiresAt,
		&v.CreatedAt, &confirmedAt, &cancelledAt, &expiredAt,
	)
	if err != nil {
		return nil, err
	}
	v.CustomerEmail = pgconv.StringPtrFromPgtype(email)
	v.Notes = pgconv.StringPtrFromPgtype(notes)
	v.Source = pgconv.StringPtrFromPgtype(source)
	v.HoldExpiresAt = pgconv.TimePtrFromPgtype(holdExpiresAt)
	v.ConfirmedAt = pgconv.TimePtrFromPgtype(confirmedAt)
	v.CancelledAt = pgconv.TimePtrFromPgtype(cancelledAt)
	v.ExpiredAt = pgconv.TimePtrFromPgtype(expiredAt)
	return &v, nil
}
