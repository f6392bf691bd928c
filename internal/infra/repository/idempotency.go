package repository

import (
	"context"
	"time"

	"slotbooker/internal/infra"
	"slotbooker/internal/pkg/pgconv"
	"slotbooker/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type IdempotencyRepository struct{}

func NewIdempotencyRepository() *IdempotencyRepository {
	return &IdempotencyRepository{}
}

// TryInsert claims (key, actor) with ON CONFLICT DO NOTHING. The caller
// inspects the existing record with Get when the claim is lost.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, db infra.DBTX, rec commands.IdempotencyRecord) (bool, error) {
	const stmt = `
INSERT INTO idempotency_keys (key, actor, endpoint, request_hash, status, expires_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (key, actor) DO NOTHING`

	tag, err := db.Exec(ctx, stmt,
		rec.Key, rec.Actor, rec.Endpoint, rec.RequestHash, string(rec.Status), rec.ExpiresAt)
	if err != nil {
		return false, infra.WrapRepoErr("failed to claim idempotency key", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *IdempotencyRepository) Get(ctx context.Context, db infra.DBTX, key, actor string) (commands.IdempotencyRecord, error) {
	const query = `
SELECT key, actor, endpoint, request_hash, status, result_booking_id, expires_at
FROM idempotency_keys
WHERE key = $1 AND actor = $2`

	var (
		rec       commands.IdempotencyRecord
		status    string
		bookingID pgtype.UUID
	)
	err := db.QueryRow(ctx, query, key, actor).Scan(
		&rec.Key, &rec.Actor, &rec.Endpoint, &rec.RequestHash, &status, &bookingID, &rec.ExpiresAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return commands.IdempotencyRecord{}, infra.WrapRepoErr("idempotency record not found", err, infra.KindNotFound)
		}
		return commands.IdempotencyRecord{}, infra.WrapRepoErr("failed to get idempotency record", err)
	}
	rec.Status = commands.IdempotencyStatus(status)
	rec.ResultBookingID = pgconv.UUIDPtrFromPgtype(bookingID)
	return rec, nil
}

// Reset reclaims an expired record in place: the old outcome is past its
// retention window and must not be replayed.
func (r *IdempotencyRepository) Reset(ctx context.Context, db infra.DBTX, rec commands.IdempotencyRecord) error {
	const stmt = `
UPDATE idempotency_keys
SET endpoint = $3, request_hash = $4, status = 'processing',
    result_booking_id = NULL, expires_at = $5, updated_at = NOW()
WHERE key = $1 AND actor = $2`

	if _, err := db.Exec(ctx, stmt, rec.Key, rec.Actor, rec.Endpoint, rec.RequestHash, rec.ExpiresAt); err != nil {
		return infra.WrapRepoErr("failed to reset idempotency record", err)
	}
	return nil
}

func (r *IdempotencyRepository) MarkCompleted(ctx context.Context, db infra.DBTX, key, actor string, bookingID uuid.UUID) error {
	const stmt = `
UPDATE idempotency_keys
SET status = 'completed', result_booking_id = $3, updated_at = NOW()
WHERE key = $1 AND actor = $2`

	tag, err := db.Exec(ctx, stmt, key, actor, bookingID)
	if err != nil {
		return infra.WrapRepoErr("failed to complete idempotency record", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("idempotency record disappeared", nil, infra.KindNotFound)
	}
	return nil
}

func (r *IdempotencyRepository) DeleteExpired(ctx context.Context, db infra.DBTX, now time.Time) (int64, error) {
	const stmt = `DELETE FROM idempotency_keys WHERE expires_at <= $1`

	tag, err := db.Exec(ctx, stmt, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to purge idempotency records", err)
	}
	return tag.RowsAffected(), nil
}
