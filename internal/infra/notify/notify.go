// Package notify persists booking lifecycle events as notification jobs
// for an out-of-process dispatcher to pick up.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"

	"slotbooker/internal/usecase/commands"

	"github.com/jackc/pgx/v5/pgxpool"
)

type JobWriter struct {
	pool *pgxpool.Pool
}

func NewJobWriter(pool *pgxpool.Pool) *JobWriter {
	return &JobWriter{pool: pool}
}

// Notify enqueues a job row after the originating transaction has
// committed. A failure here is logged and swallowed: the booking
// mutation already happened and must not be rolled back or retried
// because of a notification problem.
func (w *JobWriter) Notify(ctx context.Context, ev commands.Event) {
	payload, err := json.Marshal(map[string]any{
		"booking_id": ev.BookingID,
		"slot_id":    ev.SlotID,
		"actor":      ev.Actor,
		"at":         ev.At,
	})
	if err != nil {
		slog.Error("failed to encode notification payload", "kind", ev.Kind, "error", err.Error())
		return
	}

	const stmt = `
INSERT INTO notification_jobs (kind, topic, payload, run_at)
VALUES ($1, $2, $3, $4)`

	topic := "bookings." + ev.BookingID.String()
	if _, err := w.pool.Exec(ctx, stmt, ev.Kind, topic, payload, ev.At); err != nil {
		slog.Error("failed to enqueue notification job",
			"kind", ev.Kind,
			"booking_id", ev.BookingID.String(),
			"error", err.Error())
	}
}
