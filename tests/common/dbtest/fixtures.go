//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// Fixed IDs for the reference rows every test can rely on. The locations
// table has no natural unique key, so seeding is idempotent on id.
var (
	DefaultLocationID = uuid.MustParse("6f1f63a4-0000-4000-8000-000000000001")
	DefaultPersonID   = uuid.MustParse("6f1f63a4-0000-4000-8000-000000000002")
)

func CreateTestLocation(t *testing.T, db DBLike, name, timezone string) uuid.UUID {
	t.Helper()

	locationID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO locations (id, name, timezone) VALUES ($1, $2, $3)",
		locationID, name, timezone)
	require.NoError(t, err)

	return locationID
}

func CreateTestPerson(t *testing.T, db DBLike, locationID uuid.UUID, name string) uuid.UUID {
	t.Helper()

	personID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO people (id, location_id, name, active) VALUES ($1, $2, $3, true)",
		personID, locationID, name)
	require.NoError(t, err)

	return personID
}

// CreateTestSlot inserts a slot with explicit counters. Status is derived
// the same way the write path derives it.
func CreateTestSlot(t *testing.T, db DBLike, locationID uuid.UUID, personID *uuid.UUID, startAt time.Time, capacity, booked, hold int) uuid.UUID {
	t.Helper()

	slotID := uuid.New()
	start := startAt.UTC()
	date := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)

	status := "open"
	if booked+hold >= capacity {
		status = "full"
	}

	ctx := context.Background()
	_, err := db.Exec(ctx, `
		INSERT INTO slots (id, location_id, person_id, date, start_at, end_at, capacity, booked, hold, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		slotID, locationID, personID, date, start, start.Add(30*time.Minute), capacity, booked, hold, status)
	require.NoError(t, err)

	return slotID
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO locations (id, name, timezone) VALUES
		    ($1, 'Default Clinic', 'Asia/Tokyo')
		ON CONFLICT (id) DO NOTHING;
	`, DefaultLocationID)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO people (id, location_id, name, active) VALUES
		    ($1, $2, 'Dr. Default', true)
		ON CONFLICT (id) DO NOTHING;
	`, DefaultPersonID, DefaultLocationID)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
