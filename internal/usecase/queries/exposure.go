package queries

import (
	"context"
	"log/slog"
	"time"

	"slotbooker/internal/domain/exposure"
	"slotbooker/internal/infra"
	"slotbooker/internal/pkg/clock"
	"slotbooker/internal/pkg/config"
	"slotbooker/internal/pkg/errs"

	"github.com/google/uuid"
)

type ExposureUseCase interface {
	ListExposedSlots(ctx context.Context, in ListExposedSlotsInput) (ExposureResult, error)
	ListDateAvailability(ctx context.Context, in ListDateAvailabilityInput) ([]DateAvailability, error)
}

type ExposureQueries struct {
	locations LocationReadStore
	slots     SlotReadStore
	cache     ExposureCache
	clock     clock.Clock
	cfg       config.ExposureConfig
}

var _ ExposureUseCase = (*ExposureQueries)(nil)

func NewExposureQueries(
	locations LocationReadStore,
	slots SlotReadStore,
	cache ExposureCache,
	clk clock.Clock,
	cfg config.ExposureConfig,
) *ExposureQueries {
	return &ExposureQueries{
		locations: locations,
		slots:     slots,
		cache:     cache,
		clock:     clk,
		cfg:       cfg,
	}
}

type ListExposedSlotsInput struct {
	RequesterKey string
	LocationID   uuid.UUID
	PersonID     *uuid.UUID
	Date         time.Time
}

// ListExposedSlots returns the bounded, deterministic subset of bookable
// slots this requester may see. Within the stickiness TTL the cached set
// is replayed, re-intersected with current eligibility so stale entries
// never resurface a taken slot.
func (q *ExposureQueries) ListExposedSlots(ctx context.Context, in ListExposedSlotsInput) (ExposureResult, error) {
	loc, err := q.locations.FindByID(ctx, in.LocationID)
	if err != nil {
		return ExposureResult{}, mapLocationErr(err)
	}
	if in.PersonID != nil {
		exists, err := q.locations.PersonExists(ctx, in.LocationID, *in.PersonID)
		if err != nil {
			return ExposureResult{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !exists {
			return ExposureResult{}, errs.ErrPersonNotFound
		}
	}

	tz, err := time.LoadLocation(loc.Timezone)
	if err != nil {
		slog.Warn("unknown location timezone, falling back to UTC",
			"location_id", loc.ID.String(), "timezone", loc.Timezone)
		tz = time.UTC
	}

	now := q.clock.Now().UTC()
	eligible, err := q.slots.ListEligible(ctx, in.LocationID, in.PersonID, in.Date, now)
	if err != nil {
		return ExposureResult{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if len(eligible) == 0 {
		return ExposureResult{Slots: []ExposedSlot{}, Timezone: loc.Timezone}, nil
	}

	byID := make(map[uuid.UUID]EligibleSlot, len(eligible))
	for _, es := range eligible {
		byID[es.ID] = es
	}

	bounds := q.boundsFor(in.PersonID)
	scopeKey := exposure.ScopeKey(in.LocationID, in.PersonID, in.Date)
	cacheKey := exposure.CacheKey(scopeKey, in.RequesterKey, bounds)

	if cached, ok, err := q.cache.Get(ctx, cacheKey); err != nil {
		slog.Warn("exposure cache read failed", "error", err.Error())
	} else if ok {
		if refreshed, alive := refresh(cached, byID); alive {
			refreshed.TotalAvailable = len(eligible)
			refreshed.HasMore = len(refreshed.Slots) < len(eligible)
			refreshed.Timezone = loc.Timezone
			return refreshed, nil
		}
	}

	result := q.selectFresh(eligible, byID, in, scopeKey, bounds, tz, now)
	result.Timezone = loc.Timezone
	if err := q.cache.Set(ctx, cacheKey, result, q.cfg.StickinessTTL); err != nil {
		slog.Warn("exposure cache write failed", "error", err.Error())
	}
	return result, nil
}

func (q *ExposureQueries) selectFresh(eligible []EligibleSlot, byID map[uuid.UUID]EligibleSlot, in ListExposedSlotsInput, scopeKey string, bounds exposure.Bounds, tz *time.Location, now time.Time) ExposureResult {
	candidates := make([]exposure.Candidate, 0, len(eligible))
	for _, es := range eligible {
		candidates = append(candidates, exposure.Candidate{ID: es.ID, StartAt: es.StartAt})
	}

	seed := exposure.Seed(
		in.RequesterKey,
		in.Date.Format("2006-01-02"),
		scopeKey,
		exposure.HourSalt(now),
		bounds.Min,
		bounds.Max,
	)
	selected := exposure.Select(candidates, seed, tz, bounds)

	slots := make([]ExposedSlot, 0, len(selected.Picked))
	for _, c := range selected.Picked {
		es := byID[c.ID]
		slots = append(slots, ExposedSlot{
			ID:        es.ID,
			StartAt:   es.StartAt,
			EndAt:     es.EndAt,
			PersonID:  es.PersonID,
			Remaining: es.Remaining,
		})
	}
	return ExposureResult{
		Slots:          slots,
		TotalAvailable: selected.Total,
		HasMore:        selected.HasMore,
	}
}

func (q *ExposureQueries) boundsFor(personID *uuid.UUID) exposure.Bounds {
	if personID != nil {
		return exposure.Bounds{Min: q.cfg.PersonMin, Max: q.cfg.PersonMax}
	}
	return exposure.Bounds{Min: q.cfg.LocationMin, Max: q.cfg.LocationMax}
}

// refresh intersects a cached exposure set with current eligibility and
// rereads remaining counts. An empty intersection means the whole set was
// booked out; the caller recomputes instead.
func refresh(cached ExposureResult, byID map[uuid.UUID]EligibleSlot) (ExposureResult, bool) {
	alive := make([]ExposedSlot, 0, len(cached.Slots))
	for _, s := range cached.Slots {
		es, ok := byID[s.ID]
		if !ok {
			continue
		}
		s.Remaining = es.Remaining
		alive = append(alive, s)
	}
	if len(alive) == 0 {
		return ExposureResult{}, false
	}
	cached.Slots = alive
	return cached, true
}

type ListDateAvailabilityInput struct {
	LocationID uuid.UUID
	PersonID   *uuid.UUID
	From       time.Time
	Days       int
}

// ListDateAvailability reports bookable-slot counts per day, zero-filled
// so callers get one entry per requested day.
func (q *ExposureQueries) ListDateAvailability(ctx context.Context, in ListDateAvailabilityInput) ([]DateAvailability, error) {
	if _, err := q.locations.FindByID(ctx, in.LocationID); err != nil {
		return nil, mapLocationErr(err)
	}

	days := in.Days
	if days <= 0 {
		days = 14
	}
	if days > 90 {
		days = 90
	}

	now := q.clock.Now().UTC()
	from := in.From
	to := from.AddDate(0, 0, days-1)
	rows, err := q.slots.ListDateAvailability(ctx, in.LocationID, in.PersonID, from, to, now)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.Date.Format("2006-01-02")] = r.Available
	}

	out := make([]DateAvailability, 0, days)
	for d := 0; d < days; d++ {
		day := from.AddDate(0, 0, d)
		out = append(out, DateAvailability{
			Date:      day,
			Available: counts[day.Format("2006-01-02")],
		})
	}
	return out, nil
}

func mapLocationErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, errs.ErrLocationNotFound)
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}
