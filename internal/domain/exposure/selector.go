package exposure

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// Candidate is the slice of a slot the selector needs: identity and start
// time. Eligibility (remaining capacity, status) is the caller's concern.
type Candidate struct {
	ID      uuid.UUID
	StartAt time.Time
}

// Bounds configures how many slots a scope exposes. Person-scoped and
// location-scoped requests carry different bounds; both come from config.
type Bounds struct {
	Min int
	Max int
}

// Result is the ordered selection plus the truth about what was not shown.
type Result struct {
	Picked  []Candidate
	Total   int
	HasMore bool
}

// Select deterministically picks a bounded, fairness-respecting subset of
// the eligible candidates. Pure function of (candidates, seed, tz, bounds):
// no wall clock, no hidden state. The same seed over the same candidate set
// always yields the identical ordered result.
func Select(candidates []Candidate, seed uint64, tz *time.Location, bounds Bounds) Result {
	total := len(candidates)
	if total == 0 {
		return Result{Picked: []Candidate{}, Total: 0, HasMore: false}
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	shuffled := shuffle(candidates, rng)

	k := chooseCount(total, bounds, rng)
	picked := pickAcrossDayParts(shuffled, k, tz)

	return Result{
		Picked:  picked,
		Total:   total,
		HasMore: total > len(picked),
	}
}

func shuffle(candidates []Candidate, rng *rand.Rand) []Candidate {
	cloned := make([]Candidate, len(candidates))
	copy(cloned, candidates)
	rng.Shuffle(len(cloned), func(i, j int) {
		cloned[i], cloned[j] = cloned[j], cloned[i]
	})
	return cloned
}

// chooseCount picks k. A pool that fits within the maximum is exposed
// whole; only a larger pool draws k from [bounds.Min, bounds.Max]. The
// draw is uniform, but only determinism-given-seed and boundedness are
// guaranteed.
func chooseCount(total int, bounds Bounds, rng *rand.Rand) int {
	if total <= bounds.Max {
		return total
	}
	if bounds.Max <= bounds.Min {
		return bounds.Max
	}
	return bounds.Min + rng.IntN(bounds.Max-bounds.Min+1)
}

// pickAcrossDayParts round-robins one pick per non-empty day-part bucket,
// in bucket order, until k picks are made or the buckets run dry; any
// remainder fills from the permuted order, skipping picked entries.
func pickAcrossDayParts(shuffled []Candidate, k int, tz *time.Location) []Candidate {
	buckets := map[DayPart][]Candidate{}
	for _, c := range shuffled {
		part := DayPartOf(c.StartAt.In(tz))
		buckets[part] = append(buckets[part], c)
	}

	picked := make([]Candidate, 0, k)
	taken := map[uuid.UUID]bool{}
	for len(picked) < k {
		progressed := false
		for _, part := range bucketOrder {
			if len(picked) >= k {
				break
			}
			if len(buckets[part]) == 0 {
				continue
			}
			next := buckets[part][0]
			buckets[part] = buckets[part][1:]
			picked = append(picked, next)
			taken[next.ID] = true
			progressed = true
		}
		if !progressed {
			break
		}
	}

	for _, c := range shuffled {
		if len(picked) >= k {
			break
		}
		if !taken[c.ID] {
			picked = append(picked, c)
			taken[c.ID] = true
		}
	}

	return picked
}
