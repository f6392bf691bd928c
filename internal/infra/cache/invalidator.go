package cache

import (
	"context"
	"log/slog"

	"slotbooker/internal/usecase/queries"
)

// Invalidator adapts the exposure cache for command-side use. Dropping a
// cached set is best-effort: a miss just means stickiness runs out the
// TTL instead.
type Invalidator struct {
	cache queries.ExposureCache
}

func NewInvalidator(cache queries.ExposureCache) *Invalidator {
	return &Invalidator{cache: cache}
}

func (i *Invalidator) Invalidate(ctx context.Context, scopeKey string) {
	if err := i.cache.InvalidateScope(ctx, scopeKey); err != nil {
		slog.Warn("failed to invalidate exposure cache", "scope", scopeKey, "error", err.Error())
	}
}
