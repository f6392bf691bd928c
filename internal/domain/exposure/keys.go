package exposure

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const cachePrefix = "exposure:"

// ScopeKey identifies one exposure scope: a location (or a person within
// it) on a date. Segments use '|' so ':' stays free for key structure.
func ScopeKey(locationID uuid.UUID, personID *uuid.UUID, date time.Time) string {
	person := "-"
	if personID != nil {
		person = personID.String()
	}
	return locationID.String() + "|" + person + "|" + date.Format("2006-01-02")
}

// CacheKey is the full cache key for one requester's view of a scope
// under given bounds. The requester segment is hashed: requester keys may
// come from raw session headers and must not land in cache keys verbatim.
func CacheKey(scopeKey, requesterKey string, bounds Bounds) string {
	sum := sha256.Sum256([]byte(requesterKey + "|" + strconv.Itoa(bounds.Min) + "-" + strconv.Itoa(bounds.Max)))
	return cachePrefix + scopeKey + ":" + hex.EncodeToString(sum[:16])
}

// CacheKeyPattern matches every requester's key for a scope.
func CacheKeyPattern(scopeKey string) string {
	return cachePrefix + scopeKey + ":*"
}

// ScopeKeyOf recovers the scope segment from a full cache key.
func ScopeKeyOf(cacheKey string) string {
	trimmed := strings.TrimPrefix(cacheKey, cachePrefix)
	if i := strings.LastIndex(trimmed, ":"); i >= 0 {
		return trimmed[:i]
	}
	return trimmed
}
