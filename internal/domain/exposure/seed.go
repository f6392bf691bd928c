package exposure

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"strings"
	"time"
)

// HourSalt rotates the exposure seed once per hour so a requester does not
// perpetually see the same subset, while keeping selections stable within
// the hour. Pure function of the wall clock, never process state.
func HourSalt(now time.Time) string {
	return fmt.Sprintf("%d", now.UTC().Truncate(time.Hour).Unix())
}

// Seed derives the deterministic shuffle seed from the request identity.
// Identical inputs always produce the identical seed.
func Seed(requesterKey, dateKey, scopeKey, salt string, minSlots, maxSlots int) uint64 {
	joined := strings.Join([]string{
		requesterKey,
		dateKey,
		scopeKey,
		salt,
		fmt.Sprintf("%d-%d", minSlots, maxSlots),
	}, "|")
	digest := sha256.Sum256([]byte(joined))
	return binary.BigEndian.Uint64(digest[:8])
}
