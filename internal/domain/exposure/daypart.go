package exposure

import "time"

// DayPart buckets diversify exposed slot times across the day. Boundaries
// are evaluated in the slot location's timezone.
type DayPart string

const (
	Morning   DayPart = "morning"
	Afternoon DayPart = "afternoon"
	Evening   DayPart = "evening"
	Other     DayPart = "other"
)

// bucketOrder is the round-robin visiting order.
var bucketOrder = [...]DayPart{Morning, Afternoon, Evening, Other}

// DayPartOf classifies a local start time: morning [06,12), afternoon
// [12,17), evening [17,22), anything else is other.
func DayPartOf(localStart time.Time) DayPart {
	switch h := localStart.Hour(); {
	case h >= 6 && h < 12:
		return Morning
	case h >= 12 && h < 17:
		return Afternoon
	case h >= 17 && h < 22:
		return Evening
	default:
		return Other
	}
}
