package slot

type Status string

const (
	StatusOpen    Status = "open"
	StatusPartial Status = "partial"
	StatusFull    Status = "full"
	StatusBlocked Status = "blocked"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusPartial, StatusFull, StatusBlocked:
		return true
	default:
		return false
	}
}

// Bookable reports whether the slot may accept new holds in this status.
func (s Status) Bookable() bool {
	return s == StatusOpen || s == StatusPartial
}
