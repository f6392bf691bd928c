package booking

type Status string

const (
	StatusHeld      Status = "held"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusHeld, StatusConfirmed, StatusCancelled, StatusExpired:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition may leave this status.
// Held is the only non-terminal state; confirmed holds may still be
// released by cancellation, but never revert to held.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusExpired
}

// ReleaseReason distinguishes the two paths that free held or booked
// capacity back to the ledger.
type ReleaseReason string

const (
	ReleaseCancelled ReleaseReason = "cancelled"
	ReleaseExpired   ReleaseReason = "expired"
)
