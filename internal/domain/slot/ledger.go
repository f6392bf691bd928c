package slot

import "errors"

var (
	ErrBlocked    = errors.New("slot is blocked")
	ErrNoCapacity = errors.New("no remaining capacity")
	ErrNoHold     = errors.New("no hold to release")
	ErrNoBooked   = errors.New("no booked unit to release")
)

// AcquireHold reserves one unit of capacity as a hold.
func (s *Slot) AcquireHold() error {
	if s.status == StatusBlocked {
		return ErrBlocked
	}
	if s.Remaining() <= 0 {
		return ErrNoCapacity
	}
	s.hold++
	s.RefreshStatus()
	return nil
}

// PromoteHold converts one held unit into a booked unit. The sum is
// unchanged so the capacity invariant cannot break here.
func (s *Slot) PromoteHold() error {
	if s.hold <= 0 {
		return ErrNoHold
	}
	s.hold--
	s.booked++
	s.RefreshStatus()
	return nil
}

// AcquireBooked books one unit directly, bypassing the hold stage. Used
// when a confirmed booking is moved between slots.
func (s *Slot) AcquireBooked() error {
	if s.status == StatusBlocked {
		return ErrBlocked
	}
	if s.Remaining() <= 0 {
		return ErrNoCapacity
	}
	s.booked++
	s.RefreshStatus()
	return nil
}

// ReleaseHold returns one held unit to the pool (hold expired or
// cancelled before confirmation).
func (s *Slot) ReleaseHold() error {
	if s.hold <= 0 {
		return ErrNoHold
	}
	s.hold--
	s.RefreshStatus()
	return nil
}

// ReleaseBooked returns one booked unit to the pool (confirmed booking
// cancelled).
func (s *Slot) ReleaseBooked() error {
	if s.booked <= 0 {
		return ErrNoBooked
	}
	s.booked--
	s.RefreshStatus()
	return nil
}

// Block marks the slot administratively unavailable. Existing bookings
// are untouched; new holds are refused.
func (s *Slot) Block() {
	s.status = StatusBlocked
}

// Unblock rederives the status from the counters.
func (s *Slot) Unblock() {
	s.status = StatusOpen
	s.RefreshStatus()
}
