package errs

import "errors"

// Sentinel errors shared between the usecase and handler layers.
var (
	// Slot errors
	ErrSlotNotFound = errors.New("slot not found")
	ErrSlotFull     = errors.New("slot full")
	ErrSlotBlocked  = errors.New("slot blocked")
	ErrSlotExists   = errors.New("slot already exists")

	// Booking errors
	ErrBookingNotFound = errors.New("booking not found")
	ErrBookingNotHeld  = errors.New("booking not held")
	ErrHoldExpired     = errors.New("hold expired")

	// Idempotency errors
	ErrIdempotencyKeyRequired = errors.New("idempotency key required")
	ErrIdempotencyKeyReused   = errors.New("idempotency key reused with different payload")
	ErrIdempotencyInProgress  = errors.New("request in progress")
	ErrIdempotencyCheckFailed = errors.New("idempotency check failed")

	// Ledger errors
	ErrInvariantViolation = errors.New("capacity invariant violation")

	// Location / person errors
	ErrLocationNotFound = errors.New("location not found")
	ErrPersonNotFound   = errors.New("person not found")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
