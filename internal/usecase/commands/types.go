package commands

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	endpointCreateHold = "POST /v1/bookings"
)

type CreateHoldInput struct {
	SlotID        uuid.UUID `json:"slot_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	CustomerEmail *string   `json:"customer_email,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
	Source        *string   `json:"source,omitempty"`
}

type CreateHoldResult struct {
	BookingID     uuid.UUID
	Status        string
	HoldExpiresAt *time.Time
	// Replayed marks an idempotent replay of an earlier successful hold.
	Replayed bool
}

type ConfirmResult struct {
	BookingID uuid.UUID
	Status    string
}

type RescheduleInput struct {
	BookingID uuid.UUID
	NewSlotID uuid.UUID
}

type CreateSlotInput struct {
	LocationID uuid.UUID
	PersonID   *uuid.UUID
	StartAt    time.Time
	EndAt      time.Time
	Capacity   int
}

type CreateSlotResult struct {
	SlotID uuid.UUID
	Status string
}

type SweepResult struct {
	ExpiredHolds int
	PurgedKeys   int64
}

// fingerprint canonicalizes a payload so the idempotency store can tell a
// replay from key reuse. Struct field order is fixed, so the JSON
// encoding is deterministic.
func fingerprint(endpoint string, payload any) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(append([]byte(endpoint+"\n"), raw...))
	return hex.EncodeToString(sum[:]), nil
}
