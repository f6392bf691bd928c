package api

import (
	"errors"
	"net/http"

	"slotbooker/internal/handler/httperr"
	"slotbooker/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	status int
	code   string
	msg    string
}

var errorMappings = []struct {
	target error
	errorMapping
}{
	{errs.ErrSlotNotFound, errorMapping{http.StatusNotFound, "SLOT_NOT_FOUND", "Slot not found"}},
	{errs.ErrBookingNotFound, errorMapping{http.StatusNotFound, "BOOKING_NOT_FOUND", "Booking not found"}},
	{errs.ErrLocationNotFound, errorMapping{http.StatusNotFound, "LOCATION_NOT_FOUND", "Location not found"}},
	{errs.ErrPersonNotFound, errorMapping{http.StatusNotFound, "PERSON_NOT_FOUND", "Person not found"}},
	{errs.ErrSlotFull, errorMapping{http.StatusConflict, "SLOT_FULL", "Slot has no remaining capacity"}},
	{errs.ErrSlotBlocked, errorMapping{http.StatusConflict, "SLOT_BLOCKED", "Slot is not accepting bookings"}},
	{errs.ErrSlotExists, errorMapping{http.StatusConflict, "SLOT_EXISTS", "Slot already exists for this start time"}},
	{errs.ErrBookingNotHeld, errorMapping{http.StatusConflict, "BOOKING_NOT_HELD", "Booking is not in a held state"}},
	{errs.ErrHoldExpired, errorMapping{http.StatusConflict, "HOLD_EXPIRED", "Hold has expired"}},
	{errs.ErrIdempotencyKeyReused, errorMapping{http.StatusConflict, "IDEMPOTENCY_KEY_REUSED", "Idempotency key reused with a different payload"}},
	{errs.ErrIdempotencyInProgress, errorMapping{http.StatusConflict, "REQUEST_IN_PROGRESS", "Request with this idempotency key is being processed"}},
	{errs.ErrIdempotencyKeyRequired, errorMapping{http.StatusBadRequest, "IDEMPOTENCY_KEY_REQUIRED", "Idempotency-Key header is required"}},
	{errs.ErrDomainValidation, errorMapping{http.StatusUnprocessableEntity, "VALIDATION_FAILED", "Request failed domain validation"}},
	{errs.ErrInvariantViolation, errorMapping{http.StatusInternalServerError, "INVARIANT_VIOLATION", "Capacity ledger invariant violation"}},
}

func respondError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			httperr.AbortWithError(c, m.status, err, m.code, m.msg, nil)
			return
		}
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "INTERNAL", "Internal server error", nil)
}
