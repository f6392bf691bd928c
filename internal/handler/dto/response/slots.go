package response

import (
	"time"

	"slotbooker/internal/usecase/queries"

	"github.com/google/uuid"
)

type ExposedSlotResponse struct {
	ID        uuid.UUID  `json:"id"`
	StartAt   string     `json:"start_at"`
	EndAt     string     `json:"end_at"`
	PersonID  *uuid.UUID `json:"person_id,omitempty"`
	Remaining int        `json:"remaining"`
}

type ListSlotsResponse struct {
	Slots          []ExposedSlotResponse `json:"slots"`
	TotalAvailable int                   `json:"total_available"`
	HasMore        bool                  `json:"has_more"`
	Timezone       string                `json:"timezone"`
}

// FromExposureResult renders slot times in the location's timezone; the
// zone falls back to UTC if the stored name does not resolve.
func FromExposureResult(r queries.ExposureResult) ListSlotsResponse {
	tz, err := time.LoadLocation(r.Timezone)
	if err != nil {
		tz = time.UTC
	}

	slots := make([]ExposedSlotResponse, 0, len(r.Slots))
	for _, s := range r.Slots {
		slots = append(slots, ExposedSlotResponse{
			ID:        s.ID,
			StartAt:   s.StartAt.In(tz).Format(time.RFC3339),
			EndAt:     s.EndAt.In(tz).Format(time.RFC3339),
			PersonID:  s.PersonID,
			Remaining: s.Remaining,
		})
	}
	return ListSlotsResponse{
		Slots:          slots,
		TotalAvailable: r.TotalAvailable,
		HasMore:        r.HasMore,
		Timezone:       r.Timezone,
	}
}

type DateAvailabilityResponse struct {
	Date      string `json:"date"`
	Available int    `json:"available"`
}

type ListDatesResponse struct {
	Dates []DateAvailabilityResponse `json:"dates"`
}

func FromDateAvailability(rows []queries.DateAvailability) ListDatesResponse {
	dates := make([]DateAvailabilityResponse, 0, len(rows))
	for _, r := range rows {
		dates = append(dates, DateAvailabilityResponse{
			Date:      r.Date.Format("2006-01-02"),
			Available: r.Available,
		})
	}
	return ListDatesResponse{Dates: dates}
}

type CreateSlotResponse struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}
