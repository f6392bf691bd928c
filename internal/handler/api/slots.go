package api

import (
	"net/http"
	"time"

	reqdto "slotbooker/internal/handler/dto/request"
	resdto "slotbooker/internal/handler/dto/response"
	"slotbooker/internal/handler/httperr"
	"slotbooker/internal/handler/middleware"
	"slotbooker/internal/pkg/clock"
	"slotbooker/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SlotHandler struct {
	exposure queries.ExposureUseCase
	clock    clock.Clock
}

func NewSlotHandler(exposure queries.ExposureUseCase, clk clock.Clock) *SlotHandler {
	return &SlotHandler{exposure: exposure, clock: clk}
}

// @Summary List date availability
// @Description Per-day count of bookable slots for a location
// @Tags slots
// @Produce json
// @Param location_id query string true "Location ID"
// @Param person_id query string false "Person ID"
// @Param from query string false "Start date (YYYY-MM-DD, default today)"
// @Param days query int false "Number of days (default 14, max 90)"
// @Success 200 {object} resdto.ListDatesResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /v1/dates [get]
func (h *SlotHandler) ListDates(c *gin.Context) {
	var q reqdto.ListDatesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "INVALID_QUERY", "Invalid query parameters", nil)
		return
	}

	locationID, personID, err := parseScope(q.LocationID, q.PersonID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "INVALID_QUERY", "Invalid id format", nil)
		return
	}

	from := h.clock.Now().UTC().Truncate(24 * time.Hour)
	if q.From != "" {
		from, _ = time.Parse("2006-01-02", q.From)
	}

	dates, err := h.exposure.ListDateAvailability(c.Request.Context(), queries.ListDateAvailabilityInput{
		LocationID: locationID,
		PersonID:   personID,
		From:       from,
		Days:       q.Days,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromDateAvailability(dates))
}

// @Summary List exposed slots
// @Description Bounded, deterministic subset of bookable slots for the requester
// @Tags slots
// @Produce json
// @Param location_id query string true "Location ID"
// @Param person_id query string false "Person ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} resdto.ListSlotsResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /v1/slots [get]
func (h *SlotHandler) ListSlots(c *gin.Context) {
	var q reqdto.ListSlotsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "INVALID_QUERY", "Invalid query parameters", nil)
		return
	}

	locationID, personID, err := parseScope(q.LocationID, q.PersonID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "INVALID_QUERY", "Invalid id format", nil)
		return
	}
	date, err := time.Parse("2006-01-02", q.Date)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "INVALID_QUERY", "Invalid date format", nil)
		return
	}

	result, err := h.exposure.ListExposedSlots(c.Request.Context(), queries.ListExposedSlotsInput{
		RequesterKey: middleware.GetRequesterKey(c),
		LocationID:   locationID,
		PersonID:     personID,
		Date:         date,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromExposureResult(result))
}

func parseScope(locationStr, personStr string) (uuid.UUID, *uuid.UUID, error) {
	locationID, err := uuid.Parse(locationStr)
	if err != nil {
		return uuid.Nil, nil, err
	}
	var personID *uuid.UUID
	if personStr != "" {
		id, err := uuid.Parse(personStr)
		if err != nil {
			return uuid.Nil, nil, err
		}
		personID = &id
	}
	return locationID, personID, nil
}
