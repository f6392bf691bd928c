package api

import (
	"net/http"
	"time"

	reqdto "slotbooker/internal/handler/dto/request"
	resdto "slotbooker/internal/handler/dto/response"
	"slotbooker/internal/handler/httperr"
	"slotbooker/internal/pkg/errs"
	"slotbooker/internal/usecase/commands"
	"slotbooker/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminHandler struct {
	bookingCommands commands.BookingUseCase
	slotCommands    commands.SlotUseCase
	bookingQueries  queries.BookingViewUseCase
}

func NewAdminHandler(
	bookingCommands commands.BookingUseCase,
	slotCommands commands.SlotUseCase,
	bookingQueries queries.BookingViewUseCase,
) *AdminHandler {
	return &AdminHandler{
		bookingCommands: bookingCommands,
		slotCommands:    slotCommands,
		bookingQueries:  bookingQueries,
	}
}

// @Summary List bookings
// @Description Paged booking listing with filters
// @Tags admin
// @Produce json
// @Param status query string false "Booking status"
// @Param location_id query string false "Location ID"
// @Param person_id query string false "Person ID"
// @Param date_from query string false "Slot date lower bound (YYYY-MM-DD)"
// @Param date_to query string false "Slot date upper bound (YYYY-MM-DD)"
// @Param q query string false "Customer name or phone search"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 50, max 200)"
// @Success 200 {object} resdto.BookingListResponse
// @Failure 400 {object} httperr.Response
// @Router /admin/v1/bookings [get]
func (h *AdminHandler) ListBookings(c *gin.Context) {
	var q reqdto.AdminListBookingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "INVALID_QUERY", "Invalid query parameters", nil)
		return
	}

	filter, page, pageSize, err := buildBookingFilter(q)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "INVALID_QUERY", "Invalid filter value", nil)
		return
	}

	result, err := h.bookingQueries.ListBookings(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingPage(result, page, pageSize))
}

// @Summary Patch booking
// @Description Cancel, confirm or reschedule a booking
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body reqdto.AdminPatchBookingRequest true "Action"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/v1/bookings/{id} [patch]
func (h *AdminHandler) PatchBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "INVALID_ID", "Invalid booking ID format", nil)
		return
	}

	var req reqdto.AdminPatchBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "INVALID_BODY", "Invalid request format", nil)
		return
	}

	ctx := c.Request.Context()
	switch req.Action {
	case "cancel":
		err = h.bookingCommands.CancelBooking(ctx, id)
	case "confirm":
		_, err = h.bookingCommands.ConfirmBooking(ctx, id)
	case "reschedule":
		if req.NewSlotID == nil {
			httperr.AbortWithError(c, http.StatusBadRequest,
				errs.ErrDomainValidation, "INVALID_BODY", "new_slot_id is required for reschedule", nil)
			return
		}
		err = h.bookingCommands.RescheduleBooking(ctx, commands.RescheduleInput{
			BookingID: id,
			NewSlotID: *req.NewSlotID,
		})
	}
	if err != nil {
		respondError(c, err)
		return
	}

	view, err := h.bookingQueries.GetBooking(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Create slot
// @Description Create one concrete slot instance
// @Tags admin
// @Accept json
// @Produce json
// @Param request body reqdto.AdminCreateSlotRequest true "Slot definition"
// @Success 201 {object} resdto.CreateSlotResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /admin/v1/slots [post]
func (h *AdminHandler) CreateSlot(c *gin.Context) {
	var req reqdto.AdminCreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "INVALID_BODY", "Invalid request format", nil)
		return
	}

	result, err := h.slotCommands.CreateSlot(c.Request.Context(), commands.CreateSlotInput{
		LocationID: req.LocationID,
		PersonID:   req.PersonID,
		StartAt:    req.StartAt,
		EndAt:      req.EndAt,
		Capacity:   req.Capacity,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.CreateSlotResponse{ID: result.SlotID, Status: result.Status})
}

func buildBookingFilter(q reqdto.AdminListBookingsQuery) (queries.BookingFilter, int, int, error) {
	var filter queries.BookingFilter

	if q.Status != "" {
		filter.Status = &q.Status
	}
	if q.LocationID != "" {
		id, err := uuid.Parse(q.LocationID)
		if err != nil {
			return filter, 0, 0, err
		}
		filter.LocationID = &id
	}
	if q.PersonID != "" {
		id, err := uuid.Parse(q.PersonID)
		if err != nil {
			return filter, 0, 0, err
		}
		filter.PersonID = &id
	}
	if q.DateFrom != "" {
		t, err := time.Parse("2006-01-02", q.DateFrom)
		if err != nil {
			return filter, 0, 0, err
		}
		filter.DateFrom = &t
	}
	if q.DateTo != "" {
		t, err := time.Parse("2006-01-02", q.DateTo)
		if err != nil {
			return filter, 0, 0, err
		}
		filter.DateTo = &t
	}
	if q.Q != "" {
		filter.Search = &q.Q
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize < 1 {
		pageSize = 50
	}
	filter.Limit = pageSize
	filter.Offset = (page - 1) * pageSize

	return filter, page, pageSize, nil
}
