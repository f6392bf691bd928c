package response

import (
	"time"

	"slotbooker/internal/usecase/commands"
	"slotbooker/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID            uuid.UUID  `json:"id"`
	SlotID        uuid.UUID  `json:"slot_id"`
	SlotStartAt   time.Time  `json:"slot_start_at"`
	SlotEndAt     time.Time  `json:"slot_end_at"`
	LocationID    uuid.UUID  `json:"location_id"`
	Actor         string     `json:"actor"`
	CustomerName  string     `json:"customer_name"`
	CustomerPhone string     `json:"customer_phone"`
	CustomerEmail *string    `json:"customer_email,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	Source        *string    `json:"source,omitempty"`
	Status        string     `json:"status"`
	HoldExpiresAt *time.Time `json:"hold_expires_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	ConfirmedAt   *time.Time `json:"confirmed_at,omitempty"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
	ExpiredAt     *time.Time `json:"expired_at,omitempty"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	var resp BookingResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

type CreateBookingResponse struct {
	ID            uuid.UUID  `json:"id"`
	Status        string     `json:"status"`
	HoldExpiresAt *time.Time `json:"hold_expires_at,omitempty"`
	Replayed      bool       `json:"replayed"`
}

func FromCreateHoldResult(r commands.CreateHoldResult) CreateBookingResponse {
	return CreateBookingResponse{
		ID:            r.BookingID,
		Status:        r.Status,
		HoldExpiresAt: r.HoldExpiresAt,
		Replayed:      r.Replayed,
	}
}

type ConfirmBookingResponse struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

type BookingListResponse struct {
	Items    []BookingResponse `json:"items"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

func FromBookingPage(page queries.BookingPage, pageNum, pageSize int) BookingListResponse {
	items := make([]BookingResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, *FromBookingView(&page.Items[i]))
	}
	return BookingListResponse{
		Items:    items,
		Total:    page.Total,
		Page:     pageNum,
		PageSize: pageSize,
	}
}
