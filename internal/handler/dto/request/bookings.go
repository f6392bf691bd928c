package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	SlotID        uuid.UUID `json:"slot_id" binding:"required"`
	CustomerName  string    `json:"customer_name" binding:"required"`
	CustomerPhone string    `json:"customer_phone" binding:"required"`
	CustomerEmail *string   `json:"customer_email" binding:"omitempty,email"`
	Notes         *string   `json:"notes"`
	Source        *string   `json:"source"`
}

type AdminPatchBookingRequest struct {
	Action    string     `json:"action" binding:"required,oneof=cancel confirm reschedule"`
	NewSlotID *uuid.UUID `json:"new_slot_id"`
	Reason    *string    `json:"reason"`
}

type AdminCreateSlotRequest struct {
	LocationID uuid.UUID  `json:"location_id" binding:"required"`
	PersonID   *uuid.UUID `json:"person_id"`
	StartAt    time.Time  `json:"start_at" binding:"required"`
	EndAt      time.Time  `json:"end_at" binding:"required"`
	Capacity   int        `json:"capacity" binding:"required,min=1"`
}

type AdminListBookingsQuery struct {
	Status     string `form:"status" binding:"omitempty,oneof=held confirmed cancelled expired"`
	LocationID string `form:"location_id" binding:"omitempty,uuid"`
	PersonID   string `form:"person_id" binding:"omitempty,uuid"`
	DateFrom   string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo     string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
	Q          string `form:"q"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=200"`
}
