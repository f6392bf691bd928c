package queries

import (
	"context"

	"slotbooker/internal/infra"
	"slotbooker/internal/pkg/errs"

	"github.com/google/uuid"
)

type BookingViewUseCase interface {
	GetBooking(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListBookings(ctx context.Context, filter BookingFilter) (BookingPage, error)
}

type BookingQueries struct {
	bookings BookingReadStore
}

var _ BookingViewUseCase = (*BookingQueries)(nil)

func NewBookingQueries(bookings BookingReadStore) *BookingQueries {
	return &BookingQueries{bookings: bookings}
}

func (q *BookingQueries) GetBooking(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	v, err := q.bookings.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookingNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return v, nil
}

func (q *BookingQueries) ListBookings(ctx context.Context, filter BookingFilter) (BookingPage, error) {
	page, err := q.bookings.List(ctx, filter)
	if err != nil {
		return BookingPage{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return page, nil
}
