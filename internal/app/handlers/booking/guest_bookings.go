package booking

import (
	"context"
	"errors"

	"staybook/internal/app/dto"
	"staybook/internal/app/handlers/support"
	"staybook/internal/app/queries"
	"staybook/internal/app/uow"
)

const guestBookingsKey = "booking.guest_list"

var ErrGuestRequired = errors.New("booking: guest id required for listing")

type GuestBookingsQuery struct {
	GuestID string
}

func (q GuestBookingsQuery) Key() string { return guestBookingsKey }

type GuestBookingsHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *GuestBookingsHandler) Handle(ctx context.Context, q GuestBookingsQuery) (dto.BookingCollection, error) {
	if q.GuestID == "" {
		return dto.BookingCollection{}, ErrGuestRequired
	}
	_, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.BookingCollection{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	unit, _ := uow.FromContext(execCtx)
	list, err := unit.Bookings().ListByGuest(execCtx, q.GuestID)
	if err != nil {
		return dto.BookingCollection{}, err
	}
	return dto.MapBookingCollection(list), nil
}

var _ queries.Handler[GuestBookingsQuery, dto.BookingCollection] = (*GuestBookingsHandler)(nil)
