package booking

import (
	"context"
	"errors"
	"time"

	"staybook/internal/app/commands"
	"staybook/internal/app/middleware"
	"staybook/internal/app/outbox"
	"staybook/internal/app/policies"
	"staybook/internal/app/uow"
	domainapartments "staybook/internal/domain/apartments"
	domainbooking "staybook/internal/domain/booking"
	domainrange "staybook/internal/domain/shared/daterange"
)

const requestBookingKey = "booking.request"

var (
	ErrUnitOfWorkRequired = errors.New("booking: unit of work required")
	ErrNoQuote            = errors.New("booking: no price breakdown for the selected dates")
)

type RequestBookingCommand struct {
	CommandID       string
	ApartmentID     string
	GuestID         string
	CheckIn         time.Time
	CheckOut        time.Time
	Guests          []domainbooking.Guest
	IdempotencyKeyV string
}

func (c RequestBookingCommand) Key() string { return requestBookingKey }

func (c RequestBookingCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c RequestBookingCommand) ResultPrototype() any { return &RequestBookingResult{} }

type RequestBookingResult struct {
	BookingID   string `json:"booking_id"`
	Nights      int    `json:"nights"`
	TotalAmount int64  `json:"total_amount"`
	Currency    string `json:"currency"`
}

type RequestBookingHandler struct {
	UoWFactory uow.UoWFactory
	Pricing    policies.PricingPort
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	Clock      func() time.Time
}

func (h *RequestBookingHandler) Handle(ctx context.Context, cmd RequestBookingCommand) (*RequestBookingResult, error) {
	unit, ok := uow.FromContext(ctx)
	managed := false
	committed := false
	if !ok {
		if h.UoWFactory == nil {
			return nil, ErrUnitOfWorkRequired
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{})
		if err != nil {
			return nil, err
		}
		ctx = uow.ContextWithUnitOfWork(ctx, unit)
		managed = true
	}
	if managed {
		defer func() {
			if !committed {
				_ = unit.Rollback(ctx)
			}
		}()
	}

	dr, err := domainrange.New(cmd.CheckIn, cmd.CheckOut)
	if err != nil {
		return nil, err
	}
	now := h.now()
	if err := domainbooking.ValidateDateRange(dr, now); err != nil {
		return nil, err
	}
	// The form already checked this; re-check here so a stale submission
	// can never slip a minor-only party past the gate.
	if !domainbooking.HasAdult(cmd.Guests) {
		return nil, domainbooking.ErrNoAdultGuest
	}

	apartment, err := unit.Apartments().ByID(ctx, domainapartments.ApartmentID(cmd.ApartmentID))
	if err != nil {
		return nil, err
	}

	breakdown, err := h.Pricing.Quote(ctx, apartment, dr.CheckIn, dr.CheckOut, now)
	if err != nil {
		return nil, err
	}
	if breakdown == nil {
		return nil, ErrNoQuote
	}

	b, err := domainbooking.NewBooking(domainbooking.CreateParams{
		ID:          domainbooking.BookingID(cmd.CommandID),
		ApartmentID: apartment.ID,
		GuestID:     cmd.GuestID,
		Range:       dr,
		Guests:      cmd.Guests,
		Breakdown:   breakdown,
		CreatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	if err := unit.Bookings().Save(ctx, b); err != nil {
		return nil, err
	}

	pending := b.PendingEvents()
	b.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.encoder(), pending); err != nil {
		return nil, err
	}

	if managed {
		if err := unit.Commit(ctx); err != nil {
			return nil, err
		}
		committed = true
	}

	return &RequestBookingResult{
		BookingID:   string(b.ID),
		Nights:      b.Nights,
		TotalAmount: b.Total.Amount,
		Currency:    b.Total.Currency,
	}, nil
}

func (h *RequestBookingHandler) encoder() outbox.EventEncoder {
	if h.Encoder != nil {
		return h.Encoder
	}
	return outbox.JSONEventEncoder{}
}

func (h *RequestBookingHandler) now() time.Time {
	if h.Clock != nil {
		return h.Clock().UTC()
	}
	return time.Now().UTC()
}

var _ commands.Handler[RequestBookingCommand, *RequestBookingResult] = (*RequestBookingHandler)(nil)
var _ middleware.IdempotentCommand = (*RequestBookingCommand)(nil)
