package booking

import (
	"context"
	"errors"
	"time"

	"staybook/internal/domain/apartments"
	"staybook/internal/domain/pricing"
	"staybook/internal/domain/shared/daterange"
	"staybook/internal/domain/shared/events"
	"staybook/internal/domain/shared/money"
)

var (
	ErrInvalidGuests   = errors.New("booking: guests count must be positive")
	ErrNoAdultGuest    = errors.New("booking: at least one guest must be an adult")
	ErrGuestIDRequired = errors.New("booking: guest id required")
	ErrNoBreakdown     = errors.New("booking: price breakdown required")
	ErrInvalidState    = errors.New("booking: invalid state transition")
	ErrBookingNotFound = errors.New("booking: not found")
	ErrCheckInInPast   = errors.New("booking: check-in date is in the past")
)

type BookingID string

type BookingState string

const (
	StatePending   BookingState = "PENDING"
	StateConfirmed BookingState = "CONFIRMED"
	StateDeclined  BookingState = "DECLINED"
	StateCancelled BookingState = "CANCELLED"
)

type Booking struct {
	ID          BookingID
	ApartmentID apartments.ApartmentID
	GuestID     string
	Range       daterange.DateRange
	Guests      []Guest
	Nights      int
	Total       money.Money
	Breakdown   pricing.Breakdown
	State       BookingState
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Version     int64
	events.EventRecorder
}

type CreateParams struct {
	ID          BookingID
	ApartmentID apartments.ApartmentID
	GuestID     string
	Range       daterange.DateRange
	Guests      []Guest
	Breakdown   *pricing.Breakdown
	CreatedAt   time.Time
}

// NewBooking builds a pending booking from an accepted quote. The charged
// total is the one place the exact breakdown is rounded to minor units.
func NewBooking(params CreateParams) (*Booking, error) {
	if len(params.Guests) == 0 {
		return nil, ErrInvalidGuests
	}
	if !HasAdult(params.Guests) {
		return nil, ErrNoAdultGuest
	}
	if params.GuestID == "" {
		return nil, ErrGuestIDRequired
	}
	if params.Breakdown == nil {
		return nil, ErrNoBreakdown
	}
	if err := params.Range.Validate(); err != nil {
		return nil, err
	}
	total, err := money.FromFloat(params.Breakdown.Total, params.Breakdown.Currency)
	if err != nil {
		return nil, err
	}
	now := params.CreatedAt.UTC()
	b := &Booking{
		ID:          params.ID,
		ApartmentID: params.ApartmentID,
		GuestID:     params.GuestID,
		Range:       params.Range,
		Guests:      append([]Guest(nil), params.Guests...),
		Nights:      params.Breakdown.Nights,
		Total:       total,
		Breakdown:   *params.Breakdown,
		State:       StatePending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	b.Record(BookingRequested{
		BookingID:   b.ID,
		ApartmentID: b.ApartmentID,
		GuestID:     b.GuestID,
		CheckIn:     b.Range.CheckIn,
		CheckOut:    b.Range.CheckOut,
		Nights:      b.Nights,
		Total:       b.Total,
		At:          now,
	})
	return b, nil
}

// ValidateDateRange refuses check-in dates before the current calendar day.
func ValidateDateRange(dr daterange.DateRange, now time.Time) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	checkInDay := time.Date(dr.CheckIn.Year(), dr.CheckIn.Month(), dr.CheckIn.Day(), 0, 0, 0, 0, time.UTC)
	if checkInDay.Before(today) {
		return ErrCheckInInPast
	}
	return nil
}

func (b *Booking) Confirm(now time.Time) error {
	if b.State != StatePending {
		return ErrInvalidState
	}
	b.State = StateConfirmed
	b.UpdatedAt = now.UTC()
	b.Record(BookingConfirmed{BookingID: b.ID, ApartmentID: b.ApartmentID, Total: b.Total, At: b.UpdatedAt})
	return nil
}

func (b *Booking) Decline(reason string, now time.Time) error {
	if b.State != StatePending {
		return ErrInvalidState
	}
	b.State = StateDeclined
	b.UpdatedAt = now.UTC()
	b.Record(BookingDeclined{BookingID: b.ID, Reason: reason, At: b.UpdatedAt})
	return nil
}

func (b *Booking) Cancel(reason string, now time.Time) error {
	switch b.State {
	case StatePending, StateConfirmed:
	default:
		return ErrInvalidState
	}
	b.State = StateCancelled
	b.UpdatedAt = now.UTC()
	b.Record(BookingCancelled{BookingID: b.ID, Reason: reason, At: b.UpdatedAt})
	return nil
}

type Repository interface {
	ByID(ctx context.Context, id BookingID) (*Booking, error)
	Save(ctx context.Context, booking *Booking) error
	ListByGuest(ctx context.Context, guestID string) ([]*Booking, error)
}
