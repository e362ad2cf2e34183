package booking

import (
	"time"

	"staybook/internal/domain/apartments"
	"staybook/internal/domain/shared/money"
)

type BookingRequested struct {
	BookingID   BookingID              `json:"booking_id"`
	ApartmentID apartments.ApartmentID `json:"apartment_id"`
	GuestID     string                 `json:"guest_id"`
	CheckIn     time.Time              `json:"check_in"`
	CheckOut    time.Time              `json:"check_out"`
	Nights      int                    `json:"nights"`
	Total       money.Money            `json:"total"`
	At          time.Time              `json:"at"`
}

func (e BookingRequested) EventName() string     { return "booking.requested" }
func (e BookingRequested) AggregateID() string   { return string(e.BookingID) }
func (e BookingRequested) OccurredAt() time.Time { return e.At }

type BookingConfirmed struct {
	BookingID   BookingID              `json:"booking_id"`
	ApartmentID apartments.ApartmentID `json:"apartment_id"`
	Total       money.Money            `json:"total"`
	At          time.Time              `json:"at"`
}

func (e BookingConfirmed) EventName() string     { return "booking.confirmed" }
func (e BookingConfirmed) AggregateID() string   { return string(e.BookingID) }
func (e BookingConfirmed) OccurredAt() time.Time { return e.At }

type BookingDeclined struct {
	BookingID BookingID `json:"booking_id"`
	Reason    string    `json:"reason"`
	At        time.Time `json:"at"`
}

func (e BookingDeclined) EventName() string     { return "booking.declined" }
func (e BookingDeclined) AggregateID() string   { return string(e.BookingID) }
func (e BookingDeclined) OccurredAt() time.Time { return e.At }

type BookingCancelled struct {
	BookingID BookingID `json:"booking_id"`
	Reason    string    `json:"reason"`
	At        time.Time `json:"at"`
}

func (e BookingCancelled) EventName() string     { return "booking.cancelled" }
func (e BookingCancelled) AggregateID() string   { return string(e.BookingID) }
func (e BookingCancelled) OccurredAt() time.Time { return e.At }
