package dto

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	domainbooking "staybook/internal/domain/booking"
	"staybook/internal/domain/shared/money"
)

type MoneyDTO struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func MapMoney(value money.Money) MoneyDTO {
	return MoneyDTO{Amount: value.Amount, Currency: value.Currency}
}

// GuestAge tolerates the age arriving either as a JSON number or a numeric
// string; booking forms have shipped both shapes. Anything unparseable
// becomes zero, which never passes the adult gate.
type GuestAge int

func (a *GuestAge) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "" || raw == "null" {
		*a = 0
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		*a = 0
		return nil
	}
	*a = GuestAge(n)
	return nil
}

type GuestPayload struct {
	FullName string   `json:"full_name"`
	Age      GuestAge `json:"age"`
}

func MapGuests(payload []GuestPayload) []domainbooking.Guest {
	out := make([]domainbooking.Guest, 0, len(payload))
	for _, g := range payload {
		out = append(out, domainbooking.Guest{FullName: g.FullName, Age: int(g.Age)})
	}
	return out
}

type GuestDTO struct {
	FullName string `json:"full_name"`
	Age      int    `json:"age"`
}

type BookingSummary struct {
	ID          string     `json:"id"`
	ApartmentID string     `json:"apartment_id"`
	GuestID     string     `json:"guest_id"`
	CheckIn     time.Time  `json:"check_in"`
	CheckOut    time.Time  `json:"check_out"`
	Nights      int        `json:"nights"`
	Guests      []GuestDTO `json:"guests"`
	Status      string     `json:"status"`
	Total       MoneyDTO   `json:"total"`
	CreatedAt   time.Time  `json:"created_at"`
}

type BookingCollection struct {
	Items []BookingSummary `json:"items"`
}

func MapBookingSummary(b *domainbooking.Booking) BookingSummary {
	guests := make([]GuestDTO, 0, len(b.Guests))
	for _, g := range b.Guests {
		guests = append(guests, GuestDTO{FullName: g.FullName, Age: g.Age})
	}
	return BookingSummary{
		ID:          string(b.ID),
		ApartmentID: string(b.ApartmentID),
		GuestID:     b.GuestID,
		CheckIn:     b.Range.CheckIn,
		CheckOut:    b.Range.CheckOut,
		Nights:      b.Nights,
		Guests:      guests,
		Status:      string(b.State),
		Total:       MapMoney(b.Total),
		CreatedAt:   b.CreatedAt,
	}
}

func MapBookingCollection(list []*domainbooking.Booking) BookingCollection {
	items := make([]BookingSummary, 0, len(list))
	for _, b := range list {
		items = append(items, MapBookingSummary(b))
	}
	return BookingCollection{Items: items}
}

var _ json.Unmarshaler = (*GuestAge)(nil)
