package apartments

import "time"

type ApartmentCreated struct {
	ApartmentID ApartmentID `json:"apartment_id"`
	Owner       OwnerID     `json:"owner_id"`
	At          time.Time   `json:"at"`
}

func (e ApartmentCreated) EventName() string     { return "apartments.created" }
func (e ApartmentCreated) AggregateID() string   { return string(e.ApartmentID) }
func (e ApartmentCreated) OccurredAt() time.Time { return e.At }

type ApartmentRatesChanged struct {
	ApartmentID ApartmentID `json:"apartment_id"`
	NightlyRate float64     `json:"nightly_rate"`
	CleaningFee float64     `json:"cleaning_fee"`
	At          time.Time   `json:"at"`
}

func (e ApartmentRatesChanged) EventName() string     { return "apartments.rates_changed" }
func (e ApartmentRatesChanged) AggregateID() string   { return string(e.ApartmentID) }
func (e ApartmentRatesChanged) OccurredAt() time.Time { return e.At }
