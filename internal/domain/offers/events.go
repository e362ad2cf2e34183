package offers

import "time"

type OfferCreated struct {
	OfferID  OfferID   `json:"offer_id"`
	Title    string    `json:"title"`
	Discount float64   `json:"discount_percentage"`
	At       time.Time `json:"at"`
}

func (e OfferCreated) EventName() string     { return "offers.created" }
func (e OfferCreated) AggregateID() string   { return string(e.OfferID) }
func (e OfferCreated) OccurredAt() time.Time { return e.At }

type OfferUpdated struct {
	OfferID  OfferID   `json:"offer_id"`
	Discount float64   `json:"discount_percentage"`
	At       time.Time `json:"at"`
}

func (e OfferUpdated) EventName() string     { return "offers.updated" }
func (e OfferUpdated) AggregateID() string   { return string(e.OfferID) }
func (e OfferUpdated) OccurredAt() time.Time { return e.At }

type OfferDeleted struct {
	OfferID OfferID   `json:"offer_id"`
	At      time.Time `json:"at"`
}

func (e OfferDeleted) EventName() string     { return "offers.deleted" }
func (e OfferDeleted) AggregateID() string   { return string(e.OfferID) }
func (e OfferDeleted) OccurredAt() time.Time { return e.At }
