package dto

import (
	"time"

	domainoffers "staybook/internal/domain/offers"
)

// OfferSummary is the slice of an offer the booking UI shows next to a
// discounted price.
type OfferSummary struct {
	ID                 string  `json:"id"`
	Title              string  `json:"title"`
	DiscountPercentage float64 `json:"discount_percentage"`
}

func MapOfferSummary(o domainoffers.Offer) OfferSummary {
	return OfferSummary{
		ID:                 string(o.ID),
		Title:              o.Title,
		DiscountPercentage: o.DiscountPercentage,
	}
}

// OfferDetail is the admin back-office representation. ApartmentIDs is null
// for an all-apartments offer.
type OfferDetail struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	DiscountPercentage float64   `json:"discount_percentage"`
	ApartmentIDs       []string  `json:"apartment_ids"`
	ValidFrom          time.Time `json:"valid_from"`
	ValidUntil         time.Time `json:"valid_until"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type OfferCollection struct {
	Items []OfferDetail `json:"items"`
}

func MapOfferDetail(o *domainoffers.Offer) OfferDetail {
	var ids []string
	if !o.Scope.IsAll() {
		for _, id := range o.Scope.ApartmentIDs() {
			ids = append(ids, string(id))
		}
		if ids == nil {
			ids = []string{}
		}
	}
	return OfferDetail{
		ID:                 string(o.ID),
		Title:              o.Title,
		Description:        o.Description,
		DiscountPercentage: o.DiscountPercentage,
		ApartmentIDs:       ids,
		ValidFrom:          o.ValidFrom,
		ValidUntil:         o.ValidUntil,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}

func MapOfferCollection(list []*domainoffers.Offer) OfferCollection {
	items := make([]OfferDetail, 0, len(list))
	for _, o := range list {
		items = append(items, MapOfferDetail(o))
	}
	return OfferCollection{Items: items}
}
