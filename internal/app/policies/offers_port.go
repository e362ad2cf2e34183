package policies

import (
	"context"

	domainapartments "staybook/internal/domain/apartments"
	domainoffers "staybook/internal/domain/offers"
)

// OfferSourcePort reads the offer set considered for an apartment. A failing
// source degrades to "no discount", never to a blocked booking flow; callers
// decide whether to surface the error or fall back to an empty set.
type OfferSourcePort interface {
	OffersForApartment(ctx context.Context, apartmentID domainapartments.ApartmentID) ([]domainoffers.Offer, error)
}
