package memory

import (
	"context"

	"staybook/internal/app/policies"
	domainapartments "staybook/internal/domain/apartments"
	domainoffers "staybook/internal/domain/offers"
)

// OfferSourceAdapter exposes an offer repository through the read port the
// quote service consumes.
type OfferSourceAdapter struct {
	Repo domainoffers.Repository
}

func (a OfferSourceAdapter) OffersForApartment(ctx context.Context, apartmentID domainapartments.ApartmentID) ([]domainoffers.Offer, error) {
	if a.Repo == nil {
		return nil, nil
	}
	stored, err := a.Repo.ListForApartment(ctx, apartmentID)
	if err != nil {
		return nil, err
	}
	out := make([]domainoffers.Offer, 0, len(stored))
	for _, o := range stored {
		out = append(out, *o)
	}
	return out, nil
}

var _ policies.OfferSourcePort = OfferSourceAdapter{}
