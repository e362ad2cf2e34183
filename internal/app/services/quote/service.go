package quote

import (
	"context"
	"errors"
	"time"

	"staybook/internal/app/policies"
	domainapartments "staybook/internal/domain/apartments"
	domainoffers "staybook/internal/domain/offers"
	domainpricing "staybook/internal/domain/pricing"
)

var ErrApartmentRequired = errors.New("quote: apartment required")

// Service prices stays by combining the apartment's rates with the currently
// eligible offers. The computation itself is pure; the only I/O is loading
// the offer set.
type Service struct {
	Offers policies.OfferSourcePort
}

func (s Service) Quote(ctx context.Context, apartment *domainapartments.Apartment, checkIn, checkOut, now time.Time) (*domainpricing.Breakdown, error) {
	if apartment == nil {
		return nil, ErrApartmentRequired
	}
	var offerSet []domainoffers.Offer
	if s.Offers != nil {
		loaded, err := s.Offers.OffersForApartment(ctx, apartment.ID)
		if err != nil {
			return nil, err
		}
		offerSet = loaded
	}
	return domainpricing.Compute(domainpricing.QuoteInput{
		ApartmentID: apartment.ID,
		NightlyRate: apartment.NightlyRate,
		CleaningFee: apartment.CleaningFee,
		Currency:    apartment.Currency,
		Offers:      offerSet,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Now:         now,
	}), nil
}

var _ policies.PricingPort = Service{}
