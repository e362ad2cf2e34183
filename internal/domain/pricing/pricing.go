package pricing

import (
	"context"
	"time"

	"staybook/internal/domain/apartments"
	"staybook/internal/domain/offers"
	"staybook/internal/domain/shared/daterange"
)

// Breakdown is the derived price for one stay. Amounts are exact major-unit
// values; rounding to a displayable or chargeable precision belongs to the
// caller.
type Breakdown struct {
	Nights              int
	NightlyRate         float64
	OriginalNightlyRate float64
	BasePrice           float64
	CleaningFee         float64
	Total               float64
	DiscountAmount      float64
	HasDiscount         bool
	AppliedOffer        *offers.Offer
	Currency            string
}

// QuoteInput carries everything Compute needs. Now is explicit so repeated
// calls with identical inputs return identical breakdowns.
type QuoteInput struct {
	ApartmentID apartments.ApartmentID
	NightlyRate float64
	CleaningFee float64
	Currency    string
	Offers      []offers.Offer
	CheckIn     time.Time
	CheckOut    time.Time
	Now         time.Time
}

// Compute derives the full stay price. It returns nil while the date range is
// absent or inverted: that is the normal "user is still picking dates" state,
// and callers keep the booking action disabled until a breakdown exists.
//
// Negative rate or fee inputs are clamped to zero. Write-time validation on
// the apartment already refuses them; the clamp only guarantees a negative
// total can never reach a guest.
func Compute(input QuoteInput) *Breakdown {
	if input.CheckIn.IsZero() || input.CheckOut.IsZero() {
		return nil
	}
	dr, err := daterange.New(input.CheckIn, input.CheckOut)
	if err != nil {
		return nil
	}
	nights := dr.Nights()
	if nights <= 0 {
		return nil
	}

	rate := input.NightlyRate
	if rate < 0 {
		rate = 0
	}
	fee := input.CleaningFee
	if fee < 0 {
		fee = 0
	}

	eligible := offers.Eligible(input.Offers, input.ApartmentID, input.Now)
	discounted := rate
	var applied *offers.Offer
	if winner, ok := offers.Select(eligible); ok {
		discounted = rate * (1 - winner.DiscountPercentage/100)
		applied = &winner
	}

	basePrice := float64(nights) * discounted
	discountAmount := (rate - discounted) * float64(nights)
	return &Breakdown{
		Nights:              nights,
		NightlyRate:         discounted,
		OriginalNightlyRate: rate,
		BasePrice:           basePrice,
		CleaningFee:         fee,
		Total:               basePrice + fee,
		DiscountAmount:      discountAmount,
		HasDiscount:         discountAmount > 0,
		AppliedOffer:        applied,
		Currency:            input.Currency,
	}
}

// Quoter is the port the booking flow prices through.
type Quoter interface {
	Quote(ctx context.Context, apartment *apartments.Apartment, checkIn, checkOut, now time.Time) (*Breakdown, error)
}
