package offers

import (
	"time"

	"staybook/internal/domain/apartments"
)

// Eligible filters offers down to those applying to the apartment at the
// given instant, preserving input order. The evaluation instant is an
// explicit parameter so callers and tests stay deterministic.
func Eligible(offers []Offer, apartmentID apartments.ApartmentID, now time.Time) []Offer {
	out := make([]Offer, 0, len(offers))
	for _, o := range offers {
		if o.EligibleFor(apartmentID, now) {
			out = append(out, o)
		}
	}
	return out
}

// Select picks the single offer that governs the nightly rate: the highest
// discount percentage wins, and ties keep the earliest offer in input order.
func Select(eligible []Offer) (Offer, bool) {
	if len(eligible) == 0 {
		return Offer{}, false
	}
	best := eligible[0]
	for _, o := range eligible[1:] {
		if o.DiscountPercentage > best.DiscountPercentage {
			best = o
		}
	}
	return best, true
}
