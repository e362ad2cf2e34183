package dto

import (
	domainpricing "staybook/internal/domain/pricing"
)

// BreakdownDTO is the display contract handed to the UI. Amounts stay exact;
// clients decide rounding and currency formatting.
type BreakdownDTO struct {
	Nights              int           `json:"nights"`
	NightlyRate         float64       `json:"nightly_rate"`
	OriginalNightlyRate float64       `json:"original_nightly_rate"`
	BasePrice           float64       `json:"base_price"`
	CleaningFee         float64       `json:"cleaning_fee"`
	Total               float64       `json:"total"`
	DiscountAmount      float64       `json:"discount_amount"`
	HasDiscount         bool          `json:"has_discount"`
	AppliedOffer        *OfferSummary `json:"applied_offer,omitempty"`
	Currency            string        `json:"currency"`
}

// QuoteResponse wraps the breakdown so "no quote yet" is an explicit state
// rather than an error.
type QuoteResponse struct {
	Available bool          `json:"available"`
	Breakdown *BreakdownDTO `json:"breakdown,omitempty"`
}

func MapBreakdown(b *domainpricing.Breakdown) QuoteResponse {
	if b == nil {
		return QuoteResponse{Available: false}
	}
	out := BreakdownDTO{
		Nights:              b.Nights,
		NightlyRate:         b.NightlyRate,
		OriginalNightlyRate: b.OriginalNightlyRate,
		BasePrice:           b.BasePrice,
		CleaningFee:         b.CleaningFee,
		Total:               b.Total,
		DiscountAmount:      b.DiscountAmount,
		HasDiscount:         b.HasDiscount,
		Currency:            b.Currency,
	}
	if b.AppliedOffer != nil {
		summary := MapOfferSummary(*b.AppliedOffer)
		out.AppliedOffer = &summary
	}
	return QuoteResponse{Available: true, Breakdown: &out}
}
