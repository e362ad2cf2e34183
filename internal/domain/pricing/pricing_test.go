package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybook/internal/domain/offers"
)

var (
	stayStart = time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)
	stayEnd   = time.Date(2026, 7, 13, 0, 0, 0, 0, time.UTC) // 3 nights
	quotedAt  = time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
)

func activeOffer(id offers.OfferID, discount float64, scope offers.Scope) offers.Offer {
	return offers.Offer{
		ID:                 id,
		Title:              string(id),
		DiscountPercentage: discount,
		Scope:              scope,
		ValidFrom:          quotedAt.AddDate(0, 0, -7),
		ValidUntil:         quotedAt.AddDate(0, 1, 0),
	}
}

func baseInput() QuoteInput {
	return QuoteInput{
		ApartmentID: "apt-1",
		NightlyRate: 100,
		CleaningFee: 25,
		Currency:    "EUR",
		CheckIn:     stayStart,
		CheckOut:    stayEnd,
		Now:         quotedAt,
	}
}

func TestComputeWithoutOffers(t *testing.T) {
	b := Compute(baseInput())
	require.NotNil(t, b)
	assert.Equal(t, 3, b.Nights)
	assert.Equal(t, 100.0, b.NightlyRate)
	assert.Equal(t, 100.0, b.OriginalNightlyRate)
	assert.Equal(t, 300.0, b.BasePrice)
	assert.Equal(t, 25.0, b.CleaningFee)
	assert.Equal(t, 325.0, b.Total)
	assert.Equal(t, 0.0, b.DiscountAmount)
	assert.False(t, b.HasDiscount)
	assert.Nil(t, b.AppliedOffer)
	assert.Equal(t, "EUR", b.Currency)
}

func TestComputeAppliesWinningDiscount(t *testing.T) {
	input := baseInput()
	input.Offers = []offers.Offer{
		activeOffer("small", 10, offers.AllApartments()),
		activeOffer("big", 20, offers.AllApartments()),
	}
	b := Compute(input)
	require.NotNil(t, b)
	assert.Equal(t, 80.0, b.NightlyRate)
	assert.Equal(t, 100.0, b.OriginalNightlyRate)
	assert.Equal(t, 240.0, b.BasePrice)
	assert.Equal(t, 265.0, b.Total)
	assert.Equal(t, 60.0, b.DiscountAmount)
	assert.True(t, b.HasDiscount)
	require.NotNil(t, b.AppliedOffer)
	assert.Equal(t, offers.OfferID("big"), b.AppliedOffer.ID)
}

func TestComputeTieKeepsFirstOffer(t *testing.T) {
	input := baseInput()
	input.Offers = []offers.Offer{
		activeOffer("first", 15, offers.AllApartments()),
		activeOffer("second", 15, offers.AllApartments()),
	}
	b := Compute(input)
	require.NotNil(t, b)
	require.NotNil(t, b.AppliedOffer)
	assert.Equal(t, offers.OfferID("first"), b.AppliedOffer.ID)
}

func TestComputeIgnoresIneligibleOffers(t *testing.T) {
	input := baseInput()
	expired := activeOffer("expired", 50, offers.AllApartments())
	expired.ValidUntil = quotedAt.Add(-time.Hour)
	input.Offers = []offers.Offer{
		expired,
		activeOffer("other-apartment", 40, offers.ApartmentSet("apt-9")),
		activeOffer("valid", 10, offers.ApartmentSet("apt-1")),
	}
	b := Compute(input)
	require.NotNil(t, b)
	require.NotNil(t, b.AppliedOffer)
	assert.Equal(t, offers.OfferID("valid"), b.AppliedOffer.ID)
	assert.Equal(t, 90.0, b.NightlyRate)
	assert.Equal(t, 295.0, b.Total)
}

func TestComputeNoDatesYieldsNoBreakdown(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
	}{
		{name: "missing both", checkIn: time.Time{}, checkOut: time.Time{}},
		{name: "missing checkout", checkIn: stayStart, checkOut: time.Time{}},
		{name: "inverted", checkIn: stayEnd, checkOut: stayStart},
		{name: "zero nights", checkIn: stayStart, checkOut: stayStart},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := baseInput()
			input.CheckIn = tc.checkIn
			input.CheckOut = tc.checkOut
			assert.Nil(t, Compute(input))
		})
	}
}

func TestComputePartialDayRoundsUp(t *testing.T) {
	input := baseInput()
	input.CheckIn = time.Date(2026, 7, 10, 15, 0, 0, 0, time.UTC)
	input.CheckOut = time.Date(2026, 7, 12, 11, 0, 0, 0, time.UTC)
	b := Compute(input)
	require.NotNil(t, b)
	assert.Equal(t, 2, b.Nights)
}

func TestComputeClampsNegativeConfiguration(t *testing.T) {
	input := baseInput()
	input.NightlyRate = -50
	input.CleaningFee = -10
	b := Compute(input)
	require.NotNil(t, b)
	assert.Equal(t, 0.0, b.OriginalNightlyRate)
	assert.Equal(t, 0.0, b.CleaningFee)
	assert.Equal(t, 0.0, b.Total)
	assert.False(t, b.HasDiscount)
}

func TestComputeIsDeterministic(t *testing.T) {
	input := baseInput()
	input.Offers = []offers.Offer{activeOffer("deal", 20, offers.AllApartments())}
	first := Compute(input)
	second := Compute(input)
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, *first, *second)
}

func TestComputeExactAmountsNotRounded(t *testing.T) {
	input := baseInput()
	input.NightlyRate = 99.99
	input.Offers = []offers.Offer{activeOffer("third-off", 33.333333, offers.AllApartments())}
	b := Compute(input)
	require.NotNil(t, b)
	// The core keeps exact values; only the booking boundary rounds.
	expected := 99.99 * (1 - 33.333333/100)
	assert.InDelta(t, expected, b.NightlyRate, 1e-9)
	assert.InDelta(t, expected*3+25, b.Total, 1e-9)
}
