package quote

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainapartments "staybook/internal/domain/apartments"
	domainoffers "staybook/internal/domain/offers"
	"staybook/internal/infra/storage/memory"
)

func TestQuoteCombinesRatesAndOffers(t *testing.T) {
	now := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

	offersRepo := memory.NewOfferRepository()
	offer, err := domainoffers.New(domainoffers.CreateParams{
		ID:                 "deal",
		Title:              "Deal",
		DiscountPercentage: 20,
		Scope:              domainoffers.ApartmentSet("apt-1"),
		ValidFrom:          now.AddDate(0, 0, -1),
		ValidUntil:         now.AddDate(0, 1, 0),
		CreatedAt:          now,
	})
	require.NoError(t, err)
	require.NoError(t, offersRepo.Save(context.Background(), offer))

	apartment := &domainapartments.Apartment{
		ID:          "apt-1",
		NightlyRate: 100,
		CleaningFee: 25,
		Currency:    "EUR",
	}

	svc := Service{Offers: memory.OfferSourceAdapter{Repo: offersRepo}}
	b, err := svc.Quote(context.Background(), apartment,
		time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 7, 13, 0, 0, 0, 0, time.UTC),
		now,
	)
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, 265.0, b.Total)
	require.NotNil(t, b.AppliedOffer)
	assert.Equal(t, domainoffers.OfferID("deal"), b.AppliedOffer.ID)
}

func TestQuoteNilApartment(t *testing.T) {
	svc := Service{}
	_, err := svc.Quote(context.Background(), nil, time.Now(), time.Now(), time.Now())
	assert.ErrorIs(t, err, ErrApartmentRequired)
}

func TestQuoteIncompleteDatesYieldNoBreakdown(t *testing.T) {
	apartment := &domainapartments.Apartment{ID: "apt-1", NightlyRate: 100, Currency: "EUR"}
	svc := Service{Offers: memory.OfferSourceAdapter{Repo: memory.NewOfferRepository()}}
	b, err := svc.Quote(context.Background(), apartment, time.Time{}, time.Time{}, time.Now())
	require.NoError(t, err)
	assert.Nil(t, b)
}
