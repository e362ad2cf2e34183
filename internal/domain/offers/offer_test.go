package offers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOfferValidation(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	base := CreateParams{
		ID:                 "offer-1",
		Title:              "Spring sale",
		DiscountPercentage: 15,
		Scope:              AllApartments(),
		ValidFrom:          now,
		ValidUntil:         now.AddDate(0, 1, 0),
		CreatedAt:          now,
	}

	t.Run("valid", func(t *testing.T) {
		offer, err := New(base)
		require.NoError(t, err)
		assert.Equal(t, "Spring sale", offer.Title)
		require.Len(t, offer.PendingEvents(), 1)
		assert.Equal(t, "offers.created", offer.PendingEvents()[0].EventName())
	})

	t.Run("empty title", func(t *testing.T) {
		params := base
		params.Title = "   "
		_, err := New(params)
		assert.ErrorIs(t, err, ErrTitleRequired)
	})

	t.Run("zero discount", func(t *testing.T) {
		params := base
		params.DiscountPercentage = 0
		_, err := New(params)
		assert.ErrorIs(t, err, ErrInvalidDiscount)
	})

	t.Run("discount above hundred", func(t *testing.T) {
		params := base
		params.DiscountPercentage = 120
		_, err := New(params)
		assert.ErrorIs(t, err, ErrInvalidDiscount)
	})

	t.Run("full discount allowed", func(t *testing.T) {
		params := base
		params.DiscountPercentage = 100
		_, err := New(params)
		assert.NoError(t, err)
	})

	t.Run("inverted window", func(t *testing.T) {
		params := base
		params.ValidFrom = now.AddDate(0, 2, 0)
		_, err := New(params)
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})
}

func TestUpdateRejectsInvalidFieldsWithoutMutating(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	offer, err := New(CreateParams{
		ID:                 "offer-1",
		Title:              "Original",
		DiscountPercentage: 10,
		Scope:              AllApartments(),
		ValidFrom:          now,
		ValidUntil:         now.AddDate(0, 1, 0),
		CreatedAt:          now,
	})
	require.NoError(t, err)
	offer.ClearEvents()

	err = offer.Update(UpdateParams{
		Title:              "Changed",
		DiscountPercentage: -5,
		Scope:              AllApartments(),
		ValidFrom:          now,
		ValidUntil:         now.AddDate(0, 1, 0),
	}, now.Add(time.Hour))
	assert.ErrorIs(t, err, ErrInvalidDiscount)
	assert.Equal(t, "Original", offer.Title)
	assert.Equal(t, 10.0, offer.DiscountPercentage)
	assert.Empty(t, offer.PendingEvents())
}

func TestUpdateAppliesFieldsAndRecordsEvent(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	offer, err := New(CreateParams{
		ID:                 "offer-1",
		Title:              "Original",
		DiscountPercentage: 10,
		Scope:              AllApartments(),
		ValidFrom:          now,
		ValidUntil:         now.AddDate(0, 1, 0),
		CreatedAt:          now,
	})
	require.NoError(t, err)
	offer.ClearEvents()

	err = offer.Update(UpdateParams{
		Title:              "Changed",
		DiscountPercentage: 25,
		Scope:              ApartmentSet("apt-1"),
		ValidFrom:          now,
		ValidUntil:         now.AddDate(0, 2, 0),
	}, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "Changed", offer.Title)
	assert.Equal(t, 25.0, offer.DiscountPercentage)
	assert.True(t, offer.Scope.Includes("apt-1"))
	assert.False(t, offer.Scope.Includes("apt-2"))
	require.Len(t, offer.PendingEvents(), 1)
	assert.Equal(t, "offers.updated", offer.PendingEvents()[0].EventName())
}
