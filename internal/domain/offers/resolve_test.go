package offers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func offerFixture(id OfferID, discount float64, scope Scope, from, until time.Time) Offer {
	return Offer{
		ID:                 id,
		Title:              string(id),
		DiscountPercentage: discount,
		Scope:              scope,
		ValidFrom:          from,
		ValidUntil:         until,
	}
}

func TestEligibleForWindowBoundsAreInclusive(t *testing.T) {
	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, 6, 30, 23, 59, 59, 0, time.UTC)
	offer := offerFixture("summer", 10, AllApartments(), from, until)

	assert.True(t, offer.EligibleFor("apt-1", from), "valid_from instant must be eligible")
	assert.True(t, offer.EligibleFor("apt-1", until), "valid_until instant must be eligible")
	assert.False(t, offer.EligibleFor("apt-1", from.Add(-time.Second)))
	assert.False(t, offer.EligibleFor("apt-1", until.Add(time.Second)))
}

func TestEligibleForScope(t *testing.T) {
	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	until := from.AddDate(0, 1, 0)
	now := from.AddDate(0, 0, 10)

	scoped := offerFixture("scoped", 15, ApartmentSet("apt-1", "apt-2"), from, until)
	assert.True(t, scoped.EligibleFor("apt-1", now))
	assert.False(t, scoped.EligibleFor("apt-3", now))

	broken := offerFixture("broken", 15, NoApartments(), from, until)
	assert.False(t, broken.EligibleFor("apt-1", now))
}

func TestEligiblePreservesInputOrder(t *testing.T) {
	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	until := from.AddDate(0, 1, 0)
	now := from.AddDate(0, 0, 5)

	input := []Offer{
		offerFixture("first", 5, AllApartments(), from, until),
		offerFixture("expired", 50, AllApartments(), from.AddDate(-1, 0, 0), from.AddDate(0, 0, -1)),
		offerFixture("second", 10, AllApartments(), from, until),
		offerFixture("other-apt", 30, ApartmentSet("apt-9"), from, until),
		offerFixture("third", 20, AllApartments(), from, until),
	}

	eligible := Eligible(input, "apt-1", now)
	require.Len(t, eligible, 3)
	assert.Equal(t, OfferID("first"), eligible[0].ID)
	assert.Equal(t, OfferID("second"), eligible[1].ID)
	assert.Equal(t, OfferID("third"), eligible[2].ID)
}

func TestSelectHighestDiscountWins(t *testing.T) {
	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	until := from.AddDate(0, 1, 0)

	eligible := []Offer{
		offerFixture("small", 10, AllApartments(), from, until),
		offerFixture("big", 20, AllApartments(), from, until),
	}
	winner, ok := Select(eligible)
	require.True(t, ok)
	assert.Equal(t, OfferID("big"), winner.ID)

	// Same offers, reversed: the larger discount still wins.
	winner, ok = Select([]Offer{eligible[1], eligible[0]})
	require.True(t, ok)
	assert.Equal(t, OfferID("big"), winner.ID)
}

func TestSelectTieKeepsFirstInInputOrder(t *testing.T) {
	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	until := from.AddDate(0, 1, 0)

	a := offerFixture("a", 15, AllApartments(), from, until)
	b := offerFixture("b", 15, AllApartments(), from, until)

	winner, ok := Select([]Offer{a, b})
	require.True(t, ok)
	assert.Equal(t, OfferID("a"), winner.ID)

	winner, ok = Select([]Offer{b, a})
	require.True(t, ok)
	assert.Equal(t, OfferID("b"), winner.ID)
}

func TestSelectEmpty(t *testing.T) {
	_, ok := Select(nil)
	assert.False(t, ok)
}
