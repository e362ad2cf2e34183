package apartments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

func validCreateParams() CreateParams {
	return CreateParams{
		ID:          "apt-1",
		Owner:       "owner-1",
		Title:       "Canal view studio",
		Description: "Bright studio near the center",
		Address: Address{
			Line1:   "Keizersgracht 12",
			City:    "Amsterdam",
			Country: "NL",
		},
		GuestsLimit: 2,
		NightlyRate: 120,
		CleaningFee: 30,
		Currency:    "eur",
		CreatedAt:   createdAt,
	}
}

func TestNewApartment(t *testing.T) {
	a, err := New(validCreateParams())
	require.NoError(t, err)
	assert.Equal(t, ApartmentDraft, a.State)
	assert.Equal(t, "EUR", a.Currency)
	require.Len(t, a.PendingEvents(), 1)
	assert.Equal(t, "apartments.created", a.PendingEvents()[0].EventName())
}

func TestNewApartmentValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateParams)
		want   error
	}{
		{name: "empty title", mutate: func(p *CreateParams) { p.Title = " " }, want: ErrTitleRequired},
		{name: "negative rate", mutate: func(p *CreateParams) { p.NightlyRate = -1 }, want: ErrNegativeRate},
		{name: "negative fee", mutate: func(p *CreateParams) { p.CleaningFee = -0.01 }, want: ErrNegativeFee},
		{name: "zero guests", mutate: func(p *CreateParams) { p.GuestsLimit = 0 }, want: ErrGuestsLimit},
		{name: "bad currency", mutate: func(p *CreateParams) { p.Currency = "" }, want: ErrCurrencyRequired},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			params := validCreateParams()
			tc.mutate(&params)
			_, err := New(params)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestUpdateRates(t *testing.T) {
	a, err := New(validCreateParams())
	require.NoError(t, err)
	a.ClearEvents()

	assert.ErrorIs(t, a.UpdateRates(-10, 30, createdAt), ErrNegativeRate)
	assert.ErrorIs(t, a.UpdateRates(100, -1, createdAt), ErrNegativeFee)
	assert.Empty(t, a.PendingEvents())

	require.NoError(t, a.UpdateRates(150, 0, createdAt.Add(time.Hour)))
	assert.Equal(t, 150.0, a.NightlyRate)
	assert.Equal(t, 0.0, a.CleaningFee)
	require.Len(t, a.PendingEvents(), 1)
	assert.Equal(t, "apartments.rates_changed", a.PendingEvents()[0].EventName())
}

func TestLifecycle(t *testing.T) {
	a, err := New(validCreateParams())
	require.NoError(t, err)

	require.NoError(t, a.Activate(createdAt))
	assert.Equal(t, ApartmentActive, a.State)

	// Activating twice is a no-op.
	require.NoError(t, a.Activate(createdAt))

	require.NoError(t, a.Suspend(createdAt.Add(time.Hour)))
	assert.Equal(t, ApartmentSuspended, a.State)
	assert.ErrorIs(t, a.Suspend(createdAt), ErrInvalidState)
}

func TestActivateRequiresAddress(t *testing.T) {
	params := validCreateParams()
	params.Address = Address{}
	a, err := New(params)
	require.NoError(t, err)
	assert.ErrorIs(t, a.Activate(createdAt), ErrAddressRequired)
}
