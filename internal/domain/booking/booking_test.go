package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybook/internal/domain/pricing"
	"staybook/internal/domain/shared/daterange"
)

var bookedAt = time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)

func validParams(t *testing.T) CreateParams {
	t.Helper()
	dr, err := daterange.New(
		time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 7, 13, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return CreateParams{
		ID:          "bk-1",
		ApartmentID: "apt-1",
		GuestID:     "guest-1",
		Range:       dr,
		Guests: []Guest{
			{FullName: "Ada Lovelace", Age: 36},
			{FullName: "Junior", Age: 6},
		},
		Breakdown: &pricing.Breakdown{
			Nights:              3,
			NightlyRate:         80,
			OriginalNightlyRate: 100,
			BasePrice:           240,
			CleaningFee:         25,
			Total:               265,
			DiscountAmount:      60,
			HasDiscount:         true,
			Currency:            "EUR",
		},
		CreatedAt: bookedAt,
	}
}

func TestNewBooking(t *testing.T) {
	b, err := NewBooking(validParams(t))
	require.NoError(t, err)
	assert.Equal(t, StatePending, b.State)
	assert.Equal(t, 3, b.Nights)
	assert.Equal(t, int64(26500), b.Total.Amount)
	assert.Equal(t, "EUR", b.Total.Currency)
	require.Len(t, b.PendingEvents(), 1)
	assert.Equal(t, "booking.requested", b.PendingEvents()[0].EventName())
}

func TestNewBookingValidation(t *testing.T) {
	t.Run("no guests", func(t *testing.T) {
		params := validParams(t)
		params.Guests = nil
		_, err := NewBooking(params)
		assert.ErrorIs(t, err, ErrInvalidGuests)
	})

	t.Run("minors only", func(t *testing.T) {
		params := validParams(t)
		params.Guests = []Guest{{FullName: "Kid", Age: 12}, {FullName: "Teen", Age: 17}}
		_, err := NewBooking(params)
		assert.ErrorIs(t, err, ErrNoAdultGuest)
	})

	t.Run("exactly adult age passes", func(t *testing.T) {
		params := validParams(t)
		params.Guests = []Guest{{FullName: "Barely", Age: 18}}
		_, err := NewBooking(params)
		assert.NoError(t, err)
	})

	t.Run("missing guest id", func(t *testing.T) {
		params := validParams(t)
		params.GuestID = ""
		_, err := NewBooking(params)
		assert.ErrorIs(t, err, ErrGuestIDRequired)
	})

	t.Run("missing breakdown", func(t *testing.T) {
		params := validParams(t)
		params.Breakdown = nil
		_, err := NewBooking(params)
		assert.ErrorIs(t, err, ErrNoBreakdown)
	})

	t.Run("invalid range", func(t *testing.T) {
		params := validParams(t)
		params.Range = daterange.DateRange{}
		_, err := NewBooking(params)
		assert.ErrorIs(t, err, daterange.ErrInvalidRange)
	})
}

func TestHasAdult(t *testing.T) {
	assert.False(t, HasAdult(nil))
	assert.False(t, HasAdult([]Guest{{Age: 17}}))
	assert.True(t, HasAdult([]Guest{{Age: 18}}))
	assert.True(t, HasAdult([]Guest{{Age: 5}, {Age: 40}}))
}

func TestValidateDateRange(t *testing.T) {
	now := time.Date(2026, 7, 5, 15, 30, 0, 0, time.UTC)

	t.Run("future check-in", func(t *testing.T) {
		dr, err := daterange.New(now.AddDate(0, 0, 2), now.AddDate(0, 0, 5))
		require.NoError(t, err)
		assert.NoError(t, ValidateDateRange(dr, now))
	})

	t.Run("same day check-in allowed", func(t *testing.T) {
		dr, err := daterange.New(
			time.Date(2026, 7, 5, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 7, 8, 0, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)
		assert.NoError(t, ValidateDateRange(dr, now))
	})

	t.Run("past check-in rejected", func(t *testing.T) {
		dr, err := daterange.New(now.AddDate(0, 0, -1), now.AddDate(0, 0, 3))
		require.NoError(t, err)
		assert.ErrorIs(t, ValidateDateRange(dr, now), ErrCheckInInPast)
	})
}

func TestBookingStateTransitions(t *testing.T) {
	later := bookedAt.Add(time.Hour)

	t.Run("confirm pending", func(t *testing.T) {
		b, err := NewBooking(validParams(t))
		require.NoError(t, err)
		require.NoError(t, b.Confirm(later))
		assert.Equal(t, StateConfirmed, b.State)
		assert.ErrorIs(t, b.Confirm(later), ErrInvalidState)
	})

	t.Run("decline pending", func(t *testing.T) {
		b, err := NewBooking(validParams(t))
		require.NoError(t, err)
		require.NoError(t, b.Decline("host unavailable", later))
		assert.Equal(t, StateDeclined, b.State)
		assert.ErrorIs(t, b.Cancel("too late", later), ErrInvalidState)
	})

	t.Run("cancel confirmed", func(t *testing.T) {
		b, err := NewBooking(validParams(t))
		require.NoError(t, err)
		require.NoError(t, b.Confirm(later))
		require.NoError(t, b.Cancel("plans changed", later.Add(time.Hour)))
		assert.Equal(t, StateCancelled, b.State)
	})
}
