package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	m, err := New(1500, "eur")
	require.NoError(t, err)
	assert.Equal(t, int64(1500), m.Amount)
	assert.Equal(t, "EUR", m.Currency)

	_, err = New(100, "euro")
	assert.ErrorIs(t, err, ErrInvalidCurrency)
}

func TestFromFloat(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		cents  int64
	}{
		{name: "whole", amount: 265, cents: 26500},
		{name: "half rounds away from zero", amount: 0.125, cents: 13},
		{name: "round down", amount: 10.004, cents: 1000},
		{name: "zero", amount: 0, cents: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := FromFloat(tc.amount, "EUR")
			require.NoError(t, err)
			assert.Equal(t, tc.cents, m.Amount)
		})
	}
}

func TestArithmetic(t *testing.T) {
	a := Must(1000, "EUR")
	b := Must(250, "EUR")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, int64(1250), sum.Amount)

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, int64(750), diff.Amount)

	assert.Equal(t, int64(3000), a.Multiply(3).Amount)
	assert.False(t, a.IsZero())
	assert.True(t, Must(0, "EUR").IsZero())
}

func TestCurrencyMismatch(t *testing.T) {
	a := Must(1000, "EUR")
	b := Must(1000, "USD")
	_, err := a.Add(b)
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
	_, err = a.Sub(b)
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
}
