package offers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybook/internal/domain/apartments"
)

func TestNormalizeScopeNilMatchesEverything(t *testing.T) {
	scope, err := NormalizeScope(nil)
	require.NoError(t, err)
	assert.True(t, scope.IsAll())
	assert.True(t, scope.Includes("apt-1"))
	assert.True(t, scope.Includes("anything"))
	assert.Nil(t, scope.ApartmentIDs())
}

func TestNormalizeScopeLists(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		includes []apartments.ApartmentID
		excludes []apartments.ApartmentID
	}{
		{
			name:     "string ids",
			raw:      []string{"apt-1", "apt-2"},
			includes: []apartments.ApartmentID{"apt-1", "apt-2"},
			excludes: []apartments.ApartmentID{"apt-3"},
		},
		{
			name:     "typed ids",
			raw:      []apartments.ApartmentID{"apt-9"},
			includes: []apartments.ApartmentID{"apt-9"},
			excludes: []apartments.ApartmentID{"apt-1"},
		},
		{
			name:     "json encoded list",
			raw:      `["apt-1","apt-2"]`,
			includes: []apartments.ApartmentID{"apt-1", "apt-2"},
			excludes: []apartments.ApartmentID{"apt-7"},
		},
		{
			name:     "json encoded numeric ids",
			raw:      `[5, 6]`,
			includes: []apartments.ApartmentID{"5", "6"},
			excludes: []apartments.ApartmentID{"7"},
		},
		{
			name:     "object with ids list",
			raw:      map[string]any{"ids": []any{"apt-1"}},
			includes: []apartments.ApartmentID{"apt-1"},
			excludes: []apartments.ApartmentID{"apt-2"},
		},
		{
			name:     "raw message",
			raw:      json.RawMessage(`{"ids":["apt-4"]}`),
			includes: []apartments.ApartmentID{"apt-4"},
			excludes: []apartments.ApartmentID{"apt-5"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			scope, err := NormalizeScope(tc.raw)
			require.NoError(t, err)
			assert.False(t, scope.IsAll())
			for _, id := range tc.includes {
				assert.True(t, scope.Includes(id), "expected scope to include %s", id)
			}
			for _, id := range tc.excludes {
				assert.False(t, scope.Includes(id), "expected scope to exclude %s", id)
			}
		})
	}
}

func TestNormalizeScopeMalformedMatchesNothing(t *testing.T) {
	tests := []struct {
		name string
		raw  any
	}{
		{name: "broken json", raw: `{not json`},
		{name: "nested string encoding", raw: `"[\"apt-1\"]"`},
		{name: "object without ids", raw: map[string]any{"list": []any{"apt-1"}}},
		{name: "unsupported id type", raw: []any{true}},
		{name: "unsupported shape", raw: 42},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			scope, err := NormalizeScope(tc.raw)
			require.Error(t, err)
			// Corrupt scope data must never widen a discount.
			assert.False(t, scope.IsAll())
			assert.False(t, scope.Includes("apt-1"))
		})
	}
}

func TestNormalizeScopeNumericAndStringIDsCompareEqual(t *testing.T) {
	scope, err := NormalizeScope(`[5]`)
	require.NoError(t, err)
	assert.True(t, scope.Includes("5"))
}

func TestScopeApartmentIDsStableOrder(t *testing.T) {
	scope := ApartmentSet("b", "a", "c")
	assert.Equal(t, []apartments.ApartmentID{"a", "b", "c"}, scope.ApartmentIDs())
}

func TestZeroScopeMatchesNothing(t *testing.T) {
	var scope Scope
	assert.False(t, scope.IsAll())
	assert.False(t, scope.Includes("apt-1"))
}
