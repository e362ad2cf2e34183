package offers

import (
	"encoding/json"
	"fmt"
	"sort"

	"staybook/internal/domain/apartments"
)

// Scope is the set of apartments an offer applies to. The zero value matches
// nothing, which is the safe default for data that failed to decode.
type Scope struct {
	all bool
	ids map[apartments.ApartmentID]struct{}
}

// AllApartments returns a scope matching every apartment.
func AllApartments() Scope {
	return Scope{all: true}
}

// ApartmentSet returns a scope matching exactly the given apartments.
func ApartmentSet(ids ...apartments.ApartmentID) Scope {
	set := make(map[apartments.ApartmentID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return Scope{ids: set}
}

// NoApartments returns a scope matching nothing.
func NoApartments() Scope {
	return Scope{}
}

func (s Scope) IsAll() bool {
	return s.all
}

func (s Scope) Includes(id apartments.ApartmentID) bool {
	if s.all {
		return true
	}
	_, ok := s.ids[id]
	return ok
}

// ApartmentIDs returns the scoped ids in stable order; nil for an all-apartments scope.
func (s Scope) ApartmentIDs() []apartments.ApartmentID {
	if s.all || len(s.ids) == 0 {
		return nil
	}
	out := make([]apartments.ApartmentID, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NormalizeScope converts the loose persisted shapes of an apartment filter
// into a Scope. Accepted inputs: nil (all apartments), a list of ids, an
// object with an "ids" list, or a JSON string encoding one of those. Anything
// else yields the empty scope: corrupt data must never grant a discount.
func NormalizeScope(raw any) (Scope, error) {
	switch v := raw.(type) {
	case nil:
		return AllApartments(), nil
	case Scope:
		return v, nil
	case string:
		return parseScopeJSON([]byte(v))
	case []byte:
		return parseScopeJSON(v)
	case json.RawMessage:
		return parseScopeJSON([]byte(v))
	case []apartments.ApartmentID:
		return ApartmentSet(v...), nil
	case []string:
		ids := make([]apartments.ApartmentID, 0, len(v))
		for _, id := range v {
			ids = append(ids, apartments.ApartmentID(id))
		}
		return ApartmentSet(ids...), nil
	case []any:
		return scopeFromList(v)
	case map[string]any:
		list, ok := v["ids"].([]any)
		if !ok {
			return NoApartments(), fmt.Errorf("offers: scope object missing ids list")
		}
		return scopeFromList(list)
	default:
		return NoApartments(), fmt.Errorf("offers: unsupported scope shape %T", raw)
	}
}

func parseScopeJSON(data []byte) (Scope, error) {
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return NoApartments(), fmt.Errorf("offers: malformed scope encoding: %w", err)
	}
	switch decoded.(type) {
	case string, []byte:
		// A doubly encoded string would recurse forever; treat it as corrupt.
		return NoApartments(), fmt.Errorf("offers: scope encodes a nested string")
	}
	return NormalizeScope(decoded)
}

func scopeFromList(list []any) (Scope, error) {
	ids := make([]apartments.ApartmentID, 0, len(list))
	for _, item := range list {
		switch id := item.(type) {
		case string:
			ids = append(ids, apartments.ApartmentID(id))
		case json.Number:
			ids = append(ids, apartments.ApartmentID(id.String()))
		case float64:
			ids = append(ids, apartments.ApartmentID(formatNumericID(id)))
		default:
			return NoApartments(), fmt.Errorf("offers: scope id has unsupported type %T", item)
		}
	}
	return ApartmentSet(ids...), nil
}

func formatNumericID(v float64) string {
	// Upstream stores sometimes keep numeric apartment ids; render them
	// without a fractional part so "5" and 5 compare equal.
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}
