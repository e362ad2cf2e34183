package policies

import (
	"context"
	"time"

	domainapartments "staybook/internal/domain/apartments"
	domainpricing "staybook/internal/domain/pricing"
)

// PricingPort quotes a stay. A nil breakdown with a nil error means the date
// selection is incomplete and no price exists yet.
type PricingPort interface {
	Quote(ctx context.Context, apartment *domainapartments.Apartment, checkIn, checkOut, now time.Time) (*domainpricing.Breakdown, error)
}
