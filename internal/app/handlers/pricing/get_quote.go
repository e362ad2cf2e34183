package pricing

import (
	"context"
	"time"

	"staybook/internal/app/dto"
	"staybook/internal/app/handlers/support"
	"staybook/internal/app/policies"
	"staybook/internal/app/queries"
	"staybook/internal/app/uow"
	domainapartments "staybook/internal/domain/apartments"
)

const getQuoteKey = "pricing.quote"

// GetQuoteQuery recomputes the stay price for a date selection. The UI issues
// it on every change; missing or inverted dates yield an unavailable quote,
// not an error.
type GetQuoteQuery struct {
	ApartmentID string
	CheckIn     time.Time
	CheckOut    time.Time
	Now         time.Time
}

func (q GetQuoteQuery) Key() string { return getQuoteKey }

type GetQuoteHandler struct {
	UoWFactory uow.UoWFactory
	Pricing    policies.PricingPort
}

func (h *GetQuoteHandler) Handle(ctx context.Context, q GetQuoteQuery) (dto.QuoteResponse, error) {
	_, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.QuoteResponse{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	unit, _ := uow.FromContext(execCtx)
	apartment, err := unit.Apartments().ByID(execCtx, domainapartments.ApartmentID(q.ApartmentID))
	if err != nil {
		return dto.QuoteResponse{}, err
	}
	now := q.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	breakdown, err := h.Pricing.Quote(execCtx, apartment, q.CheckIn, q.CheckOut, now)
	if err != nil {
		return dto.QuoteResponse{}, err
	}
	return dto.MapBreakdown(breakdown), nil
}

var _ queries.Handler[GetQuoteQuery, dto.QuoteResponse] = (*GetQuoteHandler)(nil)
