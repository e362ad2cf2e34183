package offers

import (
	"context"
	"time"

	"staybook/internal/app/dto"
	"staybook/internal/app/handlers/support"
	"staybook/internal/app/queries"
	"staybook/internal/app/uow"
	domainapartments "staybook/internal/domain/apartments"
	domainoffers "staybook/internal/domain/offers"
)

const (
	listOffersKey   = "offers.list"
	activeOffersKey = "offers.active"
)

// ListOffersQuery returns every offer for the admin back office.
type ListOffersQuery struct{}

func (q ListOffersQuery) Key() string { return listOffersKey }

type ListOffersHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *ListOffersHandler) Handle(ctx context.Context, q ListOffersQuery) (dto.OfferCollection, error) {
	_, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.OfferCollection{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	unit, _ := uow.FromContext(execCtx)
	list, err := unit.Offers().List(execCtx)
	if err != nil {
		return dto.OfferCollection{}, err
	}
	return dto.MapOfferCollection(list), nil
}

// ActiveOffersQuery returns the offers currently eligible for one apartment,
// in stored order, for the listing page's transparency strip.
type ActiveOffersQuery struct {
	ApartmentID string
	Now         time.Time
}

func (q ActiveOffersQuery) Key() string { return activeOffersKey }

type ActiveOffersHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *ActiveOffersHandler) Handle(ctx context.Context, q ActiveOffersQuery) (dto.OfferCollection, error) {
	_, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.OfferCollection{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	unit, _ := uow.FromContext(execCtx)
	apartmentID := domainapartments.ApartmentID(q.ApartmentID)
	stored, err := unit.Offers().ListForApartment(execCtx, apartmentID)
	if err != nil {
		return dto.OfferCollection{}, err
	}
	now := q.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	flat := make([]domainoffers.Offer, 0, len(stored))
	for _, o := range stored {
		flat = append(flat, *o)
	}
	eligible := domainoffers.Eligible(flat, apartmentID, now)
	refs := make([]*domainoffers.Offer, 0, len(eligible))
	for i := range eligible {
		refs = append(refs, &eligible[i])
	}
	return dto.MapOfferCollection(refs), nil
}

var _ queries.Handler[ListOffersQuery, dto.OfferCollection] = (*ListOffersHandler)(nil)
var _ queries.Handler[ActiveOffersQuery, dto.OfferCollection] = (*ActiveOffersHandler)(nil)
