package apartments

import (
	"context"

	"staybook/internal/app/dto"
	"staybook/internal/app/handlers/support"
	"staybook/internal/app/queries"
	"staybook/internal/app/uow"
	domainapartments "staybook/internal/domain/apartments"
)

const (
	getApartmentKey   = "apartments.get"
	listApartmentsKey = "apartments.list"
)

type GetApartmentQuery struct {
	ApartmentID string
}

func (q GetApartmentQuery) Key() string { return getApartmentKey }

type GetApartmentHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *GetApartmentHandler) Handle(ctx context.Context, q GetApartmentQuery) (dto.ApartmentDetail, error) {
	_, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.ApartmentDetail{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	unit, _ := uow.FromContext(execCtx)
	apartment, err := unit.Apartments().ByID(execCtx, domainapartments.ApartmentID(q.ApartmentID))
	if err != nil {
		return dto.ApartmentDetail{}, err
	}
	return dto.MapApartmentDetail(apartment), nil
}

type ListApartmentsQuery struct{}

func (q ListApartmentsQuery) Key() string { return listApartmentsKey }

type ListApartmentsHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *ListApartmentsHandler) Handle(ctx context.Context, q ListApartmentsQuery) (dto.ApartmentCollection, error) {
	_, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.ApartmentCollection{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	unit, _ := uow.FromContext(execCtx)
	list, err := unit.Apartments().ListActive(execCtx)
	if err != nil {
		return dto.ApartmentCollection{}, err
	}
	return dto.MapApartmentCollection(list), nil
}

var _ queries.Handler[GetApartmentQuery, dto.ApartmentDetail] = (*GetApartmentHandler)(nil)
var _ queries.Handler[ListApartmentsQuery, dto.ApartmentCollection] = (*ListApartmentsHandler)(nil)
