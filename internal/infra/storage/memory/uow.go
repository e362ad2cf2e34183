package memory

import (
	"context"
	"errors"

	"staybook/internal/app/uow"
	domainapartments "staybook/internal/domain/apartments"
	domainbooking "staybook/internal/domain/booking"
	domainoffers "staybook/internal/domain/offers"
)

// Factory wires in-memory repositories into a unit-of-work boundary.
type Factory struct {
	ApartmentsRepo domainapartments.Repository
	OffersRepo     domainoffers.Repository
	BookingsRepo   domainbooking.Repository
}

// ErrFactoryMisconfigured indicates missing repositories.
var ErrFactoryMisconfigured = errors.New("memory: unit of work factory misconfigured")

// Begin starts a lightweight transaction boundary. No isolation is provided
// but the abstraction matches the application ports.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.ApartmentsRepo == nil || f.OffersRepo == nil || f.BookingsRepo == nil {
		return nil, ErrFactoryMisconfigured
	}
	return &Unit{
		apartments: f.ApartmentsRepo,
		offers:     f.OffersRepo,
		bookings:   f.BookingsRepo,
	}, nil
}

// Unit is a lightweight uow.UnitOfWork backed by in-memory stores.
type Unit struct {
	apartments domainapartments.Repository
	offers     domainoffers.Repository
	bookings   domainbooking.Repository
}

func (u *Unit) Apartments() domainapartments.Repository {
	return u.apartments
}

func (u *Unit) Offers() domainoffers.Repository {
	return u.offers
}

func (u *Unit) Bookings() domainbooking.Repository {
	return u.bookings
}

func (u *Unit) Commit(ctx context.Context) error {
	return nil
}

func (u *Unit) Rollback(ctx context.Context) error {
	return nil
}
