package uow

import (
	"context"

	domainapartments "staybook/internal/domain/apartments"
	domainbooking "staybook/internal/domain/booking"
	domainoffers "staybook/internal/domain/offers"
)

// UnitOfWork coordinates repositories inside a transaction boundary.
type UnitOfWork interface {
	Apartments() domainapartments.Repository
	Offers() domainoffers.Repository
	Bookings() domainbooking.Repository

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UoWFactory starts unit of work instances.
type UoWFactory interface {
	Begin(ctx context.Context, opts TxOptions) (UnitOfWork, error)
}

// TxOptions configure transaction boundaries.
type TxOptions struct {
	ReadOnly bool
}
