package memory

import (
	"context"
	"sort"
	"sync"

	domainapartments "staybook/internal/domain/apartments"
	domainbooking "staybook/internal/domain/booking"
	domainoffers "staybook/internal/domain/offers"
)

// ApartmentRepository is an in-memory implementation for tests and demo runs.
type ApartmentRepository struct {
	mu    sync.RWMutex
	items map[domainapartments.ApartmentID]*domainapartments.Apartment
	order []domainapartments.ApartmentID
}

func NewApartmentRepository() *ApartmentRepository {
	return &ApartmentRepository{
		items: make(map[domainapartments.ApartmentID]*domainapartments.Apartment),
	}
}

func (r *ApartmentRepository) ByID(ctx context.Context, id domainapartments.ApartmentID) (*domainapartments.Apartment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	apartment, ok := r.items[id]
	if !ok {
		return nil, domainapartments.ErrApartmentNotFound
	}
	return apartment, nil
}

func (r *ApartmentRepository) Save(ctx context.Context, apartment *domainapartments.Apartment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[apartment.ID]; !exists {
		r.order = append(r.order, apartment.ID)
	}
	r.items[apartment.ID] = apartment
	return nil
}

func (r *ApartmentRepository) ListActive(ctx context.Context) ([]*domainapartments.Apartment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainapartments.Apartment, 0, len(r.order))
	for _, id := range r.order {
		if a := r.items[id]; a != nil && a.State == domainapartments.ApartmentActive {
			out = append(out, a)
		}
	}
	return out, nil
}

// OfferRepository keeps offers in insertion order, matching the stored-order
// guarantee of the persistent implementation.
type OfferRepository struct {
	mu    sync.RWMutex
	items map[domainoffers.OfferID]*domainoffers.Offer
	order []domainoffers.OfferID
}

func NewOfferRepository() *OfferRepository {
	return &OfferRepository{items: make(map[domainoffers.OfferID]*domainoffers.Offer)}
}

func (r *OfferRepository) ByID(ctx context.Context, id domainoffers.OfferID) (*domainoffers.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	offer, ok := r.items[id]
	if !ok {
		return nil, domainoffers.ErrOfferNotFound
	}
	return offer, nil
}

func (r *OfferRepository) Save(ctx context.Context, offer *domainoffers.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[offer.ID]; !exists {
		r.order = append(r.order, offer.ID)
	}
	r.items[offer.ID] = offer
	return nil
}

func (r *OfferRepository) Delete(ctx context.Context, id domainoffers.OfferID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domainoffers.ErrOfferNotFound
	}
	delete(r.items, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *OfferRepository) List(ctx context.Context) ([]*domainoffers.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainoffers.Offer, 0, len(r.order))
	for _, id := range r.order {
		if o := r.items[id]; o != nil {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *OfferRepository) ListForApartment(ctx context.Context, apartmentID domainapartments.ApartmentID) ([]*domainoffers.Offer, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domainoffers.Offer, 0, len(all))
	for _, o := range all {
		if o.Scope.Includes(apartmentID) {
			out = append(out, o)
		}
	}
	return out, nil
}

// BookingRepository is an in-memory booking store.
type BookingRepository struct {
	mu    sync.RWMutex
	items map[domainbooking.BookingID]*domainbooking.Booking
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{items: make(map[domainbooking.BookingID]*domainbooking.Booking)}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.items[id]
	if !ok {
		return nil, domainbooking.ErrBookingNotFound
	}
	return b, nil
}

func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[b.ID] = b
	return nil
}

func (r *BookingRepository) ListByGuest(ctx context.Context, guestID string) ([]*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainbooking.Booking, 0)
	for _, b := range r.items {
		if b.GuestID == guestID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

var (
	_ domainapartments.Repository = (*ApartmentRepository)(nil)
	_ domainoffers.Repository     = (*OfferRepository)(nil)
	_ domainbooking.Repository    = (*BookingRepository)(nil)
)
