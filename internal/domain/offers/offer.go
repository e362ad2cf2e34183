package offers

import (
	"context"
	"errors"
	"strings"
	"time"

	"staybook/internal/domain/apartments"
	"staybook/internal/domain/shared/events"
)

var (
	ErrTitleRequired   = errors.New("offers: title is required")
	ErrInvalidDiscount = errors.New("offers: discount percentage must be in (0, 100]")
	ErrInvalidWindow   = errors.New("offers: valid_from must not be after valid_until")
	ErrOfferNotFound   = errors.New("offers: not found")
)

type OfferID string

// Offer is a time-boxed percentage discount, optionally scoped to a set of
// apartments. Offers are written by the admin surface and read-only for the
// pricing path.
type Offer struct {
	ID                 OfferID
	Title              string
	Description        string
	DiscountPercentage float64
	Scope              Scope
	ValidFrom          time.Time
	ValidUntil         time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Version            int64
	events.EventRecorder
}

type CreateParams struct {
	ID                 OfferID
	Title              string
	Description        string
	DiscountPercentage float64
	Scope              Scope
	ValidFrom          time.Time
	ValidUntil         time.Time
	CreatedAt          time.Time
}

func New(params CreateParams) (*Offer, error) {
	o := &Offer{
		ID:                 params.ID,
		Title:              strings.TrimSpace(params.Title),
		Description:        params.Description,
		DiscountPercentage: params.DiscountPercentage,
		Scope:              params.Scope,
		ValidFrom:          params.ValidFrom.UTC(),
		ValidUntil:         params.ValidUntil.UTC(),
		CreatedAt:          params.CreatedAt.UTC(),
		UpdatedAt:          params.CreatedAt.UTC(),
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	o.Record(OfferCreated{OfferID: o.ID, Title: o.Title, Discount: o.DiscountPercentage, At: o.CreatedAt})
	return o, nil
}

func (o *Offer) validate() error {
	if o.Title == "" {
		return ErrTitleRequired
	}
	if o.DiscountPercentage <= 0 || o.DiscountPercentage > 100 {
		return ErrInvalidDiscount
	}
	if o.ValidFrom.After(o.ValidUntil) {
		return ErrInvalidWindow
	}
	return nil
}

type UpdateParams struct {
	Title              string
	Description        string
	DiscountPercentage float64
	Scope              Scope
	ValidFrom          time.Time
	ValidUntil         time.Time
}

func (o *Offer) Update(params UpdateParams, now time.Time) error {
	next := *o
	next.Title = strings.TrimSpace(params.Title)
	next.Description = params.Description
	next.DiscountPercentage = params.DiscountPercentage
	next.Scope = params.Scope
	next.ValidFrom = params.ValidFrom.UTC()
	next.ValidUntil = params.ValidUntil.UTC()
	if err := next.validate(); err != nil {
		return err
	}
	next.UpdatedAt = now.UTC()
	*o = next
	o.Record(OfferUpdated{OfferID: o.ID, Discount: o.DiscountPercentage, At: o.UpdatedAt})
	return nil
}

// EligibleFor reports whether the offer applies to the apartment at the given
// instant. Both window bounds are inclusive.
func (o Offer) EligibleFor(apartmentID apartments.ApartmentID, now time.Time) bool {
	if now.Before(o.ValidFrom) || now.After(o.ValidUntil) {
		return false
	}
	return o.Scope.Includes(apartmentID)
}

type Repository interface {
	ByID(ctx context.Context, id OfferID) (*Offer, error)
	Save(ctx context.Context, offer *Offer) error
	Delete(ctx context.Context, id OfferID) error
	List(ctx context.Context) ([]*Offer, error)
	ListForApartment(ctx context.Context, apartmentID apartments.ApartmentID) ([]*Offer, error)
}
