package apartments

import (
	"context"
	"errors"
	"strings"
	"time"

	"staybook/internal/domain/shared/events"
)

var (
	ErrTitleRequired     = errors.New("apartments: title is required")
	ErrNegativeRate      = errors.New("apartments: nightly rate must be non-negative")
	ErrNegativeFee       = errors.New("apartments: cleaning fee must be non-negative")
	ErrGuestsLimit       = errors.New("apartments: guests limit must be at least 1")
	ErrCurrencyRequired  = errors.New("apartments: currency must be defined")
	ErrInvalidState      = errors.New("apartments: invalid state transition")
	ErrApartmentNotFound = errors.New("apartments: not found")
	ErrAddressRequired   = errors.New("apartments: address must be provided when activating")
)

type ApartmentID string
type OwnerID string

type ApartmentState string

const (
	ApartmentDraft     ApartmentState = "DRAFT"
	ApartmentActive    ApartmentState = "ACTIVE"
	ApartmentSuspended ApartmentState = "SUSPENDED"
)

type Address struct {
	Line1   string
	Line2   string
	City    string
	Country string
}

func (a Address) Valid() bool {
	return strings.TrimSpace(a.Line1) != "" && strings.TrimSpace(a.City) != "" && strings.TrimSpace(a.Country) != ""
}

// Apartment is the rentable unit. Rates are major-unit amounts; negative
// values are rejected at write time so the pricing path never sees them.
type Apartment struct {
	ID          ApartmentID
	Owner       OwnerID
	Title       string
	Description string
	Address     Address
	Amenities   []string
	GuestsLimit int
	NightlyRate float64
	CleaningFee float64
	Currency    string
	State       ApartmentState
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Version     int64
	events.EventRecorder
}

type CreateParams struct {
	ID          ApartmentID
	Owner       OwnerID
	Title       string
	Description string
	Address     Address
	Amenities   []string
	GuestsLimit int
	NightlyRate float64
	CleaningFee float64
	Currency    string
	CreatedAt   time.Time
}

func New(params CreateParams) (*Apartment, error) {
	a := &Apartment{
		ID:          params.ID,
		Owner:       params.Owner,
		Title:       strings.TrimSpace(params.Title),
		Description: params.Description,
		Address:     params.Address,
		Amenities:   params.Amenities,
		GuestsLimit: params.GuestsLimit,
		NightlyRate: params.NightlyRate,
		CleaningFee: params.CleaningFee,
		Currency:    strings.ToUpper(params.Currency),
		State:       ApartmentDraft,
		CreatedAt:   params.CreatedAt.UTC(),
		UpdatedAt:   params.CreatedAt.UTC(),
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	a.Record(ApartmentCreated{ApartmentID: a.ID, Owner: a.Owner, At: a.CreatedAt})
	return a, nil
}

func (a *Apartment) validate() error {
	if a.Title == "" {
		return ErrTitleRequired
	}
	if a.NightlyRate < 0 {
		return ErrNegativeRate
	}
	if a.CleaningFee < 0 {
		return ErrNegativeFee
	}
	if a.GuestsLimit < 1 {
		return ErrGuestsLimit
	}
	if len(a.Currency) != 3 {
		return ErrCurrencyRequired
	}
	return nil
}

// UpdateRates changes pricing inputs, keeping write-time validation as the
// single place negative configuration is refused.
func (a *Apartment) UpdateRates(nightlyRate, cleaningFee float64, now time.Time) error {
	if nightlyRate < 0 {
		return ErrNegativeRate
	}
	if cleaningFee < 0 {
		return ErrNegativeFee
	}
	a.NightlyRate = nightlyRate
	a.CleaningFee = cleaningFee
	a.UpdatedAt = now.UTC()
	a.Record(ApartmentRatesChanged{ApartmentID: a.ID, NightlyRate: nightlyRate, CleaningFee: cleaningFee, At: a.UpdatedAt})
	return nil
}

func (a *Apartment) Activate(now time.Time) error {
	if a.State == ApartmentActive {
		return nil
	}
	if !a.Address.Valid() {
		return ErrAddressRequired
	}
	a.State = ApartmentActive
	a.UpdatedAt = now.UTC()
	return nil
}

func (a *Apartment) Suspend(now time.Time) error {
	if a.State != ApartmentActive {
		return ErrInvalidState
	}
	a.State = ApartmentSuspended
	a.UpdatedAt = now.UTC()
	return nil
}

type Repository interface {
	ByID(ctx context.Context, id ApartmentID) (*Apartment, error)
	Save(ctx context.Context, apartment *Apartment) error
	ListActive(ctx context.Context) ([]*Apartment, error)
}
