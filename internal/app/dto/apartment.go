package dto

import (
	"time"

	domainapartments "staybook/internal/domain/apartments"
)

type AddressDTO struct {
	Line1   string `json:"line1"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type ApartmentDetail struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Address     AddressDTO `json:"address"`
	Amenities   []string   `json:"amenities"`
	GuestsLimit int        `json:"guests_limit"`
	NightlyRate float64    `json:"nightly_rate"`
	CleaningFee float64    `json:"cleaning_fee"`
	Currency    string     `json:"currency"`
	State       string     `json:"state"`
	CreatedAt   time.Time  `json:"created_at"`
}

type ApartmentCollection struct {
	Items []ApartmentDetail `json:"items"`
}

func MapApartmentDetail(a *domainapartments.Apartment) ApartmentDetail {
	return ApartmentDetail{
		ID:          string(a.ID),
		Title:       a.Title,
		Description: a.Description,
		Address: AddressDTO{
			Line1:   a.Address.Line1,
			Line2:   a.Address.Line2,
			City:    a.Address.City,
			Country: a.Address.Country,
		},
		Amenities:   a.Amenities,
		GuestsLimit: a.GuestsLimit,
		NightlyRate: a.NightlyRate,
		CleaningFee: a.CleaningFee,
		Currency:    a.Currency,
		State:       string(a.State),
		CreatedAt:   a.CreatedAt,
	}
}

func MapApartmentCollection(list []*domainapartments.Apartment) ApartmentCollection {
	items := make([]ApartmentDetail, 0, len(list))
	for _, a := range list {
		items = append(items, MapApartmentDetail(a))
	}
	return ApartmentCollection{Items: items}
}
