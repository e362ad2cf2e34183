package ginserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"staybook/internal/app/commands"
	"staybook/internal/app/dto"
	apartmentapp "staybook/internal/app/handlers/apartments"
	offerapp "staybook/internal/app/handlers/offers"
	"staybook/internal/app/queries"
	domainapartments "staybook/internal/domain/apartments"
	domainoffers "staybook/internal/domain/offers"
)

type AdminOfferHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type offerPayload struct {
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	DiscountPercentage float64         `json:"discount_percentage"`
	ApartmentIDs       json.RawMessage `json:"apartment_ids"`
	ValidFrom          time.Time       `json:"valid_from"`
	ValidUntil         time.Time       `json:"valid_until"`
}

func (p offerPayload) fields() offerapp.OfferFields {
	var scopeInput any
	if len(p.ApartmentIDs) > 0 && string(p.ApartmentIDs) != "null" {
		scopeInput = p.ApartmentIDs
	}
	return offerapp.OfferFields{
		Title:              p.Title,
		Description:        p.Description,
		DiscountPercentage: p.DiscountPercentage,
		ApartmentIDs:       scopeInput,
		ValidFrom:          p.ValidFrom,
		ValidUntil:         p.ValidUntil,
	}
}

func (h AdminOfferHandler) List(c *gin.Context) {
	result, err := queries.Ask[offerapp.ListOffersQuery, dto.OfferCollection](c.Request.Context(), h.Queries, offerapp.ListOffersQuery{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h AdminOfferHandler) Create(c *gin.Context) {
	var payload offerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := offerapp.CreateOfferCommand{CommandID: generateCommandID(), Fields: payload.fields()}
	result, err := commands.Dispatch[offerapp.CreateOfferCommand, *offerapp.CreateOfferResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h AdminOfferHandler) Update(c *gin.Context) {
	var payload offerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := offerapp.UpdateOfferCommand{OfferID: c.Param("id"), Fields: payload.fields()}
	if _, err := commands.Dispatch[offerapp.UpdateOfferCommand, struct{}](c.Request.Context(), h.Commands, cmd); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domainoffers.ErrOfferNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h AdminOfferHandler) Delete(c *gin.Context) {
	cmd := offerapp.DeleteOfferCommand{OfferID: c.Param("id")}
	if _, err := commands.Dispatch[offerapp.DeleteOfferCommand, struct{}](c.Request.Context(), h.Commands, cmd); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domainoffers.ErrOfferNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

type AdminApartmentHandler struct {
	Commands commands.Bus
}

type createApartmentRequest struct {
	OwnerID     string         `json:"owner_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Address     dto.AddressDTO `json:"address"`
	Amenities   []string       `json:"amenities"`
	GuestsLimit int            `json:"guests_limit"`
	NightlyRate float64        `json:"nightly_rate"`
	CleaningFee float64        `json:"cleaning_fee"`
	Currency    string         `json:"currency"`
	Activate    bool           `json:"activate"`
}

func (h AdminApartmentHandler) Create(c *gin.Context) {
	var req createApartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := apartmentapp.CreateApartmentCommand{
		CommandID:   generateCommandID(),
		OwnerID:     req.OwnerID,
		Title:       req.Title,
		Description: req.Description,
		Address:     domainApartmentAddress(req.Address),
		Amenities:   req.Amenities,
		GuestsLimit: req.GuestsLimit,
		NightlyRate: req.NightlyRate,
		CleaningFee: req.CleaningFee,
		Currency:    req.Currency,
		Activate:    req.Activate,
	}
	result, err := commands.Dispatch[apartmentapp.CreateApartmentCommand, *apartmentapp.CreateApartmentResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, result)
}

type updateRatesRequest struct {
	NightlyRate float64 `json:"nightly_rate"`
	CleaningFee float64 `json:"cleaning_fee"`
}

func (h AdminApartmentHandler) UpdateRates(c *gin.Context) {
	var req updateRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := apartmentapp.UpdateRatesCommand{
		ApartmentID: c.Param("id"),
		NightlyRate: req.NightlyRate,
		CleaningFee: req.CleaningFee,
	}
	if _, err := commands.Dispatch[apartmentapp.UpdateRatesCommand, struct{}](c.Request.Context(), h.Commands, cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func domainApartmentAddress(a dto.AddressDTO) domainapartments.Address {
	return domainapartments.Address{
		Line1:   a.Line1,
		Line2:   a.Line2,
		City:    a.City,
		Country: a.Country,
	}
}

var _ AdminOfferHTTP = AdminOfferHandler{}
var _ AdminApartmentHTTP = AdminApartmentHandler{}
