package ginserver

import (
	"errors"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"staybook/internal/app/dto"
	apartmentapp "staybook/internal/app/handlers/apartments"
	offerapp "staybook/internal/app/handlers/offers"
	pricingapp "staybook/internal/app/handlers/pricing"
	"staybook/internal/app/queries"
	domainapartments "staybook/internal/domain/apartments"
)

type ApartmentHandler struct {
	Queries queries.Bus
}

func (h ApartmentHandler) List(c *gin.Context) {
	result, err := queries.Ask[apartmentapp.ListApartmentsQuery, dto.ApartmentCollection](c.Request.Context(), h.Queries, apartmentapp.ListApartmentsQuery{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ApartmentHandler) Get(c *gin.Context) {
	q := apartmentapp.GetApartmentQuery{ApartmentID: c.Param("id")}
	result, err := queries.Ask[apartmentapp.GetApartmentQuery, dto.ApartmentDetail](c.Request.Context(), h.Queries, q)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domainapartments.ErrApartmentNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Quote recomputes the price breakdown for a candidate date selection. An
// incomplete selection is a 200 with available=false, so the UI can keep the
// booking button disabled without treating it as a failure.
func (h ApartmentHandler) Quote(c *gin.Context) {
	checkIn, okIn := parseDateParam(c.Query("check_in"))
	checkOut, okOut := parseDateParam(c.Query("check_out"))
	if !okIn || !okOut {
		c.JSON(http.StatusOK, dto.QuoteResponse{Available: false})
		return
	}
	q := pricingapp.GetQuoteQuery{
		ApartmentID: c.Param("id"),
		CheckIn:     checkIn,
		CheckOut:    checkOut,
	}
	result, err := queries.Ask[pricingapp.GetQuoteQuery, dto.QuoteResponse](c.Request.Context(), h.Queries, q)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domainapartments.ErrApartmentNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ApartmentHandler) ActiveOffers(c *gin.Context) {
	q := offerapp.ActiveOffersQuery{ApartmentID: c.Param("id")}
	result, err := queries.Ask[offerapp.ActiveOffersQuery, dto.OfferCollection](c.Request.Context(), h.Queries, q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// parseDateParam accepts RFC 3339 instants or bare dates; booking calendars
// send both.
func parseDateParam(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}

var _ ApartmentHTTP = ApartmentHandler{}
