package ginserver

import (
	"errors"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"staybook/internal/app/commands"
	"staybook/internal/app/dto"
	bookingapp "staybook/internal/app/handlers/booking"
	"staybook/internal/app/queries"
	domainbooking "staybook/internal/domain/booking"
)

type BookingHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type createBookingRequest struct {
	ApartmentID string             `json:"apartment_id"`
	GuestID     string             `json:"guest_id"`
	CheckIn     time.Time          `json:"check_in"`
	CheckOut    time.Time          `json:"check_out"`
	Guests      []dto.GuestPayload `json:"guests"`
}

func (h BookingHandler) Create(c *gin.Context) {
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	guests := dto.MapGuests(req.Guests)
	if !domainbooking.HasAdult(guests) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": domainbooking.ErrNoAdultGuest.Error()})
		return
	}
	cmd := bookingapp.RequestBookingCommand{
		CommandID:       generateCommandID(),
		ApartmentID:     req.ApartmentID,
		GuestID:         req.GuestID,
		CheckIn:         req.CheckIn,
		CheckOut:        req.CheckOut,
		Guests:          guests,
		IdempotencyKeyV: c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[bookingapp.RequestBookingCommand, *bookingapp.RequestBookingResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domainbooking.ErrNoAdultGuest) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, result)
}

func (h BookingHandler) ListByGuest(c *gin.Context) {
	guestID := c.Query("guest_id")
	q := bookingapp.GuestBookingsQuery{GuestID: guestID}
	result, err := queries.Ask[bookingapp.GuestBookingsQuery, dto.BookingCollection](c.Request.Context(), h.Queries, q)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, bookingapp.ErrGuestRequired) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func generateCommandID() string {
	return uuid.NewString()
}

var _ BookingHTTP = BookingHandler{}
