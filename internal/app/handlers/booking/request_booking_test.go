package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybook/internal/app/commands"
	"staybook/internal/app/middleware"
	appoutbox "staybook/internal/app/outbox"
	"staybook/internal/app/services/quote"
	domainapartments "staybook/internal/domain/apartments"
	domainbooking "staybook/internal/domain/booking"
	domainoffers "staybook/internal/domain/offers"
	"staybook/internal/infra/storage/memory"
)

var testClock = func() time.Time {
	return time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
}

type fixture struct {
	handler  *RequestBookingHandler
	bookings *memory.BookingRepository
	offers   *memory.OfferRepository
	outbox   *memory.Outbox
	factory  memory.Factory
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	apartmentsRepo := memory.NewApartmentRepository()
	offersRepo := memory.NewOfferRepository()
	bookingsRepo := memory.NewBookingRepository()
	outboxStore := memory.NewOutbox()

	apartment, err := domainapartments.New(domainapartments.CreateParams{
		ID:    "apt-1",
		Owner: "owner-1",
		Title: "Canal view studio",
		Address: domainapartments.Address{
			Line1:   "Keizersgracht 12",
			City:    "Amsterdam",
			Country: "NL",
		},
		GuestsLimit: 4,
		NightlyRate: 100,
		CleaningFee: 25,
		Currency:    "EUR",
		CreatedAt:   testClock(),
	})
	require.NoError(t, err)
	require.NoError(t, apartment.Activate(testClock()))
	apartment.ClearEvents()
	require.NoError(t, apartmentsRepo.Save(context.Background(), apartment))

	factory := memory.Factory{
		ApartmentsRepo: apartmentsRepo,
		OffersRepo:     offersRepo,
		BookingsRepo:   bookingsRepo,
	}
	handler := &RequestBookingHandler{
		UoWFactory: factory,
		Pricing:    quote.Service{Offers: memory.OfferSourceAdapter{Repo: offersRepo}},
		Outbox:     outboxStore,
		Encoder:    appoutbox.JSONEventEncoder{},
		Clock:      testClock,
	}
	return fixture{
		handler:  handler,
		bookings: bookingsRepo,
		offers:   offersRepo,
		outbox:   outboxStore,
		factory:  factory,
	}
}

func validCommand() RequestBookingCommand {
	return RequestBookingCommand{
		CommandID:   "bk-1",
		ApartmentID: "apt-1",
		GuestID:     "guest-1",
		CheckIn:     time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:    time.Date(2026, 7, 13, 0, 0, 0, 0, time.UTC),
		Guests: []domainbooking.Guest{
			{FullName: "Ada Lovelace", Age: 36},
			{FullName: "Junior", Age: 6},
		},
	}
}

func TestRequestBookingHappyPath(t *testing.T) {
	fx := newFixture(t)

	result, err := fx.handler.Handle(context.Background(), validCommand())
	require.NoError(t, err)
	assert.Equal(t, "bk-1", result.BookingID)
	assert.Equal(t, 3, result.Nights)
	assert.Equal(t, int64(32500), result.TotalAmount)
	assert.Equal(t, "EUR", result.Currency)

	stored, err := fx.bookings.ByID(context.Background(), "bk-1")
	require.NoError(t, err)
	assert.Equal(t, domainbooking.StatePending, stored.State)
	assert.Empty(t, stored.PendingEvents(), "events must be drained into the outbox")
}

func TestRequestBookingAppliesBestOffer(t *testing.T) {
	fx := newFixture(t)
	now := testClock()
	for _, tc := range []struct {
		id       domainoffers.OfferID
		discount float64
	}{
		{id: "small", discount: 10},
		{id: "big", discount: 20},
	} {
		offer, err := domainoffers.New(domainoffers.CreateParams{
			ID:                 tc.id,
			Title:              string(tc.id),
			DiscountPercentage: tc.discount,
			Scope:              domainoffers.AllApartments(),
			ValidFrom:          now.AddDate(0, 0, -1),
			ValidUntil:         now.AddDate(0, 1, 0),
			CreatedAt:          now,
		})
		require.NoError(t, err)
		offer.ClearEvents()
		require.NoError(t, fx.offers.Save(context.Background(), offer))
	}

	result, err := fx.handler.Handle(context.Background(), validCommand())
	require.NoError(t, err)
	// 3 nights at 80 plus the 25 cleaning fee.
	assert.Equal(t, int64(26500), result.TotalAmount)
}

func TestRequestBookingValidation(t *testing.T) {
	fx := newFixture(t)

	t.Run("minors only", func(t *testing.T) {
		cmd := validCommand()
		cmd.Guests = []domainbooking.Guest{{FullName: "Teen", Age: 17}}
		_, err := fx.handler.Handle(context.Background(), cmd)
		assert.ErrorIs(t, err, domainbooking.ErrNoAdultGuest)
	})

	t.Run("past check-in", func(t *testing.T) {
		cmd := validCommand()
		cmd.CheckIn = testClock().AddDate(0, 0, -3)
		cmd.CheckOut = testClock().AddDate(0, 0, 2)
		_, err := fx.handler.Handle(context.Background(), cmd)
		assert.ErrorIs(t, err, domainbooking.ErrCheckInInPast)
	})

	t.Run("inverted range", func(t *testing.T) {
		cmd := validCommand()
		cmd.CheckIn, cmd.CheckOut = cmd.CheckOut, cmd.CheckIn
		_, err := fx.handler.Handle(context.Background(), cmd)
		assert.Error(t, err)
	})

	t.Run("unknown apartment", func(t *testing.T) {
		cmd := validCommand()
		cmd.ApartmentID = "missing"
		_, err := fx.handler.Handle(context.Background(), cmd)
		assert.ErrorIs(t, err, domainapartments.ErrApartmentNotFound)
	})
}

func TestRequestBookingIdempotentReplay(t *testing.T) {
	fx := newFixture(t)

	bus := commands.NewInMemoryBus()
	commands.RegisterHandler(bus, RequestBookingCommand{}.Key(), fx.handler)
	chained := middleware.ChainCommands(
		bus,
		middleware.Idempotency(memory.NewIdempotencyStore(), nil),
		middleware.Transaction(fx.factory, nil),
		middleware.OutboxFlush(fx.outbox),
	)

	cmd := validCommand()
	cmd.IdempotencyKeyV = "req-abc"

	first, err := commands.Dispatch[RequestBookingCommand, *RequestBookingResult](context.Background(), chained, cmd)
	require.NoError(t, err)

	// Same key replays the stored result; a new command id must not create a
	// second booking.
	cmd.CommandID = "bk-2"
	second, err := commands.Dispatch[RequestBookingCommand, *RequestBookingResult](context.Background(), chained, cmd)
	require.NoError(t, err)
	assert.Equal(t, first.BookingID, second.BookingID)
	assert.Equal(t, first.TotalAmount, second.TotalAmount)

	_, err = fx.bookings.ByID(context.Background(), "bk-2")
	assert.ErrorIs(t, err, domainbooking.ErrBookingNotFound)
}
