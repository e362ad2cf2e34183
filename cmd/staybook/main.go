package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"staybook/internal/app/commands"
	apartmentapp "staybook/internal/app/handlers/apartments"
	bookingapp "staybook/internal/app/handlers/booking"
	offerapp "staybook/internal/app/handlers/offers"
	pricingapp "staybook/internal/app/handlers/pricing"
	"staybook/internal/app/middleware"
	appoutbox "staybook/internal/app/outbox"
	"staybook/internal/app/policies"
	"staybook/internal/app/queries"
	"staybook/internal/app/services/quote"
	"staybook/internal/app/uow"
	"staybook/internal/domain/apartments"
	"staybook/internal/domain/offers"
	"staybook/internal/infra/broker/kafka"
	"staybook/internal/infra/config"
	mongodb "staybook/internal/infra/db/mongo"
	ginserver "staybook/internal/infra/http/gin"
	"staybook/internal/infra/obs"
	infraoutbox "staybook/internal/infra/outbox"
	"staybook/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Warn("using fallback in-memory configuration", "error", err)
		cfg.Env = env
		cfg.HTTPAddr = getenv("HTTP_ADDR", ":8080")
		cfg.MongoURI = ""
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	app, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("application wiring failed", "error", err)
		os.Exit(1)
	}
	defer app.close(logger)

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: app.ready,
	}, app.handlers)

	fixturesPath := getenv("STAYBOOK_FIXTURES", "")
	if fixturesPath == "" {
		fixturesPath = defaultFixturesPath()
	}
	if err := app.loadFixtures(ctx, fixturesPath, logger); err != nil {
		logger.Warn("fixtures load failed", "error", err, "path", fixturesPath)
	}

	if app.worker != nil {
		go func() {
			if err := app.worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("outbox worker stopped", "error", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", app.storage)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers ginserver.Handlers
	storage  string
	worker   *infraoutbox.Worker
	producer *kafka.Producer
	ready    func() error

	apartmentsRepo apartments.Repository
	offersRepo     offers.Repository
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (*application, error) {
	app := &application{storage: "memory", ready: func() error { return nil }}

	var (
		uowFactory  uow.UoWFactory
		outboxStore appoutbox.Outbox
		offerSource policies.OfferSourcePort
	)

	if cfg.MongoURI != "" {
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, fmt.Errorf("mongo connect: %w", err)
		}
		apartmentsRepo := mongodb.NewApartmentRepository(client.DB)
		offersRepo := mongodb.NewOfferRepository(client.DB)
		bookingsRepo := mongodb.NewBookingRepository(client.DB)
		uowFactory = mongodb.Factory{
			DB:             client.DB,
			ApartmentsRepo: apartmentsRepo,
			OffersRepo:     offersRepo,
			BookingsRepo:   bookingsRepo,
		}
		store := infraoutbox.NewStore(client.DB)
		outboxStore = store
		offerSource = memory.OfferSourceAdapter{Repo: offersRepo}
		app.apartmentsRepo = apartmentsRepo
		app.offersRepo = offersRepo
		app.storage = "mongo"
		app.ready = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}

		if len(cfg.KafkaBrokers) > 0 {
			producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
			if err != nil {
				return nil, fmt.Errorf("kafka producer: %w", err)
			}
			app.producer = producer
			app.worker = &infraoutbox.Worker{
				Store:       store,
				Producer:    producer,
				Interval:    cfg.OutboxPollInterval,
				TopicPrefix: cfg.KafkaTopicPrefix,
				Backoff:     cfg.RetryBackoff,
			}
		} else {
			logger.Warn("no kafka brokers configured, outbox worker disabled")
		}
	} else {
		apartmentsRepo := memory.NewApartmentRepository()
		offersRepo := memory.NewOfferRepository()
		bookingsRepo := memory.NewBookingRepository()
		uowFactory = memory.Factory{
			ApartmentsRepo: apartmentsRepo,
			OffersRepo:     offersRepo,
			BookingsRepo:   bookingsRepo,
		}
		outboxStore = memory.NewOutbox()
		offerSource = memory.OfferSourceAdapter{Repo: offersRepo}
		app.apartmentsRepo = apartmentsRepo
		app.offersRepo = offersRepo
	}

	idStore := memory.NewIdempotencyStoreTTL(cfg.IdempotencyTTL)
	pricingPort := quote.Service{Offers: offerSource}

	commandBus := commands.NewInMemoryBus()
	bookingHandler := &bookingapp.RequestBookingHandler{
		UoWFactory: uowFactory,
		Pricing:    pricingPort,
		Outbox:     outboxStore,
		Encoder:    appoutbox.JSONEventEncoder{},
	}
	commands.RegisterHandler(commandBus, bookingapp.RequestBookingCommand{}.Key(), bookingHandler)

	offerCmdHandlers := &offerapp.CommandHandlers{
		UoWFactory: uowFactory,
		Outbox:     outboxStore,
		Encoder:    appoutbox.JSONEventEncoder{},
	}
	commands.RegisterHandler(commandBus, offerapp.CreateOfferCommand{}.Key(), commands.HandlerFunc[offerapp.CreateOfferCommand, *offerapp.CreateOfferResult](offerCmdHandlers.HandleCreate))
	commands.RegisterHandler(commandBus, offerapp.UpdateOfferCommand{}.Key(), commands.HandlerFunc[offerapp.UpdateOfferCommand, struct{}](offerCmdHandlers.HandleUpdate))
	commands.RegisterHandler(commandBus, offerapp.DeleteOfferCommand{}.Key(), commands.HandlerFunc[offerapp.DeleteOfferCommand, struct{}](offerCmdHandlers.HandleDelete))

	apartmentCmdHandlers := &apartmentapp.CommandHandlers{
		UoWFactory: uowFactory,
		Outbox:     outboxStore,
		Encoder:    appoutbox.JSONEventEncoder{},
	}
	commands.RegisterHandler(commandBus, apartmentapp.CreateApartmentCommand{}.Key(), commands.HandlerFunc[apartmentapp.CreateApartmentCommand, *apartmentapp.CreateApartmentResult](apartmentCmdHandlers.HandleCreate))
	commands.RegisterHandler(commandBus, apartmentapp.UpdateRatesCommand{}.Key(), commands.HandlerFunc[apartmentapp.UpdateRatesCommand, struct{}](apartmentCmdHandlers.HandleUpdateRates))

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, apartmentapp.GetApartmentQuery{}.Key(), &apartmentapp.GetApartmentHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, apartmentapp.ListApartmentsQuery{}.Key(), &apartmentapp.ListApartmentsHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, pricingapp.GetQuoteQuery{}.Key(), &pricingapp.GetQuoteHandler{UoWFactory: uowFactory, Pricing: pricingPort})
	queries.RegisterHandler(queryBus, offerapp.ListOffersQuery{}.Key(), &offerapp.ListOffersHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, offerapp.ActiveOffersQuery{}.Key(), &offerapp.ActiveOffersHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, bookingapp.GuestBookingsQuery{}.Key(), &bookingapp.GuestBookingsHandler{UoWFactory: uowFactory})

	commandBusWithMiddleware := middleware.ChainCommands(
		commandBus,
		middleware.Idempotency(idStore, nil),
		middleware.Transaction(uowFactory, nil),
		middleware.OutboxFlush(outboxStore),
	)

	queryBusWithMiddleware := middleware.ChainQueries(queryBus)

	app.handlers = ginserver.Handlers{
		Apartment: ginserver.ApartmentHandler{
			Queries: queryBusWithMiddleware,
		},
		Booking: ginserver.BookingHandler{
			Commands: commandBusWithMiddleware,
			Queries:  queryBusWithMiddleware,
		},
		AdminOffer: ginserver.AdminOfferHandler{
			Commands: commandBusWithMiddleware,
			Queries:  queryBusWithMiddleware,
		},
		AdminApartment: ginserver.AdminApartmentHandler{
			Commands: commandBusWithMiddleware,
		},
	}
	return app, nil
}

func (a *application) close(logger *slog.Logger) {
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			logger.Error("kafka producer close failed", "error", err)
		}
	}
}

type fixtureFile struct {
	Apartments []apartmentFixture `json:"apartments"`
	Offers     []offerFixture     `json:"offers"`
}

type apartmentFixture struct {
	ID          string         `json:"id"`
	Owner       string         `json:"owner"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Address     fixtureAddress `json:"address"`
	Amenities   []string       `json:"amenities"`
	GuestsLimit int            `json:"guests_limit"`
	NightlyRate float64        `json:"nightly_rate"`
	CleaningFee float64        `json:"cleaning_fee"`
	Currency    string         `json:"currency"`
}

type fixtureAddress struct {
	Line1   string `json:"line1"`
	Line2   string `json:"line2"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type offerFixture struct {
	ID                 string          `json:"id"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	DiscountPercentage float64         `json:"discount_percentage"`
	ApartmentIDs       json.RawMessage `json:"apartment_ids"`
	ValidFrom          string          `json:"valid_from"`
	ValidUntil         string          `json:"valid_until"`
}

func (a *application) loadFixtures(ctx context.Context, path string, logger *slog.Logger) error {
	if a.storage != "memory" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("fixtures file not found, skipping", "path", path)
			return nil
		}
		return fmt.Errorf("read fixtures: %w", err)
	}
	if len(data) == 0 {
		logger.Warn("fixtures file empty", "path", path)
		return nil
	}

	var fixtures fixtureFile
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return fmt.Errorf("decode fixtures: %w", err)
	}

	now := time.Now().UTC()
	for _, fx := range fixtures.Apartments {
		apartment, err := apartments.New(apartments.CreateParams{
			ID:          apartments.ApartmentID(fx.ID),
			Owner:       apartments.OwnerID(fx.Owner),
			Title:       fx.Title,
			Description: fx.Description,
			Address: apartments.Address{
				Line1:   fx.Address.Line1,
				Line2:   fx.Address.Line2,
				City:    fx.Address.City,
				Country: fx.Address.Country,
			},
			Amenities:   append([]string(nil), fx.Amenities...),
			GuestsLimit: fx.GuestsLimit,
			NightlyRate: fx.NightlyRate,
			CleaningFee: fx.CleaningFee,
			Currency:    fx.Currency,
			CreatedAt:   now,
		})
		if err != nil {
			logger.Error("apartment fixture invalid", "apartment_id", fx.ID, "error", err)
			continue
		}
		if err := apartment.Activate(now); err != nil {
			logger.Error("apartment fixture activation failed", "apartment_id", fx.ID, "error", err)
			continue
		}
		apartment.ClearEvents()
		if err := a.apartmentsRepo.Save(ctx, apartment); err != nil {
			logger.Error("cannot store fixture apartment", "apartment_id", fx.ID, "error", err)
			continue
		}
		logger.Info("apartment fixture imported", "apartment_id", apartment.ID)
	}

	for _, fx := range fixtures.Offers {
		var scopeInput any
		if len(fx.ApartmentIDs) > 0 && string(fx.ApartmentIDs) != "null" {
			scopeInput = fx.ApartmentIDs
		}
		scope, err := offers.NormalizeScope(scopeInput)
		if err != nil {
			logger.Error("offer fixture scope invalid", "offer_id", fx.ID, "error", err)
			continue
		}
		offer, err := offers.New(offers.CreateParams{
			ID:                 offers.OfferID(fx.ID),
			Title:              fx.Title,
			Description:        fx.Description,
			DiscountPercentage: fx.DiscountPercentage,
			Scope:              scope,
			ValidFrom:          parseFixtureTime(fx.ValidFrom, now),
			ValidUntil:         parseFixtureTime(fx.ValidUntil, now.AddDate(0, 1, 0)),
			CreatedAt:          now,
		})
		if err != nil {
			logger.Error("offer fixture invalid", "offer_id", fx.ID, "error", err)
			continue
		}
		offer.ClearEvents()
		if err := a.offersRepo.Save(ctx, offer); err != nil {
			logger.Error("cannot store fixture offer", "offer_id", fx.ID, "error", err)
			continue
		}
		logger.Info("offer fixture imported", "offer_id", offer.ID)
	}
	return nil
}

func parseFixtureTime(value string, fallback time.Time) time.Time {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	return fallback
}

func defaultFixturesPath() string {
	candidates := []string{
		filepath.Join("data", "fixtures.json"),
		filepath.Join("backend", "data", "fixtures.json"),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return candidates[0]
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
