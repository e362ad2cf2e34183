package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"staybook/internal/infra/config"
	"staybook/internal/infra/obs"
)

type ApartmentHTTP interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Quote(c *gin.Context)
	ActiveOffers(c *gin.Context)
}

type BookingHTTP interface {
	Create(c *gin.Context)
	ListByGuest(c *gin.Context)
}

type AdminOfferHTTP interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type AdminApartmentHTTP interface {
	Create(c *gin.Context)
	UpdateRates(c *gin.Context)
}

type Handlers struct {
	Apartment      ApartmentHTTP
	Booking        BookingHTTP
	AdminOffer     AdminOfferHTTP
	AdminApartment AdminApartmentHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "Idempotency-Key"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Apartment != nil {
		api.GET("/apartments", h.Apartment.List)
		api.GET("/apartments/:id", h.Apartment.Get)
		api.GET("/apartments/:id/quote", h.Apartment.Quote)
		api.GET("/apartments/:id/offers", h.Apartment.ActiveOffers)
	}
	if h.Booking != nil {
		api.POST("/bookings", h.Booking.Create)
		api.GET("/bookings", h.Booking.ListByGuest)
	}
	admin := api.Group("/admin")
	if h.AdminOffer != nil {
		admin.GET("/offers", h.AdminOffer.List)
		admin.POST("/offers", h.AdminOffer.Create)
		admin.PUT("/offers/:id", h.AdminOffer.Update)
		admin.DELETE("/offers/:id", h.AdminOffer.Delete)
	}
	if h.AdminApartment != nil {
		admin.POST("/apartments", h.AdminApartment.Create)
		admin.PUT("/apartments/:id/rates", h.AdminApartment.UpdateRates)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
