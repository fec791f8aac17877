package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"villamare/internal/infra/config"
	"villamare/internal/infra/obs"
)

type BookingHTTP interface {
	Create(c *gin.Context)
}

type AvailabilityHTTP interface {
	Calendar(c *gin.Context)
	Check(c *gin.Context)
}

type PricingHTTP interface {
	Quote(c *gin.Context)
}

type AdminHTTP interface {
	Login(c *gin.Context)
	Logout(c *gin.Context)
	Authorize(c *gin.Context)
	ListRequests(c *gin.Context)
	GetRequest(c *gin.Context)
	UpdateStatus(c *gin.Context)
}

type Handlers struct {
	Booking      BookingHTTP
	Availability AvailabilityHTTP
	Pricing      PricingHTTP
	Admin        AdminHTTP
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
		AllowMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
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
	if h.Booking != nil {
		api.POST("/bookings", h.Booking.Create)
	}
	if h.Availability != nil {
		api.GET("/calendar", h.Availability.Calendar)
		api.GET("/availability", h.Availability.Check)
	}
	if h.Pricing != nil {
		api.POST("/quote", h.Pricing.Quote)
	}
	if h.Admin != nil {
		api.POST("/admin/login", h.Admin.Login)
		adminGroup := api.Group("/admin")
		adminGroup.Use(h.Admin.Authorize)
		adminGroup.POST("/logout", h.Admin.Logout)
		adminGroup.GET("/requests", h.Admin.ListRequests)
		adminGroup.GET("/requests/:id", h.Admin.GetRequest)
		adminGroup.PATCH("/requests/:id/status", h.Admin.UpdateStatus)
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
