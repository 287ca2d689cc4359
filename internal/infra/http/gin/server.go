package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"stayable/internal/infra/config"
	"stayable/internal/infra/obs"
)

type CalendarHTTP interface {
	Month(c *gin.Context)
	Click(c *gin.Context)
}

type QuoteHTTP interface {
	Quote(c *gin.Context)
}

type BookingHTTP interface {
	Validate(c *gin.Context)
}

type BookedDatesHTTP interface {
	Mark(c *gin.Context)
}

type HostRulesHTTP interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type Handlers struct {
	Calendar  CalendarHTTP
	Quote     QuoteHTTP
	Booking   BookingHTTP
	Booked    BookedDatesHTTP
	HostRules HostRulesHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.AccessLog())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
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
	if h.Calendar != nil {
		api.GET("/properties/:id/calendar", h.Calendar.Month)
		api.POST("/properties/:id/selection/click", h.Calendar.Click)
	}
	if h.Quote != nil {
		api.POST("/properties/:id/quote", h.Quote.Quote)
	}
	if h.Booking != nil {
		api.POST("/properties/:id/bookings/validate", h.Booking.Validate)
	}
	if h.Booked != nil {
		api.POST("/properties/:id/booked-dates", h.Booked.Mark)
	}
	if h.HostRules != nil {
		hostGroup := api.Group("/host/properties/:id/rules")
		hostGroup.GET("", h.HostRules.List)
		hostGroup.POST("", h.HostRules.Create)
		hostGroup.PUT("/:ruleId", h.HostRules.Update)
		hostGroup.DELETE("/:ruleId", h.HostRules.Delete)
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
