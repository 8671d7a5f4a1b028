package ginserver

import (
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"milahouse/internal/infra/config"
	"milahouse/internal/infra/obs"
)

type PagesHTTP interface {
	Home(c *gin.Context)
	Search(c *gin.Context)
	RoomModal(c *gin.Context)
}

type BookingHTTP interface {
	Request(c *gin.Context)
}

type AvailabilityHTTP interface {
	Hotel(c *gin.Context)
	Room(c *gin.Context)
}

type AdminHTTP interface {
	Page(c *gin.Context)
	Board(c *gin.Context)
	Export(c *gin.Context)
	Nights(c *gin.Context)
}

type Handlers struct {
	Pages        PagesHTTP
	Booking      BookingHTTP
	Availability AvailabilityHTTP
	Admin        AdminHTTP
	AdminAuth    gin.HandlerFunc
	Templates    *template.Template
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewRouter(cfg, obsMW, health, h),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func NewRouter(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(obsMW.Recover())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.AccessLog())
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	if h.Templates != nil {
		router.SetHTMLTemplate(h.Templates)
	}

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	if h.Pages != nil {
		router.GET("/", h.Pages.Home)
		router.GET("/rooms", h.Pages.Search)
		router.GET("/rooms/:id/modal", h.Pages.RoomModal)
	}
	if h.Booking != nil {
		router.POST("/bookings/request", h.Booking.Request)
	}

	api := router.Group("/api/v1")
	if h.Availability != nil {
		api.GET("/disabled-dates", h.Availability.Hotel)
		api.GET("/rooms/:id/disabled-dates", h.Availability.Room)
	}

	if h.Admin != nil && h.AdminAuth != nil {
		adminGroup := router.Group("/admin", h.AdminAuth)
		adminGroup.GET("", h.Admin.Page)
		adminGroup.GET("/nights", h.Admin.Nights)
		adminGroup.GET("/rooms/:id/bookings.ics", h.Admin.Export)

		adminAPI := api.Group("/admin", h.AdminAuth)
		adminAPI.GET("/rooms/:id/board", h.Admin.Board)
	}
	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Type", obs.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
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
