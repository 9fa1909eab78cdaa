// Package controller is the HTTP transport: public booking/availability
// routes, the JWT-gated operator API and the WebSocket change feed.
package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/littlemangalore/venue-booking/internal/config"
	"github.com/littlemangalore/venue-booking/internal/events"
	"github.com/littlemangalore/venue-booking/internal/service"
)

type Server struct {
	cfg          *config.Config
	logger       *zap.Logger
	bookings     *service.BookingService
	statuses     *service.StatusService
	calendar     *service.CalendarService
	availability *service.AvailabilityService
	hub          *events.Hub
	router       *httprouter.Router
}

func New(
	cfg *config.Config,
	logger *zap.Logger,
	bookings *service.BookingService,
	statuses *service.StatusService,
	calendar *service.CalendarService,
	availability *service.AvailabilityService,
	hub *events.Hub,
) *Server {
	s := &Server{
		cfg:          cfg,
		logger:       logger,
		bookings:     bookings,
		statuses:     statuses,
		calendar:     calendar,
		availability: availability,
		hub:          hub,
		router:       httprouter.New(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	limiter := newRateLimiter()
	secret := []byte(s.cfg.JWTSecret)

	s.router.GET("/health", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		fmt.Fprint(w, "ok")
	})

	// public
	s.router.POST("/api/bookings", limiter.limit(s.handleSubmit))
	s.router.GET("/api/availability", limiter.limit(s.handleAvailability))
	s.router.GET("/api/bookings/:id/qr", limiter.limit(s.handlePaymentQR))
	s.router.POST("/api/payments/callback", s.handlePaymentCallback)

	// operator
	s.router.GET("/api/admin/bookings", authenticate(secret, s.handleListBookings))
	s.router.PATCH("/api/admin/bookings/:id/status", authenticate(secret, s.handleSetStatus))
	s.router.GET("/api/admin/bookings/export", authenticate(secret, s.handleExportCSV))
	s.router.GET("/api/admin/analytics/summary", authenticate(secret, s.handleSummary))
	s.router.GET("/api/admin/analytics/monthly", authenticate(secret, s.handleMonthly))
	s.router.GET("/api/admin/analytics/categories", authenticate(secret, s.handleByCategory))
	s.router.GET("/api/admin/analytics/statuses", authenticate(secret, s.handleByStatus))
	s.router.GET("/api/admin/blocked-dates", authenticate(secret, s.handleListBlocked))
	s.router.POST("/api/admin/blocked-dates", authenticate(secret, s.handleBlock))
	s.router.DELETE("/api/admin/blocked-dates/:id", authenticate(secret, s.handleUnblock))
	s.router.GET("/api/admin/events", authenticate(secret, s.handleEvents))
}

// Handler wraps the router with CORS and request logging.
func (s *Server) Handler() http.Handler {
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Callback-Secret"},
		AllowCredentials: true,
	}).Handler(s.router)

	return s.logging(corsHandler)
}

func (s *Server) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
