// Package api provides the HTTP API server and handlers for the GiftWell application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/giftwell/giftwell-server/internal/config"
	"github.com/giftwell/giftwell-server/internal/ratelimit"
	"github.com/giftwell/giftwell-server/internal/realtime"
	"github.com/giftwell/giftwell-server/internal/validation"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	services        *Services
	router          *chi.Mux
	api             huma.API
	logger          *slog.Logger
	validator       *validation.Validator
	wsHandler       *realtime.Handler
	authRateLimiter *ratelimit.KeyedRateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(cfg *config.Config, services *Services, wsHandler *realtime.Handler, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	humaConfig := huma.DefaultConfig("GiftWell API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}

	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		services:  services,
		router:    router,
		api:       api,
		logger:    logger,
		validator: validation.New(),
		wsHandler: wsHandler,
		// Credential endpoints get a tighter budget than the rest of
		// the API to slow down stuffing attempts.
		authRateLimiter: ratelimit.New(1, 10),
	}

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerWishlistRoutes()
	s.registerGiftRoutes()

	// Subscriber sockets bypass huma: the connection upgrades out of
	// the normal request/response cycle.
	if wsHandler != nil {
		router.Get("/ws/wishlists/{publicId}", wsHandler.ServeHTTP)
	}

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
