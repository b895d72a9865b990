package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gostorefront/cart-backend/internal/adapters/catalog"
	"github.com/gostorefront/cart-backend/internal/api/handlers"
	"github.com/gostorefront/cart-backend/internal/api/middleware"
	"github.com/gostorefront/cart-backend/internal/application/service"
	"github.com/gostorefront/cart-backend/internal/application/views"
	"github.com/gostorefront/cart-backend/internal/infrastructure/pubsub"
)

// Config holds API server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults for the API server.
func DefaultConfig() Config {
	return Config{
		Port:           8080,
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
	}
}

// Server is the HTTP API server.
type Server struct {
	config     Config
	router     chi.Router
	httpServer *http.Server
	logger     *slog.Logger
	cartSvc    *service.CartService
	catalog    *catalog.Catalog
	bus        *pubsub.Bus
	badge      *views.BadgeView
}

// NewServer creates a new API server.
// If badge is nil, the badge read-model endpoint is not available.
func NewServer(cfg Config, cartSvc *service.CartService, cat *catalog.Catalog, bus *pubsub.Bus, badge *views.BadgeView, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config:  cfg,
		router:  chi.NewRouter(),
		logger:  logger,
		cartSvc: cartSvc,
		catalog: cat,
		bus:     bus,
		badge:   badge,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	corsConfig := middleware.CORSConfig{
		AllowedOrigins: s.config.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}
	s.router.Use(middleware.CORS(corsConfig))
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logging(s.logger))
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check (no /api prefix - for load balancers)
	healthHandler := handlers.NewHealthHandler()
	s.router.Get("/health", healthHandler.ServeHTTP)

	// API routes
	s.router.Route("/api", func(r chi.Router) {
		// Cart
		cartHandler := handlers.NewCartHandler(s.cartSvc)
		r.Get("/cart", cartHandler.Get)
		r.Delete("/cart", cartHandler.Clear)
		r.Post("/cart/items", cartHandler.AddItem)
		r.Put("/cart/items", cartHandler.UpdateQuantity)
		r.Delete("/cart/items", cartHandler.RemoveItem)
		r.Get("/cart/checkout-url", cartHandler.CheckoutURL)

		// Badge read model (header badge / floating button)
		if s.badge != nil {
			badgeHandler := handlers.NewBadgeHandler(s.badge)
			r.Get("/cart/badge", badgeHandler.Get)
		}

		// Change notifications (SSE)
		eventsHandler := handlers.NewEventsHandler(s.bus)
		r.Get("/cart/events", eventsHandler.Stream)

		// Catalog browsing
		catalogHandler := handlers.NewCatalogHandler(s.catalog)
		r.Get("/catalog/products", catalogHandler.ListProducts)
		r.Get("/catalog/products/{id}", catalogHandler.GetProduct)
		r.Get("/catalog/categories", catalogHandler.ListCategories)
	})
}

// Router exposes the router for tests.
func (s *Server) Router() chi.Router {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	s.httpServer = &http.Server{
		Addr:        addr,
		Handler:     s.router,
		ReadTimeout: 15 * time.Second,
		// No WriteTimeout: the SSE event stream holds its response open
		// indefinitely.
		IdleTimeout: 60 * time.Second,
	}

	s.logger.Info("starting API server", "addr", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	s.logger.Info("shutting down API server")
	return s.httpServer.Shutdown(ctx)
}
