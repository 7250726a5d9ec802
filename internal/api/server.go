// Package api provides the HTTP API server and handlers for PromptDeck.
package api

import (
	"github.com/go-json-experiment/json"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/promptdeckapp/promptdeck/internal/ratelimit"
	"github.com/promptdeckapp/promptdeck/internal/service"
	"github.com/promptdeckapp/promptdeck/internal/store"
	"github.com/promptdeckapp/promptdeck/internal/validation"
)

// Version is reported in the OpenAPI metadata and the mDNS advertisement.
const Version = "1.0.0"

// Per-IP token bucket for mutating prompt routes.
const (
	writeRateRPS   = 5
	writeRateBurst = 10
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store         *store.Store
	searchService *service.SearchService
	router        *chi.Mux
	api           huma.API
	validator     *validation.Validator
	writeLimiter  *ratelimit.KeyedRateLimiter
	logger        *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st *store.Store, searchService *service.SearchService, logger *slog.Logger) *Server {
	s := &Server{
		store:         st,
		searchService: searchService,
		router:        chi.NewRouter(),
		validator:     validation.New(),
		writeLimiter:  ratelimit.New(writeRateRPS, writeRateBurst),
		logger:        logger,
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("PromptDeck API", Version)
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	// Health check stays a plain chi handler.
	s.router.Get("/health", s.handleHealth)

	s.registerPromptRoutes()
	s.registerCollectionRoutes()
	s.registerFavoriteRoutes()
	s.registerSearchRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases server resources. In-flight requests are not interrupted.
func (s *Server) Close() {
	s.writeLimiter.Stop()
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	s.router.Use(s.writeRateLimit)
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.MarshalWrite(w, map[string]string{"status": "healthy"})
}
