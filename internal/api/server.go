// Package api provides the HTTP API server and handlers for the Foldnote
// notes service.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/foldnote/foldnote-server/internal/http/response"
	"github.com/foldnote/foldnote-server/internal/metrics"
	"github.com/foldnote/foldnote-server/internal/ratelimit"
	"github.com/foldnote/foldnote-server/internal/store"
)

// APIVersion is reported in the OpenAPI document.
const APIVersion = "1.0.0"

// Options configures the HTTP surface.
type Options struct {
	// CORSAllowedOrigins defaults to "*".
	CORSAllowedOrigins []string
	// RateLimiter limits /api requests per client. Nil disables limiting.
	RateLimiter *ratelimit.KeyedRateLimiter
	// Metrics records request metrics and serves /metrics. Nil disables both.
	Metrics *metrics.Metrics
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    store.Store
	services *Services
	router   *chi.Mux
	api      huma.API
	opts     Options
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(store store.Store, services *Services, opts Options, logger *slog.Logger) *Server {
	if len(opts.CORSAllowedOrigins) == 0 {
		opts.CORSAllowedOrigins = []string{"*"}
	}

	s := &Server{
		store:    store,
		services: services,
		router:   chi.NewRouter(),
		opts:     opts,
		logger:   logger,
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("Foldnote API", APIVersion)
	humaConfig.Info.Description = "Personal notes organized in folders and tags."
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API exposes the huma API, for OpenAPI export and tests.
func (s *Server) API() huma.API {
	return s.api
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	if s.opts.Metrics != nil {
		s.router.Use(metricsMiddleware(s.opts.Metrics))
	}
	s.router.Use(s.recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader, "Retry-After"},
		MaxAge:         300,
	}))
	if s.opts.RateLimiter != nil {
		s.router.Use(RateLimitMiddleware(s.opts.RateLimiter, s.opts.Metrics, s.logger))
	}

	s.router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "route not found", s.logger)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.MethodNotAllowed(w, s.logger)
	})
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.registerHealthRoutes()
	if s.opts.Metrics != nil {
		s.router.Handle("/metrics", s.opts.Metrics.Handler())
	}

	s.registerUserRoutes()
	s.registerFolderRoutes()
	s.registerNoteRoutes()
	s.registerTagRoutes()
	s.registerAttachmentRoutes()
}
