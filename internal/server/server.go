package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/me/schedsim/internal/config"
	"github.com/me/schedsim/internal/scheduler"
)

// Server is the schedsim REST API server. Every request runs its own
// simulation, so handlers share nothing but configuration.
type Server struct {
	router    chi.Router
	logger    *slog.Logger
	config    config.ServerConfig
	startTime time.Time
	sim       *scheduler.Simulator
}

// New creates a new Server with all routes registered.
func New(cfg config.ServerConfig, logger *slog.Logger) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		logger:    logger.With("component", "server"),
		config:    cfg,
		startTime: time.Now(),
		sim:       scheduler.New(logger),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(s.logger))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/", s.handleDiscovery)
		r.Get("/health", s.handleHealth)

		r.Route("/policies", func(r chi.Router) {
			r.Get("/", s.handleListPolicies)
			r.Get("/{name}", s.handleGetPolicy)
		})

		r.Group(func(r chi.Router) {
			r.Use(bodyLimitMiddleware(s.maxBodyBytes()))
			r.Post("/simulations", s.handleCreateSimulation)
			r.Post("/simulations/stream", s.handleStreamSimulation)
			r.Post("/comparisons", s.handleCreateComparison)
		})
	})
}

// maxBodyBytes allows a generous 256 bytes per process on top of the policy fields.
func (s *Server) maxBodyBytes() int64 {
	return 4096 + int64(s.config.MaxProcesses)*256
}
