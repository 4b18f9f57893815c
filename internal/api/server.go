package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/docslot/internal/classify"
	"github.com/dgallion1/docslot/internal/config"
	"github.com/dgallion1/docslot/internal/generate"
	"github.com/dgallion1/docslot/internal/qbank"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Services are the components the handlers call into. Index may be nil
// when no question bank has been built.
type Services struct {
	Rules    *classify.Rules
	Registry *generate.Registry
	Stats    *generate.LLMStats
	Index    *qbank.Index
}

// Server is the HTTP API server for docslot.
type Server struct {
	router chi.Router
	svc    Services
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(svc Services, log *slog.Logger, cfg config.Config) *Server {
	if svc.Rules == nil {
		svc.Rules = classify.DefaultRules()
	}
	if svc.Registry == nil {
		svc.Registry = generate.NewRegistry()
		_ = svc.Registry.Register(generate.RulesProvider{})
	}
	s := &Server{
		svc: svc,
		log: log,
		cfg: cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/extract", s.handleExtract)
		r.Post("/api/fill", s.handleFill)
		r.Post("/api/clean", s.handleClean)
		r.Post("/api/inspect", s.handleInspect)
		r.Post("/api/generate", s.handleGenerate)
		r.Get("/api/search", s.handleSearch)
		r.Get("/api/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
