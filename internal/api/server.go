package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dgallion1/docentia/internal/config"
	"github.com/dgallion1/docentia/internal/llm"
	"github.com/dgallion1/docentia/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Dispatcher is the llm.Dispatcher surface the API reports on.
type Dispatcher interface {
	Generate(ctx context.Context, req llm.Request) (llm.Result, error)
	Active() llm.Provider
	Model() string
	Status() map[string]llm.ProviderStatus
	Stats() map[string]llm.StatsSnapshot
}

// Server is the HTTP API server for DocentIA.
type Server struct {
	router       chi.Router
	llm          Dispatcher
	generator    *pipeline.Generator
	orchestrator *pipeline.Orchestrator
	log          *slog.Logger
	cfg          config.Config
	now          func() time.Time
}

// NewServer creates and configures the HTTP server.
func NewServer(cfg config.Config, d Dispatcher, gen *pipeline.Generator, orch *pipeline.Orchestrator, log *slog.Logger) *Server {
	s := &Server{
		llm:          d,
		generator:    gen,
		orchestrator: orch,
		log:          log,
		cfg:          cfg,
		now:          time.Now,
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
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.cfg.DocentiaAPIKey != "" {
			r.Use(AuthMiddleware(s.cfg.DocentiaAPIKey, s.log))
		}

		r.Get("/api/test", s.handleTest)

		r.Post("/api/generar/lote", s.handleGenerateBatch)
		r.Post("/api/generar/{kind}", s.handleGenerate)
		r.Post("/api/emergencia", s.handleEmergency)

		// One segment: a kind when submitting, a job ID when polling.
		r.Post("/api/trabajos/{id}", s.handleSubmitJob)
		r.Get("/api/trabajos/{id}", s.handleJobStatus)

		r.Post("/api/exportar/word", s.handleExportWord)
		r.Post("/api/exportar/html", s.handleExportHTML)

		r.Post("/api/material", s.handleMaterial)

		r.Get("/api/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"app":      s.cfg.AppName,
		"version":  s.cfg.AppVersion,
		"status":   "online",
		"provider": s.llm.Active().String(),
		"docs":     "/docs",
		"message":  "DocentIA API funcionando correctamente",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	providers := map[string]any{"provider_actual": s.llm.Active().String()}
	for name, st := range s.llm.Status() {
		providers[name] = st
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "healthy",
		"timestamp":    s.now().Format(time.RFC3339),
		"ia_providers": providers,
	})
}
