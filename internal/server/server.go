package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/trknhr/cardlog/internal/journal"
)

// Server is the cardlog HTTP API server.
type Server struct {
	journal *journal.Service
	router  chi.Router
	version string
	started time.Time
}

func New(svc *journal.Service, version string) *Server {
	s := &Server{
		journal: svc,
		version: version,
		started: time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/suggestions", s.handleSuggestions)
		r.Get("/entries", s.handleListEntries)
		r.Post("/entries", s.handleCreateEntry)

		r.Route("/engine", func(r chi.Router) {
			r.Get("/", s.handleEngine)
			r.Post("/bootstrap", s.handleBootstrap)
			r.Post("/reset", s.handleReset)
		})
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Seconds(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
