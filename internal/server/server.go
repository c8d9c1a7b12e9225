// Package server exposes the picks REST and WebSocket API over chi.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/beaubranton4/d1-picks/internal/cache"
	"github.com/beaubranton4/d1-picks/internal/hub"
	"github.com/beaubranton4/d1-picks/internal/store"
)

// Server wires the router to its backing services. The store may be nil
// when Postgres is disabled; run endpoints then answer 404.
type Server struct {
	sheets *cache.SheetCache
	runs   *store.Store
	hub    *hub.Hub
	router chi.Router
}

// New builds the router
func New(sheets *cache.SheetCache, runs *store.Store, h *hub.Hub, corsOrigins []string, timeout time.Duration) *Server {
	s := &Server{
		sheets: sheets,
		runs:   runs,
		hub:    h,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/picks/latest", s.handleLatestPicks)
		r.Get("/picks/{date}", s.handlePicksByDate)
		r.Get("/runs/{date}", s.handleRunByDate)
	})

	r.Get("/ws/picks", s.handleWebSocket)

	s.router = r
	return s
}

// Handler returns the root http.Handler
func (s *Server) Handler() http.Handler {
	return s.router
}
