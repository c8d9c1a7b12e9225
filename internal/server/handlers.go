package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/beaubranton4/d1-picks/internal/hub"
	"github.com/beaubranton4/d1-picks/internal/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Origins are enforced by the CORS layer for REST; WS connections from
	// the site go through the same host allowlist upstream.
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "picks-api",
		"clients":   s.hub.ClientCount(),
	})
}

func (s *Server) handleLatestPicks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	sheet, err := s.sheets.ReadLatest(ctx)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			respondError(w, http.StatusNotFound, "no pick sheet available", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to read latest sheet", err)
		return
	}

	respondJSON(w, http.StatusOK, sheet)
}

func (s *Server) handlePicksByDate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	date := chi.URLParam(r, "date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD", nil)
		return
	}

	sheet, err := s.sheets.ReadSheet(ctx, date)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			respondError(w, http.StatusNotFound, "no pick sheet for date", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to read sheet", err)
		return
	}

	respondJSON(w, http.StatusOK, sheet)
}

func (s *Server) handleRunByDate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if s.runs == nil {
		respondError(w, http.StatusNotFound, "run persistence disabled", nil)
		return
	}

	date := chi.URLParam(r, "date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD", nil)
		return
	}

	run, err := s.runs.LatestRun(ctx, date)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to query run", err)
		return
	}
	if run == nil {
		respondError(w, http.StatusNotFound, "no run for date", nil)
		return
	}

	respondJSON(w, http.StatusOK, run)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed: %v", err)
		return
	}

	client := hub.NewClient(uuid.New().String(), conn, s.hub)
	s.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("encoding response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		logger.Error("%s: %v", message, err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		logger.Error("encoding error response: %v", err)
	}
}
