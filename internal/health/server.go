// Package health exposes the bot's liveness over HTTP for the hosting
// platform.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server answers GET /health with the bot's readiness; any other path is
// a 404.
type Server struct {
	httpServer *http.Server
	ready      func() bool
	startedAt  time.Time
}

// NewServer creates a health server. ready reports whether the Discord
// gateway connection is live.
func NewServer(port int, ready func() bool) *Server {
	s := &Server{
		ready:     ready,
		startedAt: time.Now(),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}

	return s
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins serving in the background.
func (s *Server) Start() {
	go func() {
		slog.Info("Health server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Health server error", "error", err)
		}
	}()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ready := s.ready()

	status := http.StatusOK
	text := "ok"
	if !ready {
		status = http.StatusServiceUnavailable
		text = "not_ready"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":    text,
		"uptime":    time.Since(s.startedAt).Seconds(),
		"bot_ready": ready,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
