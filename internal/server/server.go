// Package server provides the HTTP API for passage search and guided reflection.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"gitamind/config"
	"gitamind/internal/domain"
	"gitamind/internal/port"
)

// Guide produces a reflection for a user message.
type Guide interface {
	Guide(ctx context.Context, message string) (*domain.Reflection, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer      *http.Server
	retriever       port.PassageRetriever
	guide           Guide
	limiter         *clientLimiter
	allowedOrigin   string
	topK            int
	guideTimeout    time.Duration
	shutdownTimeout time.Duration
	logger          *slog.Logger
}

// New creates a new server instance
func New(cfg config.ServerConfig, retriever port.PassageRetriever, guide Guide, topK int) *Server {
	s := &Server{
		retriever:       retriever,
		guide:           guide,
		allowedOrigin:   cfg.AllowedOrigin,
		topK:            topK,
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          slog.Default().With("component", "server"),
	}
	if cfg.RateLimit > 0 {
		s.limiter = newClientLimiter(cfg.RateLimit, cfg.RateBurst)
	}
	if s.shutdownTimeout <= 0 {
		s.shutdownTimeout = 10 * time.Second
	}

	writeTimeout := cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 120 * time.Second
	}
	s.guideTimeout = guideBudget(writeTimeout)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// guideBudget leaves room before the write deadline to send the reply, so a
// slow provider chain ends in an error response instead of a cut connection.
func guideBudget(writeTimeout time.Duration) time.Duration {
	const margin = 5 * time.Second
	if writeTimeout > 2*margin {
		return writeTimeout - margin
	}
	return writeTimeout / 2
}

// Handler returns the routed handler wrapped in middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/gita-search", s.handleSearch)
	mux.HandleFunc("POST /api/guide-llm", s.handleGuide)
	mux.HandleFunc("GET /health", s.handleHealth)

	return s.withLogging(s.withCORS(s.withRateLimit(mux)))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("server listening", "addr", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding JSON response", "err", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, code, message string) {
	body := map[string]string{"error": code}
	if message != "" {
		body["message"] = message
	}
	s.jsonResponse(w, status, body)
}
