// Package server provides the optional ops HTTP server: liveness and
// readiness probes plus a version endpoint. It carries no user-facing
// functionality; the bot's only user surface is the chat transport.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/MKhiriev/go-captcha-gate/internal/config"
	"github.com/MKhiriev/go-captcha-gate/internal/logger"
)

// Pinger reports liveness of a critical dependency; satisfied by the
// storage layer.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server is the ops HTTP server.
type Server struct {
	server *http.Server
	logger *logger.Logger
}

// NewServer constructs the ops server, or returns nil when no address is
// configured; the server is an opt-in surface.
func NewServer(cfg config.Server, appCfg config.App, pinger Pinger, log *logger.Logger) *Server {
	if cfg.HTTPAddress == "" {
		return nil
	}

	handler := newRouter(appCfg.Version, time.Now(), pinger)

	return &Server{
		server: &http.Server{
			Addr:    cfg.HTTPAddress,
			Handler: handler,
		},
		logger: log,
	}
}

// Run starts serving and blocks until the server is shut down.
func (s *Server) Run() {
	s.logger.Info().Str("address", s.server.Addr).Msg("ops server listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error().Err(err).Msg("ops server stopped unexpectedly")
	}
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) {
	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.Error().Err(err).Msg("ops server shutdown error")
	}
}
