// Package http serves the prediction form and the JSON prediction endpoint.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	maxRequestBytes = 1 << 20
	shutdownTimeout = 5 * time.Second
)

type Server struct {
	server *http.Server
	config ServerConfig
	logger *zap.Logger
}

type ServerConfig struct {
	Addr    string
	Timeout time.Duration
}

func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:    "0.0.0.0:8501",
		Timeout: 30 * time.Second,
	}
}

// NewServer wraps handler with the standard middleware chain.
func NewServer(config ServerConfig, handler http.Handler, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	chain := Chain(
		RecoveryMiddleware(logger),
		LoggerMiddleware(logger),
		SecurityHeadersMiddleware,
		RequestSizeMiddleware(maxRequestBytes),
	)

	return &Server{
		server: &http.Server{
			Addr:         config.Addr,
			Handler:      chain(handler),
			ReadTimeout:  config.Timeout,
			WriteTimeout: config.Timeout,
			IdleTimeout:  120 * time.Second,
		},
		config: config,
		logger: logger,
	}
}

// Start blocks until the server stops. A clean shutdown returns nil.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

func (s *Server) Addr() string {
	return s.server.Addr
}

// Handler exposes the wrapped handler for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}
