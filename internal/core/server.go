// Package core provides the HTTP chassis for the yrweather API. It creates a
// chi router and enforces cross-cutting concerns (panic recovery, request IDs,
// logging, timeouts) before requests reach the weather handlers.
package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"yrweather/internal/config"
)

// RouteRegistrar mounts a group of handlers under /v1.
type RouteRegistrar interface {
	RegisterRoutes(r chi.Router)
}

// Server encapsulates the dependencies of the HTTP API so they can be
// injected during testing.
type Server struct {
	Config       *config.Config
	Logger       *slog.Logger
	HealthProbes []HealthProbe

	// V1 handlers, mounted by MountRoutes.
	V1 []RouteRegistrar

	// Closers are released on Shutdown in order (e.g. the client registry).
	Closers []io.Closer

	// RequestTimeout bounds each request context. Zero selects the default.
	RequestTimeout time.Duration

	router *chi.Mux
}

// NewServer initializes dependencies and prepares the router. It performs a
// fail-fast check on required arguments.
//
// The caller is responsible for calling MountRoutes after populating V1 and
// HealthProbes.
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}

	return &Server{
		Config: cfg,
		Logger: logger,
		router: chi.NewRouter(),
	}, nil
}

// Handler returns the http.Handler for the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Router returns the underlying chi.Mux for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Shutdown releases server resources. It returns the first close error but
// attempts every closer.
func (s *Server) Shutdown(ctx context.Context) error {
	s.Logger.InfoContext(ctx, "server shutdown initiated")

	var first error
	for _, c := range s.Closers {
		if err := c.Close(); err != nil {
			s.Logger.ErrorContext(ctx, "error releasing resource", "error", err)
			if first == nil {
				first = fmt.Errorf("releasing resource: %w", err)
			}
		}
	}

	s.Logger.InfoContext(ctx, "server shutdown complete")
	return first
}
