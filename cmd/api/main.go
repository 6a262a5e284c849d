// Package main is the entry point for the yrweather API server.
//
// It loads the configuration, builds the api.met.no client registry (with the
// optional on-disk response cache), mounts the /v1 weather handlers on the
// core chassis and serves HTTP until SIGINT or SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"yrweather/internal/api/handlers"
	"yrweather/internal/config"
	"yrweather/internal/core"
	"yrweather/internal/external"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// run encapsulates the startup lifecycle so that main() can cleanly exit on error.
func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := newLogger(cfg.LogLevel)
	logger.Info("yrweather API starting",
		"environment", cfg.Environment,
		"version", cfg.Build.Version,
		"commit", cfg.Build.Commit,
		"port", cfg.Server.Port,
	)

	srv, err := buildServer(cfg, logger)
	if err != nil {
		return err
	}
	return runHTTPServer(srv, cfg, logger)
}

// buildServer wires the client registry into the handlers and mounts every
// route. The registry is released by srv.Shutdown.
func buildServer(cfg *config.Config, logger *slog.Logger, opts ...external.RegistryOption) (*core.Server, error) {
	reg, err := external.NewClientRegistry(cfg, logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating met api clients: %w", err)
	}

	srv, err := core.NewServer(cfg, logger)
	if err != nil {
		reg.Close()
		return nil, fmt.Errorf("creating server: %w", err)
	}
	srv.RequestTimeout = cfg.Server.RequestTimeout
	srv.Closers = append(srv.Closers, reg)

	if reg.CacheEnabled() {
		srv.HealthProbes = append(srv.HealthProbes, core.ProbeFunc{ProbeName: "cache", Fn: reg.PingCache})
	}

	srv.V1 = append(srv.V1,
		handlers.NewForecastHandler(reg.Locationforecast, logger.With("handler", "forecast")),
		handlers.NewTextForecastHandler(reg.Textforecast, logger.With("handler", "textforecast")),
		handlers.NewSunriseHandler(reg.Sunrise, logger.With("handler", "sunrise"), nil),
	)

	srv.MountRoutes()
	return srv, nil
}

// runHTTPServer starts the server in standard HTTP mode with graceful shutdown.
func runHTTPServer(srv *core.Server, cfg *config.Config, logger *slog.Logger) error {
	addr := ":" + cfg.Server.Port

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.Server.RequestTimeout + 5*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)

	go func() {
		logger.Info("HTTP server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-shutdown:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	logger.Info("initiating graceful shutdown")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	// Closes the response cache.
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server resource shutdown error", "error", err)
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server stopped cleanly")
	return nil
}

// newLogger creates a structured slog.Logger configured for the given log level.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler)
}
