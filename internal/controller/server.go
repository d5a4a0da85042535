// Package controller contains the controller-specific logic for the HTTP API.
package controller

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"launchplane/internal/controller/handlers"
	"launchplane/internal/controller/middleware"
)

// Options configure the controller server.
type Options struct {
	Addr             string
	Service          handlers.LaunchService
	DB               handlers.Pinger
	Logger           *slog.Logger
	Metrics          http.Handler // Served on /metrics when set
	DefaultPageLimit int
}

// Server is the HTTP server for the controller API.
type Server struct {
	httpServer *http.Server
}

// New creates a new controller server.
func New(opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	h := handlers.New(opts.Service, opts.DB, opts.Logger, opts.DefaultPageLimit)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/planets", h.ListPlanets)
	mux.HandleFunc("GET /v1/launches", h.ListLaunches)
	mux.HandleFunc("POST /v1/launches", h.ScheduleLaunch)
	mux.HandleFunc("DELETE /v1/launches/{id}", h.AbortLaunch)

	// Operator endpoints
	mux.HandleFunc("POST /v1/admin/import", h.ImportLaunches)

	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.HandleFunc("GET /readyz", h.Readyz)
	if opts.Metrics != nil {
		mux.Handle("GET /metrics", opts.Metrics)
	}

	telemetry, err := middleware.Telemetry()
	if err != nil {
		return nil, err
	}
	handler := middleware.RequestID(middleware.Logging(opts.Logger)(telemetry(mux)))

	return &Server{
		httpServer: &http.Server{
			Addr:    opts.Addr,
			Handler: handler,
			// Import can take up to the provider timeout.
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 90 * time.Second,
		},
	}, nil
}

// Handler returns the routed, instrumented handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run starts the HTTP server. It blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		shutDownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return s.Shutdown(shutDownCtx)
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
