// Package handlers contains HTTP handlers for the controller API.
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"launchplane/internal/launches"
	"launchplane/internal/logger"
	"launchplane/internal/store"
	"launchplane/pkg/api"
)

// LaunchService is the launch behaviour the API exposes.
// *launches.Service satisfies it.
type LaunchService interface {
	List(ctx context.Context, page launches.Page) ([]store.Launch, error)
	Exists(ctx context.Context, flightNumber int) (bool, error)
	Planets(ctx context.Context) ([]store.Planet, error)
	Schedule(ctx context.Context, in launches.ScheduleInput) (*store.Launch, error)
	Abort(ctx context.Context, flightNumber int) (bool, error)
	Import(ctx context.Context) (int, error)
}

// Pinger checks that the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers holds all HTTP handlers and their dependencies.
type Handlers struct {
	service          LaunchService
	db               Pinger
	logger           *slog.Logger
	defaultPageLimit int
}

// New creates a new Handlers instance. defaultPageLimit applies to launch
// listings without a limit parameter; 0 lists everything.
func New(service LaunchService, db Pinger, log *slog.Logger, defaultPageLimit int) *Handlers {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Handlers{
		service:          service,
		db:               db,
		logger:           log,
		defaultPageLimit: defaultPageLimit,
	}
}

// A helper function to write standard JSON responses.
func (h *Handlers) respondJson(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// A helper function to return consistent error messages.
func (h *Handlers) httpError(w http.ResponseWriter, message string, code int) {
	h.respondJson(w, code, api.ErrorResponse{
		Error: message,
		Code:  strconv.Itoa(code),
	})
}

// internalError logs err with the request ID and answers 500 with message.
func (h *Handlers) internalError(w http.ResponseWriter, r *http.Request, message string, err error) {
	logger.FromContext(r.Context(), h.logger).Error(message, "error", err)
	h.httpError(w, message, http.StatusInternalServerError)
}
