package handlers

import (
	"context"
	"net/http"
	"time"

	"launchplane/internal/logger"
)

// readyTimeout bounds each readiness check.
const readyTimeout = 2 * time.Second

// Healthz reports that the process is serving.
func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	h.respondJson(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz reports whether launches can be scheduled: the store answers a ping
// and the planet catalog has at least one target.
func (h *Handlers) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()
	log := logger.FromContext(r.Context(), h.logger)

	if err := h.db.Ping(ctx); err != nil {
		log.Warn("readiness check failed", "check", "store", "error", err)
		h.httpError(w, "Database unavailable", http.StatusServiceUnavailable)
		return
	}

	planets, err := h.service.Planets(ctx)
	if err != nil {
		log.Warn("readiness check failed", "check", "planets", "error", err)
		h.httpError(w, "Planet catalog unavailable", http.StatusServiceUnavailable)
		return
	}
	if len(planets) == 0 {
		h.httpError(w, "Planet catalog is empty", http.StatusServiceUnavailable)
		return
	}

	h.respondJson(w, http.StatusOK, map[string]any{"status": "ready", "planets": len(planets)})
}
