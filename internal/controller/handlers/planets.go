package handlers

import (
	"net/http"

	"launchplane/pkg/api"
)

// ListPlanets handles GET /v1/planets.
func (h *Handlers) ListPlanets(w http.ResponseWriter, r *http.Request) {
	planets, err := h.service.Planets(r.Context())
	if err != nil {
		h.internalError(w, r, "Failed to list planets", err)
		return
	}

	resp := make([]api.Planet, 0, len(planets))
	for _, p := range planets {
		resp = append(resp, api.Planet{KeplerName: p.KeplerName})
	}
	h.respondJson(w, http.StatusOK, resp)
}
