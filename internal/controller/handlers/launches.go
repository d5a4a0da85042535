package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"launchplane/internal/launches"
	"launchplane/internal/store"
	"launchplane/pkg/api"
)

var launchDateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"January 2, 2006",
}

// parseLaunchDate accepts the layouts the web client and CLI send.
func parseLaunchDate(s string) (time.Time, bool) {
	for _, layout := range launchDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func toAPILaunch(l store.Launch) api.Launch {
	customers := l.Customers
	if customers == nil {
		customers = []string{}
	}
	return api.Launch{
		FlightNumber: l.FlightNumber,
		Mission:      l.Mission,
		Rocket:       l.Rocket,
		LaunchDate:   l.LaunchDate,
		Target:       l.Target,
		Upcoming:     l.Upcoming,
		Success:      l.Success,
		Customers:    customers,
	}
}

// queryInt reads a non-negative integer query parameter. Missing values are 0.
func queryInt(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, errors.New("invalid " + name)
	}
	return n, nil
}

// ListLaunches handles GET /v1/launches?page=&limit=.
// Launches are ordered by ascending flight number.
func (h *Handlers) ListLaunches(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page")
	if err != nil {
		h.httpError(w, "Invalid page", http.StatusBadRequest)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		h.httpError(w, "Invalid limit", http.StatusBadRequest)
		return
	}

	list, err := h.service.List(r.Context(), launches.Paginate(page, limit, h.defaultPageLimit))
	if err != nil {
		h.internalError(w, r, "Failed to list launches", err)
		return
	}

	resp := make([]api.Launch, 0, len(list))
	for _, l := range list {
		resp = append(resp, toAPILaunch(l))
	}
	h.respondJson(w, http.StatusOK, resp)
}

// ScheduleLaunch handles POST /v1/launches.
func (h *Handlers) ScheduleLaunch(w http.ResponseWriter, r *http.Request) {
	var req api.ScheduleLaunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Mission == "" || req.Rocket == "" || req.Target == "" || req.LaunchDate == "" {
		h.httpError(w, "Missing required launch property", http.StatusBadRequest)
		return
	}

	launchDate, ok := parseLaunchDate(req.LaunchDate)
	if !ok {
		h.httpError(w, "Invalid launch date", http.StatusBadRequest)
		return
	}

	launch, err := h.service.Schedule(r.Context(), launches.ScheduleInput{
		Mission:    req.Mission,
		Rocket:     req.Rocket,
		Target:     req.Target,
		LaunchDate: launchDate,
	})
	switch {
	case errors.Is(err, launches.ErrUnknownTarget):
		h.httpError(w, "No matching planet was found", http.StatusBadRequest)
		return
	case errors.Is(err, launches.ErrMissingField):
		h.httpError(w, "Missing required launch property", http.StatusBadRequest)
		return
	case err != nil:
		h.internalError(w, r, "Failed to schedule launch", err)
		return
	}

	h.respondJson(w, http.StatusCreated, toAPILaunch(*launch))
}

// AbortLaunch handles DELETE /v1/launches/{id}.
// Unknown flight numbers are 404; a launch that was already aborted
// answers {"ok": false}.
func (h *Handlers) AbortLaunch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	flightNumber, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		h.httpError(w, "Invalid flight number", http.StatusBadRequest)
		return
	}

	exists, err := h.service.Exists(ctx, flightNumber)
	if err != nil {
		h.internalError(w, r, "Failed to look up launch", err)
		return
	}
	if !exists {
		h.httpError(w, "Launch not found", http.StatusNotFound)
		return
	}

	aborted, err := h.service.Abort(ctx, flightNumber)
	if err != nil {
		h.internalError(w, r, "Failed to abort launch", err)
		return
	}
	h.respondJson(w, http.StatusOK, api.AbortResponse{OK: aborted})
}

// ImportLaunches handles POST /v1/admin/import. It re-downloads the
// provider's launch history and upserts it.
func (h *Handlers) ImportLaunches(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.Import(r.Context())
	if errors.Is(err, launches.ErrImportTransport) {
		h.httpError(w, "Launch data download failed", http.StatusBadGateway)
		return
	}
	if err != nil {
		h.internalError(w, r, "Failed to import launches", err)
		return
	}
	h.respondJson(w, http.StatusOK, api.ImportResponse{Imported: n})
}
