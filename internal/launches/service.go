// Package launches implements launch import, scheduling, querying and
// aborting on top of a launch store and a planet catalog.
package launches

import (
	"errors"
	"io"
	"log/slog"

	"launchplane/internal/events"
	"launchplane/internal/sequence"
	"launchplane/internal/store"
)

// Deps are the collaborators of the launch service.
type Deps struct {
	Launches  store.LaunchStore   // Required
	Planets   store.PlanetCatalog // Required
	Allocator sequence.Allocator  // Required
	Provider  Provider            // Required for importing
	Events    events.Publisher    // Defaults to events.Noop
	Logger    *slog.Logger        // Defaults to a discarding logger
}

// Service groups the importer, scheduler, query and abort components that
// share one launch store.
type Service struct {
	*Importer
	*Scheduler
	*Query
	*Aborter
}

// New wires the components from deps.
func New(deps Deps) (*Service, error) {
	if deps.Launches == nil || deps.Planets == nil || deps.Allocator == nil {
		return nil, errors.New("launches: store, planet catalog and allocator are required")
	}
	if deps.Events == nil {
		deps.Events = events.Noop{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	c, err := newCounters()
	if err != nil {
		return nil, err
	}

	return &Service{
		Importer: &Importer{
			launches: deps.Launches,
			provider: deps.Provider,
			events:   deps.Events,
			logger:   deps.Logger.With("component", "importer"),
			counters: c,
		},
		Scheduler: &Scheduler{
			launches:  deps.Launches,
			planets:   deps.Planets,
			allocator: deps.Allocator,
			events:    deps.Events,
			logger:    deps.Logger.With("component", "scheduler"),
			counters:  c,
		},
		Query: &Query{
			launches: deps.Launches,
			planets:  deps.Planets,
		},
		Aborter: &Aborter{
			launches: deps.Launches,
			events:   deps.Events,
			logger:   deps.Logger.With("component", "aborter"),
			counters: c,
		},
	}, nil
}
