package store

import (
	"context"
	"errors"
)

// ErrDuplicateFlightNumber is returned by InsertLaunch when a launch with the
// same flight number already exists.
var ErrDuplicateFlightNumber = errors.New("store: duplicate flight number")

// ErrScheduledLaunch is returned by SaveLaunch when the flight number belongs
// to a launch scheduled by a user. The stored launch is left unchanged.
var ErrScheduledLaunch = errors.New("store: flight number held by a scheduled launch")

// LaunchStore handles the persistence of launch records.
// Absent records are reported as a nil result with a nil error.
type LaunchStore interface {
	// FindLaunch returns the first launch matching every field of the filter.
	FindLaunch(ctx context.Context, filter LaunchFilter) (*Launch, error)

	// LatestFlightNumber returns the highest stored flight number.
	// The boolean is false when the store is empty.
	LatestFlightNumber(ctx context.Context) (int, bool, error)

	// ListLaunches returns launches ordered by ascending flight number.
	// A limit of 0 means no limit.
	ListLaunches(ctx context.Context, skip, limit int) ([]Launch, error)

	// SaveLaunch inserts the launch or replaces the imported one with the same
	// flight number. Scheduled launches (non-empty Target) are never replaced;
	// SaveLaunch fails with ErrScheduledLaunch instead.
	SaveLaunch(ctx context.Context, launch *Launch) error

	// InsertLaunch inserts the launch and fails with ErrDuplicateFlightNumber
	// if the flight number is taken.
	InsertLaunch(ctx context.Context, launch *Launch) error

	// AbortLaunch marks a launch as no longer upcoming and unsuccessful.
	// It reports whether a record was modified.
	AbortLaunch(ctx context.Context, flightNumber int) (bool, error)

	// CountLaunches returns the number of stored launches.
	CountLaunches(ctx context.Context) (int64, error)
}

// PlanetCatalog is the read-only lookup of valid scheduling targets.
type PlanetCatalog interface {
	// FindPlanet returns the planet with the exact kepler name, or nil.
	FindPlanet(ctx context.Context, keplerName string) (*Planet, error)

	// ListPlanets returns all planets ordered by name.
	ListPlanets(ctx context.Context) ([]Planet, error)
}

// PlanetWriter seeds the planet catalog.
type PlanetWriter interface {
	// SavePlanet inserts the planet if it is not already present.
	SavePlanet(ctx context.Context, planet *Planet) error
}
