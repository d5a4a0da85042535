package launches

import (
	"context"
	"math"

	"launchplane/internal/store"
)

// Page is a skip/limit window over launches. Limit 0 means no limit.
type Page struct {
	Skip  int
	Limit int
}

// Paginate turns 1-based page and limit query values into a Page.
// Non-positive pages become 1; a non-positive limit falls back to defaultLimit.
// A page whose offset does not fit in an int skips everything.
func Paginate(page, limit, defaultLimit int) Page {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit < 0 {
		limit = 0
	}
	if limit > 0 && page-1 > math.MaxInt/limit {
		return Page{Skip: math.MaxInt, Limit: limit}
	}
	return Page{Skip: (page - 1) * limit, Limit: limit}
}

// Query provides read access to stored launches.
type Query struct {
	launches store.LaunchStore
	planets  store.PlanetCatalog
}

// List returns launches ordered by ascending flight number. A skip past the
// end yields an empty slice.
func (q *Query) List(ctx context.Context, page Page) (launches []store.Launch, err error) {
	ctx, span := startSpan(ctx, "launches.List")
	defer func() { endSpan(span, err) }()

	if page.Skip < 0 {
		page.Skip = 0
	}
	if page.Limit < 0 {
		page.Limit = 0
	}
	return q.launches.ListLaunches(ctx, page.Skip, page.Limit)
}

// Exists reports whether a launch with the exact flight number is stored.
// Flight numbers are positive, so anything else is reported absent without
// reaching the store, where a zero would leave the filter unconstrained.
func (q *Query) Exists(ctx context.Context, flightNumber int) (bool, error) {
	if flightNumber <= 0 {
		return false, nil
	}
	launch, err := q.launches.FindLaunch(ctx, store.LaunchFilter{FlightNumber: flightNumber})
	if err != nil {
		return false, err
	}
	return launch != nil, nil
}

// Planets lists the valid scheduling targets.
func (q *Query) Planets(ctx context.Context) ([]store.Planet, error) {
	return q.planets.ListPlanets(ctx)
}
