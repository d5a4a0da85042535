// Package memory implements the store interfaces in process memory.
// It backs the controller when STORE_BACKEND=memory and the service tests.
package memory

import (
	"context"
	"slices"
	"sort"
	"sync"

	"launchplane/internal/store"
)

// DefaultFlightNumber is the first flight number handed out on an empty store.
const DefaultFlightNumber = 100

// Store is an in-memory launch store and planet catalog.
type Store struct {
	mu       sync.RWMutex // Protects launches, planets and sequence
	launches map[int]store.Launch
	planets  map[string]store.Planet
	sequence int
}

// New creates an empty store.
func New() *Store {
	return &Store{
		launches: make(map[int]store.Launch),
		planets:  make(map[string]store.Planet),
		sequence: DefaultFlightNumber - 1,
	}
}

// copyLaunch returns a copy that shares no slices with the stored record.
func copyLaunch(l store.Launch) store.Launch {
	l.Customers = slices.Clone(l.Customers)
	if l.Customers == nil {
		l.Customers = []string{}
	}
	return l
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) FindLaunch(ctx context.Context, filter store.LaunchFilter) (*store.Launch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if filter.FlightNumber != 0 {
		l, ok := s.launches[filter.FlightNumber]
		if !ok || !filter.Matches(&l) {
			return nil, nil
		}
		out := copyLaunch(l)
		return &out, nil
	}

	for _, l := range s.sortedLocked() {
		if filter.Matches(&l) {
			out := copyLaunch(l)
			return &out, nil
		}
	}
	return nil, nil
}

func (s *Store) LatestFlightNumber(ctx context.Context) (int, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	latest, found := s.maxLocked()
	return latest, found, nil
}

func (s *Store) ListLaunches(ctx context.Context, skip, limit int) ([]store.Launch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sorted := s.sortedLocked()
	out := []store.Launch{}
	if skip >= len(sorted) {
		return out, nil
	}
	sorted = sorted[skip:]
	if limit > 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}
	for _, l := range sorted {
		out = append(out, copyLaunch(l))
	}
	return out, nil
}

func (s *Store) SaveLaunch(ctx context.Context, launch *store.Launch) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.launches[launch.FlightNumber]; ok && existing.Target != "" {
		return store.ErrScheduledLaunch
	}
	s.launches[launch.FlightNumber] = copyLaunch(*launch)
	return nil
}

func (s *Store) InsertLaunch(ctx context.Context, launch *store.Launch) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.launches[launch.FlightNumber]; exists {
		return store.ErrDuplicateFlightNumber
	}
	s.launches[launch.FlightNumber] = copyLaunch(*launch)
	return nil
}

func (s *Store) AbortLaunch(ctx context.Context, flightNumber int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.launches[flightNumber]
	if !ok || (!l.Upcoming && !l.Success) {
		return false, nil
	}
	l.Upcoming = false
	l.Success = false
	s.launches[flightNumber] = l
	return true, nil
}

func (s *Store) CountLaunches(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.launches)), nil
}

// NextFlightNumber allocates max(counter, stored max) + 1 under the write lock.
func (s *Store) NextFlightNumber(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if latest, found := s.maxLocked(); found && latest > s.sequence {
		s.sequence = latest
	}
	s.sequence++
	return s.sequence, nil
}

func (s *Store) FindPlanet(ctx context.Context, keplerName string) (*store.Planet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.planets[keplerName]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *Store) ListPlanets(ctx context.Context) ([]store.Planet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	planets := make([]store.Planet, 0, len(s.planets))
	for _, p := range s.planets {
		planets = append(planets, p)
	}
	sort.Slice(planets, func(i, j int) bool {
		return planets[i].KeplerName < planets[j].KeplerName
	})
	return planets, nil
}

func (s *Store) SavePlanet(ctx context.Context, planet *store.Planet) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.planets[planet.KeplerName]; !ok {
		s.planets[planet.KeplerName] = *planet
	}
	return nil
}

func (s *Store) sortedLocked() []store.Launch {
	launches := make([]store.Launch, 0, len(s.launches))
	for _, l := range s.launches {
		launches = append(launches, l)
	}
	sort.Slice(launches, func(i, j int) bool {
		return launches[i].FlightNumber < launches[j].FlightNumber
	})
	return launches
}

func (s *Store) maxLocked() (int, bool) {
	latest, found := 0, false
	for n := range s.launches {
		if !found || n > latest {
			latest, found = n, true
		}
	}
	return latest, found
}
