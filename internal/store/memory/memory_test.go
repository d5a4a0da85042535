package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"launchplane/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, s *Store, numbers ...int) {
	t.Helper()
	for _, n := range numbers {
		require.NoError(t, s.SaveLaunch(context.Background(), &store.Launch{
			FlightNumber: n,
			Mission:      "mission",
			Rocket:       "rocket",
			LaunchDate:   time.Date(2020, 1, n, 0, 0, 0, 0, time.UTC),
			Upcoming:     true,
			Success:      true,
		}))
	}
}

func TestSaveLaunch_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.SaveLaunch(ctx, &store.Launch{FlightNumber: 7, Mission: "first"}))
	require.NoError(t, s.SaveLaunch(ctx, &store.Launch{FlightNumber: 7, Mission: "second"}))

	count, err := s.CountLaunches(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	got, err := s.FindLaunch(ctx, store.LaunchFilter{FlightNumber: 7})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "second", got.Mission)
}

func TestSaveLaunch_KeepsScheduledLaunch(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.InsertLaunch(ctx, &store.Launch{
		FlightNumber: 188, Mission: "Kepler Exploration X", Target: "Kepler-442 b", Upcoming: true, Success: true,
	}))
	err := s.SaveLaunch(ctx, &store.Launch{FlightNumber: 188, Mission: "Starlink"})
	assert.ErrorIs(t, err, store.ErrScheduledLaunch)

	got, err := s.FindLaunch(ctx, store.LaunchFilter{FlightNumber: 188})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Kepler Exploration X", got.Mission)
	assert.Equal(t, "Kepler-442 b", got.Target)
	assert.True(t, got.Upcoming)
}

func TestInsertLaunch_RejectsDuplicate(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.InsertLaunch(ctx, &store.Launch{FlightNumber: 100, Mission: "first"}))
	err := s.InsertLaunch(ctx, &store.Launch{FlightNumber: 100, Mission: "second"})
	assert.ErrorIs(t, err, store.ErrDuplicateFlightNumber)

	got, err := s.FindLaunch(ctx, store.LaunchFilter{FlightNumber: 100})
	require.NoError(t, err)
	assert.Equal(t, "first", got.Mission)
}

func TestFindLaunch_Filter(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.SaveLaunch(ctx, &store.Launch{FlightNumber: 1, Mission: "FalconSat", Rocket: "Falcon 1"}))

	tests := []struct {
		name   string
		filter store.LaunchFilter
		found  bool
	}{
		{name: "Exact sentinel", filter: store.LaunchFilter{FlightNumber: 1, Rocket: "Falcon 1", Mission: "FalconSat"}, found: true},
		{name: "Wrong rocket", filter: store.LaunchFilter{FlightNumber: 1, Rocket: "Falcon 9", Mission: "FalconSat"}, found: false},
		{name: "Mission only", filter: store.LaunchFilter{Mission: "FalconSat"}, found: true},
		{name: "Unknown number", filter: store.LaunchFilter{FlightNumber: 2}, found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.FindLaunch(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.found, got != nil)
		})
	}
}

func TestListLaunches_Pagination(t *testing.T) {
	ctx := context.Background()
	s := New()
	seed(t, s, 5, 3, 1, 4, 2)

	page, err := s.ListLaunches(ctx, 0, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, 1, page[0].FlightNumber)
	assert.Equal(t, 2, page[1].FlightNumber)

	all, err := s.ListLaunches(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	past, err := s.ListLaunches(ctx, 10, 2)
	require.NoError(t, err)
	assert.NotNil(t, past)
	assert.Empty(t, past)
}

func TestAbortLaunch(t *testing.T) {
	ctx := context.Background()
	s := New()
	seed(t, s, 100)

	modified, err := s.AbortLaunch(ctx, 100)
	require.NoError(t, err)
	assert.True(t, modified)

	got, err := s.FindLaunch(ctx, store.LaunchFilter{FlightNumber: 100})
	require.NoError(t, err)
	assert.False(t, got.Upcoming)
	assert.False(t, got.Success)

	again, err := s.AbortLaunch(ctx, 100)
	require.NoError(t, err)
	assert.False(t, again, "re-aborting is a no-op")

	missing, err := s.AbortLaunch(ctx, 999)
	require.NoError(t, err)
	assert.False(t, missing)
}

func TestNextFlightNumber(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty store starts at default", func(t *testing.T) {
		s := New()
		first, err := s.NextFlightNumber(ctx)
		require.NoError(t, err)
		assert.Equal(t, DefaultFlightNumber, first)

		second, err := s.NextFlightNumber(ctx)
		require.NoError(t, err)
		assert.Equal(t, DefaultFlightNumber+1, second)
	})

	t.Run("Continues after imported launches", func(t *testing.T) {
		s := New()
		seed(t, s, 187)
		next, err := s.NextFlightNumber(ctx)
		require.NoError(t, err)
		assert.Equal(t, 188, next)
	})

	t.Run("Concurrent allocations are unique", func(t *testing.T) {
		s := New()
		const n = 50
		results := make(chan int, n)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				v, err := s.NextFlightNumber(ctx)
				assert.NoError(t, err)
				results <- v
			}()
		}
		wg.Wait()
		close(results)

		seen := make(map[int]bool)
		for v := range results {
			assert.False(t, seen[v], "duplicate flight number %d", v)
			seen[v] = true
		}
		assert.Len(t, seen, n)
	})
}

func TestReturnedLaunchesAreCopies(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.SaveLaunch(ctx, &store.Launch{FlightNumber: 1, Customers: []string{"NASA"}}))

	got, err := s.FindLaunch(ctx, store.LaunchFilter{FlightNumber: 1})
	require.NoError(t, err)
	got.Customers[0] = "mutated"

	again, err := s.FindLaunch(ctx, store.LaunchFilter{FlightNumber: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"NASA"}, again.Customers)
}

func TestPlanets(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.SavePlanet(ctx, &store.Planet{KeplerName: "Kepler-62 f"}))
	require.NoError(t, s.SavePlanet(ctx, &store.Planet{KeplerName: "Kepler-1410 b"}))
	require.NoError(t, s.SavePlanet(ctx, &store.Planet{KeplerName: "Kepler-62 f"}))

	planets, err := s.ListPlanets(ctx)
	require.NoError(t, err)
	assert.Equal(t, []store.Planet{{KeplerName: "Kepler-1410 b"}, {KeplerName: "Kepler-62 f"}}, planets)

	found, err := s.FindPlanet(ctx, "Kepler-62 f")
	require.NoError(t, err)
	assert.NotNil(t, found)

	missing, err := s.FindPlanet(ctx, "Nonexistent-Planet")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
