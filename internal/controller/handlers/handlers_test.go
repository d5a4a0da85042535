package handlers

import (
	"context"
	"time"

	"launchplane/internal/launches"
	"launchplane/internal/store"
)

// Mock launch service
type mockService struct {
	listResp    []store.Launch
	listErr     error
	existsResp  bool
	existsErr   error
	planetsResp []store.Planet
	planetsErr  error
	scheduleErr error
	abortResp   bool
	abortErr    error
	importResp  int
	importErr   error

	// Spies (to verify arguments passed by handlers)
	capturedPage   launches.Page
	capturedInput  launches.ScheduleInput
	capturedFlight int
	abortCalled    bool
}

func (m *mockService) List(ctx context.Context, page launches.Page) ([]store.Launch, error) {
	m.capturedPage = page
	return m.listResp, m.listErr
}

func (m *mockService) Exists(ctx context.Context, flightNumber int) (bool, error) {
	m.capturedFlight = flightNumber
	return m.existsResp, m.existsErr
}

func (m *mockService) Planets(ctx context.Context) ([]store.Planet, error) {
	return m.planetsResp, m.planetsErr
}

func (m *mockService) Schedule(ctx context.Context, in launches.ScheduleInput) (*store.Launch, error) {
	m.capturedInput = in
	if m.scheduleErr != nil {
		return nil, m.scheduleErr
	}
	launch := launches.NewLaunch(in, 101)
	return &launch, nil
}

func (m *mockService) Abort(ctx context.Context, flightNumber int) (bool, error) {
	m.abortCalled = true
	m.capturedFlight = flightNumber
	return m.abortResp, m.abortErr
}

func (m *mockService) Import(ctx context.Context) (int, error) {
	return m.importResp, m.importErr
}

// Mock store ping
type mockPinger struct {
	pingErr error
}

func (m *mockPinger) Ping(ctx context.Context) error {
	return m.pingErr
}

var sampleLaunch = store.Launch{
	FlightNumber: 100,
	Mission:      "Kepler Exploration X",
	Rocket:       "Explorer IS1",
	LaunchDate:   time.Date(2030, 12, 27, 0, 0, 0, 0, time.UTC),
	Target:       "Kepler-442 b",
	Upcoming:     true,
	Success:      true,
	Customers:    []string{"Zero To Mastery", "NASA"},
}
