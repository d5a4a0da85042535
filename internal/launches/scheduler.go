package launches

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"launchplane/internal/events"
	"launchplane/internal/sequence"
	"launchplane/internal/store"

	"go.opentelemetry.io/otel/attribute"
)

// maxAllocationAttempts bounds retries when an allocated flight number is
// already taken.
const maxAllocationAttempts = 5

// DefaultCustomers are assigned to every scheduled launch.
var DefaultCustomers = []string{"Zero To Mastery", "NASA"}

// ScheduleInput carries the caller-supplied fields of a new launch.
type ScheduleInput struct {
	Mission    string
	Rocket     string
	Target     string
	LaunchDate time.Time
}

// Validate checks that every required field is present.
func (in ScheduleInput) Validate() error {
	switch {
	case in.Mission == "":
		return fmt.Errorf("%w: mission", ErrMissingField)
	case in.Rocket == "":
		return fmt.Errorf("%w: rocket", ErrMissingField)
	case in.Target == "":
		return fmt.Errorf("%w: target", ErrMissingField)
	case in.LaunchDate.IsZero():
		return fmt.Errorf("%w: launchDate", ErrMissingField)
	}
	return nil
}

// NewLaunch builds the stored record for a scheduled launch.
func NewLaunch(in ScheduleInput, flightNumber int) store.Launch {
	customers := make([]string, len(DefaultCustomers))
	copy(customers, DefaultCustomers)

	return store.Launch{
		FlightNumber: flightNumber,
		Mission:      in.Mission,
		Rocket:       in.Rocket,
		LaunchDate:   in.LaunchDate,
		Target:       in.Target,
		Upcoming:     true,
		Success:      true,
		Customers:    customers,
	}
}

// Scheduler creates user-requested launches.
type Scheduler struct {
	launches  store.LaunchStore
	planets   store.PlanetCatalog
	allocator sequence.Allocator
	events    events.Publisher
	logger    *slog.Logger
	counters  *counters
}

// Schedule validates the target against the planet catalog, allocates the
// next flight number and stores the new launch.
func (s *Scheduler) Schedule(ctx context.Context, in ScheduleInput) (launch *store.Launch, err error) {
	ctx, span := startSpan(ctx, "launches.Schedule")
	span.SetAttributes(attribute.String("launch.target", in.Target))
	defer func() { endSpan(span, err) }()

	if err := in.Validate(); err != nil {
		return nil, err
	}

	planet, err := s.planets.FindPlanet(ctx, in.Target)
	if err != nil {
		return nil, err
	}
	if planet == nil {
		return nil, &UnknownTargetError{Target: in.Target}
	}

	for attempt := 1; ; attempt++ {
		flightNumber, err := s.allocator.NextFlightNumber(ctx)
		if err != nil {
			return nil, err
		}

		created := NewLaunch(in, flightNumber)
		err = s.launches.InsertLaunch(ctx, &created)
		if err == nil {
			span.SetAttributes(attribute.Int("launch.flight_number", flightNumber))
			s.counters.scheduled.Add(ctx, 1)
			s.logger.Info("launch scheduled", "flight_number", flightNumber, "mission", created.Mission, "target", created.Target)
			s.publish(ctx, &created)
			return &created, nil
		}
		if !errors.Is(err, store.ErrDuplicateFlightNumber) {
			return nil, err
		}
		if attempt == maxAllocationAttempts {
			return nil, fmt.Errorf("no free flight number after %d attempts: %w", attempt, err)
		}
		s.logger.Warn("allocated flight number already taken, retrying", "flight_number", flightNumber, "attempt", attempt)
	}
}

func (s *Scheduler) publish(ctx context.Context, launch *store.Launch) {
	event := events.New(events.TypeScheduled)
	event.FlightNumber = launch.FlightNumber
	event.Launch = launch
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish schedule event", "flight_number", launch.FlightNumber, "error", err)
	}
}
