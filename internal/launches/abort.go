package launches

import (
	"context"
	"log/slog"

	"launchplane/internal/events"
	"launchplane/internal/store"

	"go.opentelemetry.io/otel/attribute"
)

// Aborter cancels launches.
type Aborter struct {
	launches store.LaunchStore
	events   events.Publisher
	logger   *slog.Logger
	counters *counters
}

// Abort sets upcoming and success to false on the launch with the given
// flight number. It returns true only if a record changed: unknown flight
// numbers and launches that are already aborted both return false.
func (a *Aborter) Abort(ctx context.Context, flightNumber int) (aborted bool, err error) {
	ctx, span := startSpan(ctx, "launches.Abort")
	span.SetAttributes(attribute.Int("launch.flight_number", flightNumber))
	defer func() { endSpan(span, err) }()

	aborted, err = a.launches.AbortLaunch(ctx, flightNumber)
	if err != nil || !aborted {
		return false, err
	}

	a.counters.aborted.Add(ctx, 1)
	a.logger.Info("launch aborted", "flight_number", flightNumber)

	event := events.New(events.TypeAborted)
	event.FlightNumber = flightNumber
	if err := a.events.Publish(ctx, event); err != nil {
		a.logger.Warn("failed to publish abort event", "flight_number", flightNumber, "error", err)
	}
	return true, nil
}
