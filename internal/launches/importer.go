package launches

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"launchplane/internal/events"
	"launchplane/internal/spacex"
	"launchplane/internal/store"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"
)

// Sentinel identifies the first historical launch. Its presence means the
// provider data has already been imported into the store.
var Sentinel = store.LaunchFilter{
	FlightNumber: 1,
	Rocket:       "Falcon 1",
	Mission:      "FalconSat",
}

// Provider fetches historical launches from the external data source.
type Provider interface {
	FetchLaunches(ctx context.Context) ([]spacex.Launch, error)
}

// Importer loads historical launches from the provider into the store.
type Importer struct {
	launches store.LaunchStore
	provider Provider
	events   events.Publisher
	logger   *slog.Logger
	counters *counters
	group    singleflight.Group
}

// Import downloads every provider launch and upserts it by flight number.
// Records saved before a failure stay saved; rerunning is safe because each
// save replaces the record with the same key. Provider launches whose flight
// number is held by a scheduled launch are skipped and not counted.
func (i *Importer) Import(ctx context.Context) (n int, err error) {
	ctx, span := startSpan(ctx, "launches.Import")
	defer func() {
		span.SetAttributes(attribute.Int("launches.imported", n))
		endSpan(span, err)
	}()

	if i.provider == nil {
		return 0, errors.New("launches: no launch data provider configured")
	}

	i.logger.Info("downloading launch data")

	docs, err := i.provider.FetchLaunches(ctx)
	if err != nil {
		var statusErr *spacex.StatusError
		if errors.As(err, &statusErr) {
			return 0, &ImportTransportError{StatusCode: statusErr.StatusCode, Err: err}
		}
		return 0, &ImportTransportError{Err: err}
	}

	for _, doc := range docs {
		launch, err := Normalize(doc)
		if err != nil {
			return n, err
		}

		err = i.launches.SaveLaunch(ctx, &launch)
		if errors.Is(err, store.ErrScheduledLaunch) {
			i.logger.Warn("provider launch collides with scheduled launch, skipping",
				"flight_number", launch.FlightNumber, "mission", launch.Mission)
			continue
		}
		if err != nil {
			return n, fmt.Errorf("import stopped after %d launches: %w", n, err)
		}
		n++
		i.counters.imported.Add(ctx, 1)
		i.logger.Debug("imported launch", "flight_number", launch.FlightNumber, "mission", launch.Mission)
	}

	i.logger.Info("launch data imported", "count", n)

	event := events.New(events.TypeImported)
	event.Count = n
	if err := i.events.Publish(ctx, event); err != nil {
		i.logger.Warn("failed to publish import event", "error", err)
	}

	return n, nil
}

// EnsureLoaded imports provider data unless the sentinel launch is already
// stored. It reports whether an import ran. Concurrent callers in the same
// process share one check and import.
func (i *Importer) EnsureLoaded(ctx context.Context) (bool, error) {
	v, err, _ := i.group.Do("ensure-loaded", func() (any, error) {
		first, err := i.launches.FindLaunch(ctx, Sentinel)
		if err != nil {
			return false, fmt.Errorf("failed to check for existing launch data: %w", err)
		}
		if first != nil {
			i.logger.Info("launch data already loaded")
			return false, nil
		}

		if _, err := i.Import(ctx); err != nil {
			return false, err
		}
		return true, nil
	})
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}
