package launches

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "launchplane/internal/launches"

var tracer = otel.Tracer(instrumentationName)

// counters are created from the global MeterProvider, which is a no-op
// until observability.InitMetrics installs the Prometheus exporter.
type counters struct {
	scheduled metric.Int64Counter
	aborted   metric.Int64Counter
	imported  metric.Int64Counter
}

func newCounters() (*counters, error) {
	meter := otel.Meter(instrumentationName)

	scheduled, err := meter.Int64Counter("launchplane.launches.scheduled",
		metric.WithDescription("Launches created by the scheduler"))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduled counter: %w", err)
	}
	aborted, err := meter.Int64Counter("launchplane.launches.aborted",
		metric.WithDescription("Launches aborted"))
	if err != nil {
		return nil, fmt.Errorf("failed to create aborted counter: %w", err)
	}
	imported, err := meter.Int64Counter("launchplane.launches.imported",
		metric.WithDescription("Launches upserted by the importer"))
	if err != nil {
		return nil, fmt.Errorf("failed to create imported counter: %w", err)
	}

	return &counters{scheduled: scheduled, aborted: aborted, imported: imported}, nil
}

// endSpan records err on the span, if any, and ends it.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name)
}
