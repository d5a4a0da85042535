// Package observability provides OpenTelemetry instrumentation for tracing and metrics.
package observability

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// InitMetrics initializes the OpenTelemetry metrics provider with a Prometheus exporter.
// It returns the HTTP handler for the /metrics endpoint and a shutdown function.
func InitMetrics() (http.Handler, func(context.Context) error, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	provider := metric.NewMeterProvider(
		metric.WithReader(exporter),
	)

	otel.SetMeterProvider(provider)

	return promhttp.Handler(), provider.Shutdown, nil
}

// LaunchCounter counts stored launches.
type LaunchCounter interface {
	CountLaunches(ctx context.Context) (int64, error)
}

// RegisterLaunchGauge exposes the stored launch count as the
// launchplane.launches.stored gauge, read from c on every collection.
// Must be called after InitMetrics.
func RegisterLaunchGauge(c LaunchCounter) error {
	meter := otel.Meter("launchplane/internal/observability")

	_, err := meter.Int64ObservableGauge("launchplane.launches.stored",
		otelmetric.WithDescription("Launch records in the store"),
		otelmetric.WithInt64Callback(func(ctx context.Context, o otelmetric.Int64Observer) error {
			n, err := c.CountLaunches(ctx)
			if err != nil {
				return err
			}
			o.Observe(n)
			return nil
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to create launch gauge: %w", err)
	}
	return nil
}
