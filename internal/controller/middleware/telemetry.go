package middleware

import (
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "launchplane/internal/controller"

// Telemetry starts a server span per request, continuing any trace context
// in the incoming headers, and records request count and latency labelled
// by the matched mux pattern. It must wrap the ServeMux itself.
func Telemetry() (func(http.Handler) http.Handler, error) {
	meter := otel.Meter(instrumentationName)

	requests, err := meter.Int64Counter("launchplane.http.requests",
		metric.WithDescription("HTTP requests served"))
	if err != nil {
		return nil, fmt.Errorf("failed to create request counter: %w", err)
	}
	latency, err := meter.Float64Histogram("launchplane.http.duration",
		metric.WithDescription("HTTP request latency"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("failed to create latency histogram: %w", err)
	}

	tracer := otel.Tracer(instrumentationName)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := tracer.Start(ctx, r.Method+" "+r.URL.Path, trace.WithSpanKind(trace.SpanKindServer))
			defer span.End()

			rec := record(w)
			req := r.WithContext(ctx)
			next.ServeHTTP(rec, req)

			// ServeMux sets Pattern on the request it routes.
			route := req.Pattern
			if route == "" {
				route = "unmatched"
			}
			attrs := []attribute.KeyValue{
				attribute.String("http.request.method", r.Method),
				attribute.String("http.route", route),
				attribute.Int("http.response.status_code", rec.status),
			}
			span.SetName(r.Method + " " + route)
			span.SetAttributes(attrs...)
			if rec.status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(rec.status))
			}

			requests.Add(ctx, 1, metric.WithAttributes(attrs...))
			latency.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(attrs...))
		})
	}, nil
}
