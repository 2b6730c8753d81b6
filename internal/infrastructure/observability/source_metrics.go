package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics for calls to the upstream medical data sources (openFDA, PubMed,
// ClinicalTrials.gov, MedlinePlus, MyDisease). Lazily initialized so the
// connector clients can record without plumbing a Metrics handle through
// every constructor.

type sourceMetrics struct {
	callCount    metric.Int64Counter
	callDuration metric.Float64Histogram
	callErrors   metric.Int64Counter
}

var sourceMetricsInit = false
var sourceMetricsInst sourceMetrics

func ensureSourceMetrics() {
	if sourceMetricsInit {
		return
	}
	meter := otel.Meter(instrumentationName + "/sources")

	callCount, err := meter.Int64Counter(
		"source.call.count",
		metric.WithDescription("Number of upstream medical source calls"),
	)
	if err != nil {
		return
	}
	callDuration, err := meter.Float64Histogram(
		"source.call.duration",
		metric.WithDescription("Upstream medical source call duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}
	callErrors, err := meter.Int64Counter(
		"source.call.errors",
		metric.WithDescription("Number of failed upstream medical source calls"),
	)
	if err != nil {
		return
	}

	sourceMetricsInst = sourceMetrics{
		callCount:    callCount,
		callDuration: callDuration,
		callErrors:   callErrors,
	}
	sourceMetricsInit = true
}

// RecordSourceCall records one call to an upstream medical data source.
func RecordSourceCall(ctx context.Context, source string, statusCode int, duration time.Duration, err error) {
	ensureSourceMetrics()
	if !sourceMetricsInit {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("source.name", source),
	}
	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	sourceMetricsInst.callCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	sourceMetricsInst.callDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		sourceMetricsInst.callErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
