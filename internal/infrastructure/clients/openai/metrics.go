package openai

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type summarizerMetrics struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
	rateLimitWait   metric.Float64Histogram
}

var summarizerMetricsInit = false
var summarizerMetricsInst summarizerMetrics

func ensureSummarizerMetrics() {
	if summarizerMetricsInit {
		return
	}
	meter := otel.Meter("github.com/florencehealth/ai-nurse-florence/openai")

	requestCount, err := meter.Int64Counter(
		"ai.summarizer.request.count",
		metric.WithDescription("Number of summarizer requests"),
	)
	if err != nil {
		return
	}
	requestDuration, err := meter.Float64Histogram(
		"ai.summarizer.request.duration",
		metric.WithDescription("Summarizer request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}
	requestErrors, err := meter.Int64Counter(
		"ai.summarizer.request.errors",
		metric.WithDescription("Number of summarizer request errors"),
	)
	if err != nil {
		return
	}
	rateLimitWait, err := meter.Float64Histogram(
		"ai.summarizer.rate_limit.wait",
		metric.WithDescription("Time spent waiting for the summarizer rate limiter in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}

	summarizerMetricsInst = summarizerMetrics{
		requestCount:    requestCount,
		requestDuration: requestDuration,
		requestErrors:   requestErrors,
		rateLimitWait:   rateLimitWait,
	}
	summarizerMetricsInit = true
}

func recordSummarizerMetric(ctx context.Context, model string, statusCode int, duration time.Duration, err error) {
	ensureSummarizerMetrics()
	if !summarizerMetricsInit {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", "openai"),
		attribute.String("ai.model", model),
	}
	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	summarizerMetricsInst.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	summarizerMetricsInst.requestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		summarizerMetricsInst.requestErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

func recordSummarizerRateLimitWait(ctx context.Context, model string, wait time.Duration) {
	ensureSummarizerMetrics()
	if !summarizerMetricsInit {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", "openai"),
		attribute.String("ai.model", model),
	}
	summarizerMetricsInst.rateLimitWait.Record(ctx, float64(wait.Milliseconds()), metric.WithAttributes(attrs...))
}
