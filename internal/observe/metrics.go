// Package observe provides application-wide observability primitives for
// brojko: OpenTelemetry metrics, request tracing, and HTTP middleware that
// ties them together.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] so that metrics can still be
// scraped via the standard /metrics endpoint. A package-level default
// [Metrics] instance ([DefaultMetrics]) is provided for convenience; tests
// should use [NewMetrics] with a custom [metric.MeterProvider] to avoid
// cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all brojko metrics.
const meterName = "github.com/0x0all/brojko"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// --- Latency histograms ---

	// EnumerationDuration tracks how long a platform voice-inventory snapshot
	// takes, readiness wait excluded. Use with attribute:
	//   attribute.String("provider", ...)
	EnumerationDuration metric.Float64Histogram

	// ResolutionDuration tracks the grouping of all configured languages
	// against a freshly built catalog.
	ResolutionDuration metric.Float64Histogram

	// --- Counters ---

	// Resolutions counts per-language resolutions by match tier. Use with
	// attributes:
	//   attribute.String("language", ...), attribute.String("match", ...)
	Resolutions metric.Int64Counter

	// SelectionChecks counts selection validations by outcome
	// ("acceptable", "rejected", "malformed").
	SelectionChecks metric.Int64Counter

	// --- Gauges ---

	// VoicesIndexed tracks the number of (language, name) pairs in the
	// current catalog.
	VoicesIndexed metric.Int64UpDownCounter

	// --- HTTP middleware ---

	// HTTPRequestDuration tracks HTTP request processing time. Use with attributes:
	//   attribute.String("method", ...), attribute.String("path", ...)
	HTTPRequestDuration metric.Float64Histogram
}

// latencyBuckets defines histogram bucket boundaries (in seconds). Inventory
// snapshots are network calls; resolution is in-memory and lands in the
// lowest buckets.
var latencyBuckets = []float64{
	0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	// Histograms.
	if met.EnumerationDuration, err = m.Float64Histogram("brojko.enumeration.duration",
		metric.WithDescription("Latency of platform voice-inventory snapshots."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.ResolutionDuration, err = m.Float64Histogram("brojko.resolution.duration",
		metric.WithDescription("Latency of grouping all configured languages."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}

	// Counters.
	if met.Resolutions, err = m.Int64Counter("brojko.resolutions",
		metric.WithDescription("Per-language resolutions by language and match tier."),
	); err != nil {
		return nil, err
	}
	if met.SelectionChecks, err = m.Int64Counter("brojko.selection.checks",
		metric.WithDescription("Selection validations by outcome."),
	); err != nil {
		return nil, err
	}

	// Gauges (UpDownCounters).
	if met.VoicesIndexed, err = m.Int64UpDownCounter("brojko.voices.indexed",
		metric.WithDescription("Number of (language, name) pairs in the current catalog."),
	); err != nil {
		return nil, err
	}

	// HTTP middleware histogram.
	if met.HTTPRequestDuration, err = m.Float64Histogram("brojko.http.request.duration",
		metric.WithDescription("HTTP request latency by method and path."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Subsequent calls return the same
// pointer. Panics if instrument creation fails (should not happen with the
// global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordResolution is a convenience method that records one per-language
// resolution with the standard attribute set.
func (m *Metrics) RecordResolution(ctx context.Context, language, match string) {
	m.Resolutions.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("language", language),
			attribute.String("match", match),
		),
	)
}

// RecordSelectionCheck is a convenience method that records one selection
// validation outcome.
func (m *Metrics) RecordSelectionCheck(ctx context.Context, outcome string) {
	m.SelectionChecks.Add(ctx, 1,
		metric.WithAttributes(attribute.String("outcome", outcome)),
	)
}
