// Package metrics records run statistics as OpenTelemetry instruments exported
// through a private Prometheus registry.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// EvaluationBuckets are histogram buckets in seconds for team evaluations, which
// include cloning and up to one benchmark timeout per game.
var EvaluationBuckets = []float64{1, 5, 10, 30, 60, 120, 300, 600, 1200} //nolint: gochecknoglobals

const meterName = "github.com/samhab/hslu-devops-evaluation"

// Metrics holds the instruments of one process.
type Metrics struct {
	registry *prometheus.Registry
	provider *sdkmetric.MeterProvider

	teams      metric.Int64Counter
	benchmarks metric.Int64Counter
	duration   metric.Float64Histogram
	requests   metric.Float64Histogram
}

// New creates the meter provider, its Prometheus exporter and all instruments.
func New() (*Metrics, error) {
	registry := prometheus.NewRegistry()

	exp, err := otelprom.New(otelprom.WithRegisterer(registry), otelprom.WithoutTargetInfo())
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp))
	meter := provider.Meter(meterName)

	m := &Metrics{registry: registry, provider: provider}

	if m.teams, err = meter.Int64Counter("evaluation.teams",
		metric.WithDescription("Number of evaluated teams by outcome")); err != nil {
		return nil, fmt.Errorf("could not create teams counter: %w", err)
	}
	if m.benchmarks, err = meter.Int64Counter("evaluation.benchmarks",
		metric.WithDescription("Number of benchmark runs by game and outcome")); err != nil {
		return nil, fmt.Errorf("could not create benchmarks counter: %w", err)
	}
	if m.duration, err = meter.Float64Histogram("evaluation.team.duration",
		metric.WithDescription("Time spent evaluating one team"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(EvaluationBuckets...)); err != nil {
		return nil, fmt.Errorf("could not create duration histogram: %w", err)
	}
	if m.requests, err = meter.Float64Histogram("evaluation.http.client.duration",
		metric.WithDescription("Duration of outgoing HTTP requests by host and status"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(DefaultBuckets...)); err != nil {
		return nil, fmt.Errorf("could not create request histogram: %w", err)
	}

	return m, nil
}

// TeamEvaluated records one finished team evaluation.
func (m *Metrics) TeamEvaluated(ctx context.Context, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.teams.Add(ctx, 1, attrs)
	m.duration.Record(ctx, took.Seconds(), attrs)
}

// BenchmarkRun records the outcome of one game benchmark.
func (m *Metrics) BenchmarkRun(ctx context.Context, game, outcome string) {
	if m == nil {
		return
	}
	m.benchmarks.Add(ctx, 1, metric.WithAttributes(
		attribute.String("game", game),
		attribute.String("outcome", outcome),
	))
}

// HTTPRequest records one outgoing HTTP request. A status of 0 means the
// request failed before a response arrived.
func (m *Metrics) HTTPRequest(ctx context.Context, host string, status int, took time.Duration) {
	if m == nil {
		return
	}
	m.requests.Record(ctx, took.Seconds(), metric.WithAttributes(
		attribute.String("host", host),
		attribute.Int("status", status),
	))
}

// WriteTextfile writes the current state of all metrics in the Prometheus text
// format, suitable for the node exporter's textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("could not write metrics textfile: %w", err)
	}

	return nil
}

// Shutdown flushes and stops the meter provider.
func (m *Metrics) Shutdown(ctx context.Context) error {
	if err := m.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("could not shutdown meter provider: %w", err)
	}

	return nil
}
