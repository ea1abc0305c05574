package observability

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Metrics records RPC and assessment instruments through OpenTelemetry and
// exposes them in Prometheus format. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry
	provider *sdkmetric.MeterProvider
	calls    metric.Int64Counter
	duration metric.Float64Histogram
	verdicts metric.Int64Counter
	streams  metric.Int64Counter
}

// NewMetrics builds the meter provider backed by a dedicated Prometheus registry.
func NewMetrics(serviceName string) (*Metrics, error) {
	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	meter := provider.Meter(serviceName)

	m := &Metrics{registry: registry, provider: provider}

	if m.calls, err = meter.Int64Counter("fraud_rpc_calls",
		metric.WithDescription("Completed RPC calls by method and status code")); err != nil {
		return nil, fmt.Errorf("create calls counter: %w", err)
	}
	if m.duration, err = meter.Float64Histogram("fraud_rpc_duration",
		metric.WithDescription("RPC call duration"),
		metric.WithUnit("s")); err != nil {
		return nil, fmt.Errorf("create duration histogram: %w", err)
	}
	if m.verdicts, err = meter.Int64Counter("fraud_risk_verdicts",
		metric.WithDescription("Final verdicts by risk level")); err != nil {
		return nil, fmt.Errorf("create verdicts counter: %w", err)
	}
	if m.streams, err = meter.Int64Counter("fraud_stream_outcomes",
		metric.WithDescription("Risk update streams by terminal state")); err != nil {
		return nil, fmt.Errorf("create stream outcomes counter: %w", err)
	}

	return m, nil
}

// RecordCall records one finished RPC.
func (m *Metrics) RecordCall(ctx context.Context, method, code string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.calls.Add(ctx, 1, metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("code", code),
	))
	m.duration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(
		attribute.String("method", method),
	))
}

// RecordVerdict records a final verdict.
func (m *Metrics) RecordVerdict(ctx context.Context, riskLevel string) {
	if m == nil {
		return
	}
	m.verdicts.Add(ctx, 1, metric.WithAttributes(attribute.String("risk_level", riskLevel)))
}

// RecordStreamOutcome records the terminal state of a stream.
func (m *Metrics) RecordStreamOutcome(ctx context.Context, state string) {
	if m == nil {
		return
	}
	m.streams.Add(ctx, 1, metric.WithAttributes(attribute.String("state", state)))
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Shutdown flushes and stops the meter provider.
func (m *Metrics) Shutdown(ctx context.Context) error {
	if m == nil {
		return nil
	}
	return m.provider.Shutdown(ctx)
}
