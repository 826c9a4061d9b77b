package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// OTelExporter provides OpenTelemetry metrics export following OTel standards
type OTelExporter struct {
	meterProvider *sdkmetric.MeterProvider
	collector     Collector

	// OTel meters and instruments
	meter              metric.Meter
	receiverCountGauge metric.Int64ObservableGauge
	dispatchCountGauge metric.Int64ObservableGauge
	throughputGauge    metric.Int64ObservableGauge
}

// NewOTelExporter creates a new OpenTelemetry metrics exporter with Prometheus format
func NewOTelExporter(collector Collector) (*OTelExporter, error) {
	// Create Prometheus exporter
	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	// Create meter provider
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(meterProvider)

	// Create meter with service info
	meter := meterProvider.Meter(
		"senlin-receiver",
		metric.WithInstrumentationVersion("1.0.0"),
	)

	oe := &OTelExporter{
		meterProvider: meterProvider,
		collector:     collector,
		meter:         meter,
	}

	// Register metrics instruments
	if err := oe.registerInstruments(); err != nil {
		return nil, fmt.Errorf("registering instruments: %w", err)
	}

	return oe, nil
}

// registerInstruments creates and registers all OpenTelemetry metric instruments
func (oe *OTelExporter) registerInstruments() error {
	var err error

	// Receiver count gauge (per type)
	oe.receiverCountGauge, err = oe.meter.Int64ObservableGauge(
		"receiver.count",
		metric.WithDescription("Number of registered receivers by type"),
		metric.WithUnit("{receivers}"),
		metric.WithInt64Callback(oe.observeReceiverCounts),
	)
	if err != nil {
		return fmt.Errorf("creating receiver count gauge: %w", err)
	}

	// Dispatch count gauge (per outcome)
	oe.dispatchCountGauge, err = oe.meter.Int64ObservableGauge(
		"trigger.dispatch.count",
		metric.WithDescription("Running total of trigger dispatches by outcome"),
		metric.WithUnit("{dispatches}"),
		metric.WithInt64Callback(oe.observeDispatchCounts),
	)
	if err != nil {
		return fmt.Errorf("creating dispatch count gauge: %w", err)
	}

	// Throughput gauge (actions submitted over time windows)
	oe.throughputGauge, err = oe.meter.Int64ObservableGauge(
		"trigger.throughput",
		metric.WithDescription("Actions submitted over time window"),
		metric.WithUnit("{actions}"),
		metric.WithInt64Callback(oe.observeThroughput),
	)
	if err != nil {
		return fmt.Errorf("creating throughput gauge: %w", err)
	}

	return nil
}

// observeReceiverCounts is a callback that reports receiver counts by type
func (oe *OTelExporter) observeReceiverCounts(ctx context.Context, observer metric.Int64Observer) error {
	receiverCounts, err := oe.collector.GetReceiverCounts(ctx)
	if err != nil {
		return err
	}

	for recType, count := range receiverCounts {
		observer.Observe(count, metric.WithAttributes(
			attribute.String("receiver.type", recType),
		))
	}

	return nil
}

// observeDispatchCounts is a callback that reports dispatch outcome totals
func (oe *OTelExporter) observeDispatchCounts(ctx context.Context, observer metric.Int64Observer) error {
	dispatchCounts, err := oe.collector.GetDispatchCounts(ctx)
	if err != nil {
		return err
	}

	for outcome, count := range dispatchCounts {
		observer.Observe(count, metric.WithAttributes(
			attribute.String("dispatch.outcome", outcome),
		))
	}

	return nil
}

// observeThroughput is a callback that reports throughput metrics
func (oe *OTelExporter) observeThroughput(ctx context.Context, observer metric.Int64Observer) error {
	throughput, err := oe.collector.GetThroughput(ctx)
	if err != nil {
		return err
	}

	observer.Observe(throughput.LastMinute, metric.WithAttributes(
		attribute.String("time.window", "1m"),
	))
	observer.Observe(throughput.LastFiveMinutes, metric.WithAttributes(
		attribute.String("time.window", "5m"),
	))
	observer.Observe(throughput.LastFifteenMinutes, metric.WithAttributes(
		attribute.String("time.window", "15m"),
	))

	return nil
}

// ServeHTTP serves Prometheus-formatted metrics on the given HTTP handler
func (oe *OTelExporter) ServeHTTP() http.Handler {
	return promhttp.Handler()
}

// Shutdown gracefully shuts down the meter provider
func (oe *OTelExporter) Shutdown(ctx context.Context) error {
	if oe.meterProvider != nil {
		return oe.meterProvider.Shutdown(ctx)
	}
	return nil
}
