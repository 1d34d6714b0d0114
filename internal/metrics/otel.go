package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

var (
	promReaderFactory = prometheusComponents
	otlpReaderFactory = buildOTLPReader
	instrumentFactory = newOtelInstruments
)

// TelemetryConfig controls how metrics are exported.
type TelemetryConfig struct {
	Enabled      bool
	Port         string
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Setup configures OpenTelemetry metrics with a Prometheus exporter and optional OTLP exporter.
// It returns a Recorder, the Prometheus HTTP handler, and a shutdown function.
func Setup(ctx context.Context, cfg TelemetryConfig) (*Recorder, http.Handler, func(context.Context) error, error) {
	if !cfg.Enabled {
		return NewRecorder(), nil, func(context.Context) error { return nil }, nil
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = "scout-engine"
	}

	promReader, promHandler, err := promReaderFactory()
	if err != nil {
		return nil, nil, nil, err
	}

	opts := []sdkmetric.Option{sdkmetric.WithReader(promReader)}

	if cfg.OtlpEndpoint != "" {
		otlpReader, err := otlpReaderFactory(ctx, cfg.OtlpEndpoint, cfg.OtlpInsecure)
		if err != nil {
			return nil, nil, nil, err
		}
		opts = append(opts, sdkmetric.WithReader(otlpReader))
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	opts = append(opts, sdkmetric.WithResource(res))

	provider := sdkmetric.NewMeterProvider(opts...)

	otelInst, err := instrumentFactory(provider)
	if err != nil {
		return nil, nil, nil, err
	}

	rec := newRecorder(otelInst)
	shutdown := func(c context.Context) error {
		return provider.Shutdown(c)
	}

	return rec, promHandler, shutdown, nil
}

func buildOTLPReader(ctx context.Context, endpoint string, insecure bool) (sdkmetric.Reader, error) {
	otlpOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	if insecure {
		otlpOpts = append(otlpOpts, otlpmetrichttp.WithInsecure())
	}
	otlpExp, err := otlpmetrichttp.New(ctx, otlpOpts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(otlpExp, sdkmetric.WithInterval(15*time.Second)), nil
}

func prometheusComponents() (sdkmetric.Reader, http.Handler, error) {
	reg := prometheus.NewRegistry()
	promExp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	return promExp, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}

type otelInstruments struct {
	ctx                context.Context
	meter              metric.Meter
	requests           metric.Int64Counter
	requestLatencyMs   metric.Float64Histogram
	visionBatches      metric.Int64Counter
	observationsFused  metric.Int64Counter
	pbpSnapshots       metric.Int64Counter
	ingestLatencyMs    metric.Float64Histogram
	lockEvents         metric.Int64Counter
	lockedProps        metric.Int64Counter
	snapshotSaves      metric.Int64Counter
	snapshotSaveErrors metric.Int64Counter
	snapshotLatencyMs  metric.Float64Histogram
	snapshotLoads      metric.Int64Counter
	snapshotLoadErrors metric.Int64Counter
	pollerCycles       metric.Int64Counter
	pollerErrors       metric.Int64Counter
	pollerLatencyMs    metric.Float64Histogram
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	meter := provider.Meter("scout-engine")
	ctx := context.Background()

	requests, err := meter.Int64Counter("http_requests_total")
	if err != nil {
		return nil, err
	}
	requestLatency, err := meter.Float64Histogram("http_request_duration_ms")
	if err != nil {
		return nil, err
	}
	visionBatches, err := meter.Int64Counter("vision_batches_total")
	if err != nil {
		return nil, err
	}
	observationsFused, err := meter.Int64Counter("observations_fused_total")
	if err != nil {
		return nil, err
	}
	pbpSnapshots, err := meter.Int64Counter("pbp_snapshots_total")
	if err != nil {
		return nil, err
	}
	ingestLatency, err := meter.Float64Histogram("ingest_duration_ms")
	if err != nil {
		return nil, err
	}
	lockEvents, err := meter.Int64Counter("halftime_lock_events_total")
	if err != nil {
		return nil, err
	}
	lockedProps, err := meter.Int64Counter("halftime_locked_props_total")
	if err != nil {
		return nil, err
	}
	snapshotSaves, err := meter.Int64Counter("session_snapshot_saves_total")
	if err != nil {
		return nil, err
	}
	snapshotSaveErrors, err := meter.Int64Counter("session_snapshot_save_errors_total")
	if err != nil {
		return nil, err
	}
	snapshotLatency, err := meter.Float64Histogram("session_snapshot_save_duration_ms")
	if err != nil {
		return nil, err
	}
	snapshotLoads, err := meter.Int64Counter("session_snapshot_loads_total")
	if err != nil {
		return nil, err
	}
	snapshotLoadErrors, err := meter.Int64Counter("session_snapshot_load_errors_total")
	if err != nil {
		return nil, err
	}
	pollerCycles, err := meter.Int64Counter("poller_cycles_total")
	if err != nil {
		return nil, err
	}
	pollerErrors, err := meter.Int64Counter("poller_errors_total")
	if err != nil {
		return nil, err
	}
	pollerLatency, err := meter.Float64Histogram("poller_cycle_duration_ms")
	if err != nil {
		return nil, err
	}

	return &otelInstruments{
		ctx:                ctx,
		meter:              meter,
		requests:           requests,
		requestLatencyMs:   requestLatency,
		visionBatches:      visionBatches,
		observationsFused:  observationsFused,
		pbpSnapshots:       pbpSnapshots,
		ingestLatencyMs:    ingestLatency,
		lockEvents:         lockEvents,
		lockedProps:        lockedProps,
		snapshotSaves:      snapshotSaves,
		snapshotSaveErrors: snapshotSaveErrors,
		snapshotLatencyMs:  snapshotLatency,
		snapshotLoads:      snapshotLoads,
		snapshotLoadErrors: snapshotLoadErrors,
		pollerCycles:       pollerCycles,
		pollerErrors:       pollerErrors,
		pollerLatencyMs:    pollerLatency,
	}, nil
}

func (o *otelInstruments) recordVisionBatch(applied int, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.String("kind", "vision"))
	o.visionBatches.Add(o.ctx, 1, attrs)
	o.observationsFused.Add(o.ctx, int64(applied), attrs)
	o.ingestLatencyMs.Record(o.ctx, float64(duration.Milliseconds()), attrs)
}

func (o *otelInstruments) recordPlayByPlay(duration time.Duration) {
	attrs := metric.WithAttributes(attribute.String("kind", "pbp"))
	o.pbpSnapshots.Add(o.ctx, 1, attrs)
	o.ingestLatencyMs.Record(o.ctx, float64(duration.Milliseconds()), attrs)
}

func (o *otelInstruments) recordLock(props int) {
	o.lockEvents.Add(o.ctx, 1)
	o.lockedProps.Add(o.ctx, int64(props))
}

func (o *otelInstruments) recordSnapshotSave(duration time.Duration, err error) {
	o.snapshotSaves.Add(o.ctx, 1)
	if err != nil {
		o.snapshotSaveErrors.Add(o.ctx, 1)
	}
	o.snapshotLatencyMs.Record(o.ctx, float64(duration.Milliseconds()))
}

func (o *otelInstruments) recordSnapshotLoad(err error) {
	o.snapshotLoads.Add(o.ctx, 1)
	if err != nil {
		o.snapshotLoadErrors.Add(o.ctx, 1)
	}
}

func (o *otelInstruments) recordPollerCycle(duration time.Duration, err error) {
	o.pollerCycles.Add(o.ctx, 1)
	if err != nil {
		o.pollerErrors.Add(o.ctx, 1)
	}
	o.pollerLatencyMs.Record(o.ctx, float64(duration.Milliseconds()))
}

func (o *otelInstruments) recordHTTPRequest(method, path string, status int, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("path", path),
		attribute.Int("status", status),
	)
	o.requests.Add(o.ctx, 1, attrs)
	o.requestLatencyMs.Record(o.ctx, float64(duration.Milliseconds()), attrs)
}
