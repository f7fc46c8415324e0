// Package telemetry exports workflow counters to an OTLP collector.
package telemetry

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/doeshing/modelscout/internal/domain"
	"github.com/doeshing/modelscout/internal/ports"
)

const serviceName = "modelscout"

// Exporter records workflow metrics through an OpenTelemetry meter.
type Exporter struct {
	provider        *sdkmetric.MeterProvider
	analyses        metric.Int64Counter
	optimizations   metric.Int64Counter
	dashboardPolls  metric.Int64Counter
	requestDuration metric.Float64Histogram
}

// NewExporter connects to the collector named in settings.
func NewExporter(ctx context.Context, settings domain.TelemetrySettings, version string) (*Exporter, error) {
	if !settings.Enabled || settings.Endpoint == "" {
		return nil, fmt.Errorf("telemetry is disabled or endpoint not configured")
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(settings.Endpoint),
	}
	if settings.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}
	return newExporter(ctx, sdkmetric.NewPeriodicReader(exp), version)
}

func newExporter(ctx context.Context, reader sdkmetric.Reader, version string) (*Exporter, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(res),
	)
	meter := provider.Meter(serviceName)

	analyses, err := meter.Int64Counter(
		"modelscout_analyses_total",
		metric.WithDescription("Analysis submissions by mode and outcome"),
		metric.WithUnit("{analysis}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating analyses counter: %w", err)
	}

	optimizations, err := meter.Int64Counter(
		"modelscout_optimizations_total",
		metric.WithDescription("Optimization runs by outcome"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating optimizations counter: %w", err)
	}

	dashboardPolls, err := meter.Int64Counter(
		"modelscout_dashboard_polls_total",
		metric.WithDescription("Dashboard polls by data source"),
		metric.WithUnit("{poll}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating dashboard counter: %w", err)
	}

	requestDuration, err := meter.Float64Histogram(
		"modelscout_backend_request_seconds",
		metric.WithDescription("Backend request latency"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating request histogram: %w", err)
	}

	return &Exporter{
		provider:        provider,
		analyses:        analyses,
		optimizations:   optimizations,
		dashboardPolls:  dashboardPolls,
		requestDuration: requestDuration,
	}, nil
}

func (e *Exporter) RecordAnalysis(ctx context.Context, mode domain.Mode, outcome string) {
	e.analyses.Add(ctx, 1, metric.WithAttributes(
		attribute.String("mode", string(mode)),
		attribute.String("outcome", outcome),
	))
}

func (e *Exporter) RecordOptimization(ctx context.Context, outcome string) {
	e.optimizations.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (e *Exporter) RecordDashboardPoll(ctx context.Context, fromBackend bool) {
	source := "mock"
	if fromBackend {
		source = "backend"
	}
	e.dashboardPolls.Add(ctx, 1, metric.WithAttributes(attribute.String("source", source)))
}

func (e *Exporter) RecordRequest(ctx context.Context, endpoint string, status int, elapsed time.Duration) {
	e.requestDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(
		attribute.String("endpoint", endpoint),
		attribute.String("status", strconv.Itoa(status)),
	))
}

// Close shuts down the provider and flushes pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}

var _ ports.MetricsRecorder = (*Exporter)(nil)
