package telemetry

import (
	"context"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/doeshing/modelscout/internal/domain"
)

func TestExporterRecordsCounters(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	exp, err := newExporter(ctx, reader, "test")
	if err != nil {
		t.Fatalf("newExporter: %v", err)
	}
	defer exp.Close(ctx)

	exp.RecordAnalysis(ctx, domain.ModeAuto, "fresh")
	exp.RecordAnalysis(ctx, domain.ModeAuto, "fresh")
	exp.RecordOptimization(ctx, "no_recommendation")
	exp.RecordDashboardPoll(ctx, false)
	exp.RecordRequest(ctx, "analyze", 200, 150*time.Millisecond)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	sums := map[string]int64{}
	histograms := map[string]uint64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					sums[m.Name] += dp.Value
				}
			case metricdata.Histogram[float64]:
				for _, dp := range data.DataPoints {
					histograms[m.Name] += dp.Count
				}
			}
		}
	}

	if sums["modelscout_analyses_total"] != 2 {
		t.Errorf("analyses = %d", sums["modelscout_analyses_total"])
	}
	if sums["modelscout_optimizations_total"] != 1 || sums["modelscout_dashboard_polls_total"] != 1 {
		t.Errorf("sums = %v", sums)
	}
	if histograms["modelscout_backend_request_seconds"] != 1 {
		t.Errorf("histograms = %v", histograms)
	}
}

func TestNewReturnsNoOpWhenDisabled(t *testing.T) {
	rec, err := New(context.Background(), domain.TelemetrySettings{}, "test")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := rec.(NoOp); !ok {
		t.Fatalf("got %T, want NoOp", rec)
	}
	if _, err := NewExporter(context.Background(), domain.TelemetrySettings{Enabled: true}, "test"); err == nil {
		t.Fatal("expected error without endpoint")
	}
}
