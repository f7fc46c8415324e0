package telemetry

import (
	"context"
	"time"

	"github.com/doeshing/modelscout/internal/domain"
	"github.com/doeshing/modelscout/internal/ports"
)

// NoOp discards everything. Used when telemetry is disabled.
type NoOp struct{}

func (NoOp) RecordAnalysis(context.Context, domain.Mode, string)       {}
func (NoOp) RecordOptimization(context.Context, string)                {}
func (NoOp) RecordDashboardPoll(context.Context, bool)                 {}
func (NoOp) RecordRequest(context.Context, string, int, time.Duration) {}
func (NoOp) Close(context.Context) error                               { return nil }

// New returns an Exporter when telemetry is enabled, otherwise NoOp.
func New(ctx context.Context, settings domain.TelemetrySettings, version string) (ports.MetricsRecorder, error) {
	if !settings.Enabled {
		return NoOp{}, nil
	}
	return NewExporter(ctx, settings, version)
}

var _ ports.MetricsRecorder = NoOp{}
