// Package optimize runs the on-demand model-switch recommendation.
package optimize

import (
	"context"
	"sync"

	"github.com/doeshing/modelscout/internal/domain"
	"github.com/doeshing/modelscout/internal/ports"
)

// Listener observes runner transitions.
type Listener func(domain.OptimizerSnapshot)

// Runner is independent of the analysis controller; both may be in flight at once.
type Runner struct {
	client  ports.OptimizerClient
	metrics ports.MetricsRecorder
	logger  ports.Logger

	mu        sync.Mutex
	state     domain.OptimizerState
	result    *domain.OptimizationRecommendation
	errMsg    string
	listeners []Listener
}

// NewRunner returns an idle runner. metrics may be nil.
func NewRunner(client ports.OptimizerClient, metrics ports.MetricsRecorder, logger ports.Logger) *Runner {
	return &Runner{client: client, metrics: metrics, logger: logger, state: domain.OptimizerIdle}
}

// OnChange registers l for subsequent snapshots.
func (r *Runner) OnChange(l Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, l)
}

// Snapshot returns the current state.
func (r *Runner) Snapshot() domain.OptimizerSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// Run asks the backend for a recommendation. A no_recommendation reply settles
// successfully; an error reply or a failed request leaves the runner Failed.
func (r *Runner) Run(ctx context.Context, userID string) (domain.OptimizationRecommendation, error) {
	r.mu.Lock()
	if r.state == domain.OptimizerOptimizing {
		r.mu.Unlock()
		return domain.OptimizationRecommendation{}, domain.ErrBusy
	}
	r.state = domain.OptimizerOptimizing
	r.result = nil
	r.errMsg = ""
	r.unlockAndNotify()

	rec, err := r.client.Optimize(ctx, userID)

	r.mu.Lock()
	if err != nil {
		r.state = domain.OptimizerFailed
		r.errMsg = domain.MsgOptimizationFailed
		r.unlockAndNotify()
		r.logger.Error("optimization failed", err, map[string]interface{}{"user_id": userID})
		r.record(ctx, "failed")
		return domain.OptimizationRecommendation{}, err
	}

	switch rec.Status {
	case domain.OptimizationError:
		r.state = domain.OptimizerFailed
		r.errMsg = rec.Error
		if r.errMsg == "" {
			r.errMsg = domain.MsgOptimizationFailed
		}
		r.result = &rec
	default:
		r.state = domain.OptimizerSettled
		r.result = &rec
	}
	r.unlockAndNotify()
	r.record(ctx, string(rec.Status))

	if rec.Status == domain.OptimizationError {
		return rec, &domain.BackendError{Op: "optimize", Status: 200, Message: rec.Error}
	}
	return rec, nil
}

func (r *Runner) snapshotLocked() domain.OptimizerSnapshot {
	snap := domain.OptimizerSnapshot{State: r.state, Error: r.errMsg}
	if r.result != nil {
		res := *r.result
		snap.Result = &res
	}
	return snap
}

func (r *Runner) unlockAndNotify() {
	snap := r.snapshotLocked()
	listeners := append([]Listener(nil), r.listeners...)
	r.mu.Unlock()
	for _, l := range listeners {
		l(snap)
	}
}

func (r *Runner) record(ctx context.Context, outcome string) {
	if r.metrics != nil {
		r.metrics.RecordOptimization(ctx, outcome)
	}
}
