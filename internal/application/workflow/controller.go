// Package workflow drives a single prompt through validation, submission,
// simulated progress and result interpretation.
package workflow

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/doeshing/modelscout/internal/domain"
	"github.com/doeshing/modelscout/internal/ports"
)

// Listener observes every state or progress change.
type Listener func(domain.WorkflowSnapshot)

// Deps wires the controller to its collaborators. History, Metrics and Now are optional.
type Deps struct {
	Client        ports.AnalysisClient
	History       ports.HistoryInvalidator
	Scheduler     ports.Scheduler
	Metrics       ports.MetricsRecorder
	Logger        ports.Logger
	ProgressStep  time.Duration
	ProgressClear time.Duration
	Now           func() time.Time
}

// Controller is the analysis state machine. All transitions happen under mu;
// the network call does not.
type Controller struct {
	deps Deps

	mu         sync.Mutex
	state      domain.WorkflowState
	mode       domain.Mode
	progress   string
	result     *domain.AnalysisResult
	errMsg     string
	generation uint64
	updatedAt  time.Time
	timers     []ports.Timer
	cancel     context.CancelFunc
	closed     bool
	listeners  []Listener
}

// NewController returns an idle controller.
func NewController(deps Deps) *Controller {
	if deps.ProgressStep <= 0 {
		deps.ProgressStep = domain.DefaultProgressStep
	}
	if deps.ProgressClear <= 0 {
		deps.ProgressClear = domain.DefaultProgressClear
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Controller{deps: deps, state: domain.StateIdle, mode: domain.ModeAuto}
}

// OnChange registers l for all subsequent snapshots.
func (c *Controller) OnChange(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() domain.WorkflowSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Submit runs one analysis. It returns ErrBusy while a previous submission is
// in flight and ErrStale if the controller was closed or superseded before the
// response arrived.
func (c *Controller) Submit(ctx context.Context, prompt, userID string, mode domain.Mode) (domain.AnalysisResult, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return domain.AnalysisResult{}, domain.ErrStale
	}
	if c.state.Busy() {
		c.mu.Unlock()
		return domain.AnalysisResult{}, domain.ErrBusy
	}

	c.generation++
	gen := c.generation
	c.stopTimersLocked()
	c.mode = mode
	c.result = nil
	c.errMsg = ""
	c.progress = ""
	c.setStateLocked(domain.StateValidating)

	text := strings.TrimSpace(prompt)
	if text == "" {
		c.errMsg = domain.MsgEmptyPrompt
		c.setStateLocked(domain.StateFailed)
		c.unlockAndNotify()
		c.recordAnalysis(ctx, mode, "invalid")
		return domain.AnalysisResult{}, &domain.ValidationError{Message: domain.MsgEmptyPrompt}
	}

	c.setStateLocked(domain.StateSubmitting)
	reqCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.startProgressLocked(gen, mode)
	c.setStateLocked(domain.StatePending)
	c.unlockAndNotify()

	result, err := c.deps.Client.Analyze(reqCtx, domain.AnalysisRequest{
		PromptText: text,
		UserID:     userID,
		Mode:       mode,
	})
	cancel()

	c.mu.Lock()
	if gen != c.generation || c.closed {
		c.mu.Unlock()
		c.deps.Logger.Debug("analysis response discarded", map[string]interface{}{"generation": gen})
		return domain.AnalysisResult{}, domain.ErrStale
	}
	c.cancel = nil
	c.stopTimersLocked()

	if err != nil {
		c.progress = ""
		c.errMsg = failureMessage(err)
		c.setStateLocked(domain.StateFailed)
		c.unlockAndNotify()
		c.deps.Logger.Error("analysis failed", err, map[string]interface{}{"mode": string(mode)})
		c.recordAnalysis(ctx, mode, "failed")
		return domain.AnalysisResult{}, err
	}

	c.result = &result
	if result.IsCached() {
		c.progress = domain.ProgressCached
	} else {
		c.progress = domain.ProgressComplete
	}
	c.setStateLocked(domain.StateSettled)
	c.scheduleLocked(gen, c.deps.ProgressClear, func() {
		if c.state == domain.StateSettled {
			c.progress = ""
		}
	})
	c.unlockAndNotify()

	if !result.IsCached() && c.deps.History != nil {
		c.deps.History.Invalidate()
	}
	c.recordAnalysis(ctx, mode, string(result.Kind))
	return result, nil
}

// Close cancels timers and any in-flight request. Later callbacks are no-ops.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.generation++
	c.stopTimersLocked()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) startProgressLocked(gen uint64, mode domain.Mode) {
	messages := domain.ProgressMessages(mode)
	if len(messages) == 0 {
		return
	}
	c.progress = messages[0]
	for i := 1; i < len(messages); i++ {
		msg := messages[i]
		c.scheduleLocked(gen, time.Duration(i)*c.deps.ProgressStep, func() {
			c.progress = msg
		})
	}
}

// scheduleLocked registers apply to run under mu, only if gen is still current.
func (c *Controller) scheduleLocked(gen uint64, d time.Duration, apply func()) {
	timer := c.deps.Scheduler.AfterFunc(d, func() {
		c.mu.Lock()
		if gen != c.generation || c.closed {
			c.mu.Unlock()
			return
		}
		apply()
		c.touchLocked()
		c.unlockAndNotify()
	})
	c.timers = append(c.timers, timer)
}

func (c *Controller) stopTimersLocked() {
	for _, t := range c.timers {
		t.Stop()
	}
	c.timers = nil
}

func (c *Controller) setStateLocked(s domain.WorkflowState) {
	c.state = s
	c.touchLocked()
}

func (c *Controller) touchLocked() {
	c.updatedAt = c.deps.Now()
}

func (c *Controller) snapshotLocked() domain.WorkflowSnapshot {
	snap := domain.WorkflowSnapshot{
		State:      c.state,
		Mode:       c.mode,
		Progress:   c.progress,
		Error:      c.errMsg,
		Generation: c.generation,
		UpdatedAt:  c.updatedAt,
	}
	if c.result != nil {
		res := *c.result
		snap.Result = &res
	}
	return snap
}

// unlockAndNotify releases mu and then delivers the snapshot taken under it.
func (c *Controller) unlockAndNotify() {
	snap := c.snapshotLocked()
	listeners := append([]Listener(nil), c.listeners...)
	c.mu.Unlock()
	for _, l := range listeners {
		l(snap)
	}
}

func (c *Controller) recordAnalysis(ctx context.Context, mode domain.Mode, outcome string) {
	if c.deps.Metrics != nil {
		c.deps.Metrics.RecordAnalysis(ctx, mode, outcome)
	}
}

// failureMessage keeps backend bodies out of the view; they are only logged.
func failureMessage(err error) string {
	var v *domain.ValidationError
	if errors.As(err, &v) {
		return v.Message
	}
	return domain.MsgAnalysisFailed
}
