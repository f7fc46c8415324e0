// Package dashboard keeps an aggregate statistics snapshot fresh while the dashboard is open.
package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/doeshing/modelscout/internal/domain"
	"github.com/doeshing/modelscout/internal/ports"
)

// Listener is called with every replacement snapshot.
type Listener func(domain.DashboardSnapshot)

// Deps wires the poller. Metrics is optional.
type Deps struct {
	Client    ports.DashboardClient
	Scheduler ports.Scheduler
	Metrics   ports.MetricsRecorder
	Logger    ports.Logger
	Interval  time.Duration
}

// Poller fetches immediately on Start and then once per interval until Stop.
// The held snapshot is always either the last fetched one or the mock.
type Poller struct {
	deps Deps

	mu         sync.Mutex
	snapshot   domain.DashboardSnapshot
	loaded     bool
	active     bool
	generation uint64
	timer      ports.Timer
	cancel     context.CancelFunc
	listeners  []Listener
}

// NewPoller returns a stopped poller.
func NewPoller(deps Deps) *Poller {
	if deps.Interval <= 0 {
		deps.Interval = domain.DefaultPollInterval
	}
	return &Poller{deps: deps}
}

// OnChange registers l for subsequent snapshots.
func (p *Poller) OnChange(l Listener) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, l)
}

// Start performs the first fetch synchronously and schedules the rest.
// Starting an active poller does nothing.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.active {
		p.mu.Unlock()
		return
	}
	p.active = true
	p.generation++
	gen := p.generation
	ctx, p.cancel = context.WithCancel(ctx)
	p.mu.Unlock()

	p.poll(ctx, gen)
}

// Stop cancels the schedule. A fetch still in flight is discarded when it returns.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.active {
		return
	}
	p.active = false
	p.generation++
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

// Snapshot returns the held snapshot; ok is false before the first fetch settles.
func (p *Poller) Snapshot() (domain.DashboardSnapshot, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot, p.loaded
}

// Active reports whether polling is running.
func (p *Poller) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

func (p *Poller) poll(ctx context.Context, gen uint64) {
	data, err := p.deps.Client.DashboardData(ctx)

	p.mu.Lock()
	if !p.active || gen != p.generation {
		p.mu.Unlock()
		p.deps.Logger.Debug("dashboard response discarded", map[string]interface{}{"reason": domain.ErrStale.Error()})
		return
	}
	fromBackend := err == nil
	if err != nil {
		p.deps.Logger.Warn("dashboard fetch failed, using mock data", map[string]interface{}{"error": err.Error()})
		data = domain.MockSnapshot()
	}
	p.snapshot = data
	p.loaded = true
	p.timer = p.deps.Scheduler.AfterFunc(p.deps.Interval, func() {
		p.poll(ctx, gen)
	})
	snap := p.snapshot
	listeners := append([]Listener(nil), p.listeners...)
	p.mu.Unlock()

	if p.deps.Metrics != nil {
		p.deps.Metrics.RecordDashboardPoll(ctx, fromBackend)
	}
	for _, l := range listeners {
		l(snap)
	}
}
