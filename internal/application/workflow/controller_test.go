package workflow

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/doeshing/modelscout/internal/domain"
	"github.com/doeshing/modelscout/internal/infrastructure/scheduler"
	"github.com/doeshing/modelscout/internal/pkg/logger"
)

type stubAnalysisClient struct {
	mu       sync.Mutex
	result   domain.AnalysisResult
	err      error
	requests []domain.AnalysisRequest
	// gate, when set, blocks Analyze until a value is sent or ctx ends.
	gate    chan struct{}
	started chan struct{}
}

func (s *stubAnalysisClient) Analyze(ctx context.Context, req domain.AnalysisRequest) (domain.AnalysisResult, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	gate, started := s.gate, s.started
	s.mu.Unlock()
	if started != nil {
		started <- struct{}{}
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return domain.AnalysisResult{}, ctx.Err()
		}
	}
	return s.result, s.err
}

func (s *stubAnalysisClient) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

type countingInvalidator struct {
	mu    sync.Mutex
	count int
}

func (c *countingInvalidator) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count++
}

func (c *countingInvalidator) value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

type fixture struct {
	client  *stubAnalysisClient
	history *countingInvalidator
	clock   *scheduler.Manual
	ctrl    *Controller
}

func newFixture(client *stubAnalysisClient) *fixture {
	f := &fixture{client: client, history: &countingInvalidator{}, clock: scheduler.NewManual()}
	f.ctrl = NewController(Deps{
		Client:        client,
		History:       f.history,
		Scheduler:     f.clock,
		Logger:        logger.NewDiscard(),
		ProgressStep:  2 * time.Second,
		ProgressClear: time.Second,
	})
	return f
}

func freshResult() domain.AnalysisResult {
	return domain.AnalysisResult{Kind: domain.ResultFresh, Fresh: &domain.FreshAnalysis{RecommendedModel: "gpt-4o-mini"}}
}

func TestEmptyPromptFailsWithoutNetwork(t *testing.T) {
	for _, prompt := range []string{"", "   ", "\n\t"} {
		f := newFixture(&stubAnalysisClient{result: freshResult()})
		_, err := f.ctrl.Submit(context.Background(), prompt, "u1", domain.ModeFull)
		if !domain.IsValidation(err) {
			t.Fatalf("prompt %q: expected validation error, got %v", prompt, err)
		}
		snap := f.ctrl.Snapshot()
		if snap.State != domain.StateFailed || snap.Error != "Please enter a prompt" {
			t.Fatalf("prompt %q: snapshot = %+v", prompt, snap)
		}
		if f.client.calls() != 0 {
			t.Fatalf("prompt %q: network called", prompt)
		}
	}
}

func TestAutoModeAnswerSettles(t *testing.T) {
	client := &stubAnalysisClient{result: domain.AnalysisResult{
		Kind: domain.ResultAuto,
		Auto: &domain.AutoAnswer{ModelUsed: "X", Answer: "4"},
	}}
	f := newFixture(client)

	res, err := f.ctrl.Submit(context.Background(), "2+2?", "u1", domain.ModeAuto)
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if res.Kind != domain.ResultAuto || res.Auto.ModelUsed != "X" {
		t.Fatalf("result = %+v", res)
	}
	snap := f.ctrl.Snapshot()
	if snap.State != domain.StateSettled || snap.Result == nil || snap.Result.Auto.ModelUsed != "X" {
		t.Fatalf("snapshot = %+v", snap)
	}
	if client.requests[0].PromptText != "2+2?" || client.requests[0].Mode != domain.ModeAuto || client.requests[0].UserID != "u1" {
		t.Fatalf("request = %+v", client.requests[0])
	}
}

func TestHistoryInvalidatedOnlyForNonCached(t *testing.T) {
	cached := domain.AnalysisResult{Kind: domain.ResultCached, Cached: &domain.CachedAnalysis{OriginalQuestion: "q"}}
	tests := []struct {
		name   string
		result domain.AnalysisResult
		want   int
	}{
		{name: "fresh", result: freshResult(), want: 1},
		{name: "auto", result: domain.AnalysisResult{Kind: domain.ResultAuto, Auto: &domain.AutoAnswer{}}, want: 1},
		{name: "cached", result: cached, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(&stubAnalysisClient{result: tt.result})
			if _, err := f.ctrl.Submit(context.Background(), "prompt", "u1", domain.ModeFull); err != nil {
				t.Fatal(err)
			}
			if got := f.history.value(); got != tt.want {
				t.Fatalf("invalidations = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTerminalProgressClearsAfterDelay(t *testing.T) {
	cached := domain.AnalysisResult{Kind: domain.ResultCached, Cached: &domain.CachedAnalysis{}}
	f := newFixture(&stubAnalysisClient{result: cached})

	if _, err := f.ctrl.Submit(context.Background(), "prompt", "u1", domain.ModeAuto); err != nil {
		t.Fatal(err)
	}
	if got := f.ctrl.Snapshot().Progress; got != domain.ProgressCached {
		t.Fatalf("progress = %q", got)
	}
	f.clock.Advance(999 * time.Millisecond)
	if f.ctrl.Snapshot().Progress == "" {
		t.Fatal("progress cleared too early")
	}
	f.clock.Advance(time.Millisecond)
	if got := f.ctrl.Snapshot().Progress; got != "" {
		t.Fatalf("progress not cleared: %q", got)
	}
}

func TestProgressSequenceWhilePending(t *testing.T) {
	client := &stubAnalysisClient{
		result:  freshResult(),
		gate:    make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	f := newFixture(client)
	want := domain.ProgressMessages(domain.ModeFull)

	done := make(chan error, 1)
	go func() {
		_, err := f.ctrl.Submit(context.Background(), "prompt", "u1", domain.ModeFull)
		done <- err
	}()
	<-client.started

	for i, msg := range want {
		if i > 0 {
			f.clock.Advance(2 * time.Second)
		}
		snap := f.ctrl.Snapshot()
		if snap.State != domain.StatePending || snap.Progress != msg {
			t.Fatalf("step %d: snapshot = %+v, want progress %q", i, snap, msg)
		}
	}

	close(client.gate)
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	if got := f.ctrl.Snapshot().Progress; got != domain.ProgressComplete {
		t.Fatalf("progress = %q", got)
	}
}

func TestFailureCancelsProgressAndShowsFixedMessage(t *testing.T) {
	client := &stubAnalysisClient{err: &domain.TransportError{Op: "analyze", Err: errors.New("refused")}}
	f := newFixture(client)

	if _, err := f.ctrl.Submit(context.Background(), "prompt", "u1", domain.ModeFull); err == nil {
		t.Fatal("expected error")
	}
	snap := f.ctrl.Snapshot()
	if snap.State != domain.StateFailed || snap.Error != domain.MsgAnalysisFailed || snap.Progress != "" {
		t.Fatalf("snapshot = %+v", snap)
	}
	if f.clock.Pending() != 0 {
		t.Fatalf("pending timers = %d", f.clock.Pending())
	}
	if f.history.value() != 0 {
		t.Fatal("failure must not invalidate history")
	}
}

func TestBackendErrorShowsFixedMessage(t *testing.T) {
	for _, status := range []int{400, 500} {
		client := &stubAnalysisClient{err: &domain.BackendError{Op: "analyze", Status: status, Message: "Traceback: KeyError 'openai'"}}
		f := newFixture(client)

		_, err := f.ctrl.Submit(context.Background(), "prompt", "u1", domain.ModeFull)
		var backendErr *domain.BackendError
		if !errors.As(err, &backendErr) {
			t.Fatalf("status %d: err = %v, want BackendError", status, err)
		}
		snap := f.ctrl.Snapshot()
		if snap.State != domain.StateFailed || snap.Error != domain.MsgAnalysisFailed {
			t.Fatalf("status %d: snapshot = %+v", status, snap)
		}
	}
}

func TestAllModelsFailedStillSettles(t *testing.T) {
	client := &stubAnalysisClient{result: domain.AnalysisResult{
		Kind: domain.ResultFresh,
		Fresh: &domain.FreshAnalysis{Models: []domain.ModelResult{
			{ModelName: "gpt-4o", Success: false},
			{ModelName: "claude-3-haiku", Success: false},
		}},
	}}
	f := newFixture(client)

	res, err := f.ctrl.Submit(context.Background(), "prompt", "u1", domain.ModeFull)
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if len(res.Fresh.SuccessfulModels()) != 0 {
		t.Fatalf("successful models = %+v", res.Fresh.SuccessfulModels())
	}
	snap := f.ctrl.Snapshot()
	if snap.State != domain.StateSettled || snap.Error != "" || snap.Result == nil || len(snap.Result.Fresh.Models) != 2 {
		t.Fatalf("snapshot = %+v", snap)
	}
	if f.history.value() != 1 {
		t.Fatalf("invalidations = %d", f.history.value())
	}
}

func TestSubmitWhilePendingIsBusy(t *testing.T) {
	client := &stubAnalysisClient{
		result:  freshResult(),
		gate:    make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	f := newFixture(client)

	done := make(chan error, 1)
	go func() {
		_, err := f.ctrl.Submit(context.Background(), "first", "u1", domain.ModeAuto)
		done <- err
	}()
	<-client.started

	if _, err := f.ctrl.Submit(context.Background(), "second", "u1", domain.ModeAuto); !errors.Is(err, domain.ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	close(client.gate)
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	if client.calls() != 1 {
		t.Fatalf("calls = %d", client.calls())
	}
}

func TestCloseDiscardsInFlightResponseAndTimers(t *testing.T) {
	client := &stubAnalysisClient{
		result:  freshResult(),
		gate:    make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	f := newFixture(client)

	var mu sync.Mutex
	var notifications int
	f.ctrl.OnChange(func(domain.WorkflowSnapshot) {
		mu.Lock()
		notifications++
		mu.Unlock()
	})

	done := make(chan error, 1)
	go func() {
		_, err := f.ctrl.Submit(context.Background(), "prompt", "u1", domain.ModeFull)
		done <- err
	}()
	<-client.started

	before := f.ctrl.Snapshot()
	f.ctrl.Close()
	mu.Lock()
	seen := notifications
	mu.Unlock()

	f.clock.Advance(10 * time.Second)
	if err := <-done; !errors.Is(err, domain.ErrStale) {
		t.Fatalf("expected ErrStale, got %v", err)
	}

	after := f.ctrl.Snapshot()
	if after.State != before.State || after.Progress != before.Progress || after.Result != nil {
		t.Fatalf("state mutated after Close: before=%+v after=%+v", before, after)
	}
	mu.Lock()
	defer mu.Unlock()
	if notifications != seen {
		t.Fatalf("listeners notified after Close: %d -> %d", seen, notifications)
	}
	if f.history.value() != 0 {
		t.Fatal("stale response invalidated history")
	}
}

func TestStaleClearTimerDoesNotTouchNewerSubmission(t *testing.T) {
	client := &stubAnalysisClient{result: freshResult()}
	f := newFixture(client)

	if _, err := f.ctrl.Submit(context.Background(), "one", "u1", domain.ModeAuto); err != nil {
		t.Fatal(err)
	}
	client.gate = make(chan struct{})
	client.started = make(chan struct{}, 1)

	done := make(chan error, 1)
	go func() {
		_, err := f.ctrl.Submit(context.Background(), "two", "u1", domain.ModeAuto)
		done <- err
	}()
	<-client.started

	first := domain.ProgressMessages(domain.ModeAuto)[0]
	f.clock.Advance(time.Second)
	if got := f.ctrl.Snapshot().Progress; got != first {
		t.Fatalf("old clear timer touched new submission: %q", got)
	}
	close(client.gate)
	<-done
}
