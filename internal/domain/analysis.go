package domain

import (
	"fmt"
	"strings"
	"time"
)

// Mode selects which backend workflow answers a prompt.
type Mode string

const (
	// ModeAuto returns one chosen answer with a compact summary.
	ModeAuto Mode = "auto"
	// ModeFull returns the per-model comparison.
	ModeFull Mode = "full"
)

// ParseMode accepts "auto" or "full" (case-insensitive).
func ParseMode(raw string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case ModeAuto:
		return ModeAuto, nil
	case ModeFull, "analyze":
		return ModeFull, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want auto|full)", raw)
	}
}

// AnalysisRequest is what the controller sends for one submission.
type AnalysisRequest struct {
	PromptText string
	UserID     string
	Mode       Mode
}

// ResultKind tags the populated variant of an AnalysisResult.
type ResultKind string

const (
	ResultFresh  ResultKind = "fresh"
	ResultCached ResultKind = "cached"
	ResultAuto   ResultKind = "auto"
)

// AnalysisResult is a tagged union; exactly one of Fresh, Cached or Auto is set, as named by Kind.
type AnalysisResult struct {
	Kind   ResultKind
	Fresh  *FreshAnalysis
	Cached *CachedAnalysis
	Auto   *AutoAnswer
}

// IsCached reports whether the backend satisfied the request from history.
func (r AnalysisResult) IsCached() bool {
	return r.Kind == ResultCached
}

// FreshAnalysis is a full comparison computed for this request.
type FreshAnalysis struct {
	UseCase              string
	RecommendedModel     string
	Reasoning            string
	CostSavingsPercent   float64
	QualityImpactPercent float64
	Models               []ModelResult
	Timestamp            string
}

// SuccessfulModels returns the entries whose numeric fields are meaningful.
func (f FreshAnalysis) SuccessfulModels() []ModelResult {
	var out []ModelResult
	for _, m := range f.Models {
		if m.Success {
			out = append(out, m)
		}
	}
	return out
}

// CachedAnalysis is a prior answer reused by the backend.
type CachedAnalysis struct {
	FreshAnalysis
	OriginalQuestion string
	CachedFrom       string
	Message          string
	QualityScore     float64
	FallbackNote     string
}

// AutoAnswer is the single-answer auto mode response.
type AutoAnswer struct {
	ModelUsed            string
	Answer               string
	ModelSelectionReason string
	UseCase              string
	Summary              AutoSummary
	Alternatives         []Alternative
}

// AutoSummary is the compact quality/cost verdict for the chosen model.
type AutoSummary struct {
	Quality      ScoreLevel
	Cost         AmountLevel
	LatencyMs    float64
	OverallScore float64
}

// ScoreLevel pairs a 0..100 score with its label.
type ScoreLevel struct {
	Score float64
	Level string
}

// AmountLevel pairs a USD amount with its label.
type AmountLevel struct {
	Amount float64
	Level  string
}

// Alternative is a runner-up model in auto mode.
type Alternative struct {
	Model string
	Score float64
}

// ModelResult is one model's outcome. Numeric and text fields mean nothing when Success is false.
type ModelResult struct {
	ModelName       string
	QualityScore    float64
	Cost            float64
	LatencyMs       float64
	Response        string
	Success         bool
	DimensionScores map[string]float64
}

// WorkflowState is a state of the analysis state machine.
type WorkflowState string

const (
	StateIdle       WorkflowState = "idle"
	StateValidating WorkflowState = "validating"
	StateSubmitting WorkflowState = "submitting"
	StatePending    WorkflowState = "pending"
	StateSettled    WorkflowState = "settled"
	StateFailed     WorkflowState = "failed"
)

// Busy reports whether a submission is in flight.
func (s WorkflowState) Busy() bool {
	return s == StateValidating || s == StateSubmitting || s == StatePending
}

// WorkflowSnapshot is an immutable view of the controller.
type WorkflowSnapshot struct {
	State      WorkflowState
	Mode       Mode
	Progress   string
	Result     *AnalysisResult
	Error      string
	Generation uint64
	UpdatedAt  time.Time
}
