package helpers

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/doeshing/modelscout/internal/domain"
)

func init() {
	color.NoColor = true
}

func TestFormatters(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{FormatUSD(0.000152, 6), "$0.000152"},
		{FormatUSD(0, 2), "$0.00"},
		{FormatUSD(-1.5, 2), "-$1.50"},
		{FormatMoney(1234.5), "$1,234.50"},
		{FormatPercent(67.3), "67.3%"},
		{FormatSignedPercent(-2), "-2.0%"},
		{FormatFraction(0.87), "87%"},
		{FormatLatency(420), "420ms"},
		{FormatLatency(3500), "3.5s"},
		{Truncate("a  very\nlong question", 8), "a very…"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

func TestFormatHistoryDate(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	entry := domain.HistoryEntry{Date: "2025-03-10T09:00:00Z"}
	if got := FormatHistoryDate(entry, now); got != "3 hours ago" {
		t.Fatalf("got %q", got)
	}
	if got := FormatHistoryDate(domain.HistoryEntry{Date: "yesterday-ish"}, now); got != "yesterday-ish" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderAnalysisVariants(t *testing.T) {
	var buf bytes.Buffer
	RenderAnalysis(&buf, domain.AnalysisResult{Kind: domain.ResultAuto, Auto: &domain.AutoAnswer{
		ModelUsed: "gpt-4o",
		Answer:    "4",
		Summary:   domain.AutoSummary{Quality: domain.ScoreLevel{Score: 91, Level: "Excellent"}},
	}})
	if out := buf.String(); !strings.Contains(out, "Answer from gpt-4o (knowledge: April 2024)") || !strings.Contains(out, "Excellent") {
		t.Fatalf("auto output:\n%s", out)
	}

	buf.Reset()
	RenderAnalysis(&buf, domain.AnalysisResult{Kind: domain.ResultCached, Cached: &domain.CachedAnalysis{OriginalQuestion: "what is 2+2"}})
	if out := buf.String(); !strings.Contains(out, "$0.00 (cached)") || !strings.Contains(out, "what is 2+2") {
		t.Fatalf("cached output:\n%s", out)
	}

	buf.Reset()
	RenderAnalysis(&buf, domain.AnalysisResult{Kind: domain.ResultFresh, Fresh: &domain.FreshAnalysis{
		RecommendedModel: "m1",
		Models: []domain.ModelResult{
			{ModelName: "m1", Success: true, QualityScore: 90, Cost: 0.0002, LatencyMs: 300, Response: "ok"},
			{ModelName: "m2", Success: false, QualityScore: 55},
		},
	}})
	out := buf.String()
	if !strings.Contains(out, "failed") || strings.Contains(out, "55") {
		t.Fatalf("failed model rendered numbers:\n%s", out)
	}
}

func TestRenderOptimizationNoRecommendation(t *testing.T) {
	var buf bytes.Buffer
	RenderOptimization(&buf, domain.OptimizationRecommendation{
		Status:           domain.OptimizationNoRecommendation,
		NoRecommendation: &domain.NoRecommendation{CurrentModel: "gpt-4o-mini"},
	})
	if !strings.Contains(buf.String(), domain.MsgAlreadyOptimal) {
		t.Fatalf("output:\n%s", buf.String())
	}
}

func TestRenderDashboardLabelsMock(t *testing.T) {
	var buf bytes.Buffer
	RenderDashboard(&buf, domain.MockSnapshot())
	if !strings.Contains(buf.String(), "demo data") {
		t.Fatalf("mock not labelled:\n%s", buf.String())
	}
}

func TestLookupConfigKey(t *testing.T) {
	cfg := domain.Config{Backend: domain.BackendSettings{BaseURL: "http://x:5000"}}
	v, err := LookupConfigKey(cfg, "backend.base_url")
	if err != nil || v != "http://x:5000" {
		t.Fatalf("got %v, %v", v, err)
	}
	if _, err := LookupConfigKey(cfg, "backend.nope"); err == nil {
		t.Fatal("expected missing key error")
	}
}

func TestPromptForStringDefault(t *testing.T) {
	var out bytes.Buffer
	got, err := PromptForString(&out, bufio.NewReader(strings.NewReader("\n")), "Username", "alice")
	if err != nil || got != "alice" {
		t.Fatalf("got %q, %v", got, err)
	}
	got, err = PromptForString(&out, bufio.NewReader(strings.NewReader("bob")), "Username", "")
	if err != nil || got != "bob" {
		t.Fatalf("EOF without newline: got %q, %v", got, err)
	}
}

func TestSpinnerPrintsLabelsOffTerminal(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf)
	s.SetLabel("one")
	s.Start()
	s.SetLabel("two")
	s.SetLabel("two")
	s.Stop()
	if got := buf.String(); got != "one\ntwo\n" {
		t.Fatalf("got %q", got)
	}
}

func TestLoginNavigator(t *testing.T) {
	var buf bytes.Buffer
	LoginNavigator{Out: &buf}.RedirectToLogin("no active session")
	if !strings.Contains(buf.String(), "No active session. Run `modelscout login`") {
		t.Fatalf("got %q", buf.String())
	}
}
