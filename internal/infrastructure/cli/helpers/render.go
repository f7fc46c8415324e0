package helpers

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/doeshing/modelscout/internal/domain"
)

// RenderAnalysis prints whichever result variant is populated.
func RenderAnalysis(out io.Writer, result domain.AnalysisResult) {
	switch result.Kind {
	case domain.ResultAuto:
		renderAuto(out, result.Auto)
	case domain.ResultCached:
		renderCached(out, result.Cached)
	case domain.ResultFresh:
		renderFresh(out, result.Fresh)
	default:
		WarningColor.Fprintf(out, "Unrecognized result kind %q\n", result.Kind)
	}
}

func renderAuto(out io.Writer, a *domain.AutoAnswer) {
	if a == nil {
		return
	}
	TitleColor.Fprintf(out, "Answer from %s\n", ModelLabel(a.ModelUsed))
	fmt.Fprintln(out, strings.TrimSpace(a.Answer))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Quality:  %.0f%% (%s)\n", a.Summary.Quality.Score, a.Summary.Quality.Level)
	fmt.Fprintf(out, "Cost:     %s (%s)\n", FormatUSD(a.Summary.Cost.Amount, 6), a.Summary.Cost.Level)
	fmt.Fprintf(out, "Latency:  %s\n", FormatLatency(a.Summary.LatencyMs))
	fmt.Fprintf(out, "Overall:  %s\n", FormatFraction(a.Summary.OverallScore))
	if a.UseCase != "" {
		fmt.Fprintf(out, "Use case: %s [%s]\n", a.UseCase, domain.CategorizeUseCase(a.UseCase))
	}
	if a.ModelSelectionReason != "" {
		InfoColor.Fprintf(out, "Why %s? %s\n", a.ModelUsed, a.ModelSelectionReason)
	}
	if len(a.Alternatives) > 0 {
		fmt.Fprintln(out, "Alternatives:")
		for _, alt := range a.Alternatives {
			fmt.Fprintf(out, "  - %s (%s)\n", alt.Model, FormatFraction(alt.Score))
		}
	}
}

func renderCached(out io.Writer, c *domain.CachedAnalysis) {
	if c == nil {
		return
	}
	SuccessColor.Fprintln(out, "⚡ Cached response")
	if c.Message != "" {
		fmt.Fprintln(out, c.Message)
	}
	if c.OriginalQuestion != "" {
		fmt.Fprintf(out, "Original question: %s\n", c.OriginalQuestion)
	}
	if c.CachedFrom != "" {
		fmt.Fprintf(out, "Cached from:       %s\n", c.CachedFrom)
	}
	if c.QualityScore > 0 {
		fmt.Fprintf(out, "Quality score:     %s\n", FormatFraction(c.QualityScore))
	}
	fmt.Fprintf(out, "Cost:              %s (cached)\n", FormatUSD(0, 2))
	if c.FallbackNote != "" {
		WarningColor.Fprintln(out, c.FallbackNote)
	}
	if c.RecommendedModel != "" {
		fmt.Fprintf(out, "Recommended model: %s\n", ModelLabel(c.RecommendedModel))
	}
	renderModels(out, c.Models)
}

func renderFresh(out io.Writer, f *domain.FreshAnalysis) {
	if f == nil {
		return
	}
	TitleColor.Fprintf(out, "Recommended model: %s\n", ModelLabel(f.RecommendedModel))
	if f.UseCase != "" {
		fmt.Fprintf(out, "Use case: %s [%s]\n", f.UseCase, domain.CategorizeUseCase(f.UseCase))
	}
	if f.Reasoning != "" {
		fmt.Fprintln(out, f.Reasoning)
	}
	fmt.Fprintf(out, "Cost savings:   %s\n", FormatPercent(f.CostSavingsPercent))
	impact := "Trade-off"
	if f.QualityImpactPercent > 0 {
		impact = "Improvement"
	}
	fmt.Fprintf(out, "Quality impact: %s (%s)\n", FormatSignedPercent(f.QualityImpactPercent), impact)
	renderModels(out, f.Models)
}

func renderModels(out io.Writer, models []domain.ModelResult) {
	if len(models) == 0 {
		return
	}
	fmt.Fprintln(out)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MODEL\tQUALITY\tCOST\tLATENCY\tRESPONSE")
	for _, m := range models {
		if !m.Success {
			fmt.Fprintf(tw, "%s\t-\t-\t-\tfailed\n", m.ModelName)
			continue
		}
		fmt.Fprintf(tw, "%s\t%.0f\t%s\t%s\t%s\n",
			m.ModelName, m.QualityScore, FormatUSD(m.Cost, 6), FormatLatency(m.LatencyMs), Truncate(m.Response, 48))
	}
	tw.Flush()
}

// RenderOptimization prints each recommendation variant.
func RenderOptimization(out io.Writer, rec domain.OptimizationRecommendation) {
	switch rec.Status {
	case domain.OptimizationSuccess:
		renderRecommendation(out, rec.Success)
	case domain.OptimizationNoRecommendation:
		SuccessColor.Fprintf(out, "✓ %s\n", domain.MsgAlreadyOptimal)
		if nr := rec.NoRecommendation; nr != nil {
			if nr.CurrentModel != "" {
				fmt.Fprintf(out, "Current model: %s\n", ModelLabel(nr.CurrentModel))
			}
			if nr.Reason != "" {
				MutedColor.Fprintln(out, nr.Reason)
			}
		}
	case domain.OptimizationError:
		ErrorColor.Fprintln(out, rec.Error)
	}
}

func renderRecommendation(out io.Writer, r *domain.Recommendation) {
	if r == nil {
		return
	}
	if r.Summary != "" {
		TitleColor.Fprintln(out, r.Summary)
	}
	fmt.Fprintf(out, "Switch: %s -> %s\n", r.CurrentModel, ModelLabel(r.DisplayModel()))
	fmt.Fprintf(out, "Cost saving:    %s\n", FormatPercent(r.ProjectedCostSavingPercent))
	fmt.Fprintf(out, "Quality impact: %s\n", FormatSignedPercent(r.ProjectedQualityImpactPercent))
	fmt.Fprintf(out, "Confidence:     %s\n", FormatFraction(r.Confidence))

	bi := r.BusinessImpact
	if bi.MonthlyRequestVolume > 0 {
		fmt.Fprintf(out, "Monthly volume: %d requests\n", bi.MonthlyRequestVolume)
		fmt.Fprintf(out, "Monthly cost:   %s -> %s\n", FormatMoney(bi.CurrentMonthlyCostUSD), FormatMoney(bi.ProjectedMonthlyCostUSD))
		SuccessColor.Fprintf(out, "Savings:        %s/month, %s/year\n", FormatMoney(bi.ProjectedMonthlySavingsUSD), FormatMoney(bi.AnnualSavingsUSD))
	}
	if len(r.Reasons) > 0 {
		fmt.Fprintln(out, "Reasons:")
		for _, reason := range r.Reasons {
			fmt.Fprintf(out, "  - %s\n", reason)
		}
	}
	if fb := r.Fallback; fb != nil {
		fmt.Fprintf(out, "Fallback: %s (%s cost, %s quality)\n",
			fb.Model, FormatPercent(fb.CostSavingPercent), FormatSignedPercent(fb.QualityImpactPercent))
	}
	renderModels(out, r.Models)
	MutedColor.Fprintf(out, "Processed in %.2fs | Verification cost: %s\n", r.ProcessingTimeSeconds, FormatUSD(r.VerificationCostUSD, 6))
}

// RenderHistory prints the visible history list.
func RenderHistory(out io.Writer, view domain.HistoryView, now time.Time) {
	if !view.Visible {
		MutedColor.Fprintln(out, "History hidden.")
		return
	}
	if len(view.Entries) == 0 {
		fmt.Fprintln(out, "No previous chats.")
		return
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tMODEL\tQUALITY\tCOST\tQUESTION")
	for _, e := range view.Entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			FormatHistoryDate(e, now), e.Model, FormatFraction(e.Quality), FormatUSD(e.Cost, 6), Truncate(e.Question, 60))
	}
	tw.Flush()
}

// RenderDashboard prints a snapshot; mock data is labelled.
func RenderDashboard(out io.Writer, snap domain.DashboardSnapshot) {
	TitleColor.Fprintln(out, "ModelScout dashboard")
	if snap.Mock {
		WarningColor.Fprintln(out, "Backend unreachable, showing demo data.")
	}
	s := snap.Stats
	fmt.Fprintf(out, "Prompts: %d  Total cost: %s  Avg quality: %.1f  Savings: %s\n",
		s.TotalPrompts, FormatUSD(s.TotalCost, 4), s.AvgQuality, FormatPercent(s.CostSavings))

	if r := snap.Recommendation; r != nil {
		fmt.Fprintln(out)
		InfoColor.Fprintf(out, "Recommendation: %s -> %s (%s cost, %s quality, %s confidence)\n",
			r.CurrentModel, r.RecommendedModel, FormatPercent(r.CostReductionPercent),
			FormatSignedPercent(r.QualityImpactPercent), FormatFraction(domain.NormalizeConfidence(r.ConfidenceScore)))
		if r.Reasoning != "" {
			MutedColor.Fprintln(out, r.Reasoning)
		}
	}

	q := snap.QualityScores
	fmt.Fprintf(out, "\nQuality: accuracy %.0f  helpfulness %.0f  clarity %.0f  completeness %.0f\n",
		q.Accuracy, q.Helpfulness, q.Clarity, q.Completeness)

	if len(snap.Models) > 0 {
		fmt.Fprintln(out)
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "MODEL\tAVG COST\tAVG QUALITY\tAVG LATENCY\tSUCCESS\tPROMPTS")
		for _, m := range snap.Models {
			fmt.Fprintf(tw, "%s\t%s\t%.1f\t%s\t%s\t%d\n",
				m.Name, FormatUSD(m.AvgCost, 6), m.AvgQuality, FormatLatency(m.AvgLatency), FormatPercent(m.SuccessRate), m.Prompts)
		}
		tw.Flush()
	}

	if len(snap.Activities) > 0 {
		fmt.Fprintln(out, "\nRecent activity:")
		for _, a := range snap.Activities {
			fmt.Fprintf(out, "  %-8s %s (%s)\n", a.Type, a.Message, a.Time)
		}
	}
}

// RenderDoctorReport prints one line per check.
func RenderDoctorReport(out io.Writer, report domain.HealthReport) {
	for _, check := range report.Checks {
		c := SuccessColor
		switch check.Status {
		case domain.HealthWarn:
			c = WarningColor
		case domain.HealthError:
			c = ErrorColor
		}
		c.Fprintf(out, "[%s]", strings.ToUpper(string(check.Status)))
		fmt.Fprintf(out, " %s - %s\n", check.Name, check.Details)
	}
}
