package backend

import (
	"encoding/json"
	"fmt"

	"github.com/doeshing/modelscout/internal/domain"
)

type loginRequest struct {
	Username string `json:"username"`
}

type loginResponse struct {
	SessionID string            `json:"session_id"`
	UserID    string            `json:"user_id"`
	Username  string            `json:"username"`
	History   []json.RawMessage `json:"history,omitempty"`
}

// toDomain rejects a reply that could never authenticate a later request.
func (r loginResponse) toDomain() (domain.LoginResult, error) {
	if r.SessionID == "" || r.UserID == "" {
		return domain.LoginResult{}, &domain.TransportError{Op: "login", Err: fmt.Errorf("login response missing session")}
	}
	return domain.LoginResult{
		Session: domain.Session{
			Token:       r.SessionID,
			UserID:      r.UserID,
			DisplayName: r.Username,
		},
		HistoryCount: len(r.History),
	}, nil
}

type logoutRequest struct {
	SessionID string `json:"session_id"`
}

type historyResponse struct {
	Chats []domain.HistoryEntry `json:"chats"`
}

type analyzeRequest struct {
	Prompt string `json:"prompt"`
	UserID string `json:"user_id"`
}

type modelResult struct {
	ModelName       string             `json:"model_name"`
	QualityScore    float64            `json:"quality_score"`
	Cost            float64            `json:"cost"`
	LatencyMs       float64            `json:"latency_ms"`
	Response        string             `json:"response"`
	Success         bool               `json:"success"`
	DimensionScores map[string]float64 `json:"dimension_scores,omitempty"`
}

func (m modelResult) toDomain() domain.ModelResult {
	return domain.ModelResult{
		ModelName:       m.ModelName,
		QualityScore:    m.QualityScore,
		Cost:            m.Cost,
		LatencyMs:       m.LatencyMs,
		Response:        m.Response,
		Success:         m.Success,
		DimensionScores: m.DimensionScores,
	}
}

func convertModels(in []modelResult) []domain.ModelResult {
	if len(in) == 0 {
		return nil
	}
	out := make([]domain.ModelResult, 0, len(in))
	for _, m := range in {
		out = append(out, m.toDomain())
	}
	return out
}

// analysisResponse is the union of the /analyze and /auto payloads.
type analysisResponse struct {
	Status string `json:"status"`
	Mode   string `json:"mode"`
	Error  string `json:"error"`

	UseCase              string        `json:"use_case"`
	RecommendedModel     string        `json:"recommended_model"`
	Reasoning            string        `json:"reasoning"`
	CostSavingsPercent   float64       `json:"cost_savings_percent"`
	QualityImpactPercent float64       `json:"quality_impact_percent"`
	Models               []modelResult `json:"models"`
	Timestamp            string        `json:"timestamp"`

	OriginalQuestion string  `json:"original_question"`
	CachedFrom       string  `json:"cached_from"`
	Message          string  `json:"message"`
	QualityScore     float64 `json:"quality_score"`
	FallbackNote     string  `json:"fallback_note"`

	Answer               string        `json:"answer"`
	ModelUsed            string        `json:"model_used"`
	ModelSelectionReason string        `json:"model_selection_reason"`
	Summary              autoSummary   `json:"summary"`
	Alternatives         []alternative `json:"alternatives"`
}

type autoSummary struct {
	Quality struct {
		Score float64 `json:"score"`
		Level string  `json:"level"`
	} `json:"quality"`
	Cost struct {
		Amount float64 `json:"amount"`
		Level  string  `json:"level"`
	} `json:"cost"`
	LatencyMs    float64 `json:"latency_ms"`
	OverallScore float64 `json:"overall_score"`
}

type alternative struct {
	Model string  `json:"model"`
	Score float64 `json:"score"`
}

// toDomain discriminates on the status and mode markers only.
func (r analysisResponse) toDomain(requested domain.Mode) (domain.AnalysisResult, error) {
	switch {
	case r.Status == "error":
		return domain.AnalysisResult{}, &domain.BackendError{Op: "analyze", Status: 200, Message: r.Error}
	case r.Status == "cached":
		return domain.AnalysisResult{Kind: domain.ResultCached, Cached: &domain.CachedAnalysis{
			FreshAnalysis:    r.fresh(),
			OriginalQuestion: r.OriginalQuestion,
			CachedFrom:       r.CachedFrom,
			Message:          r.Message,
			QualityScore:     r.QualityScore,
			FallbackNote:     r.FallbackNote,
		}}, nil
	case r.Mode == string(domain.ModeAuto) && requested == domain.ModeAuto:
		return domain.AnalysisResult{Kind: domain.ResultAuto, Auto: r.auto()}, nil
	default:
		fresh := r.fresh()
		return domain.AnalysisResult{Kind: domain.ResultFresh, Fresh: &fresh}, nil
	}
}

func (r analysisResponse) fresh() domain.FreshAnalysis {
	return domain.FreshAnalysis{
		UseCase:              r.UseCase,
		RecommendedModel:     r.RecommendedModel,
		Reasoning:            r.Reasoning,
		CostSavingsPercent:   r.CostSavingsPercent,
		QualityImpactPercent: r.QualityImpactPercent,
		Models:               convertModels(r.Models),
		Timestamp:            r.Timestamp,
	}
}

func (r analysisResponse) auto() *domain.AutoAnswer {
	answer := &domain.AutoAnswer{
		ModelUsed:            r.ModelUsed,
		Answer:               r.Answer,
		ModelSelectionReason: r.ModelSelectionReason,
		UseCase:              r.UseCase,
		Summary: domain.AutoSummary{
			Quality:      domain.ScoreLevel{Score: r.Summary.Quality.Score, Level: r.Summary.Quality.Level},
			Cost:         domain.AmountLevel{Amount: r.Summary.Cost.Amount, Level: r.Summary.Cost.Level},
			LatencyMs:    r.Summary.LatencyMs,
			OverallScore: r.Summary.OverallScore,
		},
	}
	for _, alt := range r.Alternatives {
		answer.Alternatives = append(answer.Alternatives, domain.Alternative{Model: alt.Model, Score: alt.Score})
	}
	return answer
}

type optimizeRequest struct {
	UserID string `json:"user_id"`
}

type optimizeResponse struct {
	Status    string `json:"status"`
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`

	Summary               string          `json:"summary"`
	Recommendation        *recommendation `json:"recommendation"`
	Models                []modelResult   `json:"models"`
	ProcessingTimeSeconds float64         `json:"processing_time_seconds"`
	VerificationCostUSD   float64         `json:"verification_cost_usd"`

	Reason       string `json:"reason"`
	Suggestion   string `json:"suggestion"`
	CurrentModel string `json:"current_model"`
}

type recommendation struct {
	CurrentModel                  string  `json:"current_model"`
	RecommendedModel              string  `json:"recommended_model"`
	RecommendedModelDisplay       string  `json:"recommended_model_display"`
	ProjectedCostSavingPercent    float64 `json:"projected_cost_saving_percent"`
	ProjectedQualityImpactPercent float64 `json:"projected_quality_impact_percent"`
	Confidence                    float64 `json:"confidence"`
	BusinessImpact                struct {
		MonthlyRequestVolume       int     `json:"monthly_request_volume"`
		CurrentMonthlyCostUSD      float64 `json:"current_monthly_cost_usd"`
		ProjectedMonthlyCostUSD    float64 `json:"projected_monthly_cost_usd"`
		ProjectedMonthlySavingsUSD float64 `json:"projected_monthly_savings_usd"`
		AnnualSavingsUSD           float64 `json:"annual_savings_usd"`
	} `json:"business_impact"`
	Reasons  []string `json:"reasons"`
	Fallback *struct {
		Model                string  `json:"model"`
		CostSavingPercent    float64 `json:"cost_saving_percent"`
		QualityImpactPercent float64 `json:"quality_impact_percent"`
	} `json:"fallback_option"`
}

func (r optimizeResponse) toDomain() (domain.OptimizationRecommendation, error) {
	out := domain.OptimizationRecommendation{
		Status:    domain.OptimizationStatus(r.Status),
		Timestamp: r.Timestamp,
	}
	switch out.Status {
	case domain.OptimizationSuccess:
		if r.Recommendation == nil {
			return domain.OptimizationRecommendation{}, &domain.TransportError{Op: "optimize", Err: fmt.Errorf("success response without recommendation")}
		}
		out.Success = r.recommendation()
	case domain.OptimizationNoRecommendation:
		out.NoRecommendation = &domain.NoRecommendation{
			Reason:       r.Reason,
			Suggestion:   r.Suggestion,
			CurrentModel: r.CurrentModel,
		}
	case domain.OptimizationError:
		out.Error = r.Error
	default:
		return domain.OptimizationRecommendation{}, &domain.TransportError{Op: "optimize", Err: fmt.Errorf("unknown status %q", r.Status)}
	}
	return out, nil
}

func (r optimizeResponse) recommendation() *domain.Recommendation {
	src := r.Recommendation
	rec := &domain.Recommendation{
		CurrentModel:                  src.CurrentModel,
		RecommendedModel:              src.RecommendedModel,
		RecommendedModelDisplay:       src.RecommendedModelDisplay,
		ProjectedCostSavingPercent:    src.ProjectedCostSavingPercent,
		ProjectedQualityImpactPercent: src.ProjectedQualityImpactPercent,
		Confidence:                    domain.NormalizeConfidence(src.Confidence),
		BusinessImpact: domain.BusinessImpact{
			MonthlyRequestVolume:       src.BusinessImpact.MonthlyRequestVolume,
			CurrentMonthlyCostUSD:      src.BusinessImpact.CurrentMonthlyCostUSD,
			ProjectedMonthlyCostUSD:    src.BusinessImpact.ProjectedMonthlyCostUSD,
			ProjectedMonthlySavingsUSD: src.BusinessImpact.ProjectedMonthlySavingsUSD,
			AnnualSavingsUSD:           src.BusinessImpact.AnnualSavingsUSD,
		},
		Reasons:               src.Reasons,
		Models:                convertModels(r.Models),
		Summary:               r.Summary,
		ProcessingTimeSeconds: r.ProcessingTimeSeconds,
		VerificationCostUSD:   r.VerificationCostUSD,
	}
	if src.Fallback != nil {
		rec.Fallback = &domain.FallbackOption{
			Model:                src.Fallback.Model,
			CostSavingPercent:    src.Fallback.CostSavingPercent,
			QualityImpactPercent: src.Fallback.QualityImpactPercent,
		}
	}
	return rec
}
