package domain

// OptimizationStatus tags the variant of an OptimizationRecommendation.
type OptimizationStatus string

const (
	OptimizationSuccess          OptimizationStatus = "success"
	OptimizationNoRecommendation OptimizationStatus = "no_recommendation"
	OptimizationError            OptimizationStatus = "error"
)

// OptimizationRecommendation is a tagged union keyed by Status.
type OptimizationRecommendation struct {
	Status           OptimizationStatus
	Success          *Recommendation
	NoRecommendation *NoRecommendation
	Error            string
	Timestamp        string
}

// Recommendation is a concrete model-switch proposal.
type Recommendation struct {
	CurrentModel                  string
	RecommendedModel              string
	RecommendedModelDisplay       string
	ProjectedCostSavingPercent    float64
	ProjectedQualityImpactPercent float64
	// Confidence is a fraction in [0,1].
	Confidence     float64
	BusinessImpact BusinessImpact
	Reasons        []string
	Fallback       *FallbackOption
	Models         []ModelResult
	Summary        string

	ProcessingTimeSeconds float64
	VerificationCostUSD   float64
}

// DisplayModel prefers the human readable model name.
func (r Recommendation) DisplayModel() string {
	if r.RecommendedModelDisplay != "" {
		return r.RecommendedModelDisplay
	}
	return r.RecommendedModel
}

// BusinessImpact projects the monthly effect of switching.
type BusinessImpact struct {
	MonthlyRequestVolume       int
	CurrentMonthlyCostUSD      float64
	ProjectedMonthlyCostUSD    float64
	ProjectedMonthlySavingsUSD float64
	AnnualSavingsUSD           float64
}

// FallbackOption is the second-best acceptable candidate.
type FallbackOption struct {
	Model                string
	CostSavingPercent    float64
	QualityImpactPercent float64
}

// NoRecommendation means the current model is already the best fit.
type NoRecommendation struct {
	Reason       string
	Suggestion   string
	CurrentModel string
}

// NormalizeConfidence maps a fraction or a percentage onto [0,1].
func NormalizeConfidence(v float64) float64 {
	if v > 1 {
		v /= 100
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// OptimizerState is a state of the optimization runner.
type OptimizerState string

const (
	OptimizerIdle       OptimizerState = "idle"
	OptimizerOptimizing OptimizerState = "optimizing"
	OptimizerSettled    OptimizerState = "settled"
	OptimizerFailed     OptimizerState = "failed"
)

// OptimizerSnapshot is an immutable view of the runner.
type OptimizerSnapshot struct {
	State  OptimizerState
	Result *OptimizationRecommendation
	Error  string
}
