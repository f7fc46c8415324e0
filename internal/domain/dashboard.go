package domain

// DashboardSnapshot is the aggregate summary shown by the dashboard view.
// A snapshot is always replaced as a whole, never merged.
type DashboardSnapshot struct {
	Stats          DashboardStats           `json:"stats"`
	Recommendation *DashboardRecommendation `json:"recommendation,omitempty"`
	ChartData      []ChartPoint             `json:"chartData"`
	QualityScores  QualityBreakdown         `json:"qualityScores"`
	Models         []ModelStats             `json:"models"`
	Prompts        []PromptSummary          `json:"prompts"`
	Activities     []Activity               `json:"activities"`

	// Mock is set on the built-in fallback snapshot.
	Mock bool `json:"-"`
}

type DashboardStats struct {
	TotalPrompts int     `json:"totalPrompts"`
	TotalCost    float64 `json:"totalCost"`
	AvgQuality   float64 `json:"avgQuality"`
	CostSavings  float64 `json:"costSavings"`
}

type DashboardRecommendation struct {
	CurrentModel         string  `json:"current_model"`
	RecommendedModel     string  `json:"recommended_model"`
	CostReductionPercent float64 `json:"cost_reduction_percent"`
	QualityImpactPercent float64 `json:"quality_impact_percent"`
	ConfidenceScore      float64 `json:"confidence_score"`
	Reasoning            string  `json:"reasoning"`
}

type ChartPoint struct {
	Model      string  `json:"model"`
	Cost       float64 `json:"cost"`
	Quality    float64 `json:"quality"`
	Efficiency float64 `json:"efficiency"`
}

type QualityBreakdown struct {
	Accuracy     float64 `json:"accuracy"`
	Helpfulness  float64 `json:"helpfulness"`
	Clarity      float64 `json:"clarity"`
	Completeness float64 `json:"completeness"`
}

type ModelStats struct {
	Name        string  `json:"name"`
	AvgCost     float64 `json:"avgCost"`
	AvgQuality  float64 `json:"avgQuality"`
	AvgLatency  float64 `json:"avgLatency"`
	SuccessRate float64 `json:"successRate"`
	RefusalRate float64 `json:"refusalRate"`
	Prompts     int     `json:"prompts"`
}

type PromptSummary struct {
	ID        string  `json:"id"`
	Content   string  `json:"content"`
	BestModel string  `json:"bestModel"`
	Quality   float64 `json:"quality"`
	Cost      float64 `json:"cost"`
}

type Activity struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Time    string `json:"time"`
}

// MockSnapshot is the fixed demo snapshot used when the backend is unreachable.
// Each call returns a fresh value so callers cannot mutate a shared instance.
func MockSnapshot() DashboardSnapshot {
	return DashboardSnapshot{
		Mock: true,
		Stats: DashboardStats{
			TotalPrompts: 45,
			TotalCost:    0.0234,
			AvgQuality:   88.5,
			CostSavings:  42.3,
		},
		Recommendation: &DashboardRecommendation{
			CurrentModel:         "GPT-4o-mini",
			RecommendedModel:     "GPT-3.5-turbo",
			CostReductionPercent: 42.3,
			QualityImpactPercent: -3.2,
			ConfidenceScore:      0.87,
			Reasoning:            "Based on 45 prompts analyzed, switching to GPT-3.5-turbo reduces costs by 42.3% with only a 3.2% quality decrease.",
		},
		ChartData: []ChartPoint{
			{Model: "GPT-4o-mini", Cost: 0.000152, Quality: 90, Efficiency: 592},
			{Model: "GPT-3.5-turbo", Cost: 0.000087, Quality: 87, Efficiency: 1000},
		},
		QualityScores: QualityBreakdown{Accuracy: 92, Helpfulness: 88, Clarity: 86, Completeness: 89},
		Models: []ModelStats{
			{Name: "GPT-4o-mini", AvgCost: 0.000152, AvgQuality: 90, AvgLatency: 3500, SuccessRate: 100, Prompts: 25},
			{Name: "GPT-3.5-turbo", AvgCost: 0.000087, AvgQuality: 87, AvgLatency: 1200, SuccessRate: 100, Prompts: 20},
		},
		Prompts: []PromptSummary{
			{ID: "prompt_001", Content: "Explain quantum computing...", BestModel: "GPT-4o-mini", Quality: 92, Cost: 0.000152},
			{ID: "prompt_002", Content: "What is 2+2?", BestModel: "GPT-3.5-turbo", Quality: 100, Cost: 0.000037},
		},
		Activities: []Activity{
			{Type: "analysis", Message: "Analyzed 5 new prompts", Time: "2 minutes ago"},
			{Type: "recommendation", Message: "New optimization recommendation available", Time: "15 minutes ago"},
		},
	}
}
