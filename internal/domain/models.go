package domain

import "strings"

var knowledgeCutoffs = map[string]string{
	"gpt-4o":            "April 2024",
	"gpt-4-turbo":       "April 2024",
	"gpt-3.5-turbo":     "April 2023",
	"claude-3-5-sonnet": "June 2024",
	"claude-3-opus":     "February 2024",
	"llama-2-70b":       "July 2023",
	"mistral-7b":        "December 2023",
	"command-r":         "March 2024",
	"palm-2":            "December 2023",
}

// KnowledgeCutoff returns the training cutoff for a known model, or "Unknown".
func KnowledgeCutoff(model string) string {
	if cutoff, ok := knowledgeCutoffs[strings.ToLower(strings.TrimSpace(model))]; ok {
		return cutoff
	}
	return "Unknown"
}

// UseCaseCategory groups a backend use-case label for display.
type UseCaseCategory string

const (
	UseCaseCode     UseCaseCategory = "code"
	UseCaseSecurity UseCaseCategory = "security"
	UseCaseCreative UseCaseCategory = "creative"
	UseCaseGeneral  UseCaseCategory = "general"
	UseCaseUnknown  UseCaseCategory = "unknown"
)

// CategorizeUseCase maps a free-form use case onto a display category.
func CategorizeUseCase(useCase string) UseCaseCategory {
	lower := strings.ToLower(useCase)
	switch {
	case lower == "":
		return UseCaseUnknown
	case strings.Contains(lower, "code"):
		return UseCaseCode
	case strings.Contains(lower, "security"):
		return UseCaseSecurity
	case strings.Contains(lower, "creative"):
		return UseCaseCreative
	default:
		return UseCaseGeneral
	}
}
