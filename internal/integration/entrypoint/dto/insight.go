// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/realtytrack/backend/internal/application/usecase/insight"
)

// GenerateInsightsRequest represents the request body for an insight. An
// empty range means month.
type GenerateInsightsRequest struct {
	Range string `json:"range,omitempty"`
}

// InsightResponse represents a generated insight.
type InsightResponse struct {
	Range   string `json:"range"`
	Insight string `json:"insight"`
}

// CategorySuggestionRequest represents the request body for a category suggestion.
type CategorySuggestionRequest struct {
	Note string `json:"note"`
}

// SuggestionResponse represents a suggested category.
type SuggestionResponse struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Type        string `json:"type"`
}

// CategorySuggestionResponse carries a null suggestion when none is available.
type CategorySuggestionResponse struct {
	Suggestion *SuggestionResponse `json:"suggestion"`
}

// ToInsightResponse converts a GenerateInsightsOutput to InsightResponse.
func ToInsightResponse(output *insight.GenerateInsightsOutput) InsightResponse {
	return InsightResponse{
		Range:   string(output.Range),
		Insight: output.Insight,
	}
}

// ToCategorySuggestionResponse converts a SuggestCategoryOutput to CategorySuggestionResponse.
func ToCategorySuggestionResponse(output *insight.SuggestCategoryOutput) CategorySuggestionResponse {
	if output == nil || output.Suggestion == nil {
		return CategorySuggestionResponse{}
	}
	return CategorySuggestionResponse{
		Suggestion: &SuggestionResponse{
			Category:    output.Suggestion.Category,
			Subcategory: output.Suggestion.Subcategory,
			Type:        string(output.Suggestion.Type),
		},
	}
}
