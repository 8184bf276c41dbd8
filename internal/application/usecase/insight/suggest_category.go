package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/realtytrack/backend/internal/application/adapter"
	"github.com/realtytrack/backend/internal/domain/entity"
	domainerror "github.com/realtytrack/backend/internal/domain/error"
)

// MinNoteLength is the shortest trimmed note that is sent for a suggestion.
const MinNoteLength = 3

// SuggestCategoryInput represents the input for a category suggestion.
type SuggestCategoryInput struct {
	Note string
}

// SuggestCategoryOutput holds the validated suggestion, nil when there is none.
type SuggestCategoryOutput struct {
	Suggestion *entity.CategorySuggestion
}

// SuggestCategoryUseCase asks the language model to classify a free-text note.
type SuggestCategoryUseCase struct {
	model    adapter.LanguageModel
	registry *entity.CategoryRegistry
	metrics  adapter.MetricsRecorder
}

// NewSuggestCategoryUseCase creates a new SuggestCategoryUseCase instance.
func NewSuggestCategoryUseCase(
	model adapter.LanguageModel,
	registry *entity.CategoryRegistry,
	metrics adapter.MetricsRecorder,
) *SuggestCategoryUseCase {
	if metrics == nil {
		metrics = adapter.NopMetrics{}
	}
	return &SuggestCategoryUseCase{
		model:    model,
		registry: registry,
		metrics:  metrics,
	}
}

// Execute returns a suggestion for the note. Every failure yields an empty
// output and no error.
func (uc *SuggestCategoryUseCase) Execute(ctx context.Context, input SuggestCategoryInput) (*SuggestCategoryOutput, error) {
	const operation = "suggest_category"

	output := &SuggestCategoryOutput{}
	if utf8.RuneCountInString(strings.TrimSpace(input.Note)) < MinNoteLength {
		return output, nil
	}
	if !uc.model.IsAvailable() {
		uc.metrics.ObserveAIRequest(operation, ErrCodeAINotConfigured, 0)
		slog.Debug("Category suggestion skipped, language model not configured")
		return output, nil
	}

	start := time.Now()
	text, err := uc.model.Generate(ctx, &adapter.GenerateRequest{
		Prompt: buildSuggestionPrompt(input.Note, uc.registry),
		Schema: suggestionSchema(),
	})
	elapsed := time.Since(start)
	if err == nil {
		output.Suggestion, err = parseSuggestion(text, uc.registry)
	}

	if err != nil {
		code := classifyError(err)
		uc.metrics.ObserveAIRequest(operation, code, elapsed)
		slog.Warn("Category suggestion failed",
			"model", uc.model.Name(),
			"code", code,
			"duration", elapsed,
			"error", err,
		)
		return &SuggestCategoryOutput{}, nil
	}

	uc.metrics.ObserveAIRequest(operation, outcomeOK, elapsed)
	return output, nil
}

type rawSuggestion struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Type        string `json:"type"`
}

// parseSuggestion decodes a model answer and validates it against the registry.
// A wrong subcategory is repaired with the category's first one; anything
// else invalid is rejected.
func parseSuggestion(text string, registry *entity.CategoryRegistry) (*entity.CategorySuggestion, error) {
	text = cleanJSON(text)
	if text == "" {
		return nil, domainerror.ErrAIEmptyResponse
	}

	var raw rawSuggestion
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse suggestion JSON: %w", err)
	}

	def, subcategory, ok := registry.Resolve(raw.Category, raw.Subcategory)
	if !ok {
		return nil, fmt.Errorf("%w: unknown category %q", domainerror.ErrAIInvalidSuggestion, raw.Category)
	}

	txType := entity.TransactionType(raw.Type)
	if !txType.IsValid() {
		return nil, fmt.Errorf("%w: invalid type %q", domainerror.ErrAIInvalidSuggestion, raw.Type)
	}

	return &entity.CategorySuggestion{
		Category:    def.Name,
		Subcategory: subcategory,
		Type:        txType,
	}, nil
}

// cleanJSON removes markdown code fences around a JSON answer.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
