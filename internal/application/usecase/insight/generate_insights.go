package insight

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/realtytrack/backend/internal/application/adapter"
	"github.com/realtytrack/backend/internal/application/usecase/dashboard"
	"github.com/realtytrack/backend/internal/domain/entity"
	domainerror "github.com/realtytrack/backend/internal/domain/error"
)

// Fallback texts returned in place of a model answer.
const (
	NoTransactionsMessage = "No transactions available for analysis."
	EmptyInsightMessage   = "Could not generate insights at this time."
	InsightErrorMessage   = "Error generating insights. Please try again later."
)

// GenerateInsightsInput represents the input for insight generation.
type GenerateInsightsInput struct {
	Range entity.ReportRange
}

// GenerateInsightsOutput represents the generated insight text.
type GenerateInsightsOutput struct {
	Range   entity.ReportRange
	Insight string // Markdown from the model, or one of the fallback texts
}

// GenerateInsightsUseCase asks the language model to analyze the ledger.
type GenerateInsightsUseCase struct {
	source  dashboard.TransactionSource
	model   adapter.LanguageModel
	clock   adapter.Clock
	metrics adapter.MetricsRecorder
}

// NewGenerateInsightsUseCase creates a new GenerateInsightsUseCase instance.
func NewGenerateInsightsUseCase(
	source dashboard.TransactionSource,
	model adapter.LanguageModel,
	clock adapter.Clock,
	metrics adapter.MetricsRecorder,
) *GenerateInsightsUseCase {
	if metrics == nil {
		metrics = adapter.NopMetrics{}
	}
	return &GenerateInsightsUseCase{
		source:  source,
		model:   model,
		clock:   clock,
		metrics: metrics,
	}
}

// Execute returns a textual analysis for the range. Model failures never
// surface as errors; only an unknown range does.
func (uc *GenerateInsightsUseCase) Execute(ctx context.Context, input GenerateInsightsInput) (*GenerateInsightsOutput, error) {
	if input.Range == "" {
		input.Range = entity.ReportRangeMonth
	}
	if !input.Range.IsValid() {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidRange,
			"range must be: month, quarter, or year",
			domainerror.ErrInvalidRange,
		)
	}

	output := &GenerateInsightsOutput{Range: input.Range}

	transactions := uc.source.Snapshot()
	if len(transactions) == 0 {
		output.Insight = NoTransactionsMessage
		return output, nil
	}

	payload, err := BuildPayload(transactions, input.Range, uc.clock.Now())
	if err != nil {
		return nil, err
	}
	data, err := payload.JSON()
	if err != nil {
		slog.Error("Failed to build insight payload", "error", err)
		output.Insight = InsightErrorMessage
		return output, nil
	}

	text, err := uc.generate(ctx, buildInsightPrompt(input.Range, data))
	switch {
	case err != nil:
		output.Insight = InsightErrorMessage
	case strings.TrimSpace(text) == "":
		output.Insight = EmptyInsightMessage
	default:
		output.Insight = text
	}
	return output, nil
}

func (uc *GenerateInsightsUseCase) generate(ctx context.Context, prompt string) (string, error) {
	const operation = "insight"

	if !uc.model.IsAvailable() {
		uc.metrics.ObserveAIRequest(operation, ErrCodeAINotConfigured, 0)
		slog.Warn("Insight requested but the language model is not configured", "model", uc.model.Name())
		return "", domainerror.ErrAIServiceNotConfigured
	}

	start := time.Now()
	text, err := uc.model.Generate(ctx, &adapter.GenerateRequest{Prompt: prompt})
	elapsed := time.Since(start)

	if err != nil {
		code := classifyError(err)
		uc.metrics.ObserveAIRequest(operation, code, elapsed)
		slog.Error("Insight generation failed",
			"model", uc.model.Name(),
			"code", code,
			"duration", elapsed,
			"error", err,
		)
		return "", err
	}

	uc.metrics.ObserveAIRequest(operation, outcomeOK, elapsed)
	slog.Info("Insight generated", "model", uc.model.Name(), "duration", elapsed, "length", len(text))
	return text, nil
}
