package insight

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/realtytrack/backend/internal/application/adapter"
	"github.com/realtytrack/backend/internal/domain/entity"
	domainerror "github.com/realtytrack/backend/internal/domain/error"
)

type fakeModel struct {
	available bool
	text      string
	err       error
	requests  []*adapter.GenerateRequest
}

func (f *fakeModel) Generate(_ context.Context, request *adapter.GenerateRequest) (string, error) {
	f.requests = append(f.requests, request)
	return f.text, f.err
}

func (f *fakeModel) IsAvailable() bool { return f.available }
func (f *fakeModel) Name() string      { return "fake" }

type staticSource []*entity.Transaction

func (s staticSource) Snapshot() []*entity.Transaction { return s }

type recordingMetrics struct {
	adapter.NopMetrics
	outcomes []string
}

func (m *recordingMetrics) ObserveAIRequest(_ string, outcome string, _ time.Duration) {
	m.outcomes = append(m.outcomes, outcome)
}

func tx(date, amount string, txType entity.TransactionType, category, subcategory string) *entity.Transaction {
	d, err := time.Parse(entity.DateLayout, date)
	if err != nil {
		panic(err)
	}
	return &entity.Transaction{
		ID:          uuid.New(),
		Date:        d,
		Amount:      decimal.RequireFromString(amount),
		Type:        txType,
		Category:    category,
		Subcategory: subcategory,
	}
}

var clock = adapter.ClockFunc(func() time.Time {
	return time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
})

func testRegistry(t *testing.T) *entity.CategoryRegistry {
	t.Helper()
	registry, err := entity.NewCategoryRegistry([]entity.CategoryDefinition{
		{Name: "Galaxy", Subcategories: []string{"Capital Investment", "Labor Cost", "Other"}, Project: true},
		{Name: "Varaj Vihar", Subcategories: []string{"Capital Investment", "Labor Cost"}, Project: true},
		{Name: "Insurance", Subcategories: []string{"Mediclaim", "LIC Policy"}},
	})
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	return registry
}

func TestGenerateInsightsUseCase(t *testing.T) {
	source := staticSource{
		tx("2024-03-10", "1200", entity.TransactionTypeIncome, "Galaxy", "Capital Investment"),
		tx("2024-03-12", "500", entity.TransactionTypeExpense, "Galaxy", "Labor Cost"),
	}

	tests := []struct {
		name        string
		source      staticSource
		model       *fakeModel
		want        string
		wantCalls   int
		wantOutcome string
	}{
		{
			name:      "empty ledger skips the model",
			source:    staticSource{},
			model:     &fakeModel{available: true, text: "unused"},
			want:      NoTransactionsMessage,
			wantCalls: 0,
		},
		{
			name:        "model text is returned verbatim",
			source:      source,
			model:       &fakeModel{available: true, text: "### Summary\n**1200** in"},
			want:        "### Summary\n**1200** in",
			wantCalls:   1,
			wantOutcome: outcomeOK,
		},
		{
			name:        "empty model text",
			source:      source,
			model:       &fakeModel{available: true, text: "  "},
			want:        EmptyInsightMessage,
			wantCalls:   1,
			wantOutcome: outcomeOK,
		},
		{
			name:        "model failure",
			source:      source,
			model:       &fakeModel{available: true, err: errors.New("429 quota exceeded")},
			want:        InsightErrorMessage,
			wantCalls:   1,
			wantOutcome: ErrCodeAIRateLimited,
		},
		{
			name:        "model not configured",
			source:      source,
			model:       &fakeModel{available: false},
			want:        InsightErrorMessage,
			wantCalls:   0,
			wantOutcome: ErrCodeAINotConfigured,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics := &recordingMetrics{}
			uc := NewGenerateInsightsUseCase(tt.source, tt.model, clock, metrics)

			got, err := uc.Execute(context.Background(), GenerateInsightsInput{Range: entity.ReportRangeMonth})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Insight != tt.want {
				t.Errorf("Insight = %q, want %q", got.Insight, tt.want)
			}
			if len(tt.model.requests) != tt.wantCalls {
				t.Errorf("model called %d times, want %d", len(tt.model.requests), tt.wantCalls)
			}
			if tt.wantOutcome != "" && (len(metrics.outcomes) != 1 || metrics.outcomes[0] != tt.wantOutcome) {
				t.Errorf("outcomes = %v, want [%s]", metrics.outcomes, tt.wantOutcome)
			}
		})
	}
}

func TestGenerateInsightsUseCase_InvalidRange(t *testing.T) {
	uc := NewGenerateInsightsUseCase(staticSource{}, &fakeModel{}, clock, nil)

	_, err := uc.Execute(context.Background(), GenerateInsightsInput{Range: "week"})
	if !errors.Is(err, domainerror.ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}

func TestGenerateInsightsUseCase_PromptCarriesPayload(t *testing.T) {
	model := &fakeModel{available: true, text: "ok"}
	source := staticSource{
		tx("2024-03-10", "1200", entity.TransactionTypeIncome, "Galaxy", "Capital Investment"),
	}
	uc := NewGenerateInsightsUseCase(source, model, clock, nil)

	if _, err := uc.Execute(context.Background(), GenerateInsightsInput{Range: entity.ReportRangeQuarter}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prompt := model.requests[0].Prompt
	for _, want := range []string{
		`"analysisPeriod": "quarter"`,
		`"startDate": "2023-12-15"`,
		`"income": 1200`,
		"sixMonthTrend",
		"selected period ('quarter')",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if model.requests[0].Schema != nil {
		t.Error("insight request must not ask for JSON output")
	}
}

func TestBuildPayload(t *testing.T) {
	source := []*entity.Transaction{
		tx("2024-03-10", "1200", entity.TransactionTypeIncome, "Galaxy", "Capital Investment"),
		tx("2024-03-12", "500.25", entity.TransactionTypeExpense, "Galaxy", "Labor Cost"),
		tx("2023-01-01", "10", entity.TransactionTypeExpense, "Insurance", "Mediclaim"),
	}

	payload, err := BuildPayload(source, entity.ReportRangeMonth, clock.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := payload.JSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded struct {
		AnalysisPeriod            string `json:"analysisPeriod"`
		StartDate                 string `json:"startDate"`
		TotalTransactionsInPeriod int    `json:"totalTransactionsInPeriod"`
		Breakdown                 map[string]struct {
			Income           float64            `json:"income"`
			Expense          float64            `json:"expense"`
			TopSubcategories map[string]float64 `json:"topSubcategories"`
		} `json:"breakdown"`
		SixMonthTrend map[string]struct {
			Net float64 `json:"net"`
		} `json:"sixMonthTrend"`
	}
	if err := json.Unmarshal([]byte(data), &decoded); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}

	if decoded.AnalysisPeriod != "month" || decoded.StartDate != "2024-03-01" {
		t.Errorf("period = %s from %s", decoded.AnalysisPeriod, decoded.StartDate)
	}
	if decoded.TotalTransactionsInPeriod != 2 {
		t.Errorf("TotalTransactionsInPeriod = %d, want 2", decoded.TotalTransactionsInPeriod)
	}
	if _, ok := decoded.Breakdown["Insurance"]; ok {
		t.Error("transaction outside the period was included")
	}
	if got := decoded.Breakdown["Galaxy"].TopSubcategories["Labor Cost"]; got != 500.25 {
		t.Errorf("Labor Cost = %v, want 500.25", got)
	}
	if got := decoded.SixMonthTrend["2024-03"].Net; got != 699.75 {
		t.Errorf("2024-03 net = %v, want 699.75", got)
	}
}

func TestSuggestCategoryUseCase(t *testing.T) {
	tests := []struct {
		name      string
		note      string
		model     *fakeModel
		want      *entity.CategorySuggestion
		wantCalls int
	}{
		{
			name:      "short note skips the model",
			note:      "  ab ",
			model:     &fakeModel{available: true},
			wantCalls: 0,
		},
		{
			name:      "valid suggestion",
			note:      "paid masons at galaxy site",
			model:     &fakeModel{available: true, text: `{"category":"Galaxy","subcategory":"Labor Cost","type":"EXPENSE"}`},
			want:      &entity.CategorySuggestion{Category: "Galaxy", Subcategory: "Labor Cost", Type: entity.TransactionTypeExpense},
			wantCalls: 1,
		},
		{
			name:      "fenced JSON",
			note:      "lic premium",
			model:     &fakeModel{available: true, text: "```json\n{\"category\":\"Insurance\",\"subcategory\":\"LIC Policy\",\"type\":\"EXPENSE\"}\n```"},
			want:      &entity.CategorySuggestion{Category: "Insurance", Subcategory: "LIC Policy", Type: entity.TransactionTypeExpense},
			wantCalls: 1,
		},
		{
			name:      "unknown subcategory falls back to first",
			note:      "varaj booking",
			model:     &fakeModel{available: true, text: `{"category":"Varaj Vihar","subcategory":"Bookings","type":"INCOME"}`},
			want:      &entity.CategorySuggestion{Category: "Varaj Vihar", Subcategory: "Capital Investment", Type: entity.TransactionTypeIncome},
			wantCalls: 1,
		},
		{
			name:      "unknown category",
			note:      "groceries",
			model:     &fakeModel{available: true, text: `{"category":"Food","subcategory":"Groceries","type":"EXPENSE"}`},
			wantCalls: 1,
		},
		{
			name:      "invalid type",
			note:      "galaxy misc",
			model:     &fakeModel{available: true, text: `{"category":"Galaxy","subcategory":"Other","type":"TRANSFER"}`},
			wantCalls: 1,
		},
		{
			name:      "malformed JSON",
			note:      "galaxy misc",
			model:     &fakeModel{available: true, text: `category: Galaxy`},
			wantCalls: 1,
		},
		{
			name:      "model failure",
			note:      "galaxy misc",
			model:     &fakeModel{available: true, err: errors.New("connection reset")},
			wantCalls: 1,
		},
		{
			name:      "model not configured",
			note:      "galaxy misc",
			model:     &fakeModel{available: false},
			wantCalls: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewSuggestCategoryUseCase(tt.model, testRegistry(t), nil)

			got, err := uc.Execute(context.Background(), SuggestCategoryInput{Note: tt.note})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(tt.model.requests) != tt.wantCalls {
				t.Errorf("model called %d times, want %d", len(tt.model.requests), tt.wantCalls)
			}

			switch {
			case tt.want == nil && got.Suggestion != nil:
				t.Errorf("expected no suggestion, got %+v", got.Suggestion)
			case tt.want != nil && got.Suggestion == nil:
				t.Errorf("expected %+v, got none", tt.want)
			case tt.want != nil && *got.Suggestion != *tt.want:
				t.Errorf("got %+v, want %+v", got.Suggestion, tt.want)
			}
		})
	}
}

func TestSuggestCategoryUseCase_Request(t *testing.T) {
	model := &fakeModel{available: true, text: `{"category":"Galaxy","subcategory":"Other","type":"EXPENSE"}`}
	uc := NewSuggestCategoryUseCase(model, testRegistry(t), nil)

	if _, err := uc.Execute(context.Background(), SuggestCategoryInput{Note: "cement for galaxy"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := model.requests[0]
	if req.Schema == nil || req.Schema.Type != adapter.SchemaTypeObject {
		t.Fatal("suggestion request must carry an object schema")
	}
	if got := req.Schema.Properties["type"].Enum; len(got) != 2 {
		t.Errorf("type enum = %v", got)
	}
	for _, want := range []string{
		`"cement for galaxy"`,
		"Galaxy: [Capital Investment, Labor Cost, Other]",
		"Insurance: [Mediclaim, LIC Policy]",
		`"Galaxy", "Varaj Vihar"`,
	} {
		if !strings.Contains(req.Prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "deadline", err: context.DeadlineExceeded, want: ErrCodeAITimeout},
		{name: "wrapped cancel", err: errors.Join(errors.New("generate"), context.Canceled), want: ErrCodeAITimeout},
		{name: "circuit open", err: domainerror.ErrAICircuitOpen, want: ErrCodeAIServiceUnavailable},
		{name: "not configured", err: domainerror.ErrAIServiceNotConfigured, want: ErrCodeAINotConfigured},
		{name: "empty response", err: domainerror.ErrAIEmptyResponse, want: ErrCodeAIParseError},
		{name: "invalid suggestion", err: domainerror.ErrAIInvalidSuggestion, want: ErrCodeAIInvalidSuggestion},
		{name: "rate limit", err: errors.New("googleapi: Error 429: Resource exhausted"), want: ErrCodeAIRateLimited},
		{name: "bad key", err: errors.New("API key not valid. Please pass a valid API key."), want: ErrCodeAIAuthError},
		{name: "forbidden", err: errors.New("403 forbidden"), want: ErrCodeAIAuthError},
		{name: "unavailable", err: errors.New("rpc error: code = Unavailable"), want: ErrCodeAIServiceUnavailable},
		{name: "parse", err: errors.New("failed to parse suggestion JSON"), want: ErrCodeAIParseError},
		{name: "unknown", err: errors.New("something odd"), want: ErrCodeAIUnknownError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyError(tt.err); got != tt.want {
				t.Errorf("classifyError(%v) = %s, want %s", tt.err, got, tt.want)
			}
		})
	}
}
