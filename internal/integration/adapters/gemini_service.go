// Package adapters provides implementations for external service integrations.
package adapters

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/realtytrack/backend/internal/application/adapter"
	domainerror "github.com/realtytrack/backend/internal/domain/error"
)

// GeminiService implements adapter.LanguageModel using the Gemini API client.
type GeminiService struct {
	apiKey    string
	modelName string
	timeout   time.Duration
}

// NewGeminiService creates a new Gemini service instance.
func NewGeminiService(apiKey, modelName string, timeout time.Duration) *GeminiService {
	return &GeminiService{
		apiKey:    apiKey,
		modelName: modelName,
		timeout:   timeout,
	}
}

// IsAvailable checks if the Gemini service is available and properly configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// Name returns the model identifier.
func (s *GeminiService) Name() string {
	return "gemini/" + s.modelName
}

// Generate sends the prompt and returns the concatenated text parts of the
// first candidate.
func (s *GeminiService) Generate(ctx context.Context, request *adapter.GenerateRequest) (string, error) {
	if !s.IsAvailable() {
		return "", domainerror.ErrAIServiceNotConfigured
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	// Create client
	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	if request.Temperature != nil {
		model.SetTemperature(*request.Temperature)
	}
	if request.Schema != nil {
		model.ResponseMIMEType = "application/json"
		model.ResponseSchema = toGeminiSchema(request.Schema)
	}

	resp, err := model.GenerateContent(ctx, genai.Text(request.Prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return geminiText(resp), nil
}

// toGeminiSchema maps a response schema onto the client's schema type.
func toGeminiSchema(schema *adapter.ResponseSchema) *genai.Schema {
	if schema == nil {
		return nil
	}

	out := &genai.Schema{
		Enum:     schema.Enum,
		Required: schema.Required,
	}
	switch schema.Type {
	case adapter.SchemaTypeObject:
		out.Type = genai.TypeObject
	case adapter.SchemaTypeNumber:
		out.Type = genai.TypeNumber
	default:
		out.Type = genai.TypeString
	}

	if len(schema.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(schema.Properties))
		for name, prop := range schema.Properties {
			out.Properties[name] = toGeminiSchema(prop)
		}
	}
	return out
}

// geminiText joins the text parts of the first candidate. A response without
// candidates yields an empty string.
func geminiText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}
