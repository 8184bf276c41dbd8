package adapters

import (
	"context"
	"fmt"
	"sync"
	"time"

	googlegenai "google.golang.org/genai"

	"github.com/realtytrack/backend/internal/application/adapter"
	domainerror "github.com/realtytrack/backend/internal/domain/error"
)

// GenAIService implements adapter.LanguageModel using the unified Google Gen AI SDK.
// The client is created on first use and reused afterwards.
type GenAIService struct {
	apiKey    string
	modelName string
	timeout   time.Duration
	baseURL   string

	once      sync.Once
	client    *googlegenai.Client
	clientErr error
}

// GenAIOption customizes a GenAIService.
type GenAIOption func(*GenAIService)

// WithGenAIBaseURL points the client at another Gemini API endpoint, such as
// a proxy. Empty keeps the SDK default.
func WithGenAIBaseURL(baseURL string) GenAIOption {
	return func(s *GenAIService) {
		s.baseURL = baseURL
	}
}

// NewGenAIService creates a new GenAIService instance.
func NewGenAIService(apiKey, modelName string, timeout time.Duration, opts ...GenAIOption) *GenAIService {
	s := &GenAIService{
		apiKey:    apiKey,
		modelName: modelName,
		timeout:   timeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsAvailable checks if an API key is configured.
func (s *GenAIService) IsAvailable() bool {
	return s.apiKey != ""
}

// Name returns the model identifier.
func (s *GenAIService) Name() string {
	return "genai/" + s.modelName
}

// Generate sends the prompt and returns the response text.
func (s *GenAIService) Generate(ctx context.Context, request *adapter.GenerateRequest) (string, error) {
	if !s.IsAvailable() {
		return "", domainerror.ErrAIServiceNotConfigured
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	client, err := s.getClient(ctx)
	if err != nil {
		return "", err
	}

	resp, err := client.Models.GenerateContent(ctx, s.modelName, googlegenai.Text(request.Prompt), toGenAIConfig(request))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return resp.Text(), nil
}

func (s *GenAIService) getClient(ctx context.Context) (*googlegenai.Client, error) {
	s.once.Do(func() {
		s.client, s.clientErr = googlegenai.NewClient(ctx, &googlegenai.ClientConfig{
			APIKey:      s.apiKey,
			Backend:     googlegenai.BackendGeminiAPI,
			HTTPOptions: googlegenai.HTTPOptions{BaseURL: s.baseURL},
		})
		if s.clientErr != nil {
			s.clientErr = fmt.Errorf("failed to create genai client: %w", s.clientErr)
		}
	})
	return s.client, s.clientErr
}

// toGenAIConfig builds the generation config, nil when the request needs none.
func toGenAIConfig(request *adapter.GenerateRequest) *googlegenai.GenerateContentConfig {
	if request.Schema == nil && request.Temperature == nil {
		return nil
	}

	cfg := &googlegenai.GenerateContentConfig{
		Temperature: request.Temperature,
	}
	if request.Schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = toGenAISchema(request.Schema)
	}
	return cfg
}

func toGenAISchema(schema *adapter.ResponseSchema) *googlegenai.Schema {
	if schema == nil {
		return nil
	}

	out := &googlegenai.Schema{
		Enum:     schema.Enum,
		Required: schema.Required,
	}
	switch schema.Type {
	case adapter.SchemaTypeObject:
		out.Type = googlegenai.TypeObject
	case adapter.SchemaTypeNumber:
		out.Type = googlegenai.TypeNumber
	default:
		out.Type = googlegenai.TypeString
	}

	if len(schema.Properties) > 0 {
		out.Properties = make(map[string]*googlegenai.Schema, len(schema.Properties))
		for name, prop := range schema.Properties {
			out.Properties[name] = toGenAISchema(prop)
		}
	}
	return out
}
