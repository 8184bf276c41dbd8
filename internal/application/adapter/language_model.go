// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// SchemaType is the JSON type of a response schema node.
type SchemaType string

const (
	SchemaTypeObject SchemaType = "object"
	SchemaTypeString SchemaType = "string"
	SchemaTypeNumber SchemaType = "number"
)

// ResponseSchema constrains a structured (JSON) model answer.
type ResponseSchema struct {
	Type       SchemaType
	Properties map[string]*ResponseSchema
	Enum       []string
	Required   []string
}

// GenerateRequest represents a single prompt sent to the language model.
type GenerateRequest struct {
	Prompt string

	// Schema, when set, asks the model for a JSON answer matching it.
	Schema *ResponseSchema

	// Temperature overrides the model default when non-nil.
	Temperature *float32
}

// LanguageModel defines the interface to the external AI collaborator.
type LanguageModel interface {
	// Generate sends the prompt and returns the model's text answer.
	Generate(ctx context.Context, request *GenerateRequest) (string, error)

	// IsAvailable checks if the model is properly configured.
	IsAvailable() bool

	// Name returns the model identifier, used in logs and metrics.
	Name() string
}
