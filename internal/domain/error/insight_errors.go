// Package error defines domain-specific errors for the RealtyTrack application.
package error

import "errors"

// Insight domain errors. These never reach API clients as failures: the
// insight use cases turn them into fallback results and only log them.
var (
	// ErrAIServiceNotConfigured is returned when no API key is configured for the model.
	ErrAIServiceNotConfigured = errors.New("ai service is not configured")

	// ErrAIEmptyResponse is returned when the model answers with no text.
	ErrAIEmptyResponse = errors.New("empty response from ai service")

	// ErrAIInvalidSuggestion is returned when a category suggestion does not validate against the registry.
	ErrAIInvalidSuggestion = errors.New("ai suggestion does not match the category registry")

	// ErrAICircuitOpen is returned while the model circuit breaker rejects calls.
	ErrAICircuitOpen = errors.New("ai service circuit is open")
)

// InsightErrorCode defines error codes for insight endpoint errors.
// Format: INS-XXYYYY where XX is category and YYYY is specific error.
type InsightErrorCode string

const (
	// Quota errors (03XXXX)
	ErrCodeInsightRateLimited InsightErrorCode = "INS-030001"
)
