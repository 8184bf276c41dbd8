// Package insight contains the AI-backed use cases: period insights and
// category suggestions.
package insight

import (
	"context"
	"errors"
	"strings"

	domainerror "github.com/realtytrack/backend/internal/domain/error"
)

// Error code constants for language model failures. They label logs and
// metrics only; callers always receive a fallback result.
const (
	ErrCodeAIServiceUnavailable = "AI_SERVICE_UNAVAILABLE"
	ErrCodeAIRateLimited        = "AI_RATE_LIMITED"
	ErrCodeAIAuthError          = "AI_AUTH_ERROR"
	ErrCodeAITimeout            = "AI_TIMEOUT"
	ErrCodeAIParseError         = "AI_PARSE_ERROR"
	ErrCodeAINotConfigured      = "AI_NOT_CONFIGURED"
	ErrCodeAIInvalidSuggestion  = "AI_INVALID_SUGGESTION"
	ErrCodeAIUnknownError       = "AI_UNKNOWN_ERROR"
)

// outcomeOK labels a successful model call in metrics.
const outcomeOK = "ok"

// classifyError maps a model failure to one of the error codes above.
func classifyError(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return ErrCodeAITimeout
	case errors.Is(err, domainerror.ErrAIServiceNotConfigured):
		return ErrCodeAINotConfigured
	case errors.Is(err, domainerror.ErrAICircuitOpen):
		return ErrCodeAIServiceUnavailable
	case errors.Is(err, domainerror.ErrAIInvalidSuggestion):
		return ErrCodeAIInvalidSuggestion
	case errors.Is(err, domainerror.ErrAIEmptyResponse):
		return ErrCodeAIParseError
	}

	errStr := strings.ToLower(err.Error())

	// Check for rate limiting
	if strings.Contains(errStr, "rate limit") || strings.Contains(errStr, "quota") ||
		strings.Contains(errStr, "429") || strings.Contains(errStr, "resource exhausted") {
		return ErrCodeAIRateLimited
	}

	// Check for authentication errors
	if strings.Contains(errStr, "401") || strings.Contains(errStr, "403") ||
		strings.Contains(errStr, "invalid api key") || strings.Contains(errStr, "api key not valid") ||
		strings.Contains(errStr, "unauthorized") || strings.Contains(errStr, "authentication") {
		return ErrCodeAIAuthError
	}

	// Check for network/connection errors
	if strings.Contains(errStr, "connection") || strings.Contains(errStr, "network") ||
		strings.Contains(errStr, "dial") || strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "unavailable") || strings.Contains(errStr, "503") {
		return ErrCodeAIServiceUnavailable
	}

	// Check for parse errors
	if strings.Contains(errStr, "parse") || strings.Contains(errStr, "json") ||
		strings.Contains(errStr, "unmarshal") || strings.Contains(errStr, "decode") {
		return ErrCodeAIParseError
	}

	return ErrCodeAIUnknownError
}
