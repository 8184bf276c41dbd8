// Package resilience provides the circuit breaker guarding the language model.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/realtytrack/backend/internal/application/adapter"
	domainerror "github.com/realtytrack/backend/internal/domain/error"
)

// BreakerConfig holds circuit breaker parameters.
type BreakerConfig struct {
	MaxFailures uint32        // Consecutive failures that open the circuit
	OpenTimeout time.Duration // Open -> half-open delay
}

// NewCircuitBreaker creates a circuit breaker that opens after
// MaxFailures consecutive failures. A call cancelled by its caller is not
// counted as a failure.
func NewCircuitBreaker(name string, cfg BreakerConfig) *gobreaker.CircuitBreaker {
	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = 1
	}

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1, // half-open: a single probe
		Interval:    0, // closed: counts reset only on success
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})
}

// BreakingModel is a LanguageModel whose calls pass through a circuit breaker.
type BreakingModel struct {
	next    adapter.LanguageModel
	breaker *gobreaker.CircuitBreaker
}

// WrapLanguageModel guards model with breaker.
func WrapLanguageModel(model adapter.LanguageModel, breaker *gobreaker.CircuitBreaker) *BreakingModel {
	return &BreakingModel{
		next:    model,
		breaker: breaker,
	}
}

// Generate forwards the request unless the circuit is open.
func (m *BreakingModel) Generate(ctx context.Context, request *adapter.GenerateRequest) (string, error) {
	result, err := m.breaker.Execute(func() (interface{}, error) {
		return m.next.Generate(ctx, request)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("%w: %v", domainerror.ErrAICircuitOpen, err)
		}
		return "", err
	}
	return result.(string), nil
}

// IsAvailable reports whether the wrapped model is configured.
func (m *BreakingModel) IsAvailable() bool {
	return m.next.IsAvailable()
}

// Name returns the wrapped model's name.
func (m *BreakingModel) Name() string {
	return m.next.Name()
}

// State returns the current breaker state, for health reporting.
func (m *BreakingModel) State() string {
	return m.breaker.State().String()
}
