package steps

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/cucumber/godog"
)

func registerCollaboratorSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the stored state should contain (\d+) transactions?$`, theStoredStateShouldContainTransactions)
	ctx.Step(`^the stored state should contain a transaction with notes "([^"]*)"$`, theStoredStateShouldContainNotes)
	ctx.Step(`^the language model should have received (\d+) requests?$`, theLanguageModelShouldHaveReceivedRequests)
	ctx.Step(`^the last language model prompt should contain "([^"]*)"$`, theLastPromptShouldContain)
	ctx.Step(`^the last language model request header "([^"]*)" should be "([^"]*)"$`, theLastModelRequestHeaderShouldBe)
	ctx.Step(`^the last language model request path should contain "([^"]*)"$`, theLastModelRequestPathShouldContain)
}

func theStoredStateShouldContainTransactions(ctx context.Context, expected int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	stored, err := tc.store().Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load stored transactions: %w", err)
	}
	if len(stored) != expected {
		return fmt.Errorf("expected %d stored transactions, got %d", expected, len(stored))
	}
	return nil
}

func theStoredStateShouldContainNotes(ctx context.Context, notes string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	stored, err := tc.store().Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load stored transactions: %w", err)
	}
	for _, t := range stored {
		if t.Notes == notes {
			return nil
		}
	}
	return fmt.Errorf("no stored transaction with notes '%s' among %d", notes, len(stored))
}

func theLanguageModelShouldHaveReceivedRequests(ctx context.Context, expected int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if got := len(tc.gemini.Requests()); got != expected {
		return fmt.Errorf("expected %d language model requests, got %d", expected, got)
	}
	return nil
}

func theLastPromptShouldContain(ctx context.Context, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	requests := tc.gemini.Requests()
	if len(requests) == 0 {
		return fmt.Errorf("the language model received no requests")
	}
	prompt := requests[len(requests)-1].PromptText()
	if !strings.Contains(prompt, expected) {
		return fmt.Errorf("prompt does not contain '%s'. Prompt: %s", expected, prompt)
	}
	return nil
}

func theLastModelRequestHeaderShouldBe(ctx context.Context, header, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	requests := tc.gemini.Requests()
	if len(requests) == 0 {
		return fmt.Errorf("the language model received no requests")
	}
	actual := requests[len(requests)-1].Headers[http.CanonicalHeaderKey(header)]
	if actual != expected {
		return fmt.Errorf("model request header '%s' expected '%s', got '%s'", header, expected, actual)
	}
	return nil
}

func theLastModelRequestPathShouldContain(ctx context.Context, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	requests := tc.gemini.Requests()
	if len(requests) == 0 {
		return fmt.Errorf("the language model received no requests")
	}
	if path := requests[len(requests)-1].Path; !strings.Contains(path, expected) {
		return fmt.Errorf("model request path '%s' does not contain '%s'", path, expected)
	}
	return nil
}
