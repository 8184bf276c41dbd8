package steps

import (
	"context"
	"fmt"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/realtytrack/backend/internal/domain/entity"
)

func registerSetupSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^today is "([^"]*)"$`, todayIs)
	ctx.Step(`^the storage backend is "(redis|sqlite)"$`, theStorageBackendIs)
	ctx.Step(`^the following transactions exist:$`, theFollowingTransactionsExist)
	ctx.Step(`^the language model is not configured$`, theLanguageModelIsNotConfigured)
	ctx.Step(`^the language model responds with:$`, theLanguageModelRespondsWith)
	ctx.Step(`^the language model fails with status (\d+)$`, theLanguageModelFailsWithStatus)
	ctx.Step(`^insight requests are limited to (\d+) per minute$`, insightRequestsAreLimitedTo)
}

func todayIs(ctx context.Context, date string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	d, err := parseDate(date)
	if err != nil {
		return err
	}
	// Mid-morning keeps the calendar date stable while the clock runs.
	tc.clock.SetCurrentTime(d.Add(10 * time.Hour))
	return nil
}

func theStorageBackendIs(ctx context.Context, backend string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if err := tc.requireStopped("selecting the storage backend"); err != nil {
		return err
	}
	tc.backend = backend
	tc.cfg.Storage.Backend = backend
	return nil
}

// theFollowingTransactionsExist writes the table straight into storage. The
// columns are id, date, amount, type, category, subcategory and notes; only
// date, amount, type and category are required.
func theFollowingTransactionsExist(ctx context.Context, table *godog.Table) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if err := tc.requireStopped("seeding transactions"); err != nil {
		return err
	}
	if len(table.Rows) < 2 {
		return fmt.Errorf("transaction table needs a header and at least one row")
	}

	header := make([]string, len(table.Rows[0].Cells))
	for i, cell := range table.Rows[0].Cells {
		header[i] = cell.Value
	}

	existing, err := tc.store().Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load stored transactions: %w", err)
	}

	base := tc.clock.Now().UTC()
	for i, row := range table.Rows[1:] {
		values := make(map[string]string, len(header))
		for j, cell := range row.Cells {
			values[header[j]] = cell.Value
		}

		transaction, err := seedTransaction(values, base.Add(time.Duration(i)*time.Millisecond))
		if err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
		existing = append(existing, transaction)
	}

	if err := tc.store().Save(ctx, existing); err != nil {
		return fmt.Errorf("failed to seed transactions: %w", err)
	}
	return nil
}

func seedTransaction(values map[string]string, createdAt time.Time) (*entity.Transaction, error) {
	date, err := parseDate(values["date"])
	if err != nil {
		return nil, err
	}
	amount, err := decimal.NewFromString(values["amount"])
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", values["amount"], err)
	}
	txType := entity.TransactionType(values["type"])
	if !txType.IsValid() {
		return nil, fmt.Errorf("invalid type %q", values["type"])
	}

	transaction := entity.NewTransaction(
		date,
		amount,
		txType,
		values["category"],
		values["subcategory"],
		values["notes"],
		createdAt,
	)
	if value := values["id"]; value != "" {
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", value, err)
		}
		transaction.ID = id
	}
	return transaction, nil
}

func theLanguageModelIsNotConfigured(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if err := tc.requireStopped("removing the language model key"); err != nil {
		return err
	}
	tc.aiAPIKey = ""
	return nil
}

func theLanguageModelRespondsWith(ctx context.Context, body *godog.DocString) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.gemini.RespondWithText(body.Content)
	return nil
}

func theLanguageModelFailsWithStatus(ctx context.Context, status int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.gemini.FailWithStatus(status)
	return nil
}

func insightRequestsAreLimitedTo(ctx context.Context, limit int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if err := tc.requireStopped("limiting insight requests"); err != nil {
		return err
	}
	tc.cfg.AI.RateLimit = limit
	tc.cfg.AI.RateLimitWindow = time.Minute
	return nil
}
