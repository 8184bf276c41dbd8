package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/realtytrack/backend/internal/application/adapter"
	"github.com/realtytrack/backend/internal/application/ledger"
	"github.com/realtytrack/backend/internal/domain/entity"
	domainerror "github.com/realtytrack/backend/internal/domain/error"
)

// MaxNotesLength is the maximum allowed length for transaction notes, in characters.
const MaxNotesLength = 1000

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	Date        string // YYYY-MM-DD
	Amount      decimal.Decimal
	Type        entity.TransactionType // Optional when the category has a default type
	Category    string
	Subcategory string // Defaults to the category's first subcategory
	Notes       string
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
	Persisted   bool
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	ledger   Ledger
	registry *entity.CategoryRegistry
	clock    adapter.Clock
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	ledger Ledger,
	registry *entity.CategoryRegistry,
	clock adapter.Clock,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		ledger:   ledger,
		registry: registry,
		clock:    clock,
	}
}

// Execute validates the input and records the transaction at the front of the ledger.
// A failed save is not an error: the transaction is kept and Persisted is false.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	// Validate notes length
	if utf8.RuneCountInString(input.Notes) > MaxNotesLength {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNotesTooLong,
			fmt.Sprintf("notes must not exceed %d characters", MaxNotesLength),
			domainerror.ErrNotesTooLong,
		)
	}

	date, err := entity.ParseDate(strings.TrimSpace(input.Date))
	if err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"date must be in YYYY-MM-DD format",
			domainerror.ErrInvalidTransactionDate,
		)
	}

	if input.Amount.IsNegative() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must not be negative",
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	category, subcategory, err := uc.resolveCategory(input.Category, input.Subcategory)
	if err != nil {
		return nil, err
	}

	txType := input.Type
	if txType == "" && category.DefaultType != nil {
		txType = *category.DefaultType
	}
	if !txType.IsValid() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'INCOME' or 'EXPENSE'",
			domainerror.ErrInvalidTransactionType,
		)
	}

	transaction := entity.NewTransaction(
		date,
		input.Amount,
		txType,
		category.Name,
		subcategory,
		input.Notes,
		uc.clock.Now(),
	)

	output := &CreateTransactionOutput{Transaction: transaction, Persisted: true}
	if err := uc.ledger.Add(ctx, transaction); err != nil {
		var persistErr *ledger.PersistError
		if !errors.As(err, &persistErr) {
			return nil, fmt.Errorf("failed to add transaction: %w", err)
		}
		output.Persisted = false
	}

	return output, nil
}

func (uc *CreateTransactionUseCase) resolveCategory(name, subcategory string) (entity.CategoryDefinition, string, error) {
	if strings.TrimSpace(name) == "" {
		return entity.CategoryDefinition{}, "", domainerror.NewTransactionError(
			domainerror.ErrCodeMissingCategory,
			"category is required",
			domainerror.ErrMissingCategory,
		)
	}

	def, ok := uc.registry.Find(name)
	if !ok {
		return entity.CategoryDefinition{}, "", domainerror.NewTransactionError(
			domainerror.ErrCodeMissingCategory,
			fmt.Sprintf("unknown category %q", name),
			domainerror.ErrMissingCategory,
		)
	}

	if subcategory == "" {
		return def, def.FirstSubcategory(), nil
	}
	if !def.HasSubcategory(subcategory) {
		return entity.CategoryDefinition{}, "", domainerror.NewTransactionError(
			domainerror.ErrCodeMissingCategory,
			fmt.Sprintf("unknown subcategory %q for category %q", subcategory, name),
			domainerror.ErrMissingCategory,
		)
	}
	return def, subcategory, nil
}
