package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/realtytrack/backend/internal/application/ledger"
	"github.com/realtytrack/backend/internal/domain/entity"
	domainerror "github.com/realtytrack/backend/internal/domain/error"
)

// DeleteTransactionInput represents the input for transaction deletion.
type DeleteTransactionInput struct {
	TransactionID uuid.UUID
	Confirmed     bool // Deletion is irreversible and must be confirmed explicitly
}

// DeleteTransactionOutput represents the output of transaction deletion.
type DeleteTransactionOutput struct {
	Transaction *entity.Transaction
	Persisted   bool
}

// DeleteTransactionUseCase handles transaction deletion logic.
type DeleteTransactionUseCase struct {
	ledger Ledger
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(ledger Ledger) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		ledger: ledger,
	}
}

// Execute performs the transaction deletion.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) (*DeleteTransactionOutput, error) {
	if !input.Confirmed {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeDeletionNotConfirmed,
			"deletion must be confirmed with confirm=true",
			domainerror.ErrDeletionNotConfirmed,
		)
	}

	removed, err := uc.ledger.Remove(ctx, input.TransactionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				domainerror.ErrTransactionNotFound,
			)
		}

		var persistErr *ledger.PersistError
		if !errors.As(err, &persistErr) {
			return nil, fmt.Errorf("failed to delete transaction: %w", err)
		}
		return &DeleteTransactionOutput{Transaction: removed, Persisted: false}, nil
	}

	return &DeleteTransactionOutput{Transaction: removed, Persisted: true}, nil
}
