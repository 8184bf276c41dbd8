// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"

	"github.com/google/uuid"

	"github.com/realtytrack/backend/internal/domain/entity"
)

// Ledger is the transaction collection the use cases operate on.
// It is implemented by ledger.Ledger.
type Ledger interface {
	Snapshot() []*entity.Transaction
	Add(ctx context.Context, transaction *entity.Transaction) error
	Remove(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
}
